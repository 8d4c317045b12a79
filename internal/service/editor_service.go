package service

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"union-site-backend/internal/blocks"
	"union-site-backend/internal/editor"
	"union-site-backend/internal/models"
	"union-site-backend/pkg/logger"
)

var ErrSessionNotFound = errors.New("editor session not found")

const sessionTTL = 2 * time.Hour

// EditorSession binds one editing surface to its live preview.
type EditorSession struct {
	ID       string
	Editor   *editor.Editor
	Preview  *editor.Preview
	lastUsed time.Time
}

// EditorService keeps the open editing sessions of signed-in admins.
// Sessions idle past the TTL are torn down so preview timers never outlive
// an abandoned tab.
type EditorService struct {
	mu       sync.Mutex
	sessions map[string]*EditorSession

	articleRenderer *blocks.Renderer
	eventRenderer   *blocks.Renderer
	autoRefresh     time.Duration
	debounce        time.Duration
}

func NewEditorService(debounce, autoRefresh time.Duration) *EditorService {
	return &EditorService{
		sessions:        make(map[string]*EditorSession),
		articleRenderer: blocks.NewRenderer(blocks.Options{Prefix: "article"}),
		eventRenderer:   blocks.NewRenderer(blocks.Options{Prefix: "event", MinHeadingLevel: 2}),
		autoRefresh:     autoRefresh,
		debounce:        debounce,
	}
}

// Create opens a session seeded with existing content. Kind selects which
// renderer previews it: "event" for event bodies, anything else renders as
// an article.
func (s *EditorService) Create(kind string, content models.BlockList) (*EditorSession, error) {
	ed, err := editor.NewFromBlocks(content)
	if err != nil {
		return nil, err
	}

	renderer := s.articleRenderer
	if kind == "event" {
		renderer = s.eventRenderer
	}

	session := &EditorSession{
		ID:       uuid.NewString(),
		Editor:   ed,
		Preview:  editor.NewPreview(ed, renderer, editor.PreviewOptions{Debounce: s.debounce, AutoRefresh: s.autoRefresh}),
		lastUsed: time.Now(),
	}

	s.mu.Lock()
	s.pruneLocked()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session, nil
}

// Get returns a live session and bumps its idle clock.
func (s *EditorService) Get(id string) (*EditorSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	session.lastUsed = time.Now()
	return session, nil
}

// Close tears a session down explicitly, stopping its preview timers.
func (s *EditorService) Close(id string) error {
	s.mu.Lock()
	session, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	session.Preview.Close()
	return nil
}

// CloseAll is called on shutdown and on sign-out.
func (s *EditorService) CloseAll() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*EditorSession)
	s.mu.Unlock()

	for _, session := range sessions {
		session.Preview.Close()
	}
}

func (s *EditorService) pruneLocked() {
	cutoff := time.Now().Add(-sessionTTL)
	for id, session := range s.sessions {
		if session.lastUsed.Before(cutoff) {
			session.Preview.Close()
			delete(s.sessions, id)
			logger.Debug("Editor session expired", map[string]interface{}{"id": id})
		}
	}
}
