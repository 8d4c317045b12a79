package service

import (
	"context"
	"strings"

	"union-site-backend/internal/gateway"
	"union-site-backend/internal/models"
	"union-site-backend/internal/store"
	"union-site-backend/pkg/cache"
)

type JournalService struct {
	journal gateway.JournalGateway
	storage gateway.StorageGateway
	state   *store.State
	cache   *cache.Cache
}

func NewJournalService(gw *gateway.Gateway, state *store.State, c *cache.Cache) *JournalService {
	return &JournalService{
		journal: gw.Journal,
		storage: gw.Storage,
		state:   state,
		cache:   c,
	}
}

func (s *JournalService) List(ctx context.Context) ([]models.JournalIssue, error) {
	return s.journal.List(ctx)
}

func (s *JournalService) Create(ctx context.Context, req models.CreateJournalIssueRequest) (*models.JournalIssue, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	issue := models.JournalIssue{
		Title:       title,
		Number:      req.Number,
		Description: strings.TrimSpace(req.Description),
		CoverURL:    strings.TrimSpace(req.CoverURL),
		FileURL:     strings.TrimSpace(req.FileURL),
	}
	if err := s.journal.Create(ctx, &issue); err != nil {
		return nil, err
	}

	s.state.SetJournal(nil)
	if s.cache != nil {
		s.cache.InvalidateJournal()
	}
	return &issue, nil
}

func (s *JournalService) Delete(ctx context.Context, id uint) error {
	if err := s.journal.Delete(ctx, id); err != nil {
		return err
	}

	s.state.SetJournal(nil)
	if s.cache != nil {
		s.cache.InvalidateJournal()
	}
	return nil
}
