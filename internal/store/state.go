// Package store holds the session-lifetime application state: loaded entity
// lists, lookup maps and pagination cursors. The state object is created by
// the composition root and passed explicitly into the router and page
// renderers; nothing imports it as a singleton.
package store

import (
	"sync"

	"union-site-backend/internal/models"
)

type State struct {
	mu sync.RWMutex

	news    []models.News
	events  []models.Event
	journal []models.JournalIssue

	membersMap map[uint]models.Member
	tagsMap    map[uint]string

	// newsPage is the infinite-scroll cursor for the news listing; it is
	// reset whenever the listing route is left.
	newsPage      int
	newsExhausted bool

	session *models.Session
}

func New() *State {
	return &State{
		membersMap: make(map[uint]models.Member),
		tagsMap:    make(map[uint]string),
	}
}

func (s *State) News() []models.News {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.news
}

func (s *State) SetNews(news []models.News) {
	s.mu.Lock()
	s.news = news
	s.mu.Unlock()
}

// AppendNews extends the loaded list with one more page; duplicate ids are
// dropped so an interleaved double-load cannot double items.
func (s *State) AppendNews(page []models.News) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[uint]bool, len(s.news))
	for _, n := range s.news {
		seen[n.ID] = true
	}
	for _, n := range page {
		if !seen[n.ID] {
			s.news = append(s.news, n)
		}
	}
}

// FindNewsByLink resolves a detail-route link ("<id>-<slug>") against the
// loaded list without another remote call.
func (s *State) FindNewsByLink(link string) (models.News, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.news {
		if n.Link() == link {
			return n, true
		}
	}
	return models.News{}, false
}

// UpsertNews mutates the local copy in place after a successful remote write
// so the UI stays consistent without a full reload.
func (s *State) UpsertNews(item models.News) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.news {
		if n.ID == item.ID {
			s.news[i] = item
			return
		}
	}
	s.news = append([]models.News{item}, s.news...)
}

func (s *State) RemoveNews(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.news {
		if n.ID == id {
			s.news = append(s.news[:i], s.news[i+1:]...)
			return
		}
	}
}

func (s *State) Events() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.events
}

func (s *State) SetEvents(events []models.Event) {
	s.mu.Lock()
	s.events = events
	s.mu.Unlock()
}

func (s *State) FindEventByLink(link string) (models.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.events {
		if e.Link() == link {
			return e, true
		}
	}
	return models.Event{}, false
}

func (s *State) UpsertEvent(item models.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.events {
		if e.ID == item.ID {
			s.events[i] = item
			return
		}
	}
	s.events = append([]models.Event{item}, s.events...)
}

func (s *State) RemoveEvent(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.events {
		if e.ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return
		}
	}
}

func (s *State) Journal() []models.JournalIssue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.journal
}

func (s *State) SetJournal(issues []models.JournalIssue) {
	s.mu.Lock()
	s.journal = issues
	s.mu.Unlock()
}

func (s *State) SetMembers(members []models.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.membersMap = make(map[uint]models.Member, len(members))
	for _, m := range members {
		s.membersMap[m.ID] = m
	}
}

func (s *State) Member(id uint) (models.Member, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.membersMap[id]
	return m, ok
}

func (s *State) Members() []models.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Member, 0, len(s.membersMap))
	for _, m := range s.membersMap {
		out = append(out, m)
	}
	return out
}

func (s *State) SetTags(tags []models.Tag) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tagsMap = make(map[uint]string, len(tags))
	for _, t := range tags {
		s.tagsMap[t.ID] = t.Name
	}
}

func (s *State) TagName(id uint) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name, ok := s.tagsMap[id]
	return name, ok
}

// NewsPage returns the current infinite-scroll cursor.
func (s *State) NewsPage() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.newsPage
}

func (s *State) AdvanceNewsPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.newsPage++
	return s.newsPage
}

func (s *State) MarkNewsExhausted() {
	s.mu.Lock()
	s.newsExhausted = true
	s.mu.Unlock()
}

func (s *State) NewsExhausted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.newsExhausted
}

// ResetNewsPaging clears the cursor when the news listing route is left.
func (s *State) ResetNewsPaging() {
	s.mu.Lock()
	s.newsPage = 0
	s.newsExhausted = false
	s.mu.Unlock()
}

func (s *State) Session() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

func (s *State) SetSession(session *models.Session) {
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()
}

// ResetOnSignOut clears session-scoped fields explicitly. Loaded public
// content stays; it is not tied to the account.
func (s *State) ResetOnSignOut() {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()
}
