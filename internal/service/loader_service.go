package service

import (
	"context"

	"union-site-backend/internal/store"
	"union-site-backend/pkg/logger"
)

const (
	newsPerPage    = 10
	latestNewsSize = 4
	upcomingSize   = 3
)

// Loader feeds the page state on navigation. Each public route with data
// behind it has one load method; the router decides when they run.
type Loader struct {
	news    *NewsService
	events  *EventService
	journal *JournalService
	members *MemberService
	tags    *TagService
	state   *store.State
}

func NewLoader(news *NewsService, events *EventService, journal *JournalService, members *MemberService, tags *TagService, state *store.State) *Loader {
	return &Loader{
		news:    news,
		events:  events,
		journal: journal,
		members: members,
		tags:    tags,
		state:   state,
	}
}

// LoadLatest fills the landing grid: newest articles plus upcoming events.
// Members and tags ride along the first time so author attribution and tag
// names resolve on detail pages.
func (l *Loader) LoadLatest(ctx context.Context) error {
	latest, err := l.news.news.Latest(ctx, latestNewsSize)
	if err != nil {
		return err
	}
	l.state.AppendNews(latest)

	upcoming, err := l.events.events.Upcoming(ctx, upcomingSize)
	if err != nil {
		return err
	}
	for _, event := range upcoming {
		l.state.UpsertEvent(event)
	}

	if len(l.state.Members()) == 0 {
		if err := l.LoadMembers(ctx); err != nil {
			logger.Error(err, "Member preload failed", nil)
		}
	}
	if _, err := l.tags.List(ctx); err != nil {
		logger.Error(err, "Tag preload failed", nil)
	}
	return nil
}

// LoadNewsPage appends one feed page and reports how many items arrived. A
// short page means the feed is done.
func (l *Loader) LoadNewsPage(ctx context.Context, page int) (int, error) {
	items, err := l.news.List(ctx, page, newsPerPage)
	if err != nil {
		return 0, err
	}

	l.state.AppendNews(items)
	if len(items) < newsPerPage {
		l.state.MarkNewsExhausted()
	}
	return len(items), nil
}

func (l *Loader) LoadEvents(ctx context.Context) error {
	events, err := l.events.List(ctx)
	if err != nil {
		return err
	}
	l.state.SetEvents(events)
	return nil
}

func (l *Loader) LoadJournal(ctx context.Context) error {
	issues, err := l.journal.List(ctx)
	if err != nil {
		return err
	}
	l.state.SetJournal(issues)
	return nil
}

func (l *Loader) LoadMembers(ctx context.Context) error {
	members, err := l.members.List(ctx)
	if err != nil {
		return err
	}
	l.state.SetMembers(members)
	return nil
}
