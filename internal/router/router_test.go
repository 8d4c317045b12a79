package router

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"union-site-backend/internal/models"
	"union-site-backend/internal/store"
)

type fakeFragments struct {
	mu    sync.Mutex
	calls map[string]int
	html  map[string]string
	fail  map[string]bool
	hook  func(key string)
}

func newFakeFragments() *fakeFragments {
	return &fakeFragments{
		calls: make(map[string]int),
		html:  make(map[string]string),
		fail:  make(map[string]bool),
	}
}

func (f *fakeFragments) Fragment(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	f.calls[key]++
	failed := f.fail[key]
	html, ok := f.html[key]
	hook := f.hook
	f.mu.Unlock()

	if hook != nil {
		hook(key)
	}
	if failed {
		return "", errors.New("fetch failed")
	}
	if !ok {
		html = "<section>" + key + "</section>"
	}
	return html, nil
}

func (f *fakeFragments) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

type fakeLoader struct {
	mu        sync.Mutex
	latest    int
	newsPages []int
	events    int
	journal   int
	members   int
}

func (l *fakeLoader) LoadLatest(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.latest++
	return nil
}

func (l *fakeLoader) LoadNewsPage(ctx context.Context, page int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.newsPages = append(l.newsPages, page)
	return 10, nil
}

func (l *fakeLoader) LoadEvents(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events++
	return nil
}

func (l *fakeLoader) LoadJournal(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.journal++
	return nil
}

func (l *fakeLoader) LoadMembers(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.members++
	return nil
}

func newTestRouter(t *testing.T) (*Router, *store.State, *fakeFragments, *fakeLoader) {
	t.Helper()
	state := store.New()
	fragments := newFakeFragments()
	loader := &fakeLoader{}
	r := New(state, fragments, loader, Options{SiteName: "Union"})
	r.SeedRoot("<main>landing</main>")
	return r, state, fragments, loader
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Route
	}{
		{"", Route{Path: "/", Kind: KindRoot}},
		{"#", Route{Path: "/", Kind: KindRoot}},
		{"#/", Route{Path: "/", Kind: KindRoot}},
		{"/", Route{Path: "/", Kind: KindRoot}},
		{"#/contacts", Route{Path: "/contacts", Kind: KindStatic, Section: "contacts"}},
		{"contacts", Route{Path: "/contacts", Kind: KindStatic, Section: "contacts"}},
		{"/contacts/", Route{Path: "/contacts", Kind: KindStatic, Section: "contacts"}},
		{"#/news", Route{Path: "/news", Kind: KindStatic, Section: "news"}},
		{"#/news/42-launch", Route{Path: "/news/42-launch", Kind: KindNewsDetail, Section: "news", DetailLink: "42-launch"}},
		{"#/events/7-open-day", Route{Path: "/events/7-open-day", Kind: KindEventDetail, Section: "events", DetailLink: "7-open-day"}},
		{"#/admin", Route{Path: "/admin", Kind: KindAdmin, Section: "admin"}},
	}

	for _, tt := range tests {
		if got := Parse(tt.in); got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestNavigateRootServesSeededCache(t *testing.T) {
	r, _, _, loader := newTestRouter(t)

	page := r.Navigate(context.Background(), "#/")

	if page.HTML != "<main>landing</main>" {
		t.Fatalf("unexpected root markup: %q", page.HTML)
	}
	if page.ActiveNav != "home" {
		t.Errorf("ActiveNav = %q, want home", page.ActiveNav)
	}
	if loader.latest != 1 {
		t.Errorf("latest loader ran %d times, want 1", loader.latest)
	}
}

func TestNavigateStaticFetchesFragmentOnce(t *testing.T) {
	r, _, fragments, _ := newTestRouter(t)

	first := r.Navigate(context.Background(), "#/contacts")
	second := r.Navigate(context.Background(), "#/contacts")

	if first.HTML != "<section>contacts</section>" || second.HTML != first.HTML {
		t.Fatalf("unexpected markup: %q / %q", first.HTML, second.HTML)
	}
	if n := fragments.count("contacts"); n != 1 {
		t.Errorf("fragment fetched %d times, want 1", n)
	}
	if got := r.Cache().Len(); got != 2 {
		t.Errorf("cache holds %d entries, want 2", got)
	}
}

func TestNavigateSamePageKeepsScroll(t *testing.T) {
	r, _, _, _ := newTestRouter(t)

	first := r.Navigate(context.Background(), "#/contacts")
	if !first.ScrollTop {
		t.Error("first visit should scroll to top")
	}

	again := r.Navigate(context.Background(), "#/contacts")
	if again.ScrollTop {
		t.Error("same-page navigation should keep the scroll position")
	}
}

func TestNavigateFragmentFailureFallsBackHome(t *testing.T) {
	r, _, fragments, _ := newTestRouter(t)
	fragments.fail["partners"] = true

	page := r.Navigate(context.Background(), "#/partners")

	if page.Route != "/" {
		t.Fatalf("Route = %q, want /", page.Route)
	}
	if page.HTML != "<main>landing</main>" {
		t.Errorf("fallback should serve the seeded landing page, got %q", page.HTML)
	}
}

func TestNavigateNewsDetail(t *testing.T) {
	r, state, _, _ := newTestRouter(t)
	state.SetNews([]models.News{{
		ID:      42,
		Title:   "Launch",
		Summary: "The launch announcement",
		Content: models.BlockList{
			{Type: "header", Data: map[string]interface{}{"text": "Hello", "level": "2"}},
		},
	}})

	page := r.Navigate(context.Background(), "#/news/42-launch")

	if !strings.Contains(page.HTML, `<h1 class="article__title">Launch</h1>`) {
		t.Errorf("missing title heading in %q", page.HTML)
	}
	if !strings.Contains(page.HTML, `<h2 class="article__header">Hello</h2>`) {
		t.Errorf("missing rendered body in %q", page.HTML)
	}
	if page.Title != "Launch — Union" {
		t.Errorf("Title = %q", page.Title)
	}
	if page.Description != "The launch announcement" {
		t.Errorf("Description = %q", page.Description)
	}
	if page.ActiveNav != "news" {
		t.Errorf("ActiveNav = %q, want news", page.ActiveNav)
	}
}

func TestNavigateNewsDetailNotFound(t *testing.T) {
	r, _, _, _ := newTestRouter(t)

	page := r.Navigate(context.Background(), "#/news/42-launch")

	if !strings.Contains(page.HTML, "does not exist") {
		t.Errorf("expected a not-found message, got %q", page.HTML)
	}
	if !strings.Contains(page.HTML, `href="#/news"`) {
		t.Errorf("expected a back-link to the news listing, got %q", page.HTML)
	}
	if !strings.HasPrefix(page.Title, "Not found") {
		t.Errorf("Title = %q", page.Title)
	}
}

func TestNavigateSupersededBySecondNavigation(t *testing.T) {
	r, _, fragments, loader := newTestRouter(t)

	fragments.hook = func(key string) {
		if key != "contacts" {
			return
		}
		fragments.mu.Lock()
		fragments.hook = nil
		fragments.mu.Unlock()
		r.Navigate(context.Background(), "#/journal")
	}

	page := r.Navigate(context.Background(), "#/contacts")

	if page.Route != "/journal" {
		t.Fatalf("Route = %q, want /journal", page.Route)
	}
	if current := r.Current().Route; current != "/journal" {
		t.Errorf("current route = %q, want /journal", current)
	}
	if loader.journal != 1 {
		t.Errorf("journal loader ran %d times, want 1", loader.journal)
	}
}

func TestNewsFeedPagingAndCleanup(t *testing.T) {
	r, state, _, loader := newTestRouter(t)
	ctx := context.Background()

	r.Navigate(ctx, "#/news")
	if err := r.LoadMoreNews(ctx); err != nil {
		t.Fatalf("LoadMoreNews: %v", err)
	}

	loader.mu.Lock()
	pages := append([]int(nil), loader.newsPages...)
	loader.mu.Unlock()
	if len(pages) != 2 || pages[0] != 1 || pages[1] != 2 {
		t.Fatalf("loaded pages %v, want [1 2]", pages)
	}

	r.Navigate(ctx, "#/contacts")
	if state.NewsPage() != 0 {
		t.Errorf("cursor = %d after leaving the listing, want 0", state.NewsPage())
	}
	if err := r.LoadMoreNews(ctx); err != nil {
		t.Fatalf("LoadMoreNews after leave: %v", err)
	}
	loader.mu.Lock()
	total := len(loader.newsPages)
	loader.mu.Unlock()
	if total != 2 {
		t.Errorf("scroll listener still live after leaving the listing: %d loads", total)
	}
}

func TestLoadMoreNewsStopsWhenExhausted(t *testing.T) {
	r, state, _, loader := newTestRouter(t)
	ctx := context.Background()

	r.Navigate(ctx, "#/news")
	state.MarkNewsExhausted()
	if err := r.LoadMoreNews(ctx); err != nil {
		t.Fatalf("LoadMoreNews: %v", err)
	}

	loader.mu.Lock()
	total := len(loader.newsPages)
	loader.mu.Unlock()
	if total != 1 {
		t.Errorf("exhausted feed still loading: %d loads", total)
	}
}
