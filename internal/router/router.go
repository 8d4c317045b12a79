package router

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"sync"
	"sync/atomic"

	"union-site-backend/internal/blocks"
	"union-site-backend/internal/models"
	"union-site-backend/internal/store"
	"union-site-backend/pkg/logger"
)

// Loader performs the per-route data side effects: the landing grid loader,
// the infinite-scroll news feed and the one-shot list loads.
type Loader interface {
	LoadLatest(ctx context.Context) error
	LoadNewsPage(ctx context.Context, page int) (int, error)
	LoadEvents(ctx context.Context) error
	LoadJournal(ctx context.Context) error
	LoadMembers(ctx context.Context) error
}

// Page is the result of one navigation: the markup for the main content
// container plus the document metadata that goes with it.
type Page struct {
	Route       string
	HTML        string
	Title       string
	Description string
	// ActiveNav is the page key nav links are highlighted against.
	ActiveNav string
	// ScrollTop is false only for same-page navigations.
	ScrollTop bool
}

// Options configure a Router.
type Options struct {
	SiteName        string
	SiteDescription string
}

// Router maps normalized paths to rendered pages. Repeated navigations to
// the same route are idempotent; the main container always ends up
// populated, with an error fallback in the worst case.
type Router struct {
	state     *store.State
	cache     *PageCache
	fragments FragmentSource
	loader    Loader

	newsRenderer  *blocks.Renderer
	eventRenderer *blocks.Renderer

	siteName string
	siteDesc string

	// gen counts navigations; a late result whose generation is no longer
	// current is discarded instead of overwriting the newer page.
	gen atomic.Uint64

	mu             sync.Mutex
	current        Page
	lastSection    string
	scrollAttached bool
}

func New(state *store.State, fragments FragmentSource, loader Loader, opts Options) *Router {
	siteName := opts.SiteName
	if siteName == "" {
		siteName = "Student Union"
	}

	return &Router{
		state:         state,
		cache:         NewPageCache(),
		fragments:     fragments,
		loader:        loader,
		newsRenderer:  blocks.NewRenderer(blocks.Options{Prefix: "article"}),
		eventRenderer: blocks.NewRenderer(blocks.Options{Prefix: "event", MinHeadingLevel: 2}),
		siteName:      siteName,
		siteDesc:      opts.SiteDescription,
	}
}

// SeedRoot stores the document's initial markup as the root route's cache
// entry. It must run at startup, before any navigation mutates anything.
func (r *Router) SeedRoot(html string) {
	r.cache.Put("/", html)
}

// Cache exposes the page cache for inspection.
func (r *Router) Cache() *PageCache {
	return r.cache
}

// Current returns the page of the most recent completed navigation.
func (r *Router) Current() Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Navigate resolves a path and mounts the page for it. The call may suspend
// on a fragment fetch; if a newer navigation completed in the meantime, this
// one's result is discarded and the newer page is returned instead.
func (r *Router) Navigate(ctx context.Context, path string) Page {
	route := Parse(path)
	gen := r.gen.Add(1)

	r.runCleanup(route)

	page, redirect := r.dispatch(ctx, route)
	if redirect {
		return r.Navigate(ctx, "/")
	}

	r.mu.Lock()
	if r.gen.Load() != gen {
		// Superseded while fetching; the newer navigation owns the view.
		current := r.current
		r.mu.Unlock()
		return current
	}
	page.ScrollTop = r.current.Route != page.Route
	r.current = page
	r.lastSection = route.Section
	r.mu.Unlock()

	r.runInitializer(ctx, route)
	return r.Current()
}

// runCleanup detaches per-route machinery of the page being left. Leaving
// the news listing drops its scroll listener and resets the pagination
// cursor.
func (r *Router) runCleanup(next Route) {
	r.mu.Lock()
	leavingNews := r.scrollAttached && next.Section != "news"
	if leavingNews {
		r.scrollAttached = false
	}
	r.mu.Unlock()

	if leavingNews {
		r.state.ResetNewsPaging()
	}
}

func (r *Router) dispatch(ctx context.Context, route Route) (Page, bool) {
	switch route.Kind {
	case KindRoot:
		return r.rootPage(route), false
	case KindNewsDetail:
		return r.newsDetailPage(route), false
	case KindEventDetail:
		return r.eventDetailPage(route), false
	default:
		return r.staticPage(ctx, route)
	}
}

func (r *Router) rootPage(route Route) Page {
	html, ok := r.cache.Get("/")
	if !ok {
		// The seed is wired at startup; hitting this means a programming
		// error somewhere, so degrade to the fallback instead of crashing.
		logger.Warn("Root route cache entry missing", nil)
		html = fallbackHTML
	}
	return Page{
		Route:       "/",
		HTML:        html,
		Title:       r.siteName,
		Description: r.siteDesc,
		ActiveNav:   "home",
	}
}

func (r *Router) staticPage(ctx context.Context, route Route) (Page, bool) {
	key := route.Section

	html, ok := r.cache.Get(route.Path)
	if !ok {
		fetched, err := r.fragments.Fragment(ctx, key)
		if err != nil {
			logger.Error(err, "Static fragment fetch failed, redirecting home", map[string]interface{}{
				"route": route.Path,
			})
			return Page{}, true
		}
		r.cache.Put(route.Path, fetched)
		html = fetched
	}

	return Page{
		Route:       route.Path,
		HTML:        html,
		Title:       fmt.Sprintf("%s — %s", sectionTitle(key), r.siteName),
		Description: r.siteDesc,
		ActiveNav:   key,
	}, false
}

func (r *Router) newsDetailPage(route Route) Page {
	item, ok := r.state.FindNewsByLink(route.DetailLink)
	if !ok {
		return r.notFoundPage(route, "/news")
	}

	body, err := r.newsRenderer.Render(item.Content)
	if err != nil {
		logger.Error(err, "Stored news content failed to render", map[string]interface{}{"id": item.ID})
		body = renderErrorHTML
	}

	return Page{
		Route:       route.Path,
		HTML:        r.detailHTML("article", item.Title, item.CoverURL, r.newsAttribution(item), body),
		Title:       fmt.Sprintf("%s — %s", item.Title, r.siteName),
		Description: item.Summary,
		ActiveNav:   "news",
	}
}

func (r *Router) eventDetailPage(route Route) Page {
	item, ok := r.state.FindEventByLink(route.DetailLink)
	if !ok {
		return r.notFoundPage(route, "/events")
	}

	body, err := r.eventRenderer.Render(item.Content)
	if err != nil {
		logger.Error(err, "Stored event content failed to render", map[string]interface{}{"id": item.ID})
		body = renderErrorHTML
	}

	return Page{
		Route:       route.Path,
		HTML:        r.detailHTML("event", item.Title, item.CoverURL, r.eventAttribution(item), body),
		Title:       fmt.Sprintf("%s — %s", item.Title, r.siteName),
		Description: item.Summary,
		ActiveNav:   "events",
	}
}

// notFoundPage renders the inline miss message with a back-link to the
// owning listing. A dead detail link is not an error condition.
func (r *Router) notFoundPage(route Route, backTo string) Page {
	var sb strings.Builder
	sb.WriteString(`<div class="not-found">`)
	sb.WriteString(`<p class="not-found__message">The page you are looking for does not exist or has been removed.</p>`)
	sb.WriteString(`<a class="not-found__back" href="#` + backTo + `">Back to ` + strings.TrimPrefix(backTo, "/") + `</a>`)
	sb.WriteString(`</div>`)

	return Page{
		Route:       route.Path,
		HTML:        sb.String(),
		Title:       fmt.Sprintf("Not found — %s", r.siteName),
		Description: r.siteDesc,
		ActiveNav:   route.Section,
	}
}

func (r *Router) detailHTML(prefix, title, coverURL, attribution, body string) string {
	var sb strings.Builder
	sb.WriteString(`<article class="` + prefix + `">`)
	sb.WriteString(`<h1 class="` + prefix + `__title">` + template.HTMLEscapeString(title) + `</h1>`)
	if attribution != "" {
		sb.WriteString(`<div class="` + prefix + `__meta">` + attribution + `</div>`)
	}
	if coverURL != "" {
		sb.WriteString(`<img class="` + prefix + `__cover" src="` + template.HTMLEscapeString(coverURL) + `" alt="" />`)
	}
	sb.WriteString(`<div class="` + prefix + `__body">` + body + `</div>`)
	sb.WriteString(`</article>`)
	return sb.String()
}

func (r *Router) newsAttribution(item models.News) string {
	parts := make([]string, 0, 3)
	if author := r.authorName(item.AuthorID, item.Author); author != "" {
		parts = append(parts, `<span class="article__author">`+template.HTMLEscapeString(author)+`</span>`)
	}
	parts = append(parts, `<time class="article__date">`+item.CreatedAt.Format("02.01.2006")+`</time>`)
	for _, tag := range item.Tags {
		parts = append(parts, `<span class="article__tag">`+template.HTMLEscapeString(tag.Name)+`</span>`)
	}
	return strings.Join(parts, " ")
}

func (r *Router) eventAttribution(item models.Event) string {
	parts := make([]string, 0, 3)
	if author := r.authorName(item.AuthorID, item.Author); author != "" {
		parts = append(parts, `<span class="event__author">`+template.HTMLEscapeString(author)+`</span>`)
	}
	if item.StartsAt != nil {
		parts = append(parts, `<time class="event__date">`+item.StartsAt.Format("02.01.2006 15:04")+`</time>`)
	}
	if item.Location != "" {
		parts = append(parts, `<span class="event__location">`+template.HTMLEscapeString(item.Location)+`</span>`)
	}
	return strings.Join(parts, " ")
}

func (r *Router) authorName(id *uint, embedded *models.Member) string {
	if id != nil {
		if member, ok := r.state.Member(*id); ok {
			return member.FullName
		}
	}
	if embedded != nil {
		return embedded.FullName
	}
	return ""
}

// runInitializer applies the registered per-route side effect after mount.
// The set is closed: one arm per route that has one.
func (r *Router) runInitializer(ctx context.Context, route Route) {
	switch initializerFor(route) {
	case initLatestItems:
		if err := r.loader.LoadLatest(ctx); err != nil {
			logger.Error(err, "Latest items loader failed", nil)
		}
	case initNewsFeed:
		r.mu.Lock()
		r.scrollAttached = true
		r.mu.Unlock()
		if _, err := r.loader.LoadNewsPage(ctx, r.state.AdvanceNewsPage()); err != nil {
			logger.Error(err, "News feed initial load failed", nil)
		}
	case initEventsList:
		if err := r.loader.LoadEvents(ctx); err != nil {
			logger.Error(err, "Events load failed", nil)
		}
	case initJournalList:
		if err := r.loader.LoadJournal(ctx); err != nil {
			logger.Error(err, "Journal load failed", nil)
		}
	case initMembersGrid:
		if err := r.loader.LoadMembers(ctx); err != nil {
			logger.Error(err, "Members load failed", nil)
		}
	}
}

// LoadMoreNews is the scroll listener's entry point. It is a no-op unless
// the news listing is mounted and the feed still has pages.
func (r *Router) LoadMoreNews(ctx context.Context) error {
	r.mu.Lock()
	attached := r.scrollAttached
	r.mu.Unlock()

	if !attached || r.state.NewsExhausted() {
		return nil
	}

	count, err := r.loader.LoadNewsPage(ctx, r.state.AdvanceNewsPage())
	if err != nil {
		return err
	}
	if count == 0 {
		r.state.MarkNewsExhausted()
	}
	return nil
}

type initializer int

const (
	initNone initializer = iota
	initLatestItems
	initNewsFeed
	initEventsList
	initJournalList
	initMembersGrid
)

func initializerFor(route Route) initializer {
	if route.Kind == KindRoot {
		return initLatestItems
	}
	if route.Kind != KindStatic {
		return initNone
	}

	switch route.Section {
	case "news":
		return initNewsFeed
	case "events":
		return initEventsList
	case "journal":
		return initJournalList
	case "members":
		return initMembersGrid
	default:
		return initNone
	}
}

func sectionTitle(key string) string {
	if key == "" {
		return "Home"
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

const fallbackHTML = `<div class="error"><p>Something went wrong while loading this page. Please reload.</p></div>`

const renderErrorHTML = `<div class="error"><p>This content could not be displayed.</p></div>`
