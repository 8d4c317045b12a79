package rest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"union-site-backend/internal/gateway"
	"union-site-backend/internal/models"
)

const tablePrefix = "/rest/v1/"

// fetchRows reads a result set from one table.
func fetchRows[T any](ctx context.Context, c *Client, table string, query url.Values) ([]T, error) {
	var rows []T
	if err := c.do(ctx, http.MethodGet, tablePrefix+table, query, c.anonKey, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// fetchOne reads a single row by primary key. An empty result set is a
// not-found, not an error from the backend's point of view.
func fetchOne[T any](ctx context.Context, c *Client, table string, id uint, selectClause string) (T, error) {
	var zero T
	query := url.Values{}
	query.Set("select", selectClause)
	query.Set("id", "eq."+strconv.FormatUint(uint64(id), 10))
	query.Set("limit", "1")

	rows, err := fetchRows[T](ctx, c, table, query)
	if err != nil {
		return zero, err
	}
	if len(rows) == 0 {
		return zero, gateway.ErrNotFound
	}
	return rows[0], nil
}

// insertRow creates a row and copies the representation the backend
// returns (ids, timestamps) back into item.
func insertRow[T any](ctx context.Context, c *Client, table string, item *T) error {
	var rows []T
	if err := c.do(ctx, http.MethodPost, tablePrefix+table, nil, c.writeKey(), item, &rows); err != nil {
		return err
	}
	if len(rows) > 0 {
		*item = rows[0]
	}
	return nil
}

func updateRow[T any](ctx context.Context, c *Client, table string, id uint, item *T) error {
	query := url.Values{}
	query.Set("id", "eq."+strconv.FormatUint(uint64(id), 10))

	var rows []T
	if err := c.do(ctx, http.MethodPatch, tablePrefix+table, query, c.writeKey(), item, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return gateway.ErrNotFound
	}
	*item = rows[0]
	return nil
}

func deleteRow(ctx context.Context, c *Client, table string, id uint) error {
	query := url.Values{}
	query.Set("id", "eq."+strconv.FormatUint(uint64(id), 10))
	return c.do(ctx, http.MethodDelete, tablePrefix+table, query, c.writeKey(), nil, nil)
}

type newsGateway struct {
	client *Client
}

const newsSelect = "*,author:members(*),tags(*)"

func (g *newsGateway) List(ctx context.Context, page, perPage int) ([]models.News, error) {
	if page < 1 {
		page = 1
	}
	query := url.Values{}
	query.Set("select", newsSelect)
	query.Set("published", "eq.true")
	query.Set("order", "created_at.desc")
	query.Set("limit", strconv.Itoa(perPage))
	query.Set("offset", strconv.Itoa((page-1)*perPage))
	return fetchRows[models.News](ctx, g.client, "news", query)
}

func (g *newsGateway) Latest(ctx context.Context, limit int) ([]models.News, error) {
	query := url.Values{}
	query.Set("select", newsSelect)
	query.Set("published", "eq.true")
	query.Set("order", "created_at.desc")
	query.Set("limit", strconv.Itoa(limit))
	return fetchRows[models.News](ctx, g.client, "news", query)
}

func (g *newsGateway) GetByID(ctx context.Context, id uint) (models.News, error) {
	return fetchOne[models.News](ctx, g.client, "news", id, newsSelect)
}

func (g *newsGateway) Create(ctx context.Context, item *models.News) error {
	return insertRow(ctx, g.client, "news", item)
}

func (g *newsGateway) Update(ctx context.Context, item *models.News) error {
	return updateRow(ctx, g.client, "news", item.ID, item)
}

func (g *newsGateway) Delete(ctx context.Context, id uint) error {
	return deleteRow(ctx, g.client, "news", id)
}

type eventGateway struct {
	client *Client
}

const eventSelect = "*,author:members(*)"

func (g *eventGateway) List(ctx context.Context) ([]models.Event, error) {
	query := url.Values{}
	query.Set("select", eventSelect)
	query.Set("order", "starts_at.desc.nullslast")
	return fetchRows[models.Event](ctx, g.client, "events", query)
}

func (g *eventGateway) Upcoming(ctx context.Context, limit int) ([]models.Event, error) {
	query := url.Values{}
	query.Set("select", eventSelect)
	query.Set("starts_at", "gte."+nowParam())
	query.Set("order", "starts_at.asc")
	query.Set("limit", strconv.Itoa(limit))
	return fetchRows[models.Event](ctx, g.client, "events", query)
}

func (g *eventGateway) GetByID(ctx context.Context, id uint) (models.Event, error) {
	return fetchOne[models.Event](ctx, g.client, "events", id, eventSelect)
}

func (g *eventGateway) Create(ctx context.Context, item *models.Event) error {
	return insertRow(ctx, g.client, "events", item)
}

func (g *eventGateway) Update(ctx context.Context, item *models.Event) error {
	return updateRow(ctx, g.client, "events", item.ID, item)
}

func (g *eventGateway) Delete(ctx context.Context, id uint) error {
	return deleteRow(ctx, g.client, "events", id)
}

type journalGateway struct {
	client *Client
}

func (g *journalGateway) List(ctx context.Context) ([]models.JournalIssue, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "number.desc")
	return fetchRows[models.JournalIssue](ctx, g.client, "journal_issues", query)
}

func (g *journalGateway) GetByID(ctx context.Context, id uint) (models.JournalIssue, error) {
	return fetchOne[models.JournalIssue](ctx, g.client, "journal_issues", id, "*")
}

func (g *journalGateway) Create(ctx context.Context, issue *models.JournalIssue) error {
	return insertRow(ctx, g.client, "journal_issues", issue)
}

func (g *journalGateway) Delete(ctx context.Context, id uint) error {
	return deleteRow(ctx, g.client, "journal_issues", id)
}

type memberGateway struct {
	client *Client
}

func (g *memberGateway) List(ctx context.Context) ([]models.Member, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", `"order".asc`)
	return fetchRows[models.Member](ctx, g.client, "members", query)
}

func (g *memberGateway) GetByID(ctx context.Context, id uint) (models.Member, error) {
	return fetchOne[models.Member](ctx, g.client, "members", id, "*")
}

func (g *memberGateway) Create(ctx context.Context, member *models.Member) error {
	return insertRow(ctx, g.client, "members", member)
}

func (g *memberGateway) Update(ctx context.Context, member *models.Member) error {
	return updateRow(ctx, g.client, "members", member.ID, member)
}

func (g *memberGateway) Delete(ctx context.Context, id uint) error {
	return deleteRow(ctx, g.client, "members", id)
}

type tagGateway struct {
	client *Client
}

func (g *tagGateway) List(ctx context.Context) ([]models.Tag, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "name.asc")
	return fetchRows[models.Tag](ctx, g.client, "tags", query)
}

func (g *tagGateway) GetByName(ctx context.Context, name string) (models.Tag, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("name", "eq."+name)
	query.Set("limit", "1")

	rows, err := fetchRows[models.Tag](ctx, g.client, "tags", query)
	if err != nil {
		return models.Tag{}, err
	}
	if len(rows) == 0 {
		return models.Tag{}, gateway.ErrNotFound
	}
	return rows[0], nil
}

func (g *tagGateway) Create(ctx context.Context, tag *models.Tag) error {
	return insertRow(ctx, g.client, "tags", tag)
}

func (g *tagGateway) Delete(ctx context.Context, id uint) error {
	return deleteRow(ctx, g.client, "tags", id)
}

type registrationGateway struct {
	client *Client
}

func (g *registrationGateway) ListByEvent(ctx context.Context, eventID uint) ([]models.Registration, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("event_id", "eq."+strconv.FormatUint(uint64(eventID), 10))
	query.Set("order", "created_at.asc")
	return fetchRows[models.Registration](ctx, g.client, "registrations", query)
}

func (g *registrationGateway) Create(ctx context.Context, registration *models.Registration) error {
	return insertRow(ctx, g.client, "registrations", registration)
}

func (g *registrationGateway) UpdateStatus(ctx context.Context, id uint, status string) error {
	query := url.Values{}
	query.Set("id", "eq."+strconv.FormatUint(uint64(id), 10))

	payload := map[string]string{"status": status}
	var rows []models.Registration
	if err := g.client.do(ctx, http.MethodPatch, tablePrefix+"registrations", query, g.client.writeKey(), payload, &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return gateway.ErrNotFound
	}
	return nil
}

func (g *registrationGateway) Delete(ctx context.Context, id uint) error {
	return deleteRow(ctx, g.client, "registrations", id)
}

type contactGateway struct {
	client *Client
}

func (g *contactGateway) List(ctx context.Context) ([]models.Contact, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "created_at.desc")
	return fetchRows[models.Contact](ctx, g.client, "contacts", query)
}

func (g *contactGateway) Create(ctx context.Context, contact *models.Contact) error {
	return insertRow(ctx, g.client, "contacts", contact)
}

func (g *contactGateway) Delete(ctx context.Context, id uint) error {
	return deleteRow(ctx, g.client, "contacts", id)
}

// timeNow is swapped in tests.
var timeNow = time.Now

func nowParam() string {
	return timeNow().UTC().Format("2006-01-02T15:04:05Z")
}
