package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"union-site-backend/internal/gateway"
	"union-site-backend/internal/models"
	"union-site-backend/internal/store"
)

type fakeNews struct {
	items  map[uint]models.News
	nextID uint
}

func (f *fakeNews) List(ctx context.Context, page, perPage int) ([]models.News, error) {
	out := make([]models.News, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item)
	}
	if len(out) > perPage {
		out = out[:perPage]
	}
	return out, nil
}

func (f *fakeNews) Latest(ctx context.Context, limit int) ([]models.News, error) {
	return f.List(ctx, 1, limit)
}

func (f *fakeNews) GetByID(ctx context.Context, id uint) (models.News, error) {
	item, ok := f.items[id]
	if !ok {
		return models.News{}, gateway.ErrNotFound
	}
	return item, nil
}

func (f *fakeNews) Create(ctx context.Context, item *models.News) error {
	f.nextID++
	item.ID = f.nextID
	item.CreatedAt = time.Now()
	f.items[item.ID] = *item
	return nil
}

func (f *fakeNews) Update(ctx context.Context, item *models.News) error {
	if _, ok := f.items[item.ID]; !ok {
		return gateway.ErrNotFound
	}
	f.items[item.ID] = *item
	return nil
}

func (f *fakeNews) Delete(ctx context.Context, id uint) error {
	if _, ok := f.items[id]; !ok {
		return gateway.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeTags struct {
	tags   map[string]models.Tag
	nextID uint
}

func (f *fakeTags) List(ctx context.Context) ([]models.Tag, error) {
	out := make([]models.Tag, 0, len(f.tags))
	for _, tag := range f.tags {
		out = append(out, tag)
	}
	return out, nil
}

func (f *fakeTags) GetByName(ctx context.Context, name string) (models.Tag, error) {
	tag, ok := f.tags[name]
	if !ok {
		return models.Tag{}, gateway.ErrNotFound
	}
	return tag, nil
}

func (f *fakeTags) Create(ctx context.Context, tag *models.Tag) error {
	f.nextID++
	tag.ID = f.nextID
	f.tags[tag.Name] = *tag
	return nil
}

func (f *fakeTags) Delete(ctx context.Context, id uint) error { return nil }

type fakeEvents struct {
	items  map[uint]models.Event
	nextID uint
}

func (f *fakeEvents) List(ctx context.Context) ([]models.Event, error) {
	out := make([]models.Event, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeEvents) Upcoming(ctx context.Context, limit int) ([]models.Event, error) {
	return f.List(ctx)
}

func (f *fakeEvents) GetByID(ctx context.Context, id uint) (models.Event, error) {
	item, ok := f.items[id]
	if !ok {
		return models.Event{}, gateway.ErrNotFound
	}
	return item, nil
}

func (f *fakeEvents) Create(ctx context.Context, item *models.Event) error {
	f.nextID++
	item.ID = f.nextID
	f.items[item.ID] = *item
	return nil
}

func (f *fakeEvents) Update(ctx context.Context, item *models.Event) error {
	f.items[item.ID] = *item
	return nil
}

func (f *fakeEvents) Delete(ctx context.Context, id uint) error {
	delete(f.items, id)
	return nil
}

type fakeRegistrations struct {
	created []models.Registration
}

func (f *fakeRegistrations) ListByEvent(ctx context.Context, eventID uint) ([]models.Registration, error) {
	return f.created, nil
}

func (f *fakeRegistrations) Create(ctx context.Context, registration *models.Registration) error {
	registration.ID = uint(len(f.created) + 1)
	f.created = append(f.created, *registration)
	return nil
}

func (f *fakeRegistrations) UpdateStatus(ctx context.Context, id uint, status string) error {
	return nil
}

func (f *fakeRegistrations) Delete(ctx context.Context, id uint) error { return nil }

func newTestGateway() *gateway.Gateway {
	return &gateway.Gateway{
		News:          &fakeNews{items: make(map[uint]models.News)},
		Tags:          &fakeTags{tags: make(map[string]models.Tag)},
		Events:        &fakeEvents{items: make(map[uint]models.Event)},
		Registrations: &fakeRegistrations{},
	}
}

func TestNewsServiceCreate(t *testing.T) {
	state := store.New()
	svc := NewNewsService(newTestGateway(), state, nil)

	item, err := svc.Create(context.Background(), models.CreateNewsRequest{
		Title: "Launch",
		Content: models.BlockList{
			{Type: "paragraph", Data: map[string]interface{}{"text": "Hello"}},
		},
		TagNames: []string{"announcements", " ", "campus"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.ID == 0 {
		t.Error("created item has no id")
	}
	if len(item.Tags) != 2 {
		t.Errorf("resolved %d tags, want 2 (blank skipped)", len(item.Tags))
	}
	if _, ok := state.FindNewsByLink(item.Link()); !ok {
		t.Error("created item missing from page state")
	}
}

func TestNewsServiceCreateRejectsBadInput(t *testing.T) {
	svc := NewNewsService(newTestGateway(), store.New(), nil)

	if _, err := svc.Create(context.Background(), models.CreateNewsRequest{Title: "  "}); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("blank title err = %v, want ErrEmptyTitle", err)
	}

	_, err := svc.Create(context.Background(), models.CreateNewsRequest{
		Title:   "Broken",
		Content: models.BlockList{{Type: "marquee", Data: map[string]interface{}{}}},
	})
	if !errors.Is(err, ErrInvalidContent) {
		t.Errorf("unknown block err = %v, want ErrInvalidContent", err)
	}
}

func TestNewsServiceDeleteUpdatesState(t *testing.T) {
	state := store.New()
	svc := NewNewsService(newTestGateway(), state, nil)

	item, err := svc.Create(context.Background(), models.CreateNewsRequest{Title: "Gone soon"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(context.Background(), item.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := state.FindNewsByLink(item.Link()); ok {
		t.Error("deleted item still in page state")
	}
}

func TestEventServiceRegister(t *testing.T) {
	state := store.New()
	svc := NewEventService(newTestGateway(), state, nil)

	open, err := svc.Create(context.Background(), models.CreateEventRequest{
		Title:            "Open Day",
		RegistrationOpen: true,
		StartsAt:         "2026-09-15T18:00",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if open.StartsAt == nil || open.StartsAt.Hour() != 18 {
		t.Fatalf("StartsAt = %v", open.StartsAt)
	}

	reg, err := svc.Register(context.Background(), models.CreateRegistrationRequest{
		EventID:  open.ID,
		FullName: "Jamie Walker",
		Email:    "jamie@example.com",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.Status != "pending" {
		t.Errorf("Status = %q, want pending", reg.Status)
	}

	closed, err := svc.Create(context.Background(), models.CreateEventRequest{Title: "Closed Meetup"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Register(context.Background(), models.CreateRegistrationRequest{EventID: closed.ID, FullName: "X"}); !errors.Is(err, ErrRegistrationClosed) {
		t.Errorf("closed event err = %v, want ErrRegistrationClosed", err)
	}
}

func TestParseTimestamp(t *testing.T) {
	if ts, err := parseTimestamp("2026-09-15T18:00:00Z"); err != nil || ts == nil {
		t.Errorf("RFC 3339 rejected: %v", err)
	}
	if ts, err := parseTimestamp(""); err != nil || ts != nil {
		t.Errorf("empty input should be nil, nil; got %v, %v", ts, err)
	}
	if _, err := parseTimestamp("next tuesday"); !errors.Is(err, ErrInvalidTimestamp) {
		t.Errorf("garbage err = %v, want ErrInvalidTimestamp", err)
	}
}

func TestAuthServiceVerifyToken(t *testing.T) {
	const secret = "test-secret"
	svc := NewAuthService(&gateway.Gateway{}, store.New(), secret)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "u1",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	claims, err := svc.VerifyToken(signed)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims["role"] != "admin" {
		t.Errorf("role = %v", claims["role"])
	}

	wrong, _ := token.SignedString([]byte("other-secret"))
	if _, err := svc.VerifyToken(wrong); err == nil {
		t.Error("token signed with the wrong secret accepted")
	}
}

func TestEditorServiceSessions(t *testing.T) {
	svc := NewEditorService(time.Millisecond, 0)

	session, err := svc.Create("article", models.BlockList{
		{Type: "header", Data: map[string]interface{}{"text": "Draft", "level": "2"}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Get(session.ID)
	if err != nil || got.ID != session.ID {
		t.Fatalf("Get: %v", err)
	}

	if err := svc.Close(session.ID); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := svc.Get(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("closed session err = %v, want ErrSessionNotFound", err)
	}
}
