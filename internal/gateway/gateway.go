package gateway

import (
	"context"
	"errors"

	"union-site-backend/internal/models"
)

// ErrNotFound is returned by every gateway when the requested record does
// not exist, regardless of which backend served the call.
var ErrNotFound = errors.New("record not found")

// NewsGateway is the persistence surface for news articles.
type NewsGateway interface {
	List(ctx context.Context, page, perPage int) ([]models.News, error)
	Latest(ctx context.Context, limit int) ([]models.News, error)
	GetByID(ctx context.Context, id uint) (models.News, error)
	Create(ctx context.Context, item *models.News) error
	Update(ctx context.Context, item *models.News) error
	Delete(ctx context.Context, id uint) error
}

type EventGateway interface {
	List(ctx context.Context) ([]models.Event, error)
	Upcoming(ctx context.Context, limit int) ([]models.Event, error)
	GetByID(ctx context.Context, id uint) (models.Event, error)
	Create(ctx context.Context, item *models.Event) error
	Update(ctx context.Context, item *models.Event) error
	Delete(ctx context.Context, id uint) error
}

type JournalGateway interface {
	List(ctx context.Context) ([]models.JournalIssue, error)
	GetByID(ctx context.Context, id uint) (models.JournalIssue, error)
	Create(ctx context.Context, issue *models.JournalIssue) error
	Delete(ctx context.Context, id uint) error
}

type MemberGateway interface {
	List(ctx context.Context) ([]models.Member, error)
	GetByID(ctx context.Context, id uint) (models.Member, error)
	Create(ctx context.Context, member *models.Member) error
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, id uint) error
}

type TagGateway interface {
	List(ctx context.Context) ([]models.Tag, error)
	GetByName(ctx context.Context, name string) (models.Tag, error)
	Create(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id uint) error
}

type RegistrationGateway interface {
	ListByEvent(ctx context.Context, eventID uint) ([]models.Registration, error)
	Create(ctx context.Context, registration *models.Registration) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
}

type ContactGateway interface {
	List(ctx context.Context) ([]models.Contact, error)
	Create(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, id uint) error
}

// AuthGateway wraps the hosted auth service. Sessions are short-lived and
// refreshed with the refresh token.
type AuthGateway interface {
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*models.Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

// StorageGateway manages uploaded files (covers, member photos, journal
// PDFs). Upload returns the public URL of the stored object.
type StorageGateway interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, bucket, path string) error
	Move(ctx context.Context, bucket, from, to string) error
}

// Gateway bundles one implementation of every persistence surface. The
// application wires either the hosted-backend client or the direct
// Postgres repositories behind it.
type Gateway struct {
	News          NewsGateway
	Events        EventGateway
	Journal       JournalGateway
	Members       MemberGateway
	Tags          TagGateway
	Registrations RegistrationGateway
	Contacts      ContactGateway
	Auth          AuthGateway
	Storage       StorageGateway
}
