// Package repository implements the persistence surface directly against
// Postgres for self-hosted deployments, mirroring the hosted-backend
// gateway behavior.
package repository

import (
	"errors"

	"gorm.io/gorm"

	"union-site-backend/internal/gateway"
)

// NewGateway assembles the full persistence surface over one database
// handle. Auth stays on the hosted service and storage on local disk, so
// both are passed in.
func NewGateway(db *gorm.DB, auth gateway.AuthGateway, storage gateway.StorageGateway) *gateway.Gateway {
	return &gateway.Gateway{
		News:          NewNewsRepository(db),
		Events:        NewEventRepository(db),
		Journal:       NewJournalRepository(db),
		Members:       NewMemberRepository(db),
		Tags:          NewTagRepository(db),
		Registrations: NewRegistrationRepository(db),
		Contacts:      NewContactRepository(db),
		Auth:          auth,
		Storage:       storage,
	}
}

// translate maps the driver's not-found onto the shared gateway sentinel
// so callers never branch on gorm errors.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return gateway.ErrNotFound
	}
	return err
}
