package store

import (
	"context"
	"errors"

	"url-shortener-api/internal/models"
)

// ErrNotFound is returned when no link matches a lookup.
var ErrNotFound = errors.New("link not found")

// LinkStore persists links. Implementations must be safe for concurrent use.
//
// Save does not check short-code uniqueness: saving a second link with an
// existing code makes FindByShortCode return the newer link.
type LinkStore interface {
	Save(ctx context.Context, link models.Link) (models.Link, error)
	FindByShortCode(ctx context.Context, code string) (models.Link, error)
	FindByID(ctx context.Context, id string) (models.Link, error)
	// FindAll makes no ordering guarantee.
	FindAll(ctx context.Context) ([]models.Link, error)
}
