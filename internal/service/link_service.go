package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"url-shortener-api/internal/apperror"
	"url-shortener-api/internal/cache"
	"url-shortener-api/internal/idgen"
	"url-shortener-api/internal/models"
	"url-shortener-api/internal/store"

	"github.com/sirupsen/logrus"
)

// LinkService creates and resolves links, keeping two bounded caches (by
// short code and by original URL) in front of the store. Whenever a link is
// cached it is written to both caches in the same call.
//
// Deduplication is cache-scoped: creating the same URL twice returns the same
// link only while the first one is still in the URL cache.
type LinkService struct {
	store  store.LinkStore
	ids    idgen.Generator
	byCode *cache.BoundedCache[models.Link]
	byURL  *cache.BoundedCache[models.Link]
	now    func() time.Time
	log    *logrus.Entry
}

type Option func(*LinkService)

func WithGenerator(g idgen.Generator) Option {
	return func(s *LinkService) { s.ids = g }
}

func WithClock(now func() time.Time) Option {
	return func(s *LinkService) { s.now = now }
}

func WithLogger(log *logrus.Entry) Option {
	return func(s *LinkService) { s.log = log }
}

// NewLinkService builds a service whose caches each hold cacheCapacity links.
func NewLinkService(st store.LinkStore, cacheCapacity int, opts ...Option) *LinkService {
	s := &LinkService{
		store:  st,
		ids:    idgen.NewRandom(),
		byCode: cache.NewBoundedCache[models.Link](cacheCapacity),
		byURL:  cache.NewBoundedCache[models.Link](cacheCapacity),
		now:    time.Now,
		log:    logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create shortens originalURL. A URL still present in the URL cache returns
// the cached link unchanged; otherwise a new link is generated and saved.
// Short-code collisions are not checked.
func (s *LinkService) Create(ctx context.Context, originalURL string) (models.Link, error) {
	originalURL = strings.TrimSpace(originalURL)
	if err := ValidateURL(originalURL); err != nil {
		return models.Link{}, err
	}

	if link, ok := s.byURL.Get(originalURL); ok {
		s.log.WithField("short_code", link.ShortCode).Debug("Create served from cache")
		return link, nil
	}

	id, err := s.ids.NewID()
	if err != nil {
		return models.Link{}, apperror.Unexpected(err)
	}
	code, err := s.ids.NewShortCode()
	if err != nil {
		return models.Link{}, apperror.Unexpected(err)
	}

	link := models.Link{
		ID:          id,
		OriginalURL: originalURL,
		ShortCode:   code,
		CreatedAt:   s.now().UTC(),
	}
	saved, err := s.store.Save(ctx, link)
	if err != nil {
		return models.Link{}, apperror.Unexpected(err)
	}

	s.remember(saved)
	s.log.WithFields(logrus.Fields{
		"id":         saved.ID,
		"short_code": saved.ShortCode,
	}).Info("Link created")
	return saved, nil
}

// Resolve returns the link for shortCode, reading the store only on a cache
// miss. A store hit populates both caches.
func (s *LinkService) Resolve(ctx context.Context, shortCode string) (models.Link, error) {
	if link, ok := s.byCode.Get(shortCode); ok {
		return link, nil
	}

	link, err := s.store.FindByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Link{}, apperror.NotFound("Link not found")
		}
		return models.Link{}, apperror.Unexpected(err)
	}

	s.remember(link)
	return link, nil
}

// Get looks a link up by its internal id. Ids are never cached.
func (s *LinkService) Get(ctx context.Context, id string) (models.Link, error) {
	link, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Link{}, apperror.NotFound("Link not found")
		}
		return models.Link{}, apperror.Unexpected(err)
	}
	return link, nil
}

// List returns every stored link in store order.
func (s *LinkService) List(ctx context.Context) ([]models.Link, error) {
	links, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	return links, nil
}

// CacheStats reports how many links each cache currently holds.
func (s *LinkService) CacheStats() (byCode, byURL int) {
	return s.byCode.Len(), s.byURL.Len()
}

func (s *LinkService) remember(link models.Link) {
	s.byCode.Set(link.ShortCode, link)
	s.byURL.Set(link.OriginalURL, link)
}

// ValidateURL accepts absolute URLs with both a scheme and a host name; an
// authority holding only a port is rejected.
func ValidateURL(raw string) error {
	if raw == "" {
		return apperror.InvalidInput("URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return apperror.InvalidInput(fmt.Sprintf("Invalid URL: %q", raw))
	}
	return nil
}
