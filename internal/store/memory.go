package store

import (
	"context"
	"sync"

	"url-shortener-api/internal/models"
)

// MemoryStore keeps links in process memory; everything is lost on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[string]models.Link
	byCode map[string]string
}

// compile-time assertion that we implement LinkStore
var _ LinkStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:   make(map[string]models.Link),
		byCode: make(map[string]string),
	}
}

func (s *MemoryStore) Save(_ context.Context, link models.Link) (models.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[link.ID] = link
	s.byCode[link.ShortCode] = link.ID
	return link, nil
}

func (s *MemoryStore) FindByShortCode(_ context.Context, code string) (models.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byCode[code]
	if !ok {
		return models.Link{}, ErrNotFound
	}
	return s.byID[id], nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (models.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	link, ok := s.byID[id]
	if !ok {
		return models.Link{}, ErrNotFound
	}
	return link, nil
}

func (s *MemoryStore) FindAll(_ context.Context) ([]models.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	links := make([]models.Link, 0, len(s.byID))
	for _, l := range s.byID {
		links = append(links, l)
	}
	return links, nil
}
