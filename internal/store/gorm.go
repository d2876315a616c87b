package store

import (
	"context"
	"errors"
	"fmt"

	"url-shortener-api/internal/models"

	"gorm.io/gorm"
)

// GormStore is a LinkStore backed by any gorm dialect (SQLite or Postgres).
type GormStore struct {
	db *gorm.DB
}

var _ LinkStore = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Save(ctx context.Context, link models.Link) (models.Link, error) {
	if err := s.db.WithContext(ctx).Save(&link).Error; err != nil {
		return models.Link{}, fmt.Errorf("save link %s: %w", link.ID, err)
	}
	return link, nil
}

// FindByShortCode returns the most recently created link for code.
func (s *GormStore) FindByShortCode(ctx context.Context, code string) (models.Link, error) {
	var link models.Link
	err := s.db.WithContext(ctx).
		Where("short_code = ?", code).
		Order("created_at desc").
		First(&link).Error
	if err != nil {
		return models.Link{}, translate(err, "find link by short code")
	}
	return link, nil
}

func (s *GormStore) FindByID(ctx context.Context, id string) (models.Link, error) {
	var link models.Link
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&link).Error; err != nil {
		return models.Link{}, translate(err, "find link by id")
	}
	return link, nil
}

func (s *GormStore) FindAll(ctx context.Context) ([]models.Link, error) {
	var links []models.Link
	if err := s.db.WithContext(ctx).Order("created_at asc").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	return links, nil
}

func translate(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
