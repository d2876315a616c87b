package database

import (
	"path/filepath"
	"testing"
	"time"

	"url-shortener-api/internal/config"
	"url-shortener-api/internal/logger"
	"url-shortener-api/internal/models"

	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteMigrates(t *testing.T) {
	cfg := &config.Config{DBDriver: config.DriverSQLite, DBDSN: filepath.Join(t.TempDir(), "links.db")}

	db, err := Open(cfg, logger.Discard())
	require.NoError(t, err)

	link := models.Link{ID: "id-1", OriginalURL: "https://example.com", ShortCode: "abc1234", CreatedAt: time.Now()}
	require.NoError(t, db.Create(&link).Error)

	var count int64
	require.NoError(t, db.Model(&models.Link{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestOpen_RejectsMemoryDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: config.DriverMemory}, logger.Discard())
	require.Error(t, err)
}
