package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLinkView(t *testing.T) {
	link := Link{
		ID:          "id-1",
		OriginalURL: "https://example.com",
		ShortCode:   "abc1234",
		CreatedAt:   time.Date(2025, 3, 4, 5, 6, 7, 891011121, time.FixedZone("X", 3600)),
	}

	v := link.View("http://sho.rt/")
	require.Equal(t, "http://sho.rt/abc1234", v.ShortURL)
	require.Equal(t, "2025-03-04T04:06:07Z", v.CreatedAt)
	require.Equal(t, link.ID, v.ID)
	require.Equal(t, link.OriginalURL, v.OriginalURL)
	require.Equal(t, link.ShortCode, v.ShortCode)
}
