package models

import (
	"strings"
	"time"
)

// Link maps a short code to the original URL it redirects to.
// Links are immutable once saved.
type Link struct {
	ID          string    `json:"id" gorm:"primaryKey;size:64"`
	OriginalURL string    `json:"originalUrl" gorm:"column:original_url;type:text;not null"`
	ShortCode   string    `json:"shortCode" gorm:"column:short_code;size:32;not null;index"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at;not null;index"`
}

// TableName specifies the table name for Link Model
func (Link) TableName() string {
	return "links"
}

// LinkView is the public JSON shape of a link, used by every HTTP response
// and stream event.
type LinkView struct {
	ID          string `json:"id"`
	OriginalURL string `json:"originalUrl"`
	ShortCode   string `json:"shortCode"`
	ShortURL    string `json:"shortUrl"`
	CreatedAt   string `json:"createdAt"`
}

// View renders the link with its short URL under baseURL and a
// second-precision RFC 3339 timestamp.
func (l Link) View(baseURL string) LinkView {
	return LinkView{
		ID:          l.ID,
		OriginalURL: l.OriginalURL,
		ShortCode:   l.ShortCode,
		ShortURL:    strings.TrimRight(baseURL, "/") + "/" + l.ShortCode,
		CreatedAt:   l.CreatedAt.UTC().Format(time.RFC3339),
	}
}
