package models

import (
	"database/sql"
	"strings"
	"time"
)

type ContentPost struct {
	ID           int64          `db:"id" json:"id"`
	Title        string         `db:"title" json:"title"`
	Caption      string         `db:"caption" json:"caption"`
	Hashtags     string         `db:"hashtags" json:"hashtags"`
	ImageURL     string         `db:"image_url" json:"image_url"`
	ImagePrompt  string         `db:"image_prompt" json:"image_prompt"`
	MediaPath    string         `db:"media_path" json:"media_path"`
	ContentType  string         `db:"content_type" json:"content_type"` // image, reel
	Platforms    string         `db:"platforms" json:"platforms"`       // comma-separated platform names
	Status       string         `db:"status" json:"status"`
	ScheduledFor sql.NullTime   `db:"scheduled_for" json:"scheduled_for"`
	PublishedAt  sql.NullTime   `db:"published_at" json:"published_at"`
	ErrorMessage sql.NullString `db:"error_message" json:"error_message"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

const (
	PostStatusDraft      = "draft"
	PostStatusScheduled  = "scheduled"
	PostStatusPublishing = "publishing"
	PostStatusPublished  = "published"
	PostStatusFailed     = "failed"
)

const (
	ContentTypeImage = "image"
	ContentTypeReel  = "reel"
)

// DefaultPlatforms is the platform list assigned to auto-generated posts.
const DefaultPlatforms = "instagram,telegram"

// PlatformList splits the stored platform string into trimmed, lowercased
// entries. Empty entries are dropped.
func (p *ContentPost) PlatformList() []string {
	var out []string
	for _, name := range strings.Split(p.Platforms, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

func (p *ContentPost) SetPlatforms(names []string) {
	p.Platforms = strings.Join(names, ",")
}

// MediaURL resolves the asset to publish: the dedicated media path for
// reels/videos when present, otherwise the image URL.
func (p *ContentPost) MediaURL() string {
	if p.MediaPath != "" {
		return p.MediaPath
	}
	return p.ImageURL
}
