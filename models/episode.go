package models

import "time"

type Episode struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PodcastID   uint      `gorm:"not null;index" json:"podcast_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"size:2000" json:"description"`
	ReleaseDate time.Time `json:"release_date"`
	Duration    int       `json:"duration"` // minutes
	// Counters are bumped only by the Details handler, never decremented.
	PlayCount     int    `gorm:"default:0" json:"play_count"`
	NumberOfViews int    `gorm:"default:0" json:"number_of_views"`
	AudioURL      string `gorm:"size:500" json:"audio_url,omitempty"`

	// Comments are not persisted here; they live in the Redis comment store
	// and get attached to the detail response at render time.
	Podcast *Podcast `json:"podcast,omitempty"`
}
