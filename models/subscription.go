package models

import (
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	PodcastID      uint      `gorm:"not null;index" json:"podcast_id"`
	SubscribedDate time.Time `gorm:"autoCreateTime" json:"subscribed_date"`

	Podcast *Podcast `json:"podcast,omitempty"`
}
