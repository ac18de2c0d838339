package models

import (
	"time"

	"github.com/google/uuid"
)

type Podcast struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"size:2000" json:"description"`
	CreatorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"creator_id"`
	CreatedDate time.Time `gorm:"autoCreateTime" json:"created_date"`

	Episodes []Episode `gorm:"constraint:OnDelete:CASCADE" json:"episodes,omitempty"`
}
