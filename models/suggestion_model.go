package models

import (
	"time"

	"github.com/google/uuid"
)

// Suggestions are write-once: created by students or anonymous visitors,
// read by the admin, never updated.
type Suggestion struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Name      string    `gorm:"size:255" json:"name,omitempty"`
	Mobile    string    `gorm:"size:20" json:"mobile,omitempty"`
	UserID    string    `gorm:"size:20" json:"userId,omitempty"`
	UserPhone string    `gorm:"size:20" json:"userPhone,omitempty"`

	SubmittedAt time.Time `json:"submittedAt"`
	CreatedAt   time.Time `json:"created_at"`
}
