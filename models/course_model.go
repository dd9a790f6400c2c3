package models

import (
	"time"
)

// Course documents are keyed by a human-chosen slug (the lowercased course
// code). The ID must never contain a path separator, screenshot object keys
// are derived from it.
type Course struct {
	ID             string   `gorm:"size:100;primary_key" json:"id"`
	Name           string   `gorm:"size:255;not null" json:"name"`
	CourseCode     string   `gorm:"size:50;not null" json:"courseCode"`
	Description    string   `gorm:"type:text" json:"description"`
	Instructor     string   `gorm:"size:255" json:"instructor"`
	BasePrice      float64  `gorm:"type:numeric(10,2);not null" json:"basePrice"`
	EarlyBirdPrice float64  `gorm:"type:numeric(10,2)" json:"earlyBirdPrice"`
	EarlyBirdSlots int      `json:"earlyBirdSlots"`
	TotalSlots     int      `json:"totalSlots"`
	Thumbnail      string   `gorm:"size:512" json:"thumbnail"`
	WhatsappLink   string   `gorm:"size:512" json:"whatsappLink"`
	Highlights     []string `gorm:"serializer:json" json:"highlights"`
	OfferText      string   `gorm:"type:text" json:"offerText"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
