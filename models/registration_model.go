package models

import (
	"time"
)

// Registration rows are keyed by a generated uuid, except bundle purchases
// which use the deterministic "{userId}_bundle" id so a student can hold at
// most one bundle registration.
//
// Confirmed transitions false -> true exactly once and never reverts; only
// the admin confirmation handler writes it.
type Registration struct {
	ID            string  `gorm:"size:120;primary_key" json:"id"`
	UserID        string  `gorm:"size:20;index" json:"userId"`
	CourseID      string  `gorm:"size:100;not null;index" json:"courseId"`
	CourseName    string  `gorm:"size:255" json:"courseName"`
	Name          string  `gorm:"size:255;not null" json:"name"`
	Email         string  `gorm:"size:255;not null" json:"email"`
	Phone         string  `gorm:"size:20;not null;index" json:"phone"`
	College       string  `gorm:"size:255;not null" json:"college"`
	ScreenshotURL string  `gorm:"size:512;not null" json:"screenshotUrl"`
	PriceOffered  float64 `gorm:"type:numeric(10,2)" json:"priceOffered"`
	AmountPaid    float64 `gorm:"type:numeric(10,2)" json:"amountPaid"`
	PaymentStatus string  `gorm:"size:30;not null" json:"paymentStatus"`
	Confirmed     bool    `gorm:"default:false" json:"confirmed"`
	IsFromBundle  bool    `gorm:"default:false" json:"isFromBundle"`
	ReceiptURL    *string `gorm:"size:512" json:"receiptUrl,omitempty"`
	ReceiptNumber *string `gorm:"size:20;uniqueIndex" json:"receiptNumber,omitempty"`

	RegisteredAt time.Time `json:"registeredAt"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
