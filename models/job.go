package models

import "time"

// Job posting statuses. The expiry scheduler flips open postings to expired
// once their end date passes.
const (
	JobStatusOpen    = "open"
	JobStatusExpired = "expired"
)

// Job is an external job posting shown on the board.
type Job struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Slug        string    `gorm:"index" json:"slug"`
	Link        string    `json:"link"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Status      string    `gorm:"default:'open'" json:"status"`
	EndDate     time.Time `json:"end_date"`
	CreatedAt   time.Time `json:"created_at"`
}
