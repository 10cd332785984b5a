package models

import "time"

// Visit is one deduplicated site visit (max one per IP per day).
type Visit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	IPAddress string    `gorm:"index;not null" json:"ip_address"`
	VisitedAt time.Time `json:"visited_at"`
}
