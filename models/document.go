package models

import "time"

// Document stores an uploaded file inline (bytea) together with its metadata.
// Listings must never select FileData; only the download endpoint reads it.
type Document struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Type      string    `json:"type"`
	Tags      string    `gorm:"type:jsonb;default:'[]'" json:"tags"`
	FileData  []byte    `gorm:"type:bytea" json:"-"`
	CreatedAt time.Time `gorm:"column:date" json:"date"`
}

// DocumentMeta is the listing projection of Document (no file payload).
type DocumentMeta struct {
	ID   uint      `json:"id"`
	Name string    `json:"name"`
	Type string    `json:"type"`
	Tags []string  `json:"tags"`
	Date time.Time `json:"date"`
}
