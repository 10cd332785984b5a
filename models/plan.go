package models

import "time"

// Plan is a participant's personal development plan. The plan body (meta,
// goals, activities, gamification) is an opaque jsonb document owned by the
// frontend; the backend only keys and timestamps it.
type Plan struct {
	ID            string    `gorm:"primaryKey;type:uuid" json:"id"`
	ParticipantID string    `gorm:"index;not null" json:"participant_id"`
	Data          string    `gorm:"type:jsonb;not null" json:"data"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
