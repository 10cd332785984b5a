package models

import "time"

// Reserved markers for synthetic competition-bonus rows. Aggregations over
// real performance must exclude these.
const (
	BonusProfile  = "BONUS"
	BonusExercise = "competition_bonus"
	BonusCategory = "Competition"
)

// PerformanceRecord is one scored attempt for an exercise ("PI result").
// Rows are append-only; nothing ever updates or deletes them.
type PerformanceRecord struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           string    `gorm:"index;not null" json:"user_id"`
	Exercise         string    `gorm:"index;not null" json:"exercise"`
	Profile          string    `gorm:"not null" json:"profile"`
	ResultValue      float64   `gorm:"column:result" json:"result"`
	PerformanceIndex float64   `gorm:"column:pi" json:"pi"`
	Category         string    `gorm:"default:'Other'" json:"category"`
	CreatedAt        time.Time `json:"created_at"`
}

// IsBonus reports whether the record is a synthetic competition-bonus entry.
func (r *PerformanceRecord) IsBonus() bool {
	return r.Profile == BonusProfile || r.Exercise == BonusExercise
}
