package models

import "time"

// WeeklyCompetition pairs two users on one shared exercise for one calendar
// week. WeekKey is the ISO date of the Monday that starts the week (UTC).
// The row is created once by the matcher and only ever mutated by the bonus
// awarder flipping BonusAwarded.
type WeeklyCompetition struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	WeekKey      string    `gorm:"column:week;index;not null" json:"week_key"`
	Exercise     string    `gorm:"not null" json:"exercise"`
	UserA        string    `gorm:"index;not null" json:"user_a"`
	UserB        string    `gorm:"index;not null" json:"user_b"`
	Deadline     time.Time `json:"deadline"`
	LockedUntil  time.Time `json:"locked_until"`
	BonusAwarded bool      `gorm:"default:false" json:"bonus_awarded"`
	Goal         float64   `json:"goal"`
	BonusPI      float64   `gorm:"column:bonus_pi" json:"bonus_pi"`
	CreatedAt    time.Time `json:"created_at"`
}

// CompetitionMember marks a user as taken for a given week. The unique index
// on (week, user_id) is the storage-level guarantee that a user appears in at
// most one competition per week. Handlers never check this in memory, they
// insert and handle the conflict.
type CompetitionMember struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	WeekKey       string `gorm:"column:week;uniqueIndex:idx_member_week;not null" json:"week_key"`
	UserID        string `gorm:"uniqueIndex:idx_member_week;not null" json:"user_id"`
	CompetitionID string `gorm:"index;not null" json:"competition_id"`
}

// RivalryRecord counts head-to-head history from UserID's perspective toward
// RivalID. Every completed pairing upserts both directions, so Matches stays
// symmetric while Wins/Losses/Draws are bookkept per direction.
type RivalryRecord struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"uniqueIndex:idx_rival_pair;not null" json:"user_id"`
	RivalID   string    `gorm:"uniqueIndex:idx_rival_pair;not null" json:"rival_id"`
	Matches   int       `gorm:"default:0" json:"matches"`
	Wins      int       `gorm:"default:0" json:"wins"`
	Losses    int       `gorm:"default:0" json:"losses"`
	Draws     int       `gorm:"default:0" json:"draws"`
	LastMatch time.Time `json:"last_match"`
}
