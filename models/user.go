package models

import "time"

// Account statuses. New registrations stay pending until a coach approves.
const (
	UserStatusPending = "pending"
	UserStatusActive  = "active"
)

// Roles
const (
	RoleCoach       = "coach"
	RoleParticipant = "participant"
)

// User is an authentication account. Profile data lives in UserProfile.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"not null" json:"role"`
	Status       string    `gorm:"default:'pending'" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserProfile holds the participant-facing profile, keyed by the external
// user id used throughout the training data. Upserted as a whole.
type UserProfile struct {
	ID     uint     `gorm:"primaryKey" json:"id"`
	UserID string   `gorm:"uniqueIndex;not null" json:"user_id"`
	Name   string   `gorm:"not null" json:"name"`
	Age    int      `json:"age"`
	Gender string   `json:"gender"`
	Height float64  `json:"height"`
	Weight float64  `json:"weight"`
	BMI    *float64 `gorm:"column:bmi" json:"bmi,omitempty"`
	Avatar string   `json:"avatar"`
}
