package models

import "time"

// Activity is a program activity participants can sign up for.
type Activity struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

// Registration is a sign-up for an activity, handled manually by staff.
type Registration struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Phone     string    `json:"phone"`
	Activity  string    `json:"activity"`
	Status    string    `gorm:"default:'received'" json:"status"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Course is a training/education offering with an application window.
type Course struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"not null" json:"name"`
	Description      string    `json:"description"`
	ApplicationStart time.Time `json:"application_start"`
	ApplicationEnd   time.Time `json:"application_end"`
	CourseStart      time.Time `json:"course_start"`
	InfoURL          string    `gorm:"column:info_url" json:"info_url"`
	CreatedAt        time.Time `json:"created_at"`
}

// InternTip is an internal lead about an opening, optionally assigned to
// specific candidates. Expired tips are swept by the scheduler.
type InternTip struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"not null" json:"title"`
	Description  string     `json:"description"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	CreatedBy    string     `json:"created_by"`
	Responsible  string     `json:"responsible"`
	Status       string     `gorm:"default:'available'" json:"status"`
	AssignedType string     `gorm:"default:'direct'" json:"assigned_type"`
	Candidates   string     `gorm:"type:jsonb;default:'[]'" json:"candidates"`
	CreatedAt    time.Time  `json:"created_at"`
}
