package models

import "time"

// Workplace is a practice/internship site with one or more departments.
type Workplace struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"not null" json:"name"`
	Departments []Department `gorm:"foreignKey:WorkplaceID" json:"departments,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Department belongs to a workplace. Capacity is a free-form map of placement
// category to headcount, stored as jsonb.
type Department struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	WorkplaceID uint       `gorm:"index;not null" json:"workplace_id"`
	Name        string     `gorm:"not null" json:"name"`
	Capacity    string     `gorm:"type:jsonb;default:'{}'" json:"capacity"`
	Schedules   []Schedule `gorm:"foreignKey:DepartmentID" json:"schedules,omitempty"`
}

// Schedule places a person at a department for a set of weekdays.
type Schedule struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	DepartmentID uint   `gorm:"index;not null" json:"department_id"`
	Person       string `json:"person"`
	Category     string `json:"category"`
	SelectedDays string `gorm:"type:jsonb;default:'[]'" json:"selected_days"`
	HoursPerDay  float64 `json:"hours_per_day"`
}
