package models

import "time"

// TrainingSession is one set within a completed workout. Sessions are saved
// as a batch of sets sharing user_id + workout_name.
type TrainingSession struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       string    `gorm:"index;not null" json:"user_id"`
	WorkoutName  string    `gorm:"not null" json:"workout_name"`
	ExerciseName string    `gorm:"not null" json:"exercise_name"`
	SetNumber    int       `json:"set_number"`
	Reps         int       `json:"reps"`
	Weight       float64   `json:"weight"`
	PI           float64   `gorm:"column:pi;default:0" json:"pi"`
	CreatedAt    time.Time `json:"created_at"`
}

// TrainingTemplate is a saved workout layout (exercise names only).
type TrainingTemplate struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       string    `gorm:"index;not null" json:"user_id"`
	WorkoutName  string    `gorm:"not null" json:"workout_name"`
	ExerciseName string    `gorm:"not null" json:"exercise_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// StrengthTest is a logged strength test result.
type StrengthTest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	TestKey   string    `gorm:"not null" json:"test_key"`
	Value     float64   `json:"value"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// CardioResult is a logged cardio test result.
type CardioResult struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	TestKey   string    `gorm:"not null" json:"test_key"`
	Value     float64   `json:"value"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// Challenge is a logged result for a standing exercise challenge.
type Challenge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	Exercise  string    `gorm:"not null" json:"exercise"`
	Value     float64   `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}
