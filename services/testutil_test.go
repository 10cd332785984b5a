package services

import (
	"testing"

	"jobtorget-backend/config"
	"jobtorget-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens an isolated in-memory database. The pool is pinned to one
// connection so every query sees the same memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.PerformanceRecord{},
		&models.WeeklyCompetition{},
		&models.CompetitionMember{},
		&models.RivalryRecord{},
		&models.Job{},
		&models.InternTip{},
	))
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpiryMins:      60,
		CompetitionGoal:    100,
		CompetitionBonusPI: 25,
	}
}

func seedResult(t *testing.T, db *gorm.DB, userID, exercise string, pi float64) {
	t.Helper()
	svc := NewPerformanceService(db)
	require.NoError(t, svc.InsertRecord(&models.PerformanceRecord{
		UserID:           userID,
		Exercise:         exercise,
		Profile:          "M",
		ResultValue:      pi,
		PerformanceIndex: pi,
	}))
}
