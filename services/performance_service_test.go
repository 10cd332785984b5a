package services

import (
	"testing"

	"jobtorget-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumPerformanceIndexExcludesBonusRows(t *testing.T) {
	db := newTestDB(t)
	svc := NewPerformanceService(db)

	seedResult(t, db, "alice", "pushups", 40)
	seedResult(t, db, "alice", "pushups", 20)
	seedResult(t, db, "alice", "squats", 99)
	seedResult(t, db, "bob", "pushups", 70)

	// A bonus row must never count toward the exercise total
	require.NoError(t, svc.InsertRecord(&models.PerformanceRecord{
		UserID:           "alice",
		Exercise:         models.BonusExercise,
		Profile:          models.BonusProfile,
		PerformanceIndex: 25,
		Category:         models.BonusCategory,
	}))

	total, err := svc.SumPerformanceIndex("alice", "pushups")
	require.NoError(t, err)
	assert.EqualValues(t, 60, total)

	total, err = svc.SumPerformanceIndex("alice", "rowing")
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestInsertRecordDefaultsCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewPerformanceService(db)

	rec := models.PerformanceRecord{
		UserID:           "alice",
		Exercise:         "pushups",
		Profile:          "M",
		ResultValue:      30,
		PerformanceIndex: 30,
	}
	require.NoError(t, svc.InsertRecord(&rec))
	assert.Equal(t, "Other", rec.Category)
	assert.False(t, rec.CreatedAt.IsZero())
}
