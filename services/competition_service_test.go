package services

import (
	"testing"
	"time"

	"jobtorget-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestCompetitionService(t *testing.T, db *gorm.DB) *CompetitionService {
	t.Helper()
	svc := NewCompetitionService(db, newTestConfig())
	svc.pick = func(n int) int { return 0 }
	svc.now = func() time.Time {
		return time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC) // a Wednesday
	}
	return svc
}

func TestWeekKey(t *testing.T) {
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	wednesday := time.Date(2026, 8, 26, 23, 59, 0, 0, time.UTC)
	sunday := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	nextMonday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-08-24", WeekKey(monday))
	assert.Equal(t, "2026-08-24", WeekKey(wednesday))
	assert.Equal(t, "2026-08-24", WeekKey(sunday))
	assert.Equal(t, "2026-08-31", WeekKey(nextMonday))
}

func TestGetOrCreateWeeklyCompetitionIsStable(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCompetitionService(t, db)

	seedResult(t, db, "alice", "pushups", 40)
	seedResult(t, db, "bob", "pushups", 30)

	first, err := svc.GetOrCreateWeeklyCompetition("alice")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-24", first.WeekKey)
	assert.Equal(t, "pushups", first.Exercise)
	assert.Equal(t, "alice", first.UserA)
	assert.Equal(t, "bob", first.UserB)
	assert.False(t, first.BonusAwarded)

	// Repeat for the requester returns the same row
	again, err := svc.GetOrCreateWeeklyCompetition("alice")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	// The partner also resolves to the same competition
	partners, err := svc.GetOrCreateWeeklyCompetition("bob")
	require.NoError(t, err)
	assert.Equal(t, first.ID, partners.ID)

	var comps int64
	require.NoError(t, db.Model(&models.WeeklyCompetition{}).Count(&comps).Error)
	assert.EqualValues(t, 1, comps)

	var members int64
	require.NoError(t, db.Model(&models.CompetitionMember{}).Count(&members).Error)
	assert.EqualValues(t, 2, members)
}

func TestCompetitionMemberUniquePerWeek(t *testing.T) {
	db := newTestDB(t)

	err := db.Create(&models.CompetitionMember{WeekKey: "2026-08-24", UserID: "alice", CompetitionID: "c1"}).Error
	require.NoError(t, err)

	err = db.Create(&models.CompetitionMember{WeekKey: "2026-08-24", UserID: "alice", CompetitionID: "c2"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// Same user, next week is fine
	err = db.Create(&models.CompetitionMember{WeekKey: "2026-08-31", UserID: "alice", CompetitionID: "c3"}).Error
	assert.NoError(t, err)
}

func TestGetOrCreateNoPartner(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCompetitionService(t, db)

	seedResult(t, db, "alice", "pushups", 40)

	_, err := svc.GetOrCreateWeeklyCompetition("alice")
	assert.ErrorIs(t, err, ErrNoPartner)
}

func TestGetOrCreateNoSharedExercise(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCompetitionService(t, db)

	seedResult(t, db, "alice", "pushups", 40)
	seedResult(t, db, "bob", "squats", 30)

	_, err := svc.GetOrCreateWeeklyCompetition("alice")
	assert.ErrorIs(t, err, ErrNoSharedExercise)
}

func TestFairnessCeilingExcludesExercise(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCompetitionService(t, db)

	// Both share pushups and squats, but alice is over the ceiling on pushups,
	// so squats is the only eligible exercise.
	seedResult(t, db, "alice", "pushups", 70)
	seedResult(t, db, "alice", "pushups", 50)
	seedResult(t, db, "alice", "squats", 60)
	seedResult(t, db, "bob", "pushups", 30)
	seedResult(t, db, "bob", "squats", 40)

	comp, err := svc.GetOrCreateWeeklyCompetition("alice")
	require.NoError(t, err)
	assert.Equal(t, "squats", comp.Exercise)
}

func TestFairnessCeilingIgnoresBonusAndZeroRows(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCompetitionService(t, db)

	seedResult(t, db, "alice", "pushups", 90)
	seedResult(t, db, "bob", "pushups", 90)

	// Bonus rows would push both over the ceiling if they counted
	now := time.Now()
	require.NoError(t, db.Create(&models.PerformanceRecord{
		UserID: "alice", Exercise: models.BonusExercise, Profile: models.BonusProfile,
		PerformanceIndex: 50, Category: models.BonusCategory, CreatedAt: now,
	}).Error)
	require.NoError(t, db.Create(&models.PerformanceRecord{
		UserID: "bob", Exercise: "pushups", Profile: "M",
		PerformanceIndex: 0, CreatedAt: now,
	}).Error)

	comp, err := svc.GetOrCreateWeeklyCompetition("alice")
	require.NoError(t, err)
	assert.Equal(t, "pushups", comp.Exercise)
}

func TestAwardBonusHappyPath(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCompetitionService(t, db)

	seedResult(t, db, "alice", "pushups", 60)
	seedResult(t, db, "bob", "pushups", 50)

	comp, err := svc.GetOrCreateWeeklyCompetition("alice")
	require.NoError(t, err)

	require.NoError(t, svc.AwardBonus(comp.ID))

	var reloaded models.WeeklyCompetition
	require.NoError(t, db.First(&reloaded, "id = ?", comp.ID).Error)
	assert.True(t, reloaded.BonusAwarded)

	// Both participants got exactly one bonus row
	var bonus []models.PerformanceRecord
	require.NoError(t, db.Where("profile = ?", models.BonusProfile).Order("user_id").Find(&bonus).Error)
	require.Len(t, bonus, 2)
	assert.Equal(t, "alice", bonus[0].UserID)
	assert.Equal(t, "bob", bonus[1].UserID)
	for _, rec := range bonus {
		assert.Equal(t, models.BonusExercise, rec.Exercise)
		assert.Equal(t, models.BonusCategory, rec.Category)
		assert.EqualValues(t, 25, rec.PerformanceIndex)
	}

	// alice outscored bob
	var rivalry models.RivalryRecord
	require.NoError(t, db.First(&rivalry, "user_id = ? AND rival_id = ?", "alice", "bob").Error)
	assert.Equal(t, 1, rivalry.Wins)
	assert.Equal(t, 0, rivalry.Losses)

	rivalry = models.RivalryRecord{}
	require.NoError(t, db.First(&rivalry, "user_id = ? AND rival_id = ?", "bob", "alice").Error)
	assert.Equal(t, 0, rivalry.Wins)
	assert.Equal(t, 1, rivalry.Losses)
}

func TestAwardBonusIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCompetitionService(t, db)

	seedResult(t, db, "alice", "pushups", 60)
	seedResult(t, db, "bob", "pushups", 50)

	comp, err := svc.GetOrCreateWeeklyCompetition("alice")
	require.NoError(t, err)

	require.NoError(t, svc.AwardBonus(comp.ID))
	assert.ErrorIs(t, svc.AwardBonus(comp.ID), ErrBonusAlreadyAwarded)

	var bonus int64
	require.NoError(t, db.Model(&models.PerformanceRecord{}).
		Where("profile = ?", models.BonusProfile).Count(&bonus).Error)
	assert.EqualValues(t, 2, bonus)

	var rivalry models.RivalryRecord
	require.NoError(t, db.First(&rivalry, "user_id = ? AND rival_id = ?", "alice", "bob").Error)
	assert.Equal(t, 1, rivalry.Wins)
}

func TestAwardBonusGoalNotMet(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCompetitionService(t, db)

	seedResult(t, db, "alice", "pushups", 50)
	seedResult(t, db, "bob", "pushups", 40)

	comp, err := svc.GetOrCreateWeeklyCompetition("alice")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.AwardBonus(comp.ID), ErrGoalNotMet)

	// The flip rolled back, so a later attempt can still succeed
	var reloaded models.WeeklyCompetition
	require.NoError(t, db.First(&reloaded, "id = ?", comp.ID).Error)
	assert.False(t, reloaded.BonusAwarded)

	var bonus int64
	require.NoError(t, db.Model(&models.PerformanceRecord{}).
		Where("profile = ?", models.BonusProfile).Count(&bonus).Error)
	assert.EqualValues(t, 0, bonus)

	// Crossing the goal afterwards makes the award go through
	seedResult(t, db, "alice", "pushups", 20)
	assert.NoError(t, svc.AwardBonus(comp.ID))
}

func TestAwardBonusNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCompetitionService(t, db)

	assert.ErrorIs(t, svc.AwardBonus("no-such-id"), ErrCompetitionNotFound)
}

func TestAwardBonusDraw(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCompetitionService(t, db)

	seedResult(t, db, "alice", "pushups", 55)
	seedResult(t, db, "bob", "pushups", 55)

	comp, err := svc.GetOrCreateWeeklyCompetition("alice")
	require.NoError(t, err)
	require.NoError(t, svc.AwardBonus(comp.ID))

	for _, pair := range [][2]string{{"alice", "bob"}, {"bob", "alice"}} {
		var rivalry models.RivalryRecord
		require.NoError(t, db.First(&rivalry, "user_id = ? AND rival_id = ?", pair[0], pair[1]).Error)
		assert.Equal(t, 1, rivalry.Draws)
		assert.Equal(t, 0, rivalry.Wins)
		assert.Equal(t, 0, rivalry.Losses)
	}
}

func TestRivalryMatchesAccumulateAcrossWeeks(t *testing.T) {
	db := newTestDB(t)
	svc := newTestCompetitionService(t, db)

	seedResult(t, db, "alice", "pushups", 40)
	seedResult(t, db, "bob", "pushups", 30)

	_, err := svc.GetOrCreateWeeklyCompetition("alice")
	require.NoError(t, err)

	// Next week, same pair
	svc.now = func() time.Time {
		return time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC)
	}
	second, err := svc.GetOrCreateWeeklyCompetition("alice")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-31", second.WeekKey)

	for _, pair := range [][2]string{{"alice", "bob"}, {"bob", "alice"}} {
		var rivalry models.RivalryRecord
		require.NoError(t, db.First(&rivalry, "user_id = ? AND rival_id = ?", pair[0], pair[1]).Error)
		assert.Equal(t, 2, rivalry.Matches)
	}

	var rivalries int64
	require.NoError(t, db.Model(&models.RivalryRecord{}).Count(&rivalries).Error)
	assert.EqualValues(t, 2, rivalries)
}
