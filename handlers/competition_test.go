package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobtorget-backend/config"
	"jobtorget-backend/models"
	"jobtorget-backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newCompetitionApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.PerformanceRecord{},
		&models.WeeklyCompetition{},
		&models.CompetitionMember{},
		&models.RivalryRecord{},
	))

	for _, rec := range []models.PerformanceRecord{
		{UserID: "alice", Exercise: "pushups", Profile: "M", PerformanceIndex: 60},
		{UserID: "bob", Exercise: "pushups", Profile: "M", PerformanceIndex: 50},
	} {
		require.NoError(t, db.Create(&rec).Error)
	}

	cfg := &config.Config{CompetitionGoal: 100, CompetitionBonusPI: 25}
	app := fiber.New()
	SetupCompetitionRoutes(app, services.NewCompetitionService(db, cfg))
	return app
}

func TestCompetitionRoutePaths(t *testing.T) {
	app := newCompetitionApp(t)

	req := httptest.NewRequest(http.MethodGet, "/competition/week/alice", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var comp models.WeeklyCompetition
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&comp))
	require.NotEmpty(t, comp.ID)
	assert.Equal(t, "pushups", comp.Exercise)

	req = httptest.NewRequest(http.MethodPost, "/competition/"+comp.ID+"/award-bonus", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var awarded struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&awarded))
	assert.True(t, awarded.Success)

	// A replay on the same competition is a no-op rejection
	req = httptest.NewRequest(http.MethodPost, "/competition/"+comp.ID+"/award-bonus", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/competition/rivals/alice", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var rivals []models.RivalryRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rivals))
	require.Len(t, rivals, 1)
	assert.Equal(t, "bob", rivals[0].RivalID)
	assert.Equal(t, 1, rivals[0].Wins)
}
