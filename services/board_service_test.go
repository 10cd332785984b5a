package services

import (
	"testing"
	"time"

	"jobtorget-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpireOverdue(t *testing.T) {
	db := newTestDB(t)
	svc := NewBoardService(db)

	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 14)

	require.NoError(t, db.Create(&models.Job{
		Title: "Lagerarbetare", Slug: "lagerarbetare",
		Status: models.JobStatusOpen, EndDate: past,
	}).Error)
	require.NoError(t, db.Create(&models.Job{
		Title: "Butikssäljare", Slug: "butikssaljare",
		Status: models.JobStatusOpen, EndDate: future,
	}).Error)

	require.NoError(t, db.Create(&models.InternTip{
		Title: "Praktik på kommunen", Status: "available", ExpiresAt: &past, Candidates: "[]",
	}).Error)
	require.NoError(t, db.Create(&models.InternTip{
		Title: "Praktik i butik", Status: "available", ExpiresAt: &future, Candidates: "[]",
	}).Error)
	require.NoError(t, db.Create(&models.InternTip{
		Title: "Tillsvidare", Status: "available", Candidates: "[]",
	}).Error)

	require.NoError(t, svc.ExpireOverdue(now))

	var jobs []models.Job
	require.NoError(t, db.Order("end_date ASC").Find(&jobs).Error)
	require.Len(t, jobs, 2)
	assert.Equal(t, models.JobStatusExpired, jobs[0].Status)
	assert.Equal(t, models.JobStatusOpen, jobs[1].Status)

	var expired int64
	require.NoError(t, db.Model(&models.InternTip{}).Where("status = ?", "expired").Count(&expired).Error)
	assert.EqualValues(t, 1, expired)

	// Tips without an expiry never get swept
	var open models.InternTip
	require.NoError(t, db.First(&open, "title = ?", "Tillsvidare").Error)
	assert.Equal(t, "available", open.Status)

	// The sweep is a no-op when nothing is overdue
	require.NoError(t, svc.ExpireOverdue(now))
}
