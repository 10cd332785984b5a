package services

import (
	"log"
	"time"

	"jobtorget-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// VisitService counts site visits, deduplicated to one per IP per day.
type VisitService struct {
	DB *gorm.DB
}

func NewVisitService(db *gorm.DB) *VisitService {
	return &VisitService{DB: db}
}

// --- HTTP handlers ---

// RecordVisit logs a visit unless the same IP already visited today.
func (s *VisitService) RecordVisit(c *fiber.Ctx) error {
	ip := c.IP()
	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var count int64
	err := s.DB.Model(&models.Visit{}).
		Where("ip_address = ? AND visited_at >= ?", ip, dayStart).
		Count(&count).Error
	if err != nil {
		log.Printf("❌ Checking visit for %s failed: %v", ip, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not record visit"})
	}
	if count > 0 {
		return c.JSON(fiber.Map{"recorded": false})
	}

	visit := models.Visit{IPAddress: ip, VisitedAt: now}
	if err := s.DB.Create(&visit).Error; err != nil {
		log.Printf("❌ Saving visit failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not record visit"})
	}
	return c.JSON(fiber.Map{"recorded": true})
}

// GetWeeklyCount returns the number of visits in the last 7 days.
func (s *VisitService) GetWeeklyCount(c *fiber.Ctx) error {
	since := time.Now().UTC().AddDate(0, 0, -7)

	var count int64
	err := s.DB.Model(&models.Visit{}).Where("visited_at >= ?", since).Count(&count).Error
	if err != nil {
		log.Printf("❌ Counting weekly visits failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not count visits"})
	}
	return c.JSON(fiber.Map{"count": count})
}

// GetDailyStats returns per-day visit counts for the last 6 months.
func (s *VisitService) GetDailyStats(c *fiber.Ctx) error {
	since := time.Now().UTC().AddDate(0, -6, 0)

	type dayCount struct {
		Day   string `json:"day"`
		Count int64  `json:"count"`
	}
	var rows []dayCount
	err := s.DB.Model(&models.Visit{}).
		Select("DATE(visited_at) AS day, COUNT(*) AS count").
		Where("visited_at >= ?", since).
		Group("DATE(visited_at)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		log.Printf("❌ Fetching visit stats failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch visit stats"})
	}
	if rows == nil {
		rows = []dayCount{}
	}
	return c.JSON(rows)
}
