package services

import (
	"log"
	"time"

	"jobtorget-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PerformanceService is the result ledger: append-only PI records plus the
// aggregates the competition matcher and awarder consult.
type PerformanceService struct {
	DB *gorm.DB
}

func NewPerformanceService(db *gorm.DB) *PerformanceService {
	return &PerformanceService{DB: db}
}

// sumPerformanceIndex totals a user's PI for one exercise, excluding
// synthetic bonus rows. Shared with the competition transaction, so it takes
// the handle to run on.
func sumPerformanceIndex(db *gorm.DB, userID, exercise string) (float64, error) {
	var total float64
	err := db.Model(&models.PerformanceRecord{}).
		Where("user_id = ? AND exercise = ? AND profile <> ? AND exercise <> ?",
			userID, exercise, models.BonusProfile, models.BonusExercise).
		Select("COALESCE(SUM(pi), 0)").
		Scan(&total).Error
	return total, err
}

// SumPerformanceIndex is the exported form used outside transactions.
func (s *PerformanceService) SumPerformanceIndex(userID, exercise string) (float64, error) {
	return sumPerformanceIndex(s.DB, userID, exercise)
}

// InsertRecord appends one PI result. Category defaults to "Other".
func (s *PerformanceService) InsertRecord(rec *models.PerformanceRecord) error {
	if rec.Category == "" {
		rec.Category = "Other"
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	return s.DB.Create(rec).Error
}

// performanceRow is a PI record joined with the owner's profile for listings.
type performanceRow struct {
	ID               uint      `json:"id"`
	UserID           string    `json:"user_id"`
	Exercise         string    `json:"exercise"`
	Profile          string    `json:"profile"`
	ResultValue      float64   `gorm:"column:result" json:"result"`
	PerformanceIndex float64   `gorm:"column:pi" json:"pi"`
	Category         string    `json:"category"`
	CreatedAt        time.Time `json:"created_at"`
	Name             string    `json:"name"`
	Avatar           string    `json:"avatar"`
}

const performanceListQuery = `
	SELECT pr.id, pr.user_id, pr.exercise, pr.profile, pr.result, pr.pi,
	       pr.category, pr.created_at,
	       COALESCE(up.name, '') AS name, COALESCE(up.avatar, '') AS avatar
	FROM performance_records pr
	LEFT JOIN user_profiles up ON up.user_id = pr.user_id`

// --- HTTP handlers ---

// GetAllResults lists every PI result with the owner's name and avatar.
func (s *PerformanceService) GetAllResults(c *fiber.Ctx) error {
	var rows []performanceRow
	if err := s.DB.Raw(performanceListQuery + " ORDER BY pr.created_at DESC").Scan(&rows).Error; err != nil {
		log.Printf("❌ Fetching all PI results failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not fetch PI results"})
	}
	return c.JSON(rows)
}

// GetUserResults lists one user's PI results, newest first.
func (s *PerformanceService) GetUserResults(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var rows []performanceRow
	err := s.DB.Raw(performanceListQuery+" WHERE pr.user_id = ? ORDER BY pr.created_at DESC", userID).
		Scan(&rows).Error
	if err != nil {
		log.Printf("❌ Fetching PI results for %s failed: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not fetch PI results"})
	}
	return c.JSON(rows)
}

// CreateResult validates and appends a new PI result.
func (s *PerformanceService) CreateResult(c *fiber.Ctx) error {
	type Req struct {
		UserID   string   `json:"user_id"`
		Exercise string   `json:"exercise"`
		Profile  string   `json:"profile"`
		Result   *float64 `json:"result"`
		PI       *float64 `json:"pi"`
		Category string   `json:"category"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid JSON", "cause": err.Error()})
	}
	if req.UserID == "" || req.Exercise == "" || req.Profile == "" || req.Result == nil || req.PI == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "user_id, exercise, profile, result and pi are required"})
	}

	rec := models.PerformanceRecord{
		UserID:           req.UserID,
		Exercise:         req.Exercise,
		Profile:          req.Profile,
		ResultValue:      *req.Result,
		PerformanceIndex: *req.PI,
		Category:         req.Category,
	}
	if err := s.InsertRecord(&rec); err != nil {
		log.Printf("❌ Saving PI result failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not save PI result"})
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}
