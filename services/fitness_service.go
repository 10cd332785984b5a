package services

import (
	"log"
	"time"

	"jobtorget-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FitnessService logs strength tests, cardio tests and exercise challenges.
// These are plain per-user append-only logs next to the PI ledger.
type FitnessService struct {
	DB *gorm.DB
}

func NewFitnessService(db *gorm.DB) *FitnessService {
	return &FitnessService{DB: db}
}

// --- strength tests ---

func (s *FitnessService) GetStrengthTests(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var rows []models.StrengthTest
	if err := s.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&rows).Error; err != nil {
		log.Printf("❌ Fetching strength tests for %s failed: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch strength tests"})
	}
	if rows == nil {
		rows = []models.StrengthTest{}
	}
	return c.JSON(rows)
}

func (s *FitnessService) CreateStrengthTest(c *fiber.Ctx) error {
	type Req struct {
		UserID  string   `json:"user_id"`
		TestKey string   `json:"test_key"`
		Value   *float64 `json:"value"`
		Score   *float64 `json:"score"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
	}
	if req.UserID == "" || req.TestKey == "" || req.Value == nil || req.Score == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id, test_key, value and score are required"})
	}

	row := models.StrengthTest{UserID: req.UserID, TestKey: req.TestKey, Value: *req.Value, Score: *req.Score}
	if err := s.DB.Create(&row).Error; err != nil {
		log.Printf("❌ Saving strength test failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save strength test"})
	}
	return c.JSON(row)
}

// --- cardio tests ---

func (s *FitnessService) GetCardioResults(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var rows []models.CardioResult
	if err := s.DB.Where("user_id = ?", userID).Order("created_at ASC").Find(&rows).Error; err != nil {
		log.Printf("❌ Fetching cardio results for %s failed: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch cardio results"})
	}
	// always an array, even when empty
	if rows == nil {
		rows = []models.CardioResult{}
	}
	return c.JSON(rows)
}

func (s *FitnessService) CreateCardioResult(c *fiber.Ctx) error {
	type Req struct {
		UserID  string     `json:"userId"`
		TestKey string     `json:"testKey"`
		Value   *float64   `json:"value"`
		Score   *float64   `json:"score"`
		Date    *time.Time `json:"date"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
	}
	if req.UserID == "" || req.TestKey == "" || req.Value == nil || req.Score == nil || req.Date == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "userId, testKey, value, score and date are required"})
	}

	row := models.CardioResult{
		UserID:    req.UserID,
		TestKey:   req.TestKey,
		Value:     *req.Value,
		Score:     *req.Score,
		CreatedAt: *req.Date,
	}
	if err := s.DB.Create(&row).Error; err != nil {
		log.Printf("❌ Saving cardio result failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save cardio result"})
	}
	return c.JSON(row)
}

// --- challenges ---

func (s *FitnessService) GetChallenges(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var rows []models.Challenge
	if err := s.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&rows).Error; err != nil {
		log.Printf("❌ Fetching challenges for %s failed: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch challenges"})
	}
	if rows == nil {
		rows = []models.Challenge{}
	}
	return c.JSON(rows)
}

func (s *FitnessService) CreateChallenge(c *fiber.Ctx) error {
	type Req struct {
		UserID   string   `json:"user_id"`
		Exercise string   `json:"exercise"`
		Value    *float64 `json:"value"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
	}
	if req.UserID == "" || req.Exercise == "" || req.Value == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id, exercise and value are required"})
	}

	row := models.Challenge{UserID: req.UserID, Exercise: req.Exercise, Value: *req.Value}
	if err := s.DB.Create(&row).Error; err != nil {
		log.Printf("❌ Saving challenge failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save challenge"})
	}
	return c.Status(fiber.StatusCreated).JSON(row)
}
