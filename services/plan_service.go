package services

import (
	"encoding/json"
	"errors"
	"log"

	"jobtorget-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlanService stores personal development plans. The plan body is an opaque
// jsonb document, the backend only validates it parses and keys it by
// participant.
type PlanService struct {
	DB *gorm.DB
}

func NewPlanService(db *gorm.DB) *PlanService {
	return &PlanService{DB: db}
}

type planPayload struct {
	ParticipantID string          `json:"participant_id"`
	Data          json.RawMessage `json:"data"`
}

func (p planPayload) validate() error {
	if p.ParticipantID == "" {
		return errors.New("participant_id is required")
	}
	if len(p.Data) == 0 || !json.Valid(p.Data) {
		return errors.New("data must be a JSON document")
	}
	return nil
}

// --- HTTP handlers ---

func (s *PlanService) GetPlansForParticipant(c *fiber.Ctx) error {
	participantID := c.Params("participantId")

	var plans []models.Plan
	if err := s.DB.Where("participant_id = ?", participantID).Order("updated_at DESC").Find(&plans).Error; err != nil {
		log.Printf("❌ Fetching plans for %s failed: %v", participantID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch plans"})
	}
	if plans == nil {
		plans = []models.Plan{}
	}
	return c.JSON(plans)
}

func (s *PlanService) GetPlan(c *fiber.Ctx) error {
	id := c.Params("id")

	var plan models.Plan
	if err := s.DB.First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "plan not found"})
		}
		log.Printf("❌ Fetching plan %s failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch plan"})
	}
	return c.JSON(plan)
}

func (s *PlanService) CreatePlan(c *fiber.Ctx) error {
	var req planPayload
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
	}
	if err := req.validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	plan := models.Plan{
		ID:            uuid.NewString(),
		ParticipantID: req.ParticipantID,
		Data:          string(req.Data),
	}
	if err := s.DB.Create(&plan).Error; err != nil {
		log.Printf("❌ Saving plan failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save plan"})
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

func (s *PlanService) UpdatePlan(c *fiber.Ctx) error {
	id := c.Params("id")

	type Req struct {
		Data json.RawMessage `json:"data"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
	}
	if len(req.Data) == 0 || !json.Valid(req.Data) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "data must be a JSON document"})
	}

	res := s.DB.Model(&models.Plan{}).Where("id = ?", id).Update("data", string(req.Data))
	if res.Error != nil {
		log.Printf("❌ Updating plan %s failed: %v", id, res.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not update plan"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "plan not found"})
	}

	var plan models.Plan
	if err := s.DB.First(&plan, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch plan"})
	}
	return c.JSON(plan)
}

func (s *PlanService) DeletePlan(c *fiber.Ctx) error {
	id := c.Params("id")

	res := s.DB.Delete(&models.Plan{}, "id = ?", id)
	if res.Error != nil {
		log.Printf("❌ Deleting plan %s failed: %v", id, res.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not delete plan"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "plan not found"})
	}
	return c.JSON(fiber.Map{"success": true})
}
