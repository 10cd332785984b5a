package services

import (
	"log"
	"time"

	"jobtorget-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DefaultSessionPI is credited per saved workout when the client doesn't
// send an explicit PI value.
const DefaultSessionPI = 10

// TrainingService stores completed workouts (as batches of sets) and the
// reusable workout templates.
type TrainingService struct {
	DB *gorm.DB
}

func NewTrainingService(db *gorm.DB) *TrainingService {
	return &TrainingService{DB: db}
}

type sessionSet struct {
	ExerciseName string    `json:"exercise_name"`
	SetNumber    int       `json:"set_number"`
	Reps         int       `json:"reps"`
	Weight       float64   `json:"weight"`
	CreatedAt    time.Time `json:"created_at"`
	PI           float64   `json:"pi"`
}

// --- HTTP handlers ---

// GetSessions returns a user's completed sets grouped by workout name.
func (s *TrainingService) GetSessions(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var rows []models.TrainingSession
	if err := s.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&rows).Error; err != nil {
		log.Printf("❌ Fetching training sessions for %s failed: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch training sessions"})
	}

	grouped := make(map[string][]sessionSet)
	for _, row := range rows {
		grouped[row.WorkoutName] = append(grouped[row.WorkoutName], sessionSet{
			ExerciseName: row.ExerciseName,
			SetNumber:    row.SetNumber,
			Reps:         row.Reps,
			Weight:       row.Weight,
			CreatedAt:    row.CreatedAt,
			PI:           row.PI,
		})
	}
	return c.JSON(grouped)
}

// GetTemplates returns a user's workout templates grouped by workout name.
func (s *TrainingService) GetTemplates(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var rows []models.TrainingTemplate
	if err := s.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&rows).Error; err != nil {
		log.Printf("❌ Fetching templates for %s failed: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch templates"})
	}

	grouped := make(map[string][]fiber.Map)
	for _, row := range rows {
		grouped[row.WorkoutName] = append(grouped[row.WorkoutName], fiber.Map{
			"exercise_name": row.ExerciseName,
		})
	}
	return c.JSON(grouped)
}

// SaveSession inserts all sets of a completed workout in one transaction.
func (s *TrainingService) SaveSession(c *fiber.Ctx) error {
	type Req struct {
		UserID      string       `json:"userId"`
		WorkoutName string       `json:"workoutName"`
		Exercises   []sessionSet `json:"exercises"`
		PI          *float64     `json:"pi"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
	}
	if req.UserID == "" || req.WorkoutName == "" || len(req.Exercises) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "userId, workoutName and exercises are required"})
	}

	pi := float64(DefaultSessionPI)
	if req.PI != nil {
		pi = *req.PI
	}

	saved := make([]models.TrainingSession, 0, len(req.Exercises))
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, ex := range req.Exercises {
			createdAt := ex.CreatedAt
			if createdAt.IsZero() {
				createdAt = time.Now()
			}
			row := models.TrainingSession{
				UserID:       req.UserID,
				WorkoutName:  req.WorkoutName,
				ExerciseName: ex.ExerciseName,
				SetNumber:    ex.SetNumber,
				Reps:         ex.Reps,
				Weight:       ex.Weight,
				PI:           pi,
				CreatedAt:    createdAt,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			saved = append(saved, row)
		}
		return nil
	})
	if err != nil {
		log.Printf("❌ Saving training session failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save training session"})
	}
	return c.JSON(saved)
}

// SaveTemplate inserts a workout template (exercise names only).
func (s *TrainingService) SaveTemplate(c *fiber.Ctx) error {
	type Req struct {
		UserID      string   `json:"userId"`
		WorkoutName string   `json:"workoutName"`
		Exercises   []string `json:"exercises"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
	}
	if req.UserID == "" || req.WorkoutName == "" || len(req.Exercises) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "userId, workoutName and exercises are required"})
	}

	saved := make([]models.TrainingTemplate, 0, len(req.Exercises))
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, name := range req.Exercises {
			row := models.TrainingTemplate{
				UserID:       req.UserID,
				WorkoutName:  req.WorkoutName,
				ExerciseName: name,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			saved = append(saved, row)
		}
		return nil
	})
	if err != nil {
		log.Printf("❌ Saving template failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save template"})
	}
	return c.JSON(saved)
}
