package services

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"jobtorget-backend/models"
	"jobtorget-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileService manages participant profiles and avatar uploads. Avatars go
// to object storage when configured, otherwise to the local uploads dir
// served under /uploads.
type ProfileService struct {
	DB    *gorm.DB
	Store *utils.ObjectStore
}

func NewProfileService(db *gorm.DB, store *utils.ObjectStore) *ProfileService {
	return &ProfileService{DB: db, Store: store}
}

// --- HTTP handlers ---

// GetProfile fetches one profile by external user id.
func (s *ProfileService) GetProfile(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var profile models.UserProfile
	if err := s.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "profile not found"})
		}
		log.Printf("❌ Fetching profile %s failed: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch profile"})
	}
	return c.JSON(profile)
}

// UpsertProfile creates or replaces a profile keyed on user_id.
func (s *ProfileService) UpsertProfile(c *fiber.Ctx) error {
	type Req struct {
		UserID string   `json:"userId"`
		Name   string   `json:"name"`
		Age    int      `json:"age"`
		Gender string   `json:"gender"`
		Height float64  `json:"height"`
		Weight float64  `json:"weight"`
		BMI    *float64 `json:"bmi"`
		Avatar string   `json:"avatar"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
	}
	if req.UserID == "" || req.Name == "" || req.Age == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "userId, name and age are required"})
	}

	profile := models.UserProfile{
		UserID: req.UserID,
		Name:   req.Name,
		Age:    req.Age,
		Gender: req.Gender,
		Height: req.Height,
		Weight: req.Weight,
		BMI:    req.BMI,
		Avatar: req.Avatar,
	}
	err := s.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "age", "gender", "height", "weight", "bmi", "avatar",
		}),
	}).Create(&profile).Error
	if err != nil {
		log.Printf("❌ Saving profile %s failed: %v", req.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save profile"})
	}

	var saved models.UserProfile
	if err := s.DB.Where("user_id = ?", req.UserID).First(&saved).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch profile"})
	}
	return c.JSON(saved)
}

// UploadAvatar stores an avatar image and persists its URL on the profile.
func (s *ProfileService) UploadAvatar(c *fiber.Ctx) error {
	userID := c.Params("userId")

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no avatar uploaded"})
	}

	key := fmt.Sprintf("avatars/%s%s", uuid.NewString(), filepath.Ext(fileHeader.Filename))

	var url string
	if s.Store != nil {
		url, err = s.Store.Upload(c.Context(), fileHeader, key)
		if err != nil {
			log.Printf("❌ Avatar upload to object storage failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not upload avatar"})
		}
	} else {
		dest := utils.GetUploadPath(key)
		if err := utils.SaveFile(fileHeader, dest); err != nil {
			log.Printf("❌ Avatar upload to disk failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not upload avatar"})
		}
		url = "/uploads/" + key
	}

	res := s.DB.Model(&models.UserProfile{}).Where("user_id = ?", userID).Update("avatar", url)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save avatar"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "profile not found"})
	}
	return c.JSON(fiber.Map{"avatar": url})
}
