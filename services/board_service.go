package services

import (
	"encoding/json"
	"log"
	"time"

	"jobtorget-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// BoardService backs the public boards: job postings, activities with
// registrations, courses and internal tips.
type BoardService struct {
	DB *gorm.DB
}

func NewBoardService(db *gorm.DB) *BoardService {
	return &BoardService{DB: db}
}

// --- jobs ---

func (s *BoardService) GetAllJobs(c *fiber.Ctx) error {
	var jobs []models.Job
	if err := s.DB.Order("end_date ASC").Find(&jobs).Error; err != nil {
		log.Printf("❌ Fetching jobs failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch jobs"})
	}
	return c.JSON(jobs)
}

func (s *BoardService) CreateJob(c *fiber.Ctx) error {
	type Req struct {
		Title       string    `json:"title"`
		Link        string    `json:"link"`
		Description string    `json:"description"`
		Category    string    `json:"category"`
		EndDate     time.Time `json:"end_date"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}

	job := models.Job{
		Title:       req.Title,
		Slug:        slug.Make(req.Title),
		Link:        req.Link,
		Description: req.Description,
		Category:    req.Category,
		Status:      models.JobStatusOpen,
		EndDate:     req.EndDate,
	}
	if err := s.DB.Create(&job).Error; err != nil {
		log.Printf("❌ Saving job failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save job"})
	}
	return c.JSON(job)
}

func (s *BoardService) DeleteJob(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := s.DB.Delete(&models.Job{}, "id = ?", id).Error; err != nil {
		log.Printf("❌ Deleting job %s failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not delete job"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// ExpireOverdue flips open postings past their end date to expired and marks
// tips past their expiry as expired. Called by the scheduler.
func (s *BoardService) ExpireOverdue(now time.Time) error {
	res := s.DB.Model(&models.Job{}).
		Where("status = ? AND end_date < ?", models.JobStatusOpen, now).
		Update("status", models.JobStatusExpired)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("🧹 Expired %d overdue job postings", res.RowsAffected)
	}

	res = s.DB.Model(&models.InternTip{}).
		Where("status <> ? AND expires_at IS NOT NULL AND expires_at < ?", "expired", now).
		Update("status", "expired")
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("🧹 Expired %d overdue intern tips", res.RowsAffected)
	}
	return nil
}

// --- activities ---

func (s *BoardService) GetAllActivities(c *fiber.Ctx) error {
	var activities []models.Activity
	if err := s.DB.Order("created_at ASC").Find(&activities).Error; err != nil {
		log.Printf("❌ Fetching activities failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch activities"})
	}
	return c.JSON(activities)
}

func (s *BoardService) CreateActivity(c *fiber.Ctx) error {
	type Req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}

	activity := models.Activity{Title: req.Title, Description: req.Description, Category: req.Category}
	if err := s.DB.Create(&activity).Error; err != nil {
		log.Printf("❌ Saving activity failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save activity"})
	}
	return c.JSON(activity)
}

func (s *BoardService) DeleteActivity(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := s.DB.Delete(&models.Activity{}, "id = ?", id).Error; err != nil {
		log.Printf("❌ Deleting activity %s failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not delete activity"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// --- registrations ---

func (s *BoardService) GetAllRegistrations(c *fiber.Ctx) error {
	var regs []models.Registration
	if err := s.DB.Order("created_at ASC").Find(&regs).Error; err != nil {
		log.Printf("❌ Fetching registrations failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch registrations"})
	}
	return c.JSON(regs)
}

func (s *BoardService) CreateRegistration(c *fiber.Ctx) error {
	type Req struct {
		Name     string `json:"name"`
		Phone    string `json:"phone"`
		Activity string `json:"activity"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	reg := models.Registration{Name: req.Name, Phone: req.Phone, Activity: req.Activity}
	if err := s.DB.Create(&reg).Error; err != nil {
		log.Printf("❌ Saving registration failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save registration"})
	}
	return c.JSON(reg)
}

func (s *BoardService) DeleteRegistration(c *fiber.Ctx) error {
	id := c.Params("id")

	res := s.DB.Delete(&models.Registration{}, "id = ?", id)
	if res.Error != nil {
		log.Printf("❌ Deleting registration %s failed: %v", id, res.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not delete registration"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "registration not found"})
	}
	return c.JSON(fiber.Map{"success": true})
}

func (s *BoardService) UpdateRegistrationStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	type Req struct {
		Status string `json:"status"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
	}

	return s.updateRegistrationField(c, id, "status", req.Status)
}

func (s *BoardService) UpdateRegistrationComment(c *fiber.Ctx) error {
	id := c.Params("id")

	type Req struct {
		Comment string `json:"comment"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
	}

	return s.updateRegistrationField(c, id, "comment", req.Comment)
}

func (s *BoardService) updateRegistrationField(c *fiber.Ctx, id, column, value string) error {
	res := s.DB.Model(&models.Registration{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		log.Printf("❌ Updating registration %s failed: %v", id, res.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not update registration"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "registration not found"})
	}

	var reg models.Registration
	if err := s.DB.First(&reg, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch registration"})
	}
	return c.JSON(reg)
}

// --- courses ---

func (s *BoardService) GetAllCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := s.DB.Order("application_start ASC").Find(&courses).Error; err != nil {
		log.Printf("❌ Fetching courses failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch courses"})
	}
	return c.JSON(courses)
}

func (s *BoardService) CreateCourse(c *fiber.Ctx) error {
	var course models.Course
	if err := c.BodyParser(&course); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
	}
	if course.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}
	course.ID = 0

	if err := s.DB.Create(&course).Error; err != nil {
		log.Printf("❌ Saving course failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save course"})
	}
	return c.JSON(course)
}

func (s *BoardService) DeleteCourse(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := s.DB.Delete(&models.Course{}, "id = ?", id).Error; err != nil {
		log.Printf("❌ Deleting course %s failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not delete course"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// --- intern tips ---

func (s *BoardService) GetAllTips(c *fiber.Ctx) error {
	var tips []models.InternTip
	if err := s.DB.Order("created_at DESC").Find(&tips).Error; err != nil {
		log.Printf("❌ Fetching tips failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch tips"})
	}
	return c.JSON(tips)
}

func (s *BoardService) CreateTip(c *fiber.Ctx) error {
	type Req struct {
		Title        string     `json:"title"`
		Description  string     `json:"description"`
		ExpiresAt    *time.Time `json:"expiresAt"`
		CreatedBy    string     `json:"createdBy"`
		Responsible  string     `json:"responsible"`
		Status       string     `json:"status"`
		AssignedType string     `json:"assignedType"`
		Candidates   []string   `json:"candidates"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}

	if req.Status == "" {
		req.Status = "available"
	}
	if req.AssignedType == "" {
		req.AssignedType = "direct"
	}
	candidates, _ := json.Marshal(req.Candidates)
	if req.Candidates == nil {
		candidates = []byte("[]")
	}

	tip := models.InternTip{
		Title:        req.Title,
		Description:  req.Description,
		ExpiresAt:    req.ExpiresAt,
		CreatedBy:    req.CreatedBy,
		Responsible:  req.Responsible,
		Status:       req.Status,
		AssignedType: req.AssignedType,
		Candidates:   string(candidates),
	}
	if err := s.DB.Create(&tip).Error; err != nil {
		log.Printf("❌ Saving tip failed: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not save tip"})
	}
	return c.Status(fiber.StatusCreated).JSON(tip)
}

// UpdateTip applies a partial update. Absent fields keep their values.
func (s *BoardService) UpdateTip(c *fiber.Ctx) error {
	id := c.Params("id")

	type Req struct {
		Title        *string    `json:"title"`
		Description  *string    `json:"description"`
		ExpiresAt    *time.Time `json:"expiresAt"`
		CreatedBy    *string    `json:"createdBy"`
		Responsible  *string    `json:"responsible"`
		Status       *string    `json:"status"`
		AssignedType *string    `json:"assignedType"`
		Candidates   []string   `json:"candidates"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ExpiresAt != nil {
		updates["expires_at"] = *req.ExpiresAt
	}
	if req.CreatedBy != nil {
		updates["created_by"] = *req.CreatedBy
	}
	if req.Responsible != nil {
		updates["responsible"] = *req.Responsible
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.AssignedType != nil {
		updates["assigned_type"] = *req.AssignedType
	}
	if req.Candidates != nil {
		candidates, _ := json.Marshal(req.Candidates)
		updates["candidates"] = string(candidates)
	}

	if len(updates) > 0 {
		res := s.DB.Model(&models.InternTip{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			log.Printf("❌ Updating tip %s failed: %v", id, res.Error)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not update tip"})
		}
		if res.RowsAffected == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tip not found"})
		}
	}

	var tip models.InternTip
	if err := s.DB.First(&tip, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tip not found"})
	}
	return c.JSON(tip)
}

func (s *BoardService) DeleteTip(c *fiber.Ctx) error {
	id := c.Params("id")

	res := s.DB.Delete(&models.InternTip{}, "id = ?", id)
	if res.Error != nil {
		log.Printf("❌ Deleting tip %s failed: %v", id, res.Error)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not delete tip"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "tip not found"})
	}
	return c.JSON(fiber.Map{"success": true})
}
