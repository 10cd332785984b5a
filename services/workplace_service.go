package services

import (
	"encoding/json"
	"errors"
	"log"

	"jobtorget-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// WorkplaceService manages practice sites with their departments and
// placement schedules. Writes replace the whole nested tree in one
// transaction, which is how the admin UI edits them.
type WorkplaceService struct {
	DB *gorm.DB
}

func NewWorkplaceService(db *gorm.DB) *WorkplaceService {
	return &WorkplaceService{DB: db}
}

type scheduleInput struct {
	Person       string   `json:"person"`
	Category     string   `json:"category"`
	SelectedDays []string `json:"selected_days"`
	HoursPerDay  float64  `json:"hours_per_day"`
}

type departmentInput struct {
	Name      string          `json:"name"`
	Capacity  map[string]int  `json:"capacity"`
	Schedules []scheduleInput `json:"schedules"`
}

type workplaceInput struct {
	Name        string            `json:"name"`
	Departments []departmentInput `json:"departments"`
}

// --- HTTP handlers ---

func (s *WorkplaceService) GetAllWorkplaces(c *fiber.Ctx) error {
	var workplaces []models.Workplace
	err := s.DB.Preload("Departments.Schedules").Preload("Departments").
		Order("name ASC").Find(&workplaces).Error
	if err != nil {
		log.Printf("❌ Fetching workplaces failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch workplaces"})
	}
	if workplaces == nil {
		workplaces = []models.Workplace{}
	}
	return c.JSON(workplaces)
}

func (s *WorkplaceService) GetWorkplace(c *fiber.Ctx) error {
	id := c.Params("id")

	var workplace models.Workplace
	err := s.DB.Preload("Departments.Schedules").Preload("Departments").
		First(&workplace, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "workplace not found"})
		}
		log.Printf("❌ Fetching workplace %s failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch workplace"})
	}
	return c.JSON(workplace)
}

func (s *WorkplaceService) CreateWorkplace(c *fiber.Ctx) error {
	var req workplaceInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	workplace, err := s.buildTree(req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := s.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(workplace).Error
	}); err != nil {
		log.Printf("❌ Saving workplace failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save workplace"})
	}
	return c.Status(fiber.StatusCreated).JSON(workplace)
}

// UpdateWorkplace replaces the workplace and its whole subtree.
func (s *WorkplaceService) UpdateWorkplace(c *fiber.Ctx) error {
	id := c.Params("id")

	var req workplaceInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	var existing models.Workplace
	if err := s.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "workplace not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch workplace"})
	}

	workplace, err := s.buildTree(req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	workplace.ID = existing.ID
	workplace.CreatedAt = existing.CreatedAt

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.deleteSubtree(tx, existing.ID); err != nil {
			return err
		}
		return tx.Save(workplace).Error
	})
	if err != nil {
		log.Printf("❌ Updating workplace %s failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not update workplace"})
	}
	return c.JSON(workplace)
}

func (s *WorkplaceService) DeleteWorkplace(c *fiber.Ctx) error {
	id := c.Params("id")

	var existing models.Workplace
	if err := s.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "workplace not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch workplace"})
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.deleteSubtree(tx, existing.ID); err != nil {
			return err
		}
		return tx.Delete(&models.Workplace{}, "id = ?", existing.ID).Error
	})
	if err != nil {
		log.Printf("❌ Deleting workplace %s failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not delete workplace"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// --- schedule handlers ---

// findDepartment resolves a department and checks it belongs to the workplace
// in the path.
func (s *WorkplaceService) findDepartment(workplaceID, departmentID string) (*models.Department, error) {
	var dept models.Department
	err := s.DB.First(&dept, "id = ? AND workplace_id = ?", departmentID, workplaceID).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (s *WorkplaceService) CreateSchedule(c *fiber.Ctx) error {
	dept, err := s.findDepartment(c.Params("workplaceId"), c.Params("departmentId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "department not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch department"})
	}

	var req scheduleInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
	}
	if req.Person == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "person is required"})
	}

	days := req.SelectedDays
	if days == nil {
		days = []string{}
	}
	daysJSON, _ := json.Marshal(days)

	schedule := models.Schedule{
		DepartmentID: dept.ID,
		Person:       req.Person,
		Category:     req.Category,
		SelectedDays: string(daysJSON),
		HoursPerDay:  req.HoursPerDay,
	}
	if err := s.DB.Create(&schedule).Error; err != nil {
		log.Printf("❌ Saving schedule failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not save schedule"})
	}
	return c.Status(fiber.StatusCreated).JSON(schedule)
}

func (s *WorkplaceService) UpdateSchedule(c *fiber.Ctx) error {
	dept, err := s.findDepartment(c.Params("workplaceId"), c.Params("departmentId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "department not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch department"})
	}

	var req scheduleInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
	}

	days := req.SelectedDays
	if days == nil {
		days = []string{}
	}
	daysJSON, _ := json.Marshal(days)

	id := c.Params("id")
	res := s.DB.Model(&models.Schedule{}).
		Where("id = ? AND department_id = ?", id, dept.ID).
		Updates(map[string]interface{}{
			"person":        req.Person,
			"category":      req.Category,
			"selected_days": string(daysJSON),
			"hours_per_day": req.HoursPerDay,
		})
	if res.Error != nil {
		log.Printf("❌ Updating schedule %s failed: %v", id, res.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not update schedule"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "schedule not found"})
	}

	var schedule models.Schedule
	if err := s.DB.First(&schedule, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch schedule"})
	}
	return c.JSON(schedule)
}

func (s *WorkplaceService) DeleteSchedule(c *fiber.Ctx) error {
	dept, err := s.findDepartment(c.Params("workplaceId"), c.Params("departmentId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "department not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not fetch department"})
	}

	id := c.Params("id")
	res := s.DB.Delete(&models.Schedule{}, "id = ? AND department_id = ?", id, dept.ID)
	if res.Error != nil {
		log.Printf("❌ Deleting schedule %s failed: %v", id, res.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not delete schedule"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "schedule not found"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// --- helpers ---

func (s *WorkplaceService) buildTree(req workplaceInput) (*models.Workplace, error) {
	workplace := &models.Workplace{Name: req.Name}
	for _, d := range req.Departments {
		if d.Name == "" {
			return nil, errors.New("department name is required")
		}
		capacity := d.Capacity
		if capacity == nil {
			capacity = map[string]int{}
		}
		capJSON, err := json.Marshal(capacity)
		if err != nil {
			return nil, err
		}

		dept := models.Department{Name: d.Name, Capacity: string(capJSON)}
		for _, sc := range d.Schedules {
			days := sc.SelectedDays
			if days == nil {
				days = []string{}
			}
			daysJSON, err := json.Marshal(days)
			if err != nil {
				return nil, err
			}
			dept.Schedules = append(dept.Schedules, models.Schedule{
				Person:       sc.Person,
				Category:     sc.Category,
				SelectedDays: string(daysJSON),
				HoursPerDay:  sc.HoursPerDay,
			})
		}
		workplace.Departments = append(workplace.Departments, dept)
	}
	return workplace, nil
}

func (s *WorkplaceService) deleteSubtree(tx *gorm.DB, workplaceID uint) error {
	var deptIDs []uint
	if err := tx.Model(&models.Department{}).Where("workplace_id = ?", workplaceID).
		Pluck("id", &deptIDs).Error; err != nil {
		return err
	}
	if len(deptIDs) > 0 {
		if err := tx.Delete(&models.Schedule{}, "department_id IN ?", deptIDs).Error; err != nil {
			return err
		}
	}
	return tx.Delete(&models.Department{}, "workplace_id = ?", workplaceID).Error
}
