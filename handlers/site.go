// handlers/site.go
package handlers

import (
	"jobtorget-backend/middleware"
	"jobtorget-backend/models"
	"jobtorget-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupSiteRoutes(
	app *fiber.App,
	db *gorm.DB,
	profileService *services.ProfileService,
	documentService *services.DocumentService,
	planService *services.PlanService,
	workplaceService *services.WorkplaceService,
	visitService *services.VisitService,
	secret []byte,
) {
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	app.Get("/dbtest", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "database unreachable", "cause": err.Error()})
		}
		return c.JSON(fiber.Map{"message": "database connection ok"})
	})

	// Visit counter
	app.Post("/visits", visitService.RecordVisit)
	app.Get("/visits/weekly", visitService.GetWeeklyCount)
	app.Get("/visits/stats", visitService.GetDailyStats)

	// Profiles
	app.Get("/profiles/:userId", profileService.GetProfile)
	app.Post("/profiles", profileService.UpsertProfile)
	app.Post("/profiles/:userId/avatar", profileService.UploadAvatar)

	// Plans
	app.Get("/plans/participant/:participantId", planService.GetPlansForParticipant)
	app.Get("/plans/:id", planService.GetPlan)
	app.Post("/plans", planService.CreatePlan)
	app.Put("/plans/:id", planService.UpdatePlan)
	app.Delete("/plans/:id", planService.DeletePlan)

	// 🔐 Coach-managed: documents and workplace planning
	coach := app.Group("/", middleware.Authenticate(secret), middleware.RequireRole(models.RoleCoach))

	coach.Get("/documents", documentService.GetAll)
	coach.Get("/documents/:id/download", documentService.Download)
	coach.Post("/documents", documentService.Upload)
	coach.Patch("/documents/:id/tags", documentService.UpdateTags)
	coach.Delete("/documents/:id", documentService.Delete)

	coach.Get("/workplaces", workplaceService.GetAllWorkplaces)
	coach.Get("/workplaces/:id", workplaceService.GetWorkplace)
	coach.Post("/workplaces", workplaceService.CreateWorkplace)
	coach.Put("/workplaces/:id", workplaceService.UpdateWorkplace)
	coach.Delete("/workplaces/:id", workplaceService.DeleteWorkplace)

	coach.Post("/workplaces/:workplaceId/departments/:departmentId/schedules", workplaceService.CreateSchedule)
	coach.Put("/workplaces/:workplaceId/departments/:departmentId/schedules/:id", workplaceService.UpdateSchedule)
	coach.Delete("/workplaces/:workplaceId/departments/:departmentId/schedules/:id", workplaceService.DeleteSchedule)
}
