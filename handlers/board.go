// handlers/board.go
package handlers

import (
	"jobtorget-backend/middleware"
	"jobtorget-backend/models"
	"jobtorget-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupBoardRoutes(app *fiber.App, boardService *services.BoardService, secret []byte) {
	// 🔓 Public reads
	app.Get("/jobs", boardService.GetAllJobs)
	app.Get("/activities", boardService.GetAllActivities)
	app.Get("/courses", boardService.GetAllCourses)
	app.Post("/registrations", boardService.CreateRegistration)

	// 🔐 Coach-managed content
	coach := app.Group("/", middleware.Authenticate(secret), middleware.RequireRole(models.RoleCoach))

	coach.Post("/jobs", boardService.CreateJob)
	coach.Delete("/jobs/:id", boardService.DeleteJob)

	coach.Post("/activities", boardService.CreateActivity)
	coach.Delete("/activities/:id", boardService.DeleteActivity)

	coach.Get("/registrations", boardService.GetAllRegistrations)
	coach.Delete("/registrations/:id", boardService.DeleteRegistration)
	coach.Patch("/registrations/:id/status", boardService.UpdateRegistrationStatus)
	coach.Put("/registrations/:id/comment", boardService.UpdateRegistrationComment)

	coach.Post("/courses", boardService.CreateCourse)
	coach.Delete("/courses/:id", boardService.DeleteCourse)

	coach.Get("/intern-tips", boardService.GetAllTips)
	coach.Post("/intern-tips", boardService.CreateTip)
	coach.Patch("/intern-tips/:id", boardService.UpdateTip)
	coach.Delete("/intern-tips/:id", boardService.DeleteTip)
}
