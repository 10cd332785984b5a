// handlers/fitness.go
package handlers

import (
	"jobtorget-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupFitnessRoutes(
	app *fiber.App,
	performanceService *services.PerformanceService,
	trainingService *services.TrainingService,
	fitnessService *services.FitnessService,
) {
	// PI result ledger
	app.Get("/results", performanceService.GetAllResults)
	app.Get("/results/:userId", performanceService.GetUserResults)
	app.Post("/results", performanceService.CreateResult)

	// Workout sessions and templates
	app.Get("/training/sessions/:userId", trainingService.GetSessions)
	app.Post("/training/sessions", trainingService.SaveSession)
	app.Get("/training/templates/:userId", trainingService.GetTemplates)
	app.Post("/training/templates", trainingService.SaveTemplate)

	// Test logs
	app.Get("/strength-tests/:userId", fitnessService.GetStrengthTests)
	app.Post("/strength-tests", fitnessService.CreateStrengthTest)
	app.Get("/cardio/:userId", fitnessService.GetCardioResults)
	app.Post("/cardio", fitnessService.CreateCardioResult)
	app.Get("/challenges/:userId", fitnessService.GetChallenges)
	app.Post("/challenges", fitnessService.CreateChallenge)
}
