// handlers/competition.go
package handlers

import (
	"jobtorget-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCompetitionRoutes(app *fiber.App, competitionService *services.CompetitionService) {
	// Fetching a user's weekly competition creates it on first call
	app.Get("/competition/week/:userId", competitionService.GetWeeklyCompetition)
	app.Post("/competition/:id/award-bonus", competitionService.PostAwardBonus)
	app.Get("/competition/rivals/:userId", competitionService.GetRivals)
}
