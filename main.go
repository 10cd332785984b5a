package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"jobtorget-backend/config"
	"jobtorget-backend/handlers"
	"jobtorget-backend/models"
	"jobtorget-backend/services"
	"jobtorget-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration: ", err)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024, // 25MB, documents are capped below that
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// TranslateError surfaces unique violations as gorm.ErrDuplicatedKey,
	// which the competition matcher relies on.
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.PerformanceRecord{},
		&models.WeeklyCompetition{},
		&models.CompetitionMember{},
		&models.RivalryRecord{},
		&models.TrainingSession{},
		&models.TrainingTemplate{},
		&models.StrengthTest{},
		&models.CardioResult{},
		&models.Challenge{},
		&models.Job{},
		&models.Activity{},
		&models.Registration{},
		&models.Course{},
		&models.InternTip{},
		&models.Document{},
		&models.Workplace{},
		&models.Department{},
		&models.Schedule{},
		&models.Plan{},
		&models.Visit{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := utils.EnsureUploadDir(); err != nil {
		log.Fatal("failed to ensure upload dir:", err)
	}

	store, err := utils.NewObjectStore(cfg)
	if err != nil {
		log.Fatal("failed to initialize object storage:", err)
	}
	if store == nil {
		log.Println("⚠️  Object storage not configured, avatars go to local ./uploads")
	}

	authService := services.NewAuthService(db, cfg)
	competitionService := services.NewCompetitionService(db, cfg)
	performanceService := services.NewPerformanceService(db)
	trainingService := services.NewTrainingService(db)
	fitnessService := services.NewFitnessService(db)
	boardService := services.NewBoardService(db)
	documentService := services.NewDocumentService(db)
	profileService := services.NewProfileService(db, store)
	planService := services.NewPlanService(db)
	workplaceService := services.NewWorkplaceService(db)
	visitService := services.NewVisitService(db)

	boardService.StartExpiryScheduler()

	secret := []byte(cfg.JWTSecret)
	handlers.SetupAuthRoutes(app, authService, secret)
	handlers.SetupCompetitionRoutes(app, competitionService)
	handlers.SetupFitnessRoutes(app, performanceService, trainingService, fitnessService)
	handlers.SetupBoardRoutes(app, boardService, secret)
	handlers.SetupSiteRoutes(app, db, profileService, documentService, planService, workplaceService, visitService, secret)

	app.Static("/uploads", "./uploads")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", cfg.Port)
	log.Printf("✅ CORS configured for origins: %s", cfg.AllowedOrigins)
	log.Println("✅ Board expiry scheduler running (hourly)")

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
