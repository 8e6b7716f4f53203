package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"helpdesk/config"
	"helpdesk/database"
	"helpdesk/jobs"
	contentRoutes "helpdesk/routers/contentRoutes"
	supportRoutes "helpdesk/routers/supportRoutes"
	trainingRoutes "helpdesk/routers/trainingRoutes"
	"helpdesk/services/training"
	"helpdesk/services/training/sink"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database setup failed: %v", err)
	}

	var eventSink training.EventSink
	if cfg.EventSinkURL != "" {
		eventSink = sink.NewWebhook(cfg.EventSinkURL)
	}
	svc := training.New(db, eventSink)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	trainingRoutes.SetupTrainingRoutes(app, cfg, svc)
	trainingRoutes.SetupTrainingAdminRoutes(app, cfg, svc)
	supportRoutes.SetupSupportRoutes(app, cfg, db)
	contentRoutes.SetupContentRoutes(app, cfg, db)

	sweeper := jobs.StartOverdueScheduler(cfg, svc)
	defer sweeper.Stop()

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
