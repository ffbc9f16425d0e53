package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jackc/pgx/v5/stdlib"

	"notes-service/internal/api"
	"notes-service/internal/events"
	"notes-service/internal/repository"
	"notes-service/internal/service"
	"notes-service/internal/token"
	_ "notes-service/migrations"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		fmt.Println("No .env file found, reading from environment variables")
	}

	api.SetupGlobalHandler("notes-service")

	db := connectDB()
	defer db.Close()

	syncSchema(db)

	publisher := connectPublisher()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "dev-secret"
		slog.Warn("JWT_SECRET not set, using development secret")
	}
	tokens := token.NewService(jwtSecret)

	userRepo := repository.NewPostgresUserRepository(db)
	noteRepo := repository.NewPostgresNoteRepository(db)

	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo, publisher)
	noteService := service.NewNoteService(noteRepo, userRepo, publisher)

	authHandler := api.NewAuthHandler(authService)
	userHandler := api.NewUserHandler(userService)
	noteHandler := api.NewNoteHandler(noteService)

	app := fiber.New(fiber.Config{
		AppName:      "notes-service",
		ErrorHandler: api.ErrorHandler,
	})
	app.Use(api.PrometheusMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "notes-service"})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api.RegisterRoutes(app, tokens, authHandler, userHandler, noteHandler, noteService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	slog.Info("Listening notes-service", "port", port)
	log.Fatal(app.Listen(":" + port))
}

func connectDB() *sqlx.DB {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sqlx.Connect("pgx", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	slog.Info("Successfully connected to the database")
	return db
}

// syncSchema reconciles the stored schema with the registered migrations.
func syncSchema(db *sqlx.DB) {
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db.DB, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	slog.Info("Schema is up to date")
}

func connectPublisher() events.EventPublisher {
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		slog.Warn("NATS_URL not set, events disabled")
		return events.NoopPublisher{}
	}

	publisher, err := events.NewNatsPublisher(natsURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	slog.Info("Successfully connected to NATS")
	return publisher
}
