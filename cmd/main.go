package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "film-catalog/docs"
	"film-catalog/internal/config"
	"film-catalog/internal/database"
	"film-catalog/internal/handlers"
	"film-catalog/internal/repository"
	"film-catalog/internal/routes"
	"film-catalog/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

// @title Film Catalog API
// @version 1.0
// @description CRUD API for films, genres and the links between them

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /
// @schemes http https

func main() {
	loadEnvFile()

	cfg := config.Load()

	log := setupLogger()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Errorf("Error closing database connection: %v", err)
		}
	}()

	filmRepo := repository.NewFilmRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	filmGenreRepo := repository.NewFilmGenreRepository(db)

	filmService := services.NewFilmService(filmRepo, filmGenreRepo, log)
	genreService := services.NewGenreService(genreRepo, filmGenreRepo, log)
	filmGenreService := services.NewFilmGenreService(filmGenreRepo, log)

	postersEnabled := false
	if cfg.PosterStorageEnabled() {
		posters, err := services.NewMinIOPosterStorage(&cfg.MinIO, log)
		if err != nil {
			log.Fatalf("Failed to initialize poster storage: %v", err)
		}
		if fs, ok := filmService.(interface{ SetPosterStorage(services.PosterStorage) }); ok {
			fs.SetPosterStorage(posters)
			postersEnabled = true
		}
	} else {
		log.Info("MinIO credentials not set, poster uploads disabled")
	}

	app := fiber.New(fiber.Config{
		AppName:      "Film Catalog API",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: routes.ErrorHandler(log),
	})

	setupMiddleware(app)

	app.Get("/health", healthCheckHandler(db))

	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	routes.Setup(app, routes.Handlers{
		Films:       handlers.NewFilmHandler(filmService, log),
		Genres:      handlers.NewGenreHandler(genreService, log),
		FilmGenres:  handlers.NewFilmGenreHandler(filmGenreService, log),
		WithPosters: postersEnabled,
	})

	go gracefulShutdown(app, log)

	log.Infof("Film Catalog API starting on %s", cfg.Address())
	if err := app.Listen(cfg.Address()); err != nil {
		log.Fatalf("Failed to start HTTP server: %v", err)
	}
}

func setupLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	if env := os.Getenv("GO_ENV"); env == "dev" || env == "development" {
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}

func setupMiddleware(app *fiber.App) {
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${error}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
		MaxAge:       86400,
	}))
}

func healthCheckHandler(db *database.Database) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbStatus := "healthy"
		if err := db.HealthCheck(); err != nil {
			dbStatus = "unhealthy"
		}

		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "film-catalog",
			"database":  dbStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// gracefulShutdown stops the server on SIGINT/SIGTERM. main then returns
// from Listen and its deferred Close releases the pool.
func gracefulShutdown(app *fiber.App, log *logrus.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		log.Errorf("Error during shutdown: %v", err)
	}

	log.Info("Server shutdown complete")
}

func loadEnvFile() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{})
	log.SetOutput(os.Stdout)

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "dev"
	}

	wd, err := os.Getwd()
	if err != nil {
		log.Warnf("Could not get working directory: %v", err)
		return
	}

	envFile := filepath.Join(wd, "envs", ".env."+env)
	if err := godotenv.Load(envFile); err == nil {
		log.Infof("Environment loaded from %s", envFile)
		return
	}

	defaultEnvFile := filepath.Join(wd, "envs", ".env")
	if err := godotenv.Load(defaultEnvFile); err != nil {
		log.Debugf("No environment file found, using process environment")
		return
	}
	log.Infof("Environment loaded from %s", defaultEnvFile)
}
