package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"quorumhub/internal/handlers"
	"quorumhub/internal/middleware"
	"quorumhub/internal/models"
	"quorumhub/internal/repositories"
	"quorumhub/internal/services"
	"quorumhub/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "quorumhub.db")
	viper.SetDefault("JWT_SECRET", "change-me-in-production")
	viper.SetDefault("SESSION_TTL_HOURS", 24)
	viper.SetDefault("RABBITMQ_URL", "") // empty disables messaging
	viper.SetDefault("ROBLOX_VERSION_URL", "https://clientsettings.roblox.com/v2/client-version/WindowsPlayer")
	viper.SetDefault("VERSION_PROXY_TIMEOUT_SECONDS", 5)
	viper.SetDefault("ADMIN_USERNAME", "popfork1")
	viper.SetDefault("ADMIN_PASSWORD", "dairyqueen12")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Database ---
	db, err := openDatabase(viper.GetString("DATABASE_DRIVER"), viper.GetString("DATABASE_DSN"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Download{}, &models.Video{}, &models.Settings{}, &models.Session{}); err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, content events disabled: %v", err)
			mqClient = nil
		} else {
			defer mqClient.Close()
		}
	}
	var publisher services.EventPublisher
	if mqClient != nil {
		publisher = mqClient
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	sessionRepo := repositories.NewGORMSessionRepository(db)
	downloadRepo := repositories.NewGORMDownloadRepository(db)
	videoRepo := repositories.NewGORMVideoRepository(db)
	settingsRepo := repositories.NewGORMSettingsRepository(db)

	// --- Services ---
	sessionTTL := time.Duration(viper.GetInt("SESSION_TTL_HOURS")) * time.Hour
	authService := services.NewAuthService(userRepo, sessionRepo, viper.GetString("JWT_SECRET"), sessionTTL)
	downloadService := services.NewDownloadService(downloadRepo, publisher)
	videoService := services.NewVideoService(videoRepo, publisher)
	settingsService := services.NewSettingsService(settingsRepo, publisher)

	// --- Startup seeding ---
	seedDatabase(userRepo, downloadRepo, videoRepo,
		viper.GetString("ADMIN_USERNAME"), viper.GetString("ADMIN_PASSWORD"))
	if err := sessionRepo.DeleteExpired(); err != nil {
		log.Printf("Warning: failed to prune expired sessions: %v", err)
	}

	// --- Handlers ---
	guard := middleware.SessionRequired(authService)
	authHandler := handlers.NewAuthHandler(authService)
	downloadHandler := handlers.NewDownloadHandler(downloadService)
	videoHandler := handlers.NewVideoHandler(videoService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	proxyHandler := handlers.NewProxyHandler(
		viper.GetString("ROBLOX_VERSION_URL"),
		time.Duration(viper.GetInt("VERSION_PROXY_TIMEOUT_SECONDS"))*time.Second)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(logger.New())

	authHandler.RegisterRoutes(app)
	downloadHandler.RegisterRoutes(app, guard)
	videoHandler.RegisterRoutes(app, guard)
	settingsHandler.RegisterRoutes(app, guard)
	proxyHandler.RegisterRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Content event consumer (ops visibility) ---
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for content events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received content event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeContentEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// openDatabase opens the configured store. SQLite is the default for
// development; Postgres is expected in production.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}

// seedDatabase makes the deployment usable out of the box: the admin
// credential always exists (its hash repaired if it drifted from the
// configured password), and empty content tables get one sample row
// each so the public pages are never blank. Safe to run on every boot.
func seedDatabase(userRepo repositories.UserRepository, downloadRepo repositories.DownloadRepository, videoRepo repositories.VideoRepository, adminUsername, adminPassword string) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing admin password: %v", err)
		return
	}

	existing, err := userRepo.GetByUsername(adminUsername)
	switch {
	case err == nil:
		if bcrypt.CompareHashAndPassword([]byte(existing.Password), []byte(adminPassword)) != nil {
			if err := userRepo.UpdatePassword(existing.ID, string(hashed)); err != nil {
				log.Printf("Error repairing admin password: %v", err)
			} else {
				log.Printf("Repaired password for admin user %s", adminUsername)
			}
		}
	case errors.Is(err, repositories.ErrNotFound):
		admin := &models.User{Username: adminUsername, Password: string(hashed)}
		if err := userRepo.Create(admin); err != nil {
			log.Printf("Error seeding admin user: %v", err)
		} else {
			log.Printf("Seeded admin user %s", adminUsername)
		}
	default:
		log.Printf("Error looking up admin user: %v", err)
	}

	if videos, err := videoRepo.GetAll(); err == nil && len(videos) == 0 {
		sample := &models.Video{
			Title:       "Quorum Hub - Official Trailer",
			Description: "Check out the latest features in Quorum Hub v2.",
			URL:         "https://www.youtube.com/embed/dQw4w9WgXcQ",
		}
		if err := videoRepo.Create(sample); err != nil {
			log.Printf("Error seeding sample video: %v", err)
		}
	}

	if downloads, err := downloadRepo.GetAll(); err == nil && len(downloads) == 0 {
		samples := []models.Download{
			{
				Title:       "Quorum Client v1.0",
				Description: "Stable client release.",
				URL:         "https://example.com/download/v1",
				Status:      models.StatusWorking,
			},
			{
				Title:       "Quorum Legacy",
				Description: "Older version for compatibility.",
				URL:         "https://example.com/download/legacy",
				Status:      models.StatusDowngradeRequired,
			},
		}
		for i := range samples {
			if err := downloadRepo.Create(&samples[i]); err != nil {
				log.Printf("Error seeding download %s: %v", samples[i].Title, err)
			}
		}
	}
}
