package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	gormlogger "gorm.io/gorm/logger"

	"giftcatalog/internal/config"
	"giftcatalog/internal/database"
	"giftcatalog/internal/handlers"
	"giftcatalog/internal/middleware"
	"giftcatalog/internal/repositories"
	"giftcatalog/internal/services"
	"giftcatalog/pkg/natsbus"
	"giftcatalog/pkg/rabbitmq"
)

func main() {
	cfg, err := config.Load(viper.New())
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	application, err := newApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := application.app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := application.app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// application is the wired HTTP app plus the resources it must release.
type application struct {
	app     *fiber.App
	closers []func() error
}

// Close releases brokers in reverse order of creation.
func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}
}

func newApplication(cfg *config.Config) (*application, error) {
	a := &application{}

	store, curators, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	publisher, err := a.openEvents(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	suggestionService := services.NewGiftSuggestionService(store, publisher)
	giftService := services.NewConcreteGiftService(store, publisher)
	authService := services.NewAuthService(curators, cfg.JWTSecret)

	suggestionHandler := handlers.NewSuggestionHandler(suggestionService, giftService)
	giftHandler := handlers.NewGiftHandler(giftService)
	authHandler := handlers.NewAuthHandler(authService)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	writeLimiter := middleware.NewWriteLimiter(cfg.WriteRateLimit, cfg.WriteRateBurst)
	writeGuards := []fiber.Handler{
		middleware.RateLimited(writeLimiter),
		middleware.AuthRequired(authService),
	}

	apiV1 := app.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1, middleware.RateLimited(writeLimiter))
	suggestionHandler.RegisterRoutes(apiV1, writeGuards...)
	giftHandler.RegisterRoutes(apiV1, writeGuards...)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"time":    time.Now().Format(time.RFC3339),
			"storage": cfg.DBDriver,
			"events":  cfg.EventsDriver,
		})
	})

	a.app = app
	return a, nil
}

func openStore(cfg *config.Config) (repositories.Store, repositories.CuratorRepository, error) {
	if cfg.DBDriver == config.DriverMemory {
		log.Println("Using in-memory catalog store")
		return repositories.NewMemoryStore(), repositories.NewMemoryCuratorRepository(), nil
	}
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN, gormlogger.Warn)
	if err != nil {
		return nil, nil, err
	}
	return repositories.NewGORMStore(db), repositories.NewGORMCuratorRepository(db), nil
}

// openEvents connects the configured broker and starts the audit consumer.
// It returns a nil publisher when events are disabled.
func (a *application) openEvents(cfg *config.Config) (services.EventPublisher, error) {
	switch cfg.EventsDriver {
	case config.EventsRabbitMQ:
		client, err := rabbitmq.NewClient(rabbitmq.DefaultConfig(cfg.RabbitMQURL))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		if err := client.ConsumeCatalogEvents(func(msg amqp.Delivery) error {
			return services.AuditCatalogEvent(msg.Body)
		}); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
		return client, nil
	case config.EventsNATS:
		bus, err := natsbus.Connect(cfg.NATSURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, bus.Close)
		if _, err := natsbus.Subscribe(bus, natsbus.Subject(services.CatalogExchange, ">"), services.LogCatalogEvent); err != nil {
			log.Printf("Failed to subscribe to catalog events: %v", err)
		}
		return bus, nil
	default:
		return nil, nil
	}
}
