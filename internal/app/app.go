package app

import (
	"fmt"

	"xconfess_backend/internal/config"
	"xconfess_backend/internal/email"
	"xconfess_backend/internal/handlers"
	"xconfess_backend/internal/logger"
	"xconfess_backend/internal/middleware"
	"xconfess_backend/internal/models"
	"xconfess_backend/internal/repositories"
	"xconfess_backend/internal/routes"
	"xconfess_backend/internal/services"
	"xconfess_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// migrate creates the schema. Foreign keys come from the model tags:
// reactions cascade away with their confession, user references null out
// when the user is deleted.
func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.AnonymousConfession{},
		&models.Reaction{},
	)
}

// SetupRouter wires repositories, services and handlers into a gin engine.
// All dependencies are passed explicitly; there is no global registry.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	emailSender, err := email.NewSMTPSender(email.Config{
		SMTPHost:    cfg.Email.SMTPHost,
		SMTPPort:    cfg.Email.SMTPPort,
		Username:    cfg.Email.SMTPUsername,
		Password:    cfg.Email.SMTPPassword,
		FromEmail:   cfg.Email.FromEmail,
		FromName:    cfg.Email.FromName,
		FrontendURL: cfg.Frontend.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize email sender", "error", err)
	}
	logger.Info("Email sender initialized", "smtp_host", cfg.Email.SMTPHost)

	// Repositories
	userRepo := repositories.NewUserRepository(gormDB)
	confessionRepo := repositories.NewConfessionRepository(gormDB)
	reactionRepo := repositories.NewReactionRepository(gormDB)

	// Services
	authService := services.NewAuthService(userRepo, emailSender)
	confessionService := services.NewConfessionService(confessionRepo)
	reactionService := services.NewReactionService(reactionRepo, confessionRepo, emailSender)

	// Handlers
	baseHandler := handlers.NewBaseHandler(validator.New())
	appHandlers := &handlers.AppHandlers{
		AuthHandler:       handlers.NewAuthHandler(baseHandler, authService),
		ConfessionHandler: handlers.NewConfessionHandler(baseHandler, confessionService),
		ReactionHandler:   handlers.NewReactionHandler(baseHandler, reactionService, authService),
	}

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())

	return ginRouter
}
