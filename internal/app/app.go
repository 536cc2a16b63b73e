package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"veriauth/internal/config"
	"veriauth/internal/handlers"
	"veriauth/internal/repositories"
	"veriauth/internal/routes"
	"veriauth/internal/services"
	"veriauth/internal/storage"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "veriauth/docs"
)

// @title        Account Verification Service
// @version      1.0
// @description  Email-verified registration and login, plus product image uploads.
// @BasePath     /api

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)

	// === Services ===
	authService := services.NewAuthService()
	tokenService := services.NewTokenService(cfg.Auth.JWTSecret, 0)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	var notifier *services.TelegramNotifier
	if cfg.Telegram.BotToken != "" {
		notifier, err = services.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.AdminChatID)
		if err != nil {
			log.Printf("Telegram notifier disabled: %v", err)
		}
	}

	mailer := services.NewMailer(emailService, notifier)
	defer mailer.Close()

	accountService := services.NewAccountService(
		userRepo,
		authService,
		tokenService,
		mailer,
		cfg.Auth.BaseURL,
	)

	objectStore, err := storage.NewS3Storage(context.Background(), cfg.S3)
	if err != nil {
		log.Fatal("Failed to init object storage: ", err)
	}
	productService := services.NewProductService(productRepo, objectStore)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(accountService)
	productHandler := handlers.NewProductHandler(productService)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, authHandler, productHandler)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
