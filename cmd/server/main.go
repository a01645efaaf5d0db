package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"shoplist/docs"
	"shoplist/internal/auth"
	"shoplist/internal/cache"
	"shoplist/internal/config"
	"shoplist/internal/db"
	"shoplist/internal/handler"
	"shoplist/internal/mail"
	"shoplist/internal/model"
	"shoplist/internal/repository"
	"shoplist/internal/router"
	"shoplist/internal/service"
)

// @title Shopping List API
// @version 1.0
// @description CRUD REST API for per-user shopping lists with bearer-token authentication.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.ShoppingList{},
		&model.ShoppingListItem{},
		&model.RevokedToken{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	listRepo := repository.NewListRepository(gormDB)
	itemRepo := repository.NewItemRepository(gormDB)
	ledger := repository.NewRevokedTokenRepository(gormDB)

	// Initialize auth components
	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, cfg.ResetTokenTTL, ledger)
	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)

	// Initialize services
	authService := service.NewAuthService(userRepo, ledger, tokenService, mailer, cfg.ResetURLBase)
	listService := service.NewListService(listRepo, cacheClient)
	itemService := service.NewItemService(listRepo, itemRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	listHandler := handler.NewListHandler(listService)
	itemHandler := handler.NewItemHandler(itemService)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	// Register routes
	router.Register(e, tokenService, authHandler, listHandler, itemHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
