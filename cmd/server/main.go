package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"csemotors/internal/auth"
	"csemotors/internal/cache"
	"csemotors/internal/config"
	"csemotors/internal/db"
	"csemotors/internal/handler"
	"csemotors/internal/middleware"
	"csemotors/internal/model"
	"csemotors/internal/repository"
	"csemotors/internal/router"
	"csemotors/internal/service"
	"csemotors/internal/session"
	"csemotors/internal/view"
)

func main() {
	cfg := config.Load()

	e := echo.New()

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatalf("renderer init: %v", err)
	}
	e.Renderer = renderer

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models. Safe to repeat on every startup.
	if err := gormDB.AutoMigrate(
		&model.Account{},
		&model.Classification{},
		&model.Vehicle{},
		&model.Review{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	cacheClient := cache.New(redisClient)
	sessions := session.NewStore(redisClient)

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(gormDB)
	inventoryRepo := repository.NewInventoryRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	requestContext := middleware.NewRequestContext(jwtService, sessions, cfg.IsProduction())

	// Initialize services
	accountService := service.NewAccountService(accountRepo, jwtService)
	inventoryService := service.NewInventoryService(inventoryRepo, cacheClient)
	reviewService := service.NewReviewService(reviewRepo)

	// Initialize handlers
	pages := handler.NewPages(inventoryService, sessions)
	accountHandler := handler.NewAccountHandler(pages, accountService, reviewService, sessions, cfg.IsProduction())
	inventoryHandler := handler.NewInventoryHandler(pages, inventoryService, reviewService, sessions)
	reviewHandler := handler.NewReviewHandler(pages, reviewService, sessions)

	// Register routes
	router.Register(
		e,
		pages,
		requestContext,
		sessions,
		accountHandler,
		inventoryHandler,
		reviewHandler,
	)

	addr := ":" + cfg.ServerPort
	log.Printf("app listening on %s (%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
