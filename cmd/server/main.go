package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"companion-backend/internal/config"
	"companion-backend/internal/database"
	"companion-backend/internal/handlers"
	"companion-backend/internal/middleware"
	"companion-backend/internal/repository"
	"companion-backend/internal/router"
	"companion-backend/internal/services"
	"companion-backend/internal/websocket"
)

func main() {
	log.Println("🚀 Starting Companion Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	chatLogRepo := repository.NewChatLogRepo(pool)
	settingsRepo := repository.NewSettingsRepo(pool)
	goalRepo := repository.NewGoalRepo(pool)

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	provider := config.NewEnvProvider()
	sink := services.MultiSink{services.LogSink{}, services.NewRedisSink(redisClients.Cache)}

	responders := []services.Responder{
		services.NewProxyResponder(provider, sink),
		services.NewOpenAIResponder(provider, sink),
	}
	events := services.NewRedisEventPublisher(redisClients.PubSub)
	chatService := services.NewChatService(responders, chatLogRepo, sink, events)
	settingsService := services.NewSettingsService(settingsRepo, redisClients.Cache)

	var insights *services.InsightsService
	if cfg.GeminiAPIKey != "" {
		insights, err = services.NewInsightsService(cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("✗ Gemini client initialization failed: %v", err)
		}
		defer insights.Close()
		log.Println("✓ Gemini insights client initialized")
	}

	var companionService *services.CompanionService
	if insights != nil {
		companionService = services.NewCompanionService(goalRepo, settingsService, insights)
	} else {
		companionService = services.NewCompanionService(goalRepo, settingsService, nil)
	}

	// ──── Initialize Handlers ────
	chatHandler := handlers.NewChatHandler(chatService, chatLogRepo, cfg.MaxChatHistory, cfg.EnableChat)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	companionHandler := handlers.NewCompanionHandler(companionService, cfg)

	// ──── Step 5: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub, cfg.JWTSecret)
	log.Println("✓ WebSocket hub started")

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		chatHandler,
		settingsHandler,
		companionHandler,
		wsHub,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Companion Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
