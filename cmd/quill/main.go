package main

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	quillconfig "atelier/editorial/internal/config"
	"atelier/editorial/internal/editorial"
	"atelier/editorial/internal/generation"
	"atelier/editorial/internal/guard"
	"atelier/editorial/internal/ratelimit"
	"atelier/editorial/pkg/auth"
	"atelier/editorial/pkg/config"
	"atelier/editorial/pkg/database"
	"atelier/editorial/pkg/llm"
	"atelier/editorial/pkg/logging"
	"atelier/editorial/pkg/server"
)

func main() {
	// Setup logger
	logger := logging.NewLoggerWithService("quill")

	// Load environment variables
	config.LoadEnv(logger)

	logger.Info("Starting Quill (AI Editorial Pipeline)")

	cfg := quillconfig.LoadConfig()

	// Connect to database
	dbConfig := database.DefaultConfig()
	dbConfig.URL = cfg.DatabaseURL
	db := database.MustConnect(dbConfig, logger)
	defer func() { _ = db.Close() }()

	schemaCtx, cancelSchema := context.WithTimeout(context.Background(), 30*time.Second)
	if err := editorial.EnsureSchema(schemaCtx, db); err != nil {
		cancelSchema()
		logger.WithError(err).Fatal("Schema setup failed")
	}
	cancelSchema()

	llmProvider, err := llm.NewProvider(llm.Config{
		Provider:  cfg.LLMProvider,
		Model:     cfg.LLMModel,
		APIKey:    cfg.LLMAPIKey,
		APIURL:    cfg.LLMAPIURL,
		MaxTokens: cfg.LLMMaxTokens,
	})
	if err != nil {
		logger.WithError(err).Warn("Failed to initialize LLM provider - generation endpoints will report unavailable")
		llmProvider = nil
	}

	generator := generation.NewClient(generation.Config{
		Provider: llmProvider,
		Timeout:  cfg.GenerationTimeout,
		Logger:   logger,
	})

	// Rate limit state lives in Redis when configured, so the budget holds
	// across replicas; otherwise it is per-process.
	var limiterStore ratelimit.Store
	if cfg.RedisAddr != "" {
		redisClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			logger.WithError(err).Warn("Redis unreachable - falling back to in-memory rate limiting")
		} else {
			limiterStore = ratelimit.NewRedisStore(redisClient)
			logger.WithField("addr", cfg.RedisAddr).Info("Rate limiting backed by Redis")
		}
		cancel()
	}
	limiter := ratelimit.New(ratelimit.Config{
		Store:  limiterStore,
		Window: cfg.RateLimitWindow,
		Limit:  cfg.RateLimitBudget,
		Logger: logger,
	})

	store := editorial.NewContentStore(db)
	orchestrator := editorial.NewOrchestrator(editorial.OrchestratorConfig{
		Store:     store,
		Generator: generator,
		Guard:     guard.New(),
		Limiter:   limiter,
		Logger:    logger,
	})
	handler := editorial.NewHandler(orchestrator, logger)

	router := server.SetupRouter(logger, "quill")
	apiGroup := router.Group("/api/editorial")
	apiGroup.Use(auth.JWTAuthMiddleware([]byte(cfg.JWTSecret)))
	handler.RegisterRoutes(apiGroup)

	serverConfig := server.DefaultConfig("quill", cfg.Port)
	if err := server.Start(serverConfig, router, logger); err != nil {
		logger.WithError(err).Fatal("Server startup failed")
	}
}
