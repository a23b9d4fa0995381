package config

import (
	"time"

	"atelier/editorial/pkg/config"
)

// Config stores environment configuration for Quill.
type Config struct {
	Port              string
	DatabaseURL       string
	JWTSecret         string
	LLMProvider       string
	LLMModel          string
	LLMAPIKey         string
	LLMAPIURL         string
	LLMMaxTokens      int
	GenerationTimeout time.Duration
	RedisAddr         string
	RedisPassword     string
	RateLimitWindow   time.Duration
	RateLimitBudget   int
}

// LoadConfig loads the Quill configuration from environment variables.
func LoadConfig() Config {
	return Config{
		Port:              config.GetEnv("PORT", "18030"),
		DatabaseURL:       config.RequireEnv("DATABASE_URL"),
		JWTSecret:         config.RequireEnv("JWT_SECRET"),
		LLMProvider:       config.GetEnv("LLM_PROVIDER", ""),
		LLMModel:          config.GetEnv("LLM_MODEL", ""),
		LLMAPIKey:         config.GetEnv("LLM_API_KEY", ""),
		LLMAPIURL:         config.GetEnv("LLM_API_URL", ""),
		LLMMaxTokens:      config.GetEnvInt("LLM_MAX_TOKENS", 4096),
		GenerationTimeout: config.GetEnvDuration("QUILL_GENERATION_TIMEOUT", 45*time.Second),
		RedisAddr:         config.GetEnv("REDIS_ADDR", ""),
		RedisPassword:     config.GetEnv("REDIS_PASSWORD", ""),
		RateLimitWindow:   config.GetEnvDuration("QUILL_RATE_LIMIT_WINDOW", time.Minute),
		RateLimitBudget:   config.GetEnvInt("QUILL_RATE_LIMIT_BUDGET", 10),
	}
}
