package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server" envPrefix:"SERVER_"`
	Database   DatabaseConfig   `yaml:"database" envPrefix:"DATABASE_"`
	Logging    LoggingConfig    `yaml:"logging" envPrefix:"LOGGING_"`
	Trends     TrendsConfig     `yaml:"trends" envPrefix:"TRENDS_"`
	Mood       MoodConfig       `yaml:"mood" envPrefix:"MOOD_"`
	Generation GenerationConfig `yaml:"generation" envPrefix:"GENERATION_"`
	Request    RequestConfig    `yaml:"request" envPrefix:"REQUEST_"`
	Scheduler  SchedulerConfig  `yaml:"scheduler" envPrefix:"SCHEDULER_"`
}

type ServerConfig struct {
	Host                string `yaml:"host" env:"HOST"`
	Port                int    `yaml:"port" env:"PORT"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds" env:"READ_TIMEOUT_SECONDS"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds" env:"WRITE_TIMEOUT_SECONDS"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" env:"PATH"`
}

type LoggingConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
}

type TrendsConfig struct {
	CacheTTLMinutes     int     `yaml:"cache_ttl_minutes" env:"CACHE_TTL_MINUTES"`
	DefaultLimit        int     `yaml:"default_limit" env:"DEFAULT_LIMIT"`
	MaxLimit            int     `yaml:"max_limit" env:"MAX_LIMIT"`
	FetchTimeoutSeconds int     `yaml:"fetch_timeout_seconds" env:"FETCH_TIMEOUT_SECONDS"`
	RetryAttempts       int     `yaml:"retry_attempts" env:"RETRY_ATTEMPTS"`
	NewsAPIKey          string  `yaml:"news_api_key" env:"NEWS_API_KEY"`
	SimilarityThreshold float64 `yaml:"similarity_threshold" env:"SIMILARITY_THRESHOLD"`
	NGramSize           int     `yaml:"ngram_size" env:"NGRAM_SIZE"`
}

type MoodConfig struct {
	Endpoint            string  `yaml:"endpoint" env:"ENDPOINT"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold" env:"CONFIDENCE_THRESHOLD"`
	TimeoutSeconds      int     `yaml:"timeout_seconds" env:"TIMEOUT_SECONDS"`
	MaxConcurrent       int     `yaml:"max_concurrent" env:"MAX_CONCURRENT"`
}

type GenerationConfig struct {
	Provider       string  `yaml:"provider" env:"PROVIDER"`
	OllamaURL      string  `yaml:"ollama_url" env:"OLLAMA_URL"`
	OllamaModel    string  `yaml:"ollama_model" env:"OLLAMA_MODEL"`
	GeminiAPIKey   string  `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	ChutesAPIKey   string  `yaml:"chutes_api_key" env:"CHUTES_API_KEY"`
	ChutesModel    string  `yaml:"chutes_model" env:"CHUTES_MODEL"`
	MaxTokens      int     `yaml:"max_tokens" env:"MAX_TOKENS"`
	Temperature    float64 `yaml:"temperature" env:"TEMPERATURE"`
	TimeoutSeconds int     `yaml:"timeout_seconds" env:"TIMEOUT_SECONDS"`
	RetryAttempts  int     `yaml:"retry_attempts" env:"RETRY_ATTEMPTS"`
}

type RequestConfig struct {
	DeadlineSeconds int `yaml:"deadline_seconds" env:"DEADLINE_SECONDS"`
}

type SchedulerConfig struct {
	// CronExpr is a robfig/cron expression; empty disables warm refresh.
	CronExpr string `yaml:"cron_expr" env:"CRON_EXPR"`
	// Warm lists "source:limit" pairs kept hot in the trend cache.
	Warm []string `yaml:"warm" env:"WARM" envSeparator:","`
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:                "0.0.0.0",
			Port:                8080,
			ReadTimeoutSeconds:  30,
			WriteTimeoutSeconds: 120,
		},
		Database: DatabaseConfig{
			Path: "./trendstory.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Trends: TrendsConfig{
			CacheTTLMinutes:     15,
			DefaultLimit:        5,
			MaxLimit:            10,
			FetchTimeoutSeconds: 10,
			RetryAttempts:       3,
			SimilarityThreshold: 0.85,
			NGramSize:           3,
		},
		Mood: MoodConfig{
			Endpoint:            "http://localhost:8501",
			ConfidenceThreshold: 0.5,
			TimeoutSeconds:      10,
			MaxConcurrent:       2,
		},
		Generation: GenerationConfig{
			Provider:       "ollama",
			OllamaURL:      "http://localhost:11434",
			OllamaModel:    "mistral-nemo",
			ChutesModel:    "deepseek-ai/DeepSeek-V3",
			MaxTokens:      512,
			Temperature:    0.7,
			TimeoutSeconds: 30,
			RetryAttempts:  3,
		},
		Request: RequestConfig{
			DeadlineSeconds: 60,
		},
		Scheduler: SchedulerConfig{
			CronExpr: "@every 10m",
		},
	}
}

// Load reads a YAML config file, merges it over defaults, then applies
// TRENDSTORY_* environment variables on top. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Info("No config file found, using defaults", "path", path)
		} else {
			return cfg, err
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "TRENDSTORY_"}); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
