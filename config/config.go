package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	HTTPAddress string

	ZoomSecretToken  string
	ZoomClientID     string
	ZoomClientSecret string

	OpenAIKey     string
	OpenAIBaseURL string
	LLMModel      string

	PerplexityKey   string
	PerplexityModel string

	// HistorySize is the rolling-window capacity in transcript chunks.
	HistorySize int

	ReconnectAttempts int
	ReconnectDelay    time.Duration
	InsecureTLS       bool

	RedisURL      string
	ActionItemTTL time.Duration
}

// Load reads environment variables and returns Config with sane defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to environment variables")
	}

	cfg := Config{
		HTTPAddress:       getenv("HTTP_ADDRESS", ":3000"),
		ZoomSecretToken:   os.Getenv("ZOOM_SECRET_TOKEN"),
		ZoomClientID:      os.Getenv("ZM_CLIENT_ID"),
		ZoomClientSecret:  os.Getenv("ZM_CLIENT_SECRET"),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:     os.Getenv("OPENAI_BASE_URL"),
		LLMModel:          getenv("LLM_MODEL", "gpt-4o-mini"),
		PerplexityKey:     os.Getenv("PERPLEXITY_API_KEY"),
		PerplexityModel:   getenv("PERPLEXITY_MODEL", "sonar-pro"),
		HistorySize:       getenvInt("HISTORY_SIZE", 10),
		ReconnectAttempts: getenvInt("RTMS_RECONNECT_ATTEMPTS", 5),
		ReconnectDelay:    getenvDuration("RTMS_RECONNECT_DELAY", 3*time.Second),
		InsecureTLS:       getenvBool("RTMS_INSECURE_TLS", true),
		RedisURL:          os.Getenv("REDIS_URL"),
		ActionItemTTL:     getenvDuration("ACTION_ITEM_TTL", 24*time.Hour),
	}

	if cfg.OpenAIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set - action item extraction will not work")
	}
	if cfg.PerplexityKey == "" {
		log.Println("Warning: PERPLEXITY_API_KEY not set - information searches will not work")
	}
	if cfg.HistorySize < 1 {
		log.Printf("HISTORY_SIZE %d is invalid, using 10", cfg.HistorySize)
		cfg.HistorySize = 10
	}

	log.Printf("config: HTTP_ADDRESS=%s HISTORY_SIZE=%d", cfg.HTTPAddress, cfg.HistorySize)
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("%s=%q is not an integer, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("%s=%q is not a boolean, using %v", key, v, fallback)
		return fallback
	}
	return b
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("%s=%q is not a duration, using %v", key, v, fallback)
		return fallback
	}
	return d
}
