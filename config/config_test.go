package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", "")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("PERPLEXITY_MODEL", "")
	t.Setenv("HISTORY_SIZE", "")
	t.Setenv("RTMS_RECONNECT_ATTEMPTS", "")
	t.Setenv("RTMS_RECONNECT_DELAY", "")
	t.Setenv("RTMS_INSECURE_TLS", "")

	cfg := Load()
	assert.Equal(t, ":3000", cfg.HTTPAddress)
	assert.Equal(t, "gpt-4o-mini", cfg.LLMModel)
	assert.Equal(t, "sonar-pro", cfg.PerplexityModel)
	assert.Equal(t, 10, cfg.HistorySize)
	assert.Equal(t, 5, cfg.ReconnectAttempts)
	assert.Equal(t, 3*time.Second, cfg.ReconnectDelay)
	assert.True(t, cfg.InsecureTLS)
	assert.Equal(t, 24*time.Hour, cfg.ActionItemTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", ":9090")
	t.Setenv("HISTORY_SIZE", "4")
	t.Setenv("RTMS_RECONNECT_ATTEMPTS", "2")
	t.Setenv("RTMS_RECONNECT_DELAY", "500ms")
	t.Setenv("RTMS_INSECURE_TLS", "false")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.HTTPAddress)
	assert.Equal(t, 4, cfg.HistorySize)
	assert.Equal(t, 2, cfg.ReconnectAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.ReconnectDelay)
	assert.False(t, cfg.InsecureTLS)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("HISTORY_SIZE", "not-a-number")
	t.Setenv("RTMS_RECONNECT_DELAY", "soon")
	t.Setenv("RTMS_INSECURE_TLS", "maybe")

	cfg := Load()
	assert.Equal(t, 10, cfg.HistorySize)
	assert.Equal(t, 3*time.Second, cfg.ReconnectDelay)
	assert.True(t, cfg.InsecureTLS)
}

func TestLoad_ZeroHistorySizeRejected(t *testing.T) {
	t.Setenv("HISTORY_SIZE", "0")
	cfg := Load()
	assert.Equal(t, 10, cfg.HistorySize)
}
