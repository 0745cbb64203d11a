package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Test with default values
	config := LoadConfig()
	assert.Equal(t, "file", config.StateBackend)
	assert.Equal(t, "sent_listings.json", config.StateFile)
	assert.Equal(t, "localhost:6379", config.RedisAddr)
	assert.Equal(t, 0, config.RedisDB)
	assert.Equal(t, time.Duration(0), config.PollInterval)
	assert.Contains(t, config.RightmoveURL, "rightmove.co.uk")
	assert.Contains(t, config.ZooplaURL, "zoopla.co.uk")
	assert.Contains(t, config.OnTheMarketURL, "onthemarket.com")

	// Test with environment variables
	os.Setenv("DISCORD_WEBHOOK_URL", "https://discord.com/api/webhooks/1/abc")
	os.Setenv("STATE_BACKEND", "redis")
	os.Setenv("STATE_FILE", "/var/lib/rentwatcher/state.json")
	os.Setenv("REDIS_DB", "1")
	os.Setenv("POLL_INTERVAL_SECONDS", "300")
	os.Setenv("RIGHTMOVE_URL", "https://example.com/rightmove")

	config = LoadConfig()
	assert.Equal(t, "https://discord.com/api/webhooks/1/abc", config.WebhookURL)
	assert.Equal(t, "redis", config.StateBackend)
	assert.Equal(t, "/var/lib/rentwatcher/state.json", config.StateFile)
	assert.Equal(t, 1, config.RedisDB)
	assert.Equal(t, 300*time.Second, config.PollInterval)
	assert.Equal(t, "https://example.com/rightmove", config.RightmoveURL)

	// Clean up
	os.Unsetenv("DISCORD_WEBHOOK_URL")
	os.Unsetenv("STATE_BACKEND")
	os.Unsetenv("STATE_FILE")
	os.Unsetenv("REDIS_DB")
	os.Unsetenv("POLL_INTERVAL_SECONDS")
	os.Unsetenv("RIGHTMOVE_URL")
}

func TestValidate(t *testing.T) {
	config := Config{StateBackend: "file"}
	err := config.Validate()
	assert.Error(t, err, "missing webhook URL should fail validation")

	config.WebhookURL = "https://discord.com/api/webhooks/1/abc"
	assert.NoError(t, config.Validate())

	config.StateBackend = "postgres"
	assert.Error(t, config.Validate(), "unknown state backend should fail validation")
}
