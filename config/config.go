package config

import (
	"os"
	"strconv"
	"time"

	apperr "mblythe/rentwatcher/pkg/errors"
)

// Fixed search URLs encode the desired location, price, bedroom and
// recency filters. Overridable per deployment but not parameterized
// beyond that.
const (
	defaultRightmoveURL   = "https://www.rightmove.co.uk/property-to-rent/find.html?searchLocation=Guildford+Station&useLocationIdentifier=true&locationIdentifier=STATION%5E4037&radius=0.0&minPrice=100&maxPrice=1500&minBedrooms=1&maxBedrooms=2&_includeLetAgreed=on&maxBathrooms=2&index=0&sortType=6&channel=RENT&transactionType=LETTING&displayLocationIdentifier=undefined&minBathrooms=1&letType=longTerm&mustHave=parking&dontShow=houseShare%2Cretirement%2Cstudent&maxDaysSinceAdded=1"
	defaultZooplaURL      = "https://www.zoopla.co.uk/to-rent/property/schools/secondary/guildford-centre/?added=24_hours&baths_max=2&baths_min=1&beds_max=2&beds_min=1&feature=has_parking_garage&is_retirement_home=false&is_shared_accommodation=false&is_student_accommodation=false&price_frequency=per_month&price_max=1500&q=Guildford%20Centre%2C%20Surrey%2C%20GU1&radius=1&search_source=to-rent"
	defaultOnTheMarketURL = "https://www.onthemarket.com/to-rent/property/central-guildford/?let-length=long-term&max-bedrooms=2&min-bedrooms=1&max-price=1500&radius=1.0&recently-added=24-hours&shared=false&student=false"
)

// Config represents the application configuration
type Config struct {
	// Discord webhook endpoint for new-listing notifications
	WebhookURL string

	// Dedup store configuration
	StateBackend string // "file" or "redis"
	StateFile    string
	RedisAddr    string
	RedisDB      int
	RedisKey     string

	// Optional memcache address for the rate-limit block cache.
	// Empty disables blocking entirely.
	MemcacheAddr string

	// Poll interval; zero means a single pass (cron usage)
	PollInterval time.Duration

	// URLs for the three site scrapers
	RightmoveURL   string
	ZooplaURL      string
	OnTheMarketURL string

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	pollInterval, _ := strconv.Atoi(getEnv("POLL_INTERVAL_SECONDS", "0"))

	return Config{
		WebhookURL:     os.Getenv("DISCORD_WEBHOOK_URL"),
		StateBackend:   getEnv("STATE_BACKEND", "file"),
		StateFile:      getEnv("STATE_FILE", "sent_listings.json"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        redisDB,
		RedisKey:       getEnv("REDIS_KEY", "rentwatcher:sent_listings"),
		MemcacheAddr:   os.Getenv("MEMCACHE_ADDR"),
		PollInterval:   time.Duration(pollInterval) * time.Second,
		RightmoveURL:   getEnv("RIGHTMOVE_URL", defaultRightmoveURL),
		ZooplaURL:      getEnv("ZOOPLA_URL", defaultZooplaURL),
		OnTheMarketURL: getEnv("ONTHEMARKET_URL", defaultOnTheMarketURL),
		Environment:    getEnv("RENTWATCHER_ENVIRONMENT", "development"),
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.WebhookURL == "" {
		return apperr.NewConfiguration("DISCORD_WEBHOOK_URL environment variable not set", nil)
	}
	if c.StateBackend != "file" && c.StateBackend != "redis" {
		return apperr.NewConfiguration("STATE_BACKEND must be 'file' or 'redis'", nil)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
