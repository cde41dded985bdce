package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MorningstarBaseURL    string
	MorningstarAccessCode string
	HTTPTimeout           time.Duration
	MaxFileSize           int64
	LogLevel              string
}

func LoadConfig() *Config {
	// Local development keeps secrets in a .env file; absence is fine.
	_ = godotenv.Load()

	baseURL := os.Getenv("MORNINGSTAR_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.morningstar.com/v2/service/mf/TrailingTotalReturn"
	}

	timeout := 10 * time.Second
	if raw := os.Getenv("HTTP_TIMEOUT_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		MorningstarBaseURL:    baseURL,
		MorningstarAccessCode: os.Getenv("MORNINGSTAR_ACCESS_CODE"),
		HTTPTimeout:           timeout,
		MaxFileSize:           25 * 1024 * 1024, // 25 MB
		LogLevel:              logLevel,
	}
}
