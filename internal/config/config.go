package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	FredAPIKey       string
	TelegramBotToken string
	ChatID           string

	PollSecs       int
	BriefingHour   int
	BriefingMinute int
	HTTPPort       int
}

func Load() *Config {
	cfg := &Config{
		FredAPIKey:       strings.TrimSpace(os.Getenv("FRED_API_KEY")),
		TelegramBotToken: strings.TrimSpace(os.Getenv("BOT_TOKEN")),
		ChatID:           strings.TrimSpace(os.Getenv("CHAT_ID")),
	}

	if cfg.FredAPIKey == "" {
		log.Println("Warning: FRED_API_KEY not set")
	}
	if cfg.TelegramBotToken == "" {
		log.Println("Warning: BOT_TOKEN not set")
	}
	if cfg.ChatID == "" {
		log.Println("Warning: CHAT_ID not set")
	}

	cfg.PollSecs = 60
	if v := os.Getenv("BRIEFING_POLL_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PollSecs = n
		}
	}

	cfg.BriefingHour = 7
	if v := strings.TrimSpace(os.Getenv("BRIEFING_HOUR")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 23 {
			cfg.BriefingHour = n
		}
	}

	cfg.BriefingMinute = 30
	if v := strings.TrimSpace(os.Getenv("BRIEFING_MINUTE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 59 {
			cfg.BriefingMinute = n
		}
	}

	cfg.HTTPPort = 8080
	if v := strings.TrimSpace(os.Getenv("HTTP_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPPort = n
		}
	}

	return cfg
}

// HasSecrets reports whether all three required secrets are present. A
// missing secret never stops the scheduler; it only suppresses the startup
// notice and the immediate test briefing.
func (c *Config) HasSecrets() bool {
	return c.FredAPIKey != "" && c.TelegramBotToken != "" && c.ChatID != ""
}
