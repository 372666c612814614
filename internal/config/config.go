package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds every environment-driven setting the server recognizes.
type Config struct {
	Port    string
	BaseURL string

	JWTSecret string

	// Spreadsheet backing store.
	SheetID string
	// GoogleCredentials is the raw service-account JSON. The env value may
	// also be a path to a file containing it.
	GoogleCredentials []byte

	AdminUsername     string
	AdminPasswordHash string

	WebhookSecret string
	BotWebhookURL string

	DiscordKey             string
	DiscordSecret          string
	DiscordCallbackURL     string
	DiscordBotToken        string
	DiscordPublicKey       string
	DiscordGuildID         string
	DiscordAnnounceChannel string

	MailHost     string
	MailPort     int
	MailUsername string
	MailPassword string
	MailTo       string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:                   getenv("PORT", "8080"),
		BaseURL:                getenv("BASE_URL", "http://localhost:8080"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		SheetID:                os.Getenv("SHEET_ID"),
		AdminUsername:          os.Getenv("ADMIN_USERNAME"),
		AdminPasswordHash:      os.Getenv("ADMIN_PASSWORD_HASH"),
		WebhookSecret:          os.Getenv("WEBHOOK_SECRET"),
		BotWebhookURL:          os.Getenv("BOT_WEBHOOK_URL"),
		DiscordKey:             os.Getenv("DISCORD_KEY"),
		DiscordSecret:          os.Getenv("DISCORD_SECRET"),
		DiscordCallbackURL:     os.Getenv("DISCORD_CALLBACK_URL"),
		DiscordBotToken:        os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordPublicKey:       os.Getenv("DISCORD_PUBLIC_KEY"),
		DiscordGuildID:         os.Getenv("DISCORD_GUILD_ID"),
		DiscordAnnounceChannel: os.Getenv("DISCORD_ANNOUNCE_CHANNEL"),
		MailHost:               os.Getenv("MAIL_HOST"),
		MailUsername:           os.Getenv("MAIL_USERNAME"),
		MailPassword:           os.Getenv("MAIL_PASSWORD"),
		MailTo:                 os.Getenv("MAIL_TO"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.SheetID == "" {
		return nil, fmt.Errorf("SHEET_ID is required")
	}

	if port := os.Getenv("MAIL_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid MAIL_PORT %q: %w", port, err)
		}
		cfg.MailPort = p
	} else {
		cfg.MailPort = 587
	}

	creds := os.Getenv("GOOGLE_CREDENTIALS_JSON")
	switch {
	case creds == "":
		return nil, fmt.Errorf("GOOGLE_CREDENTIALS_JSON is required")
	case strings.HasPrefix(strings.TrimSpace(creds), "{"):
		cfg.GoogleCredentials = []byte(creds)
	default:
		data, err := os.ReadFile(creds)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		cfg.GoogleCredentials = data
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
