// Package config provides runtime configuration values for the bot.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds configuration knobs for the gateway session, the claim
// store, and the ops HTTP endpoint.
type Config struct {
	Token           string
	AdminRoleID     string
	GuildID         string
	StateDir        string
	HTTPAddr        string
	ShutdownTimeout time.Duration
}

// ErrMissingToken is returned when DISCORD_TOKEN is not set.
var ErrMissingToken = errors.New("DISCORD_TOKEN is required")

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

// Load collects configuration from environment with defaults. A missing
// token or a non-numeric ADMIN_ROLE_ID is a startup error.
func Load() (Config, error) {
	cfg := Config{
		Token:           os.Getenv("DISCORD_TOKEN"),
		AdminRoleID:     os.Getenv("ADMIN_ROLE_ID"),
		GuildID:         os.Getenv("GUILD_ID"),
		StateDir:        os.Getenv("STATE_DIR"),
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 15),
	}
	if cfg.Token == "" {
		return Config{}, ErrMissingToken
	}
	if cfg.AdminRoleID != "" {
		// Discord snowflakes are numeric; the ID stays a string for the
		// API but must parse.
		if _, err := strconv.ParseUint(cfg.AdminRoleID, 10, 64); err != nil {
			return Config{}, fmt.Errorf("ADMIN_ROLE_ID must be numeric: %w", err)
		}
	}
	return cfg, nil
}
