package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "tok")
	t.Setenv("ADMIN_ROLE_ID", "")
	t.Setenv("GUILD_ID", "")
	t.Setenv("STATE_DIR", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "")
	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Token != "tok" {
		t.Fatalf("Token")
	}
	if c.AdminRoleID != "" {
		t.Fatalf("AdminRoleID default")
	}
	if c.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr default")
	}
	if c.ShutdownTimeout != 15*time.Second {
		t.Fatalf("ShutdownTimeout default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "tok")
	t.Setenv("ADMIN_ROLE_ID", "123456789012345678")
	t.Setenv("GUILD_ID", "42")
	t.Setenv("STATE_DIR", "/tmp/claims")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "2")
	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.AdminRoleID != "123456789012345678" {
		t.Fatalf("AdminRoleID env")
	}
	if c.GuildID != "42" || c.StateDir != "/tmp/claims" {
		t.Fatalf("GuildID/StateDir env")
	}
	if c.HTTPAddr != ":9090" {
		t.Fatalf("HTTPAddr env")
	}
	if c.ShutdownTimeout != 2*time.Second {
		t.Fatalf("ShutdownTimeout env")
	}
}

func TestLoadMissingToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	if _, err := Load(); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestLoadBadAdminRole(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "tok")
	t.Setenv("ADMIN_ROLE_ID", "staff")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-numeric ADMIN_ROLE_ID")
	}
}
