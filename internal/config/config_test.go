package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want 8080", cfg.ServerPort)
	}
	if cfg.SessionTimeout != 30*time.Minute {
		t.Errorf("SessionTimeout = %v, want 30m", cfg.SessionTimeout)
	}
	if cfg.AllowRegistration {
		t.Error("registration should be disabled by default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("SESSION_TIMEOUT", "600")
	t.Setenv("ALLOW_REGISTRATION", "true")

	cfg := Load()

	if cfg.ServerPort != 9001 {
		t.Errorf("ServerPort = %d, want 9001", cfg.ServerPort)
	}
	if cfg.SessionTimeout != 10*time.Minute {
		t.Errorf("SessionTimeout = %v, want 10m", cfg.SessionTimeout)
	}
	if !cfg.AllowRegistration {
		t.Error("ALLOW_REGISTRATION=true should enable registration")
	}
}

func TestLoadIgnoresBadTimeout(t *testing.T) {
	t.Setenv("SESSION_TIMEOUT", "soon")

	cfg := Load()
	if cfg.SessionTimeout != 30*time.Minute {
		t.Errorf("SessionTimeout = %v, want default 30m on bad input", cfg.SessionTimeout)
	}
}
