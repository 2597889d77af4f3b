package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "WORKSPACE_TOKEN_TTL", "WORKSPACE_IDLE_TTL", "CANVAS_WIDTH", "CARD_WIDTH", "AUDIT_DB_DRIVER"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.WorkspaceTokenTTL != 24*time.Hour || cfg.WorkspaceIdleTTL != 2*time.Hour {
		t.Errorf("unexpected ttls %s/%s", cfg.WorkspaceTokenTTL, cfg.WorkspaceIdleTTL)
	}
	if cfg.CanvasWidth != 2400 || cfg.CardWidth != 320 {
		t.Errorf("unexpected geometry %v/%v", cfg.CanvasWidth, cfg.CardWidth)
	}
	if cfg.AuditDBDriver != "sqlite" {
		t.Errorf("expected sqlite audit driver, got %s", cfg.AuditDBDriver)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("WORKSPACE_IDLE_TTL", "15m")
	t.Setenv("CANVAS_WIDTH", "1200.5")
	t.Setenv("CARD_WIDTH", "not-a-number")
	t.Setenv("WORKSPACE_TOKEN_TTL", "-1h")

	cfg, _ := Load()
	if cfg.WorkspaceIdleTTL != 15*time.Minute {
		t.Errorf("expected 15m, got %s", cfg.WorkspaceIdleTTL)
	}
	if cfg.CanvasWidth != 1200.5 {
		t.Errorf("expected 1200.5, got %v", cfg.CanvasWidth)
	}
	if cfg.CardWidth != 320 {
		t.Errorf("invalid value should fall back, got %v", cfg.CardWidth)
	}
	if cfg.WorkspaceTokenTTL != 24*time.Hour {
		t.Errorf("negative duration should fall back, got %s", cfg.WorkspaceTokenTTL)
	}
}
