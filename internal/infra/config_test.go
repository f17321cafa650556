package infra

import (
	"testing"
	"time"
)

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when DATABASE_URL is unset")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/videoforge")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.MediaDir != "uploads" {
		t.Errorf("MediaDir = %q, want uploads", cfg.MediaDir)
	}
	if cfg.FFmpegPath != "ffmpeg" {
		t.Errorf("FFmpegPath = %q, want ffmpeg", cfg.FFmpegPath)
	}
	if cfg.OpenAIImageModel != "dall-e-3" {
		t.Errorf("OpenAIImageModel = %q, want dall-e-3", cfg.OpenAIImageModel)
	}
	if cfg.WorkerPollInterval != 2*time.Second {
		t.Errorf("WorkerPollInterval = %v, want 2s", cfg.WorkerPollInterval)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/videoforge")
	t.Setenv("MEDIA_DIR", "/srv/media")
	t.Setenv("HTTP_WRITE_TIMEOUT_SECONDS", "120")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.MediaDir != "/srv/media" {
		t.Errorf("MediaDir = %q, want /srv/media", cfg.MediaDir)
	}
	if cfg.HTTPWriteTimeout != 120*time.Second {
		t.Errorf("HTTPWriteTimeout = %v, want 120s", cfg.HTTPWriteTimeout)
	}
}
