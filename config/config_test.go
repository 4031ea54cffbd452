package config

import (
	"testing"
	"time"
)

func TestApplyDefaults_FillsUnsetFields(t *testing.T) {
	cfg := &Config{}

	applyDefaults(cfg)

	if cfg.API.BaseURL != defaultBaseURL {
		t.Fatalf("BaseURL = %q, want %q", cfg.API.BaseURL, defaultBaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Fatalf("Timeout = %s, want 30s", cfg.API.Timeout)
	}
	if cfg.Retry.MaxRetries != 2 {
		t.Fatalf("MaxRetries = %d, want 2", cfg.Retry.MaxRetries)
	}
	if cfg.Retry.InitialBackoff != 300*time.Millisecond {
		t.Fatalf("InitialBackoff = %s, want 300ms", cfg.Retry.InitialBackoff)
	}
	if cfg.Storage.StatePath == "" {
		t.Fatal("StatePath not defaulted")
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.API.BaseURL = "https://shop.example.com"
	cfg.Retry = &RetryConfig{MaxRetries: 5, InitialBackoff: time.Second}

	applyDefaults(cfg)

	if cfg.API.BaseURL != "https://shop.example.com" {
		t.Fatalf("BaseURL overwritten: %q", cfg.API.BaseURL)
	}
	if cfg.Retry.MaxRetries != 5 || cfg.Retry.InitialBackoff != time.Second {
		t.Fatalf("retry config overwritten: %+v", cfg.Retry)
	}
}
