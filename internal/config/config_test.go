// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Format != "text" {
		t.Errorf("expected default format=text, got %q", cfg.Defaults.Format)
	}
	if cfg.Defaults.MinQualityScore != 50 {
		t.Errorf("expected default min_quality_score=50, got %v", cfg.Defaults.MinQualityScore)
	}
	if cfg.Defaults.Workers != 4 {
		t.Errorf("expected default workers=4, got %d", cfg.Defaults.Workers)
	}
	if len(cfg.Scraper.Sites) != 2 || cfg.Scraper.Sites[0] != "govbd" || cfg.Scraper.Sites[1] != "bdjobs" {
		t.Errorf("expected default sites [govbd bdjobs], got %v", cfg.Scraper.Sites)
	}
	if cfg.Scraper.IntervalHours != 6 {
		t.Errorf("expected default interval_hours=6, got %d", cfg.Scraper.IntervalHours)
	}
	if cfg.Redis.TTLMinutes != 10 {
		t.Errorf("expected default redis ttl_minutes=10, got %d", cfg.Redis.TTLMinutes)
	}
	if cfg.Web.Addr != ":8080" {
		t.Errorf("expected default web addr=:8080, got %q", cfg.Web.Addr)
	}
	if cfg.Telegram.Enabled {
		t.Error("expected telegram disabled by default")
	}
}

func TestLoadConfig_ValidFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
defaults:
  format: json
  workers: 8
scraper:
  interval_hours: 12
web:
  addr: ":9090"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Format != "json" {
		t.Errorf("expected format=json, got %q", cfg.Defaults.Format)
	}
	if cfg.Defaults.Workers != 8 {
		t.Errorf("expected workers=8, got %d", cfg.Defaults.Workers)
	}
	if cfg.Scraper.IntervalHours != 12 {
		t.Errorf("expected interval_hours=12, got %d", cfg.Scraper.IntervalHours)
	}
	if cfg.Web.Addr != ":9090" {
		t.Errorf("expected web addr=:9090, got %q", cfg.Web.Addr)
	}

	// Fields absent from the file keep their defaults.
	if len(cfg.Scraper.Sites) != 2 {
		t.Errorf("expected default sites restored, got %v", cfg.Scraper.Sites)
	}
	if cfg.Defaults.MinQualityScore != 50 {
		t.Errorf("expected default min_quality_score restored, got %v", cfg.Defaults.MinQualityScore)
	}
}

func TestLoadConfig_ExplicitZeroScore(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := `
defaults:
  min_quality_score: 0
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Explicit zero must not be clobbered by the default.
	if cfg.Defaults.MinQualityScore != 0 {
		t.Errorf("expected min_quality_score=0, got %v", cfg.Defaults.MinQualityScore)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/chakri_test")
	t.Setenv("MIN_QUALITY_SCORE", "70")
	t.Setenv("SCRAPE_INTERVAL_HOURS", "3")
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("TELEGRAM_CHAT_ID", "-100123456")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.URL != "postgres://localhost/chakri_test" {
		t.Errorf("DATABASE_URL not applied, got %q", cfg.Database.URL)
	}
	if cfg.Defaults.MinQualityScore != 70 {
		t.Errorf("MIN_QUALITY_SCORE not applied, got %v", cfg.Defaults.MinQualityScore)
	}
	if cfg.Scraper.IntervalHours != 3 {
		t.Errorf("SCRAPE_INTERVAL_HOURS not applied, got %d", cfg.Scraper.IntervalHours)
	}
	if !cfg.Telegram.Enabled || cfg.Telegram.BotToken != "test-token" {
		t.Errorf("TELEGRAM_BOT_TOKEN not applied: enabled=%v token=%q", cfg.Telegram.Enabled, cfg.Telegram.BotToken)
	}
	if cfg.Telegram.ChatID != -100123456 {
		t.Errorf("TELEGRAM_CHAT_ID not applied, got %d", cfg.Telegram.ChatID)
	}
}

func TestLoadConfigOrDefault_NonexistentFile(t *testing.T) {
	cfg := LoadConfigOrDefault("/nonexistent/path/config.yaml")
	if cfg == nil {
		t.Fatal("expected non-nil config (fallback to defaults)")
	}
	if cfg.Defaults.Format != "text" {
		t.Errorf("expected default format=text, got %q", cfg.Defaults.Format)
	}
}

func TestLoadConfigOrDefault_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "bad.yaml")

	if err := os.WriteFile(configPath, []byte(":::invalid yaml:::"), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Should fall back to defaults, not panic
	cfg := LoadConfigOrDefault(configPath)
	if cfg == nil {
		t.Fatal("expected non-nil config (fallback to defaults on parse error)")
	}
}

func TestValidateConfig(t *testing.T) {
	valid, _ := LoadConfig("")
	if err := ValidateConfig(valid); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}

	if err := ValidateConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}

	badScore, _ := LoadConfig("")
	badScore.Defaults.MinQualityScore = 150
	if err := ValidateConfig(badScore); err == nil {
		t.Error("expected error for min_quality_score > 100")
	}

	badWorkers, _ := LoadConfig("")
	badWorkers.Defaults.Workers = 0
	if err := ValidateConfig(badWorkers); err == nil {
		t.Error("expected error for workers < 1")
	}

	badTelegram, _ := LoadConfig("")
	badTelegram.Telegram.Enabled = true
	if err := ValidateConfig(badTelegram); err == nil {
		t.Error("expected error for telegram enabled without token")
	}
}
