// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Default pipeline settings
	Defaults struct {
		Format          string  `yaml:"format"`
		MinQualityScore float64 `yaml:"min_quality_score"`
		KeepLowQuality  bool    `yaml:"keep_low_quality"`
		Workers         int     `yaml:"workers"`
		Verbose         bool    `yaml:"verbose"`
		Debug           bool    `yaml:"debug"`
		NoColor         bool    `yaml:"no_color"`
	} `yaml:"defaults"`

	// Scraper configurations
	Scraper struct {
		Sites          []string `yaml:"sites"`
		IntervalHours  int      `yaml:"interval_hours"`
		TimeoutSeconds int      `yaml:"timeout_seconds"`
		MaxRetries     int      `yaml:"max_retries"`
	} `yaml:"scraper"`

	// Persistence configurations
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`

	Redis struct {
		URL        string `yaml:"url"`
		TTLMinutes int    `yaml:"ttl_minutes"`
	} `yaml:"redis"`

	// Telegram alert configurations
	Telegram struct {
		Enabled  bool                `yaml:"enabled"`
		BotToken string              `yaml:"bot_token"`
		ChatID   int64               `yaml:"chat_id"`
		Searches []SavedSearchConfig `yaml:"searches"`
	} `yaml:"telegram"`

	// Web server configurations
	Web struct {
		Addr string `yaml:"addr"`
	} `yaml:"web"`
}

// SavedSearchConfig is a subscriber query from the config file. Empty lists
// match anything; a job matching any configured search is delivered.
type SavedSearchConfig struct {
	Keywords    []string `yaml:"keywords"`
	Departments []string `yaml:"departments"`
	Locations   []string `yaml:"locations"`
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	// Default configuration
	config := &Config{}

	// Set default values
	config.Defaults.Format = "text"
	config.Defaults.MinQualityScore = 50
	config.Defaults.KeepLowQuality = false
	config.Defaults.Workers = 4
	config.Defaults.Verbose = false
	config.Defaults.Debug = false
	config.Defaults.NoColor = false

	config.Scraper.Sites = []string{"govbd", "bdjobs"}
	config.Scraper.IntervalHours = 6
	config.Scraper.TimeoutSeconds = 30
	config.Scraper.MaxRetries = 3

	config.Redis.TTLMinutes = 10
	config.Web.Addr = ":8080"

	// If no config file specified, apply env overrides and return
	if configPath == "" {
		applyEnvOverrides(config)
		return config, nil
	}

	// Read config file
	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Store default values before unmarshaling
	defaultSites := config.Scraper.Sites
	defaultMinQuality := config.Defaults.MinQualityScore

	// Parse YAML
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Restore defaults if not explicitly set in config file
	// This handles the case where YAML unmarshaling zeroes fields
	// that are not present in the config file
	if !containsField(data, "scraper", "sites") {
		config.Scraper.Sites = defaultSites
	}
	if !containsField(data, "defaults", "min_quality_score") {
		config.Defaults.MinQualityScore = defaultMinQuality
	}

	// Environment variables win over the config file, matching how the
	// pipeline runs in containers
	applyEnvOverrides(config)

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	// Check current directory first - prioritize config.yaml
	if fileExists("config.yaml") {
		return "config.yaml"
	}
	if fileExists("chakri.yaml") {
		return "chakri.yaml"
	}
	if fileExists("chakri.yml") {
		return "chakri.yml"
	}

	// Check for .chakri-scan.yaml in current directory (project-specific config)
	if fileExists(".chakri-scan.yaml") {
		return ".chakri-scan.yaml"
	}
	if fileExists(".chakri-scan.yml") {
		return ".chakri-scan.yml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	// Check legacy location in home directory
	homeConfig := filepath.Join(home, ".chakri.yaml")
	if fileExists(homeConfig) {
		return homeConfig
	}

	// Check XDG config directory
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	xdgConfigFile := filepath.Join(xdgConfig, "chakri-scan", "config.yaml")
	if fileExists(xdgConfigFile) {
		return xdgConfigFile
	}

	return ""
}

// applyEnvOverrides layers environment variables over the loaded config.
// A .env file in the working directory is loaded first when present;
// real environment variables still take precedence over it.
func applyEnvOverrides(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("DATABASE_URL"); v != "" {
		config.Database.URL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		config.Redis.URL = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		config.Telegram.BotToken = v
		config.Telegram.Enabled = true
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Telegram.ChatID = id
		}
	}
	if v := os.Getenv("SCRAPE_INTERVAL_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			config.Scraper.IntervalHours = hours
		}
	}
	if v := os.Getenv("MIN_QUALITY_SCORE"); v != "" {
		if score, err := strconv.ParseFloat(v, 64); err == nil {
			config.Defaults.MinQualityScore = score
		}
	}
	if v := os.Getenv("KEEP_LOW_QUALITY"); v != "" {
		if keep, err := strconv.ParseBool(v); err == nil {
			config.Defaults.KeepLowQuality = keep
		}
	}
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if config.Defaults.MinQualityScore < 0 || config.Defaults.MinQualityScore > 100 {
		return fmt.Errorf("min_quality_score must be between 0 and 100, got %v", config.Defaults.MinQualityScore)
	}
	if config.Defaults.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", config.Defaults.Workers)
	}
	if config.Scraper.IntervalHours < 1 {
		return fmt.Errorf("scraper interval_hours must be at least 1, got %d", config.Scraper.IntervalHours)
	}
	if config.Telegram.Enabled && config.Telegram.BotToken == "" {
		return fmt.Errorf("telegram enabled but bot_token is empty")
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return !info.IsDir()
}

// containsField checks if a nested field exists in the YAML data
func containsField(data []byte, path ...string) bool {
	var yamlData map[string]interface{}
	err := yaml.Unmarshal(data, &yamlData)
	if err != nil {
		return false
	}

	current := yamlData
	for i, key := range path {
		if i == len(path)-1 {
			// Last key - check if it exists
			_, exists := current[key]
			return exists
		}
		// Intermediate key - navigate deeper
		if next, ok := current[key].(map[string]interface{}); ok {
			current = next
		} else {
			return false
		}
	}
	return false
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard
// locations when configFile is empty). If loading fails, it returns a default
// configuration. This is the shared helper used by both the CLI and the web server.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		// Fall back to defaults; callers should not crash on a missing or bad config file.
		cfg, _ = LoadConfig("")
	}
	return cfg
}
