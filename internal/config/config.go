// Package config loads application configuration from an optional YAML
// file plus PROJORG_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds everything tunable. Defaults mirror the original desktop
// application's settings.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Backups BackupConfig  `yaml:"backups"`
	Notify  NotifyConfig  `yaml:"notify"`
	Filters FiltersConfig `yaml:"filters"`
	UI      UIConfig      `yaml:"ui"`
}

type DataConfig struct {
	File string `yaml:"file"`
}

type BackupConfig struct {
	Dir  string `yaml:"dir"`
	Keep int    `yaml:"keep"`
}

type NotifyConfig struct {
	RemindDaysBefore     int  `yaml:"remind_days_before"`
	CheckIntervalMinutes int  `yaml:"check_interval_minutes"`
	DailySummary         bool `yaml:"daily_summary"`
}

type FiltersConfig struct {
	RecentDays  int `yaml:"recent_days"`
	StalledDays int `yaml:"stalled_days"`
}

type UIConfig struct {
	Theme string `yaml:"theme"`
}

// Load reads configuration, layering defaults, an optional YAML file
// (PROJORG_CONFIG_PATH or ./projorg.yaml) and environment overrides.
func Load() (Config, error) {
	cfg := Config{
		Data:    DataConfig{File: "projects_data.json"},
		Backups: BackupConfig{Dir: "backups", Keep: 10},
		Notify: NotifyConfig{
			RemindDaysBefore:     1,
			CheckIntervalMinutes: 60,
			DailySummary:         true,
		},
		Filters: FiltersConfig{RecentDays: 3, StalledDays: 14},
		UI:      UIConfig{Theme: "default"},
	}

	path := os.Getenv("PROJORG_CONFIG_PATH")
	if path == "" {
		if _, err := os.Stat("projorg.yaml"); err == nil {
			path = "projorg.yaml"
		}
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if v := os.Getenv("PROJORG_DATA_FILE"); v != "" {
		cfg.Data.File = v
	}
	if v := os.Getenv("PROJORG_BACKUP_DIR"); v != "" {
		cfg.Backups.Dir = v
	}
	if v := os.Getenv("PROJORG_BACKUP_KEEP"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PROJORG_BACKUP_KEEP: %w", err)
		}
		cfg.Backups.Keep = n
	}
	if v := os.Getenv("PROJORG_REMIND_DAYS_BEFORE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PROJORG_REMIND_DAYS_BEFORE: %w", err)
		}
		cfg.Notify.RemindDaysBefore = n
	}
	if v := os.Getenv("PROJORG_THEME"); v != "" {
		cfg.UI.Theme = v
	}

	// Keep the backup dir next to the data file when both are relative and
	// the data file lives elsewhere.
	if !filepath.IsAbs(cfg.Backups.Dir) && filepath.Dir(cfg.Data.File) != "." {
		cfg.Backups.Dir = filepath.Join(filepath.Dir(cfg.Data.File), cfg.Backups.Dir)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
