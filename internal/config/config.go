package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/905timur/reddit-content-cleaner/internal/domain"
)

const DefaultPath = "config.json"

// File mirrors config.json on disk. Delays are whole seconds.
type File struct {
	ReplacementText  string   `json:"replacement_text"`
	MinDelay         int      `json:"min_delay"`
	MaxDelay         int      `json:"max_delay"`
	ExcludedSubs     []string `json:"excluded_subs"`
	ExcludedKeywords []string `json:"excluded_keywords"`
	BackupEnabled    bool     `json:"backup_enabled"`
	DryRun           bool     `json:"dry_run"`
	BannedMode       bool     `json:"banned_mode"`
}

func defaults() File {
	return File{
		ReplacementText:  ".",
		MinDelay:         6,
		MaxDelay:         8,
		ExcludedSubs:     []string{},
		ExcludedKeywords: []string{},
		BackupEnabled:    true,
	}
}

// Load reads path, writing it out with defaults first if it doesn't exist.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := defaults()
		out, merr := json.MarshalIndent(cfg, "", "    ")
		if merr != nil {
			return File{}, merr
		}
		if werr := os.WriteFile(path, out, 0644); werr != nil {
			return File{}, werr
		}
		return cfg, nil
	}
	if err != nil {
		return File{}, err
	}

	var cfg File
	if err := json.Unmarshal(data, &cfg); err != nil {
		return File{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// RunConfig converts the file values into validated per-run settings.
func (f File) RunConfig() (domain.RunConfig, error) {
	cfg := domain.RunConfig{
		ReplacementText: f.ReplacementText,
		MinDelay:        time.Duration(f.MinDelay) * time.Second,
		MaxDelay:        time.Duration(f.MaxDelay) * time.Second,
		DryRun:          f.DryRun,
		BackupEnabled:   f.BackupEnabled,
		BannedMode:      f.BannedMode,
	}
	if err := cfg.Validate(); err != nil {
		return domain.RunConfig{}, err
	}
	return cfg, nil
}

// Credentials come from the environment; main loads .env first.
type Credentials struct {
	ClientID     string `envconfig:"REDDIT_CLIENT_ID" required:"true"`
	ClientSecret string `envconfig:"REDDIT_CLIENT_SECRET" required:"true"`
	Username     string `envconfig:"REDDIT_USERNAME" required:"true"`
	Password     string `envconfig:"REDDIT_PASSWORD" required:"true"`
	UserAgent    string `envconfig:"REDDIT_USER_AGENT" default:"reddit-content-cleaner/1.0"`
}

func LoadCredentials() (Credentials, error) {
	var c Credentials
	if err := envconfig.Process("", &c); err != nil {
		return Credentials{}, err
	}
	return c, nil
}
