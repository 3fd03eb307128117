package config

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/renato0307/cardwatch/internal/adapters/cardapi"
	"github.com/renato0307/cardwatch/internal/adapters/redisstore"
	"github.com/renato0307/cardwatch/internal/paths"
)

// Ledger backends
const (
	LedgerBackendMemory = "memory"
	LedgerBackendRedis  = "redis"
	LedgerBackendSQLite = "sqlite"
)

// Settings represents the structure of ~/.cardwatch/settings.json
type Settings struct {
	BaseURL              string `json:"base_url,omitempty"`
	Cookie               string `json:"cookie,omitempty"`
	Debug                *bool  `json:"debug,omitempty"`
	FetchMethod          string `json:"fetch_method,omitempty"`
	Format               string `json:"format,omitempty"`
	LedgerBackend        string `json:"ledger_backend,omitempty"`
	MaxLogFiles          *int   `json:"max_log_files,omitempty"`
	NearExpiryDays       *int   `json:"near_expiry_days,omitempty"`
	RedisAddr            string `json:"redis_addr,omitempty"`
	RedisDB              *int   `json:"redis_db,omitempty"`
	RedisPassword        string `json:"redis_password,omitempty"`
	TimeoutSeconds       *int   `json:"timeout_seconds,omitempty"`
	WatchIntervalSeconds *int   `json:"watch_interval_seconds,omitempty"`
}

// LoadSettings loads settings from $CARDWATCH_HOME/settings.json (or ~/.cardwatch/settings.json if not set)
// Returns empty Settings if file doesn't exist (not an error)
func LoadSettings() (*Settings, error) {
	path := paths.GetSettingsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil // Not an error, use defaults
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	settings.FetchMethod = strings.ToUpper(settings.FetchMethod)
	settings.LedgerBackend = strings.ToLower(settings.LedgerBackend)

	return &settings, nil
}

// SaveSettings saves settings to $CARDWATCH_HOME/settings.json.
// The file holds the session credential, so it is only readable by the owner.
func SaveSettings(settings *Settings) error {
	path := paths.GetSettingsPath()
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// CardAPI builds the client configuration from the settings.
// Unset values fall back to the operator defaults.
func (s *Settings) CardAPI() cardapi.Config {
	cfg := cardapi.DefaultConfig(strings.TrimSpace(s.Cookie))

	if s.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(s.BaseURL, "/")
		cfg.Referer = cfg.BaseURL + cardapi.DefaultRefererPath
	}
	if s.FetchMethod != "" {
		cfg.FetchMethod = s.FetchMethod
	}
	if s.TimeoutSeconds != nil {
		cfg.Timeout = time.Duration(*s.TimeoutSeconds) * time.Second
	}

	return cfg
}

// Redis builds the redis ledger configuration from the settings
func (s *Settings) Redis() redisstore.Config {
	cfg := redisstore.Config{
		Addr:     s.RedisAddr,
		Password: s.RedisPassword,
	}
	if s.RedisDB != nil {
		cfg.DB = *s.RedisDB
	}
	return cfg
}

// Ledger returns the configured ledger backend, sqlite by default
func (s *Settings) Ledger() string {
	if s.LedgerBackend == "" {
		return LedgerBackendSQLite
	}
	return s.LedgerBackend
}

// Validate checks values that cannot be repaired with a default
func (s *Settings) Validate() error {
	switch s.Ledger() {
	case LedgerBackendMemory, LedgerBackendRedis, LedgerBackendSQLite:
	default:
		return fmt.Errorf("unknown ledger_backend %q (use sqlite, redis or memory)", s.LedgerBackend)
	}
	if s.Ledger() == LedgerBackendRedis && s.RedisAddr == "" {
		return fmt.Errorf("ledger_backend is redis but redis_addr is not set")
	}
	if s.FetchMethod != "" && s.FetchMethod != http.MethodGet && s.FetchMethod != http.MethodPost {
		return fmt.Errorf("unsupported fetch_method %q (use GET or POST)", s.FetchMethod)
	}
	if s.NearExpiryDays != nil && *s.NearExpiryDays < 0 {
		return fmt.Errorf("near_expiry_days must not be negative, got %d", *s.NearExpiryDays)
	}
	if s.TimeoutSeconds != nil && *s.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", *s.TimeoutSeconds)
	}
	return nil
}
