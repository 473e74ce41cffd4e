package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the user-editable settings file (~/.elmora/config.json).
type Config struct {
	DataDir       string         `json:"dataDir,omitempty"`       // record store location, defaults next to the config
	ListenAddr    string         `json:"listenAddr,omitempty"`    // HTTP API bind address
	Tokens        []string       `json:"tokens,omitempty"`        // HTTP API bearer tokens
	UsualWakeTime string         `json:"usualWakeTime,omitempty"` // 24h "HH:MM", the "usual time" alarm
	Caregiver     *WebhookConfig `json:"caregiver,omitempty"`     // optional caregiver notification channel
}

// WebhookConfig describes a caregiver webhook endpoint.
type WebhookConfig struct {
	URL    string            `json:"url"`
	Format string            `json:"format"` // "slack", "telegram", "custom"
	Extra  map[string]string `json:"extra,omitempty"`
}

const (
	DefaultListenAddr    = "127.0.0.1:8733"
	DefaultUsualWakeTime = "07:00"
)

// ConfigPath is where the config lives. Variable so tests can point it at a
// temp dir.
var ConfigPath string

func init() {
	home, _ := os.UserHomeDir()
	ConfigPath = filepath.Join(home, ".elmora", "config.json")
}

// LoadConfig reads the config file, returning defaults when it is missing.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ListenAddr:    DefaultListenAddr,
		UsualWakeTime: DefaultUsualWakeTime,
	}

	data, err := os.ReadFile(ConfigPath)
	if os.IsNotExist(err) {
		cfg.DataDir = filepath.Dir(ConfigPath)
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ConfigPath, err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Dir(ConfigPath)
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.UsualWakeTime == "" {
		cfg.UsualWakeTime = DefaultUsualWakeTime
	}
	return cfg, nil
}

// SaveConfig writes the config file, creating its directory if needed.
func SaveConfig(cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(ConfigPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(ConfigPath, data, 0644)
}

// WakeTime parses UsualWakeTime; a malformed value falls back to 7:00.
func (c *Config) WakeTime() (hour, minute int) {
	if _, err := fmt.Sscanf(c.UsualWakeTime, "%d:%d", &hour, &minute); err != nil {
		return 7, 0
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 7, 0
	}
	return hour, minute
}
