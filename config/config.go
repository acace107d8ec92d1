package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Capture CaptureConfig `toml:"capture"`
	Storage StorageConfig `toml:"storage"`
	Web     WebConfig     `toml:"web"`
}

type CaptureConfig struct {
	Keyboard     bool   `toml:"keyboard"`
	Mouse        bool   `toml:"mouse"`
	PollInterval string `toml:"poll_interval"`
	// MouseMoves controls whether pointer moves are recorded; they
	// dominate event volume when enabled.
	MouseMoves bool `toml:"mouse_moves"`
}

type StorageConfig struct {
	RetentionDays int `toml:"retention_days"`
	BatchSize     int `toml:"batch_size"`
}

type WebConfig struct {
	Enabled bool `toml:"enabled"`
	Port    int  `toml:"port"`
}

// Default configuration
func defaultConfig() *Config {
	return &Config{
		Capture: CaptureConfig{
			Keyboard:     true,
			Mouse:        true,
			PollInterval: "10ms",
			MouseMoves:   false,
		},
		Storage: StorageConfig{
			RetentionDays: 30,
			BatchSize:     64,
		},
		Web: WebConfig{
			Enabled: true,
			Port:    8090,
		},
	}
}

// PollInterval parses the configured poll interval, falling back to
// 10ms for missing or malformed values.
func (c *Config) PollInterval() time.Duration {
	d, err := time.ParseDuration(c.Capture.PollInterval)
	if err != nil || d <= 0 {
		return 10 * time.Millisecond
	}
	return d
}

// Dir returns the application data directory, creating it if needed.
func Dir() (string, error) {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		appData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
	}

	dir := filepath.Join(appData, "winhook")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return dir, nil
}

// ConfigPath returns the path to the configuration file
func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the configuration from the TOML file
// If the file doesn't exist, it creates it with default values
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	// If config doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := defaultConfig()
		if err := save(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	// Load existing config
	cfg := defaultConfig()
	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return cfg, nil
}

// save writes the configuration to the TOML file
func save(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}
