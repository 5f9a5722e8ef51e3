package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/yiblet/tail/internal/tail"
	"gopkg.in/yaml.v3"
)

// Header modes
const (
	HeadersAuto   = "auto"
	HeadersAlways = "always"
	HeadersNever  = "never"
)

const (
	DefaultJournalLimit = 100
	MaxJournalLimit     = 10000
)

// Config represents the tail defaults file
type Config struct {
	Lines     int           `yaml:"lines" toml:"lines"`
	Headers   string        `yaml:"headers" toml:"headers"`
	BlockSize int           `yaml:"block_size" toml:"block_size"`
	Mmap      bool          `yaml:"mmap" toml:"mmap"`
	Journal   JournalConfig `yaml:"journal" toml:"journal"`
}

// JournalConfig controls the run journal
type JournalConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Path    string `yaml:"path,omitempty" toml:"path,omitempty"`
	Limit   int    `yaml:"limit" toml:"limit"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Lines:     tail.DefaultCount,
		Headers:   HeadersAuto,
		BlockSize: tail.DefaultBlockSize,
		Journal: JournalConfig{
			Limit: DefaultJournalLimit,
		},
	}
}

// ConfigManager manages configuration persistence
type ConfigManager struct {
	configPath string
}

// NewConfigManager creates a manager for the default config path:
// $XDG_CONFIG_HOME/tail/config.yaml, or ~/.config/tail/config.yaml.
func NewConfigManager() (*ConfigManager, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return &ConfigManager{
		configPath: filepath.Join(dir, "config.yaml"),
	}, nil
}

// NewConfigManagerWithPath creates a config manager with custom config path
func NewConfigManagerWithPath(configPath string) *ConfigManager {
	return &ConfigManager{
		configPath: configPath,
	}
}

// ConfigDir returns the directory holding tail's config and journal.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tail"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "tail"), nil
}

// Load reads the configuration from file, or returns default if file doesn't exist.
// Fields missing from the file keep their default values.
func (cm *ConfigManager) Load() (*Config, error) {
	data, err := os.ReadFile(cm.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if cm.isTOML() {
		err = toml.Unmarshal(data, config)
	} else {
		err = yaml.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cm.validateAndSetDefaults(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save writes the configuration to file
func (cm *ConfigManager) Save(config *Config) error {
	if err := cm.validateAndSetDefaults(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	configDir := filepath.Dir(cm.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var data []byte
	var err error
	if cm.isTOML() {
		data, err = toml.Marshal(config)
	} else {
		data, err = yaml.Marshal(config)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(cm.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// validateAndSetDefaults validates configuration and sets defaults for missing fields
func (cm *ConfigManager) validateAndSetDefaults(config *Config) error {
	if config.Lines < 0 {
		return fmt.Errorf("lines must not be negative")
	}

	switch config.Headers {
	case "":
		config.Headers = HeadersAuto
	case HeadersAuto, HeadersAlways, HeadersNever:
	default:
		return fmt.Errorf("headers must be one of %s, %s or %s", HeadersAuto, HeadersAlways, HeadersNever)
	}

	if config.BlockSize == 0 {
		config.BlockSize = tail.DefaultBlockSize
	}
	if config.BlockSize < 0 || config.BlockSize > tail.MaxBlockSize {
		return fmt.Errorf("block_size must be between 1 and %d", tail.MaxBlockSize)
	}

	if config.Journal.Limit == 0 {
		config.Journal.Limit = DefaultJournalLimit
	}
	if config.Journal.Limit < 0 || config.Journal.Limit > MaxJournalLimit {
		return fmt.Errorf("journal.limit must be between 1 and %d", MaxJournalLimit)
	}

	return nil
}

// GetConfigPath returns the path to the config file
func (cm *ConfigManager) GetConfigPath() string {
	return cm.configPath
}

// JournalPath returns the journal database path, defaulting to journal.db
// next to the config file.
func (c *Config) JournalPath(configPath string) string {
	if c.Journal.Path != "" {
		return c.Journal.Path
	}
	return filepath.Join(filepath.Dir(configPath), "journal.db")
}

func (cm *ConfigManager) isTOML() bool {
	return strings.EqualFold(filepath.Ext(cm.configPath), ".toml")
}
