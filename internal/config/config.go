package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vocalq/dialctl/internal/engine"
)

const (
	appName    = "dialctl"
	configFile = "config.yaml"

	// EngineURLEnvVar overrides the configured engine URL when set.
	EngineURLEnvVar = "DIALCTL_ENGINE_URL"

	// DefaultPollIntervalSeconds is the status refresh period of the console.
	DefaultPollIntervalSeconds = 3
)

// Mutex for thread-safe file operations
var fileMutex sync.Mutex

// EngineSettings selects which engine instance the console talks to and how
// often its status is refreshed.
type EngineSettings struct {
	// URL is the engine base URL (e.g. "http://localhost:8000")
	URL string `yaml:"url"`

	// PollIntervalSeconds is the status poll period in seconds
	PollIntervalSeconds int `yaml:"poll_interval_seconds"`
}

// Settings is the persisted dialctl configuration.
type Settings struct {
	// Version is the config schema version (currently 1)
	Version int `yaml:"version"`

	// Engine holds engine connection settings
	Engine EngineSettings `yaml:"engine"`
}

// DefaultSettings returns a settings struct with all defaults applied.
func DefaultSettings() *Settings {
	return &Settings{
		Version: 1,
		Engine: EngineSettings{
			URL:                 engine.DefaultBaseURL,
			PollIntervalSeconds: DefaultPollIntervalSeconds,
		},
	}
}

// GetConfigDir returns the OS-appropriate configuration directory:
//   - Linux: $XDG_CONFIG_HOME/dialctl or $HOME/.config/dialctl
//   - macOS: $HOME/.config/dialctl (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\dialctl
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// ensureConfigDir creates the configuration directory if it doesn't exist.
func ensureConfigDir() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return nil
}

// Load reads the settings file from disk.
// A missing file is not an error: defaults are returned.
func Load() (*Settings, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes settings from YAML and fills in defaults for absent fields.
func Parse(data []byte) (*Settings, error) {
	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if settings.Version == 0 {
		settings.Version = 1
	}
	if settings.Version != 1 {
		return nil, fmt.Errorf("unsupported config version: %d (expected 1)", settings.Version)
	}

	if settings.Engine.URL == "" {
		settings.Engine.URL = engine.DefaultBaseURL
	}
	if settings.Engine.PollIntervalSeconds <= 0 {
		settings.Engine.PollIntervalSeconds = DefaultPollIntervalSeconds
	}

	return &settings, nil
}

// Save writes the settings to disk.
// Performs an atomic write to prevent corruption on crash.
func (s *Settings) Save() error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := ensureConfigDir(); err != nil {
		return fmt.Errorf("failed to ensure config directory exists: %w", err)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Dialctl Configuration File
# Selects the outbound call engine instance this console controls.
#
# Location: ` + configPath + `

`)
	data = append(header, data...)

	// Write to temporary file first (atomic write)
	tmpPath := configPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, configPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}

// ResolveEngineURL applies the override order for the engine base URL:
// command-line flag, then DIALCTL_ENGINE_URL, then the settings file.
func ResolveEngineURL(flagValue string, settings *Settings) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EngineURLEnvVar); env != "" {
		return env
	}
	if settings != nil && settings.Engine.URL != "" {
		return settings.Engine.URL
	}
	return engine.DefaultBaseURL
}
