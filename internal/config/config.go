package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the per-directory config file looked up before the user config.
const FileName = ".snav.toml"

// ErrNotFound is returned when an explicitly requested config file is missing.
var ErrNotFound = errors.New("config file not found")

// Config represents the application configuration
type Config struct {
	Keys        KeysConfig        `toml:"keys"`
	Visibility  VisibilityConfig  `toml:"visibility"`
	Navigation  NavigationConfig  `toml:"navigation"`
	Eligibility EligibilityConfig `toml:"eligibility"`
	Debug       DebugConfig       `toml:"debug"`
	Log         LogConfig         `toml:"log"`
}

// KeysConfig maps actions to key names as reported by the terminal
// ("up", "enter", "ctrl+c", "k").
type KeysConfig struct {
	Up       []string `toml:"up"`
	Right    []string `toml:"right"`
	Down     []string `toml:"down"`
	Left     []string `toml:"left"`
	Activate []string `toml:"activate"`
	Dismiss  []string `toml:"dismiss"`
	Dump     []string `toml:"dump"`
	Help     []string `toml:"help"`
	Quit     []string `toml:"quit"`
}

// VisibilityConfig tunes the visibility feed
type VisibilityConfig struct {
	Threshold      float64  `toml:"threshold"`
	Delay          Duration `toml:"delay"`
	TestVisibility bool     `toml:"test_visibility"`
}

// NavigationConfig tunes searches and native scrolling
type NavigationConfig struct {
	MaxDepth   int `toml:"max_depth"`
	ScrollStep int `toml:"scroll_step"`
}

// EligibilityConfig selects navigable elements
type EligibilityConfig struct {
	Selector string `toml:"selector"`
}

// DebugConfig enables diagnostics in the host
type DebugConfig struct {
	HighlightOnscreen bool `toml:"highlight_onscreen"`
}

// LogConfig configures the log file
type LogConfig struct {
	Level  string `toml:"level"`
	File   string `toml:"file"`
	Format string `toml:"format"`
}

// Duration is a time.Duration written as a string such as "100ms".
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service bound to the default location:
// ./.snav.toml when present, otherwise <user config dir>/snav/config.toml.
func NewConfigService() ConfigService {
	if _, err := os.Stat(FileName); err == nil {
		return &configService{filePath: FileName}
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return &configService{filePath: filepath.Join(configDir, "snav", "config.toml")}
}

// NewConfigServiceAt creates a config service bound to path.
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the bound file, falling back to the
// defaults when it does not exist.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, ErrNotFound) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Save saves the configuration to the bound file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys missing from the
// file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid config: %w", err)
	}

	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Keys: KeysConfig{
			Up:       []string{"up", "k"},
			Right:    []string{"right", "l"},
			Down:     []string{"down", "j"},
			Left:     []string{"left", "h"},
			Activate: []string{"enter"},
			Dismiss:  []string{"esc"},
			Dump:     []string{"v"},
			Help:     []string{"?"},
			Quit:     []string{"q", "ctrl+c"},
		},
		Visibility: VisibilityConfig{
			Threshold: 0.01,
			Delay:     Duration{100 * time.Millisecond},
		},
		Navigation: NavigationConfig{
			MaxDepth:   256,
			ScrollStep: 3,
		},
		Log: LogConfig{
			File:   "snav.log",
			Format: "json",
		},
	}
}

// Validate checks ranges and that no key is bound to two actions.
func (c *Config) Validate() error {
	var problems []string

	if c.Visibility.Threshold <= 0 || c.Visibility.Threshold > 1 {
		problems = append(problems, fmt.Sprintf("visibility.threshold must be in (0, 1], got %v", c.Visibility.Threshold))
	}
	if c.Visibility.Delay.Duration < 0 {
		problems = append(problems, "visibility.delay must not be negative")
	}
	if c.Navigation.MaxDepth <= 0 {
		problems = append(problems, "navigation.max_depth must be positive")
	}
	if c.Navigation.ScrollStep <= 0 {
		problems = append(problems, "navigation.scroll_step must be positive")
	}
	switch c.Log.Format {
	case "", "json", "console":
	default:
		problems = append(problems, fmt.Sprintf("log.format must be json or console, got %q", c.Log.Format))
	}

	owner := map[string]string{}
	for action, keys := range c.Keys.byAction() {
		for _, k := range keys {
			if prev, ok := owner[k]; ok && prev != action {
				a, b := prev, action
				if b < a {
					a, b = b, a
				}
				problems = append(problems, fmt.Sprintf("key %q is bound to both %s and %s", k, a, b))
				continue
			}
			owner[k] = action
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func (k KeysConfig) byAction() map[string][]string {
	return map[string][]string{
		"up":       k.Up,
		"right":    k.Right,
		"down":     k.Down,
		"left":     k.Left,
		"activate": k.Activate,
		"dismiss":  k.Dismiss,
		"dump":     k.Dump,
		"help":     k.Help,
		"quit":     k.Quit,
	}
}
