// Package config loads growtext settings from config files, the environment
// and command line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sst/growingtext/pkg/growing"
)

// ViewConfig mirrors growing.Configuration with string enums, plus the
// placeholder text.
type ViewConfig struct {
	MinLines              int    `json:"minLines" toml:"minLines" yaml:"minLines"`
	MaxLines              int    `json:"maxLines" toml:"maxLines" yaml:"maxLines"`
	AutoScrollToBottom    bool   `json:"autoScrollToBottom" toml:"autoScrollToBottom" yaml:"autoScrollToBottom"`
	FlashScrollIndicators bool   `json:"flashScrollIndicators" toml:"flashScrollIndicators" yaml:"flashScrollIndicators"`
	PlaceholderHiding     string `json:"placeholderHiding" toml:"placeholderHiding" yaml:"placeholderHiding"`
	PlaceholderLayout     string `json:"placeholderLayout" toml:"placeholderLayout" yaml:"placeholderLayout"`
	Placeholder           string `json:"placeholder,omitempty" toml:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// TUIConfig defines the configuration for the Terminal User Interface.
type TUIConfig struct {
	Theme string `json:"theme,omitempty" toml:"theme,omitempty" yaml:"theme,omitempty"`
}

// HistoryConfig controls where submitted messages are kept between runs.
// An empty Dir means history.DefaultDir.
type HistoryConfig struct {
	Enabled bool   `json:"enabled" toml:"enabled" yaml:"enabled"`
	Dir     string `json:"dir,omitempty" toml:"dir,omitempty" yaml:"dir,omitempty"`
	Limit   int    `json:"limit" toml:"limit" yaml:"limit"`
}

// Config is the main configuration structure for the application.
type Config struct {
	WorkingDir string        `json:"-" toml:"-" yaml:"-"`
	Debug      bool          `json:"debug,omitempty" toml:"debug,omitempty" yaml:"debug,omitempty"`
	View       ViewConfig    `json:"view" toml:"view" yaml:"view"`
	TUI        TUIConfig     `json:"tui" toml:"tui" yaml:"tui"`
	History    HistoryConfig `json:"history" toml:"history" yaml:"history"`
}

const (
	appName            = "growtext"
	defaultTheme       = "mocha"
	defaultPlaceholder = "Type a message"
	defaultHistory     = 200
)

// LoadOptions selects where settings come from. Flags are bound by config
// key, for example "view.maxLines".
type LoadOptions struct {
	WorkingDir string
	ConfigFile string
	Debug      bool
	Flags      map[string]*pflag.Flag
}

var (
	cfg *Config
	v   *viper.Viper
)

// Default returns the settings used when nothing is configured.
func Default() *Config {
	view := growing.DefaultConfiguration()
	return &Config{
		View: ViewConfig{
			MinLines:              view.MinLines,
			MaxLines:              view.MaxLines,
			AutoScrollToBottom:    view.AutoScrollToBottom,
			FlashScrollIndicators: view.FlashScrollIndicators,
			PlaceholderHiding:     view.PlaceholderHiding.String(),
			PlaceholderLayout:     view.PlaceholderLayout.String(),
			Placeholder:           defaultPlaceholder,
		},
		TUI:     TUIConfig{Theme: defaultTheme},
		History: HistoryConfig{Enabled: true, Limit: defaultHistory},
	}
}

// Load reads the configuration. Later sources win: defaults, the global
// config file, a config file in the working directory, environment
// variables, then flags. A missing config file is not an error.
func Load(opts LoadOptions) (*Config, error) {
	v = viper.New()
	cfg = &Config{WorkingDir: opts.WorkingDir}

	configureViper(v, opts.ConfigFile)
	setDefaults(v, opts.Debug)

	if err := readConfig(v.ReadInConfig()); err != nil {
		return cfg, err
	}
	if opts.ConfigFile == "" && opts.WorkingDir != "" {
		mergeLocalConfig(v, opts.WorkingDir)
	}

	for key, flag := range opts.Flags {
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return cfg, fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if opts.Debug {
		cfg.Debug = true
	}

	if err := Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func configureViper(v *viper.Viper, configFile string) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(fmt.Sprintf(".%s", appName))
		v.AddConfigPath("$HOME")
		v.AddConfigPath(fmt.Sprintf("$XDG_CONFIG_HOME/%s", appName))
		v.AddConfigPath(fmt.Sprintf("$HOME/.config/%s", appName))
	}
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func setDefaults(v *viper.Viper, debug bool) {
	d := Default()
	v.SetDefault("debug", debug)
	v.SetDefault("view.minLines", d.View.MinLines)
	v.SetDefault("view.maxLines", d.View.MaxLines)
	v.SetDefault("view.autoScrollToBottom", d.View.AutoScrollToBottom)
	v.SetDefault("view.flashScrollIndicators", d.View.FlashScrollIndicators)
	v.SetDefault("view.placeholderHiding", d.View.PlaceholderHiding)
	v.SetDefault("view.placeholderLayout", d.View.PlaceholderLayout)
	v.SetDefault("view.placeholder", d.View.Placeholder)
	v.SetDefault("tui.theme", d.TUI.Theme)
	v.SetDefault("history.enabled", d.History.Enabled)
	v.SetDefault("history.dir", d.History.Dir)
	v.SetDefault("history.limit", d.History.Limit)
}

// readConfig handles the result of reading a configuration file.
func readConfig(err error) error {
	if err == nil {
		return nil
	}

	// It's okay if the config file doesn't exist
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("failed to read config: %w", err)
}

// mergeLocalConfig loads and merges configuration from the working directory.
func mergeLocalConfig(v *viper.Viper, workingDir string) {
	local := viper.New()
	local.SetConfigName(fmt.Sprintf(".%s", appName))
	local.AddConfigPath(workingDir)

	if err := local.ReadInConfig(); err == nil {
		if err := v.MergeConfigMap(local.AllSettings()); err != nil {
			slog.Warn("failed to merge local config", "dir", workingDir, "error", err)
		}
	}
}

// Validate checks that a configuration has been loaded.
func Validate() error {
	if cfg == nil {
		return fmt.Errorf("config not loaded")
	}
	return nil
}

// Get returns the current configuration.
func Get() *Config {
	return cfg
}

// Growing converts the view settings for growing.New. Problems are logged
// and coerced rather than returned.
func (c *Config) Growing() growing.Configuration {
	out := growing.DefaultConfiguration()
	out.MinLines = c.View.MinLines
	out.MaxLines = c.View.MaxLines
	out.AutoScrollToBottom = c.View.AutoScrollToBottom
	out.FlashScrollIndicators = c.View.FlashScrollIndicators

	if mode, err := growing.ParsePlaceholderHidingMode(c.View.PlaceholderHiding); err != nil {
		slog.Warn("invalid view.placeholderHiding, using default", "error", err)
	} else {
		out.PlaceholderHiding = mode
	}
	if layout, err := growing.ParseHorizontalLayout(c.View.PlaceholderLayout); err != nil {
		slog.Warn("invalid view.placeholderLayout, using default", "error", err)
	} else {
		out.PlaceholderLayout = layout
	}

	if err := out.Validate(); err != nil {
		slog.Warn("invalid view line counts, coercing", "error", err)
	}
	return out.Normalized()
}

// SaveConfig writes c to path as TOML. It refuses to overwrite an existing
// file.
func SaveConfig(path string, c *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// DefaultPath is where `config init` writes when no path is given.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, fmt.Sprintf(".%s.toml", appName)), nil
}

// UpdateTheme sets the theme in memory and persists it to the config file in
// use, creating a TOML file in the home directory when there is none.
func UpdateTheme(themeName string) error {
	if cfg == nil || v == nil {
		return fmt.Errorf("config not loaded")
	}
	cfg.TUI.Theme = themeName
	v.Set("tui.theme", themeName)

	if used := v.ConfigFileUsed(); used != "" {
		if _, err := os.Stat(used); err == nil {
			if err := v.WriteConfig(); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}
			return nil
		}
	}

	path, err := DefaultPath()
	if err != nil {
		return err
	}
	slog.Info("config file not found, creating new one", "path", path)
	return SaveConfig(path, cfg)
}
