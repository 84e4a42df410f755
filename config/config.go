// Package config loads urlview settings from defaults, an optional YAML file,
// URLVIEW_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/jongio/urlview/browser"
	"github.com/jongio/urlview/fileutil"
	"github.com/jongio/urlview/logutil"
	"github.com/jongio/urlview/showurl"
	"github.com/jongio/urlview/urlutil"
)

// EnvConfig names the environment variable holding the config file path.
const EnvConfig = "URLVIEW_CONFIG"

// Config holds application configuration.
type Config struct {
	Log      LogConfig       `mapstructure:"log" yaml:"log" json:"log"`
	ShowURL  ShowURLConfig   `mapstructure:"show_url" yaml:"show_url" json:"show_url"`
	Browser  BrowserConfig   `mapstructure:"browser" yaml:"browser" json:"browser"`
	Commands []CommandConfig `mapstructure:"commands" yaml:"commands" json:"commands"`
	Listen   ListenConfig    `mapstructure:"listen" yaml:"listen" json:"listen"`
	Metrics  MetricsConfig   `mapstructure:"metrics" yaml:"metrics" json:"metrics"`
	Notify   NotifyConfig    `mapstructure:"notify" yaml:"notify" json:"notify"`
}

// LogConfig holds logging settings. Debug overrides Level.
type LogConfig struct {
	Debug      bool   `mapstructure:"debug" yaml:"debug" json:"debug"`
	Level      string `mapstructure:"level" yaml:"level" json:"level"`
	Structured bool   `mapstructure:"structured" yaml:"structured" json:"structured"`
}

// ShowURLConfig holds settings for the built-in show_url viewer.
type ShowURLConfig struct {
	Endpoint string        `mapstructure:"endpoint" yaml:"endpoint" json:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
}

// BrowserConfig holds settings for the browser viewer.
type BrowserConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Priority int    `mapstructure:"priority" yaml:"priority" json:"priority"`
	Target   string `mapstructure:"target" yaml:"target" json:"target"`
}

// CommandConfig declares an external program used as a viewer.
type CommandConfig struct {
	Name     string        `mapstructure:"name" yaml:"name" json:"name"`
	Priority int           `mapstructure:"priority" yaml:"priority" json:"priority"`
	Command  string        `mapstructure:"command" yaml:"command" json:"command"`
	Args     []string      `mapstructure:"args" yaml:"args,omitempty" json:"args,omitempty"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// ListenConfig holds settings for the show_url receiver. With Launch set,
// received URLs are opened in the browser; otherwise they are only printed.
type ListenConfig struct {
	Address   string  `mapstructure:"address" yaml:"address" json:"address"`
	RateLimit float64 `mapstructure:"rate_limit" yaml:"rate_limit" json:"rate_limit"`
	Burst     int     `mapstructure:"burst" yaml:"burst" json:"burst"`
	Launch    bool    `mapstructure:"launch" yaml:"launch" json:"launch"`
}

// MetricsConfig toggles Prometheus counters.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
}

// NotifyConfig toggles the desktop notification on unhandled URLs.
type NotifyConfig struct {
	OnFailure bool `mapstructure:"on_failure" yaml:"on_failure" json:"on_failure"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
		},
		ShowURL: ShowURLConfig{
			Endpoint: showurl.DefaultEndpoint,
			Timeout:  showurl.DefaultTimeout,
		},
		Browser: BrowserConfig{
			Enabled:  false,
			Priority: -10,
			Target:   string(browser.TargetDefault),
		},
		Listen: ListenConfig{
			Address:   showurl.DefaultAddress,
			RateLimit: 10,
			Burst:     20,
			Launch:    true,
		},
	}
}

// flagKeys maps global flag names to config keys.
var flagKeys = map[string]string{
	"debug":           "log.debug",
	"structured-logs": "log.structured",
	"notify":          "notify.on_failure",
	"address":         "listen.address",
}

// Options controls where Load looks for settings.
type Options struct {
	// Path is an explicit config file. Empty falls back to $URLVIEW_CONFIG,
	// then DefaultPath. An explicit file must exist; the default need not.
	Path string
	// Flags, when set, override file and env values for the keys in flagKeys.
	Flags *pflag.FlagSet
}

// DefaultPath returns ~/.config/urlview/config.yaml, or "" when the user
// config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "urlview", "config.yaml")
}

// Load reads configuration. Env var overrides use prefix URLVIEW_.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetConfigType("yaml")
	path, explicit := resolvePath(opts.Path)
	if path != "" {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("URLVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("log.debug", "URLVIEW_LOG_DEBUG", logutil.EnvDebug); err != nil {
		return nil, fmt.Errorf("binding %s: %w", logutil.EnvDebug, err)
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		if err := v.ReadInConfig(); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func resolvePath(path string) (string, bool) {
	if path != "" {
		return path, true
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env, true
	}
	return DefaultPath(), false
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.structured", d.Log.Structured)
	v.SetDefault("show_url.endpoint", d.ShowURL.Endpoint)
	v.SetDefault("show_url.timeout", d.ShowURL.Timeout)
	v.SetDefault("browser.enabled", d.Browser.Enabled)
	v.SetDefault("browser.priority", d.Browser.Priority)
	v.SetDefault("browser.target", d.Browser.Target)
	v.SetDefault("commands", []CommandConfig{})
	v.SetDefault("listen.address", d.Listen.Address)
	v.SetDefault("listen.rate_limit", d.Listen.RateLimit)
	v.SetDefault("listen.burst", d.Listen.Burst)
	v.SetDefault("listen.launch", d.Listen.Launch)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("notify.on_failure", d.Notify.OnFailure)
}

// reservedNames are taken by the built-in viewers.
var reservedNames = map[string]bool{
	showurl.ViewerName: true,
	browser.ViewerName: true,
}

// Validate checks the configuration for values that would fail later.
func (c *Config) Validate() error {
	if !logutil.ValidLevel(c.Log.Level) {
		return fmt.Errorf("log.level: invalid value %q (valid: debug, info, warn, error)", c.Log.Level)
	}
	if err := urlutil.ValidateLocalEndpoint(c.ShowURL.Endpoint); err != nil {
		return fmt.Errorf("show_url.endpoint: %w", err)
	}
	if c.ShowURL.Timeout <= 0 {
		return fmt.Errorf("show_url.timeout must be positive, got %s", c.ShowURL.Timeout)
	}
	if !browser.IsValid(c.Browser.Target) {
		return fmt.Errorf("browser.target: invalid value %q (valid: %s)", c.Browser.Target, browser.FormatValidTargets())
	}
	if c.Listen.RateLimit < 0 {
		return fmt.Errorf("listen.rate_limit must not be negative")
	}

	seen := make(map[string]bool, len(c.Commands))
	for i, cmd := range c.Commands {
		name := strings.TrimSpace(cmd.Name)
		switch {
		case name == "":
			return fmt.Errorf("commands[%d]: name is required", i)
		case strings.TrimSpace(cmd.Command) == "":
			return fmt.Errorf("commands[%d] (%s): command is required", i, name)
		case reservedNames[name]:
			return fmt.Errorf("commands[%d]: name %q is reserved", i, name)
		case seen[name]:
			return fmt.Errorf("commands[%d]: duplicate name %q", i, name)
		}
		seen[name] = true
	}
	return nil
}

// WriteDefault writes the default configuration as YAML to path, creating
// the directory if needed. An existing file is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
		}
	}

	cfg := Default()
	cfg.Commands = []CommandConfig{}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := fileutil.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := fileutil.AtomicWriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
