package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the full application configuration
type Config struct {
	Provider  ProviderConfig  `mapstructure:"provider" yaml:"provider"`
	Search    SearchConfig    `mapstructure:"search" yaml:"search"`
	Player    PlayerConfig    `mapstructure:"player" yaml:"player"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
	Database  DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Metrics   MetricsConfig   `mapstructure:"metrics" yaml:"metrics"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Clipboard ClipboardConfig `mapstructure:"clipboard" yaml:"clipboard"`
}

// ProviderConfig selects and tunes the catalog backend
type ProviderConfig struct {
	// Backend is one of "http", "mock" or "library"
	Backend    string        `mapstructure:"backend" yaml:"backend"`
	BaseURL    string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
	MaxRetries int           `mapstructure:"max_retries" yaml:"max_retries"`
	UserAgent  string        `mapstructure:"user_agent" yaml:"user_agent"`

	// RateLimit is requests per second, 0 disables limiting
	RateLimit float64 `mapstructure:"rate_limit" yaml:"rate_limit"`
	Burst     int     `mapstructure:"burst" yaml:"burst"`

	Breaker BreakerConfig `mapstructure:"breaker" yaml:"breaker"`
	Mock    MockConfig    `mapstructure:"mock" yaml:"mock"`
	Library LibraryConfig `mapstructure:"library" yaml:"library"`
}

// BreakerConfig tunes the circuit breaker around the HTTP backend
type BreakerConfig struct {
	FailureThreshold uint32        `mapstructure:"failure_threshold" yaml:"failure_threshold"`
	OpenTimeout      time.Duration `mapstructure:"open_timeout" yaml:"open_timeout"`
}

// MockConfig controls the built-in demo catalog
type MockConfig struct {
	ListLatency   time.Duration `mapstructure:"list_latency" yaml:"list_latency"`
	SearchLatency time.Duration `mapstructure:"search_latency" yaml:"search_latency"`
}

// LibraryConfig points the filesystem backend at local media
type LibraryConfig struct {
	MoviesPath string `mapstructure:"movies_path" yaml:"movies_path"`
	SeriesPath string `mapstructure:"series_path" yaml:"series_path"`
}

// SearchConfig tunes the search field
type SearchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// PlayerConfig selects the playback sink
type PlayerConfig struct {
	// Backend is one of "mpv", "browser" or "none"
	Backend        string   `mapstructure:"backend" yaml:"backend"`
	MPVPath        string   `mapstructure:"mpv_path" yaml:"mpv_path"`
	Args           []string `mapstructure:"args" yaml:"args"`
	LoadUserConfig bool     `mapstructure:"load_user_config" yaml:"load_user_config"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	File       string `mapstructure:"file" yaml:"file"`
	Format     string `mapstructure:"format" yaml:"format"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
	Color      bool   `mapstructure:"color" yaml:"color"`
}

// DatabaseConfig controls the local sqlite store
type DatabaseConfig struct {
	Path           string `mapstructure:"path" yaml:"path"`
	WALMode        bool   `mapstructure:"wal_mode" yaml:"wal_mode"`
	MaxConnections int    `mapstructure:"max_connections" yaml:"max_connections"`
}

// MetricsConfig exposes prometheus metrics while the TUI runs
type MetricsConfig struct {
	// Listen is a host:port, empty disables the endpoint
	Listen string `mapstructure:"listen" yaml:"listen"`
}

// ServerConfig is used by "reel serve"
type ServerConfig struct {
	Listen      string   `mapstructure:"listen" yaml:"listen"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`

	// RateLimit is requests per minute per client IP, 0 disables limiting
	RateLimit int `mapstructure:"rate_limit" yaml:"rate_limit"`
}

// ClipboardConfig overrides how text is copied when the system clipboard
// is not reachable directly
type ClipboardConfig struct {
	// Command receives the text on stdin, e.g. "wl-copy" or "clip.exe"
	Command string `mapstructure:"command" yaml:"command"`
}

// SetDefaults registers every default value on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("provider.backend", "mock")
	v.SetDefault("provider.base_url", "http://localhost:8000")
	v.SetDefault("provider.timeout", 30*time.Second)
	v.SetDefault("provider.max_retries", 3)
	v.SetDefault("provider.user_agent", "reel/1.0")
	v.SetDefault("provider.rate_limit", 10.0)
	v.SetDefault("provider.burst", 5)
	v.SetDefault("provider.breaker.failure_threshold", 5)
	v.SetDefault("provider.breaker.open_timeout", 30*time.Second)
	v.SetDefault("provider.mock.list_latency", 300*time.Millisecond)
	v.SetDefault("provider.mock.search_latency", 200*time.Millisecond)
	v.SetDefault("provider.library.movies_path", filepath.Join(homeDir(), "Videos", "Movies"))
	v.SetDefault("provider.library.series_path", filepath.Join(homeDir(), "Videos", "Series"))

	v.SetDefault("search.debounce", 300*time.Millisecond)

	v.SetDefault("player.backend", "mpv")
	v.SetDefault("player.mpv_path", "")
	v.SetDefault("player.args", []string{})
	v.SetDefault("player.load_user_config", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", filepath.Join(GetStateDir(), "reel.log"))
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.max_size", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 28)
	v.SetDefault("logging.compress", true)
	v.SetDefault("logging.color", true)

	v.SetDefault("database.path", filepath.Join(GetDataDir(), "reel.db"))
	v.SetDefault("database.wal_mode", true)
	v.SetDefault("database.max_connections", 4)

	v.SetDefault("metrics.listen", "")
	v.SetDefault("server.listen", ":8000")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.rate_limit", 600)

	v.SetDefault("clipboard.command", "")
}

// Load reads configuration from path, or from the default locations when
// path is empty. A missing config file is not an error. Environment variables
// prefixed with REEL_ override file values, e.g. REEL_PROVIDER_BACKEND.
func Load(path string) (*Config, *viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(GetConfigDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("REEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !(path != "" && errors.Is(err, os.ErrNotExist)) {
			return nil, nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}

// Validate rejects values the rest of the program cannot work with
func (c *Config) Validate() error {
	switch c.Provider.Backend {
	case "http", "mock", "library":
	default:
		return fmt.Errorf("invalid provider.backend %q: want http, mock or library", c.Provider.Backend)
	}
	switch c.Player.Backend {
	case "mpv", "browser", "none":
	default:
		return fmt.Errorf("invalid player.backend %q: want mpv, browser or none", c.Player.Backend)
	}
	if c.Search.Debounce < 0 {
		return fmt.Errorf("search.debounce must not be negative")
	}
	return nil
}

// Defaults returns a Config holding only default values
func Defaults() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg := &Config{}
	_ = v.Unmarshal(cfg)
	return cfg
}

// SaveDefaultConfig writes the default configuration as YAML to path
func SaveDefaultConfig(path string) error {
	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return fmt.Errorf("failed to encode default config: %w", err)
	}
	header := []byte("# reel configuration\n# Every key can be overridden with a REEL_ environment variable.\n\n")
	return os.WriteFile(path, append(header, data...), 0644)
}

// InitializeDirs creates the config, data and state directories
func InitializeDirs() error {
	for _, dir := range []string{GetConfigDir(), GetDataDir(), GetStateDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// GetConfigDir returns $XDG_CONFIG_HOME/reel or its platform equivalent
func GetConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "reel")
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "reel")
	}
	return filepath.Join(homeDir(), ".config", "reel")
}

// GetDataDir returns $XDG_DATA_HOME/reel, falling back to ~/.local/share/reel
func GetDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "reel")
	}
	return filepath.Join(homeDir(), ".local", "share", "reel")
}

// GetStateDir returns $XDG_STATE_HOME/reel, falling back to ~/.local/state/reel
func GetStateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "reel")
	}
	return filepath.Join(homeDir(), ".local", "state", "reel")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
