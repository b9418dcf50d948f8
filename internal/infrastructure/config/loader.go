package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envBindings maps keys to extra environment variables honored besides
// the GAMEDESK_ prefixed ones. The first variable set wins.
var envBindings = map[string][]string{
	"web.devtools":           {"GAMEDESK_WEB_DEVTOOLS", "DEVTOOLS"},
	"web.dont_show_webviews": {"GAMEDESK_WEB_DONT_SHOW_WEBVIEWS", "ITCH_DONT_SHOW_WEBVIEWS"},
	"logging.level":          {"GAMEDESK_LOGGING_LEVEL", "GAMEDESK_LOG_LEVEL"},
	"logging.format":         {"GAMEDESK_LOGGING_FORMAT", "GAMEDESK_LOG_FORMAT"},
}

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	configDir string
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithConfigDir reads and creates config.toml in dir instead of the XDG
// config directory.
func WithConfigDir(dir string) Option {
	return func(m *Manager) { m.configDir = dir }
}

// NewManager creates a new configuration manager. A .env file in the
// working directory, when present, is loaded into the environment first.
func NewManager(opts ...Option) (*Manager, error) {
	// best effort: a missing .env is the common case
	_ = godotenv.Load()

	m := &Manager{viper: viper.New()}
	for _, opt := range opts {
		opt(m)
	}

	if m.configDir == "" {
		dir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
		}
		m.configDir = dir
	}

	v := m.viper
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(m.configDir)

	v.SetEnvPrefix("GAMEDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, names := range envBindings {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	return m, nil
}

// Load reads the config file, creating it with defaults when missing,
// applies the environment and validates the result.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.configDir, dirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	cfg, err := m.decode()
	if err != nil {
		return err
	}
	m.config = cfg
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.ConfigFile(), err)
	}

	if err := WriteConfigOrdered(DefaultConfig(), m.ConfigFile()); err != nil {
		return fmt.Errorf("failed to create default config at %s: %w", m.ConfigFile(), err)
	}
	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read newly created config file: %w", err)
	}
	return nil
}

// decode unmarshals viper's merged view, fills derived paths and validates.
func (m *Manager) decode() (*Config, error) {
	cfg := &Config{}
	if err := m.viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file at %s: %w", m.ConfigFile(), err)
	}
	if err := resolvePaths(cfg); err != nil {
		return nil, err
	}
	normalizeConfig(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func resolvePaths(cfg *Config) error {
	if cfg.Database.Path == "" {
		path, err := GetDatabaseFile()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		cfg.Database.Path = path
	}
	if cfg.Logging.File.Dir == "" {
		dir, err := GetLogDir()
		if err != nil {
			return fmt.Errorf("failed to get log directory: %w", err)
		}
		cfg.Logging.File.Dir = dir
	}
	return nil
}

func normalizeConfig(cfg *Config) {
	cfg.Engine.Kind = EngineKind(strings.ToLower(strings.TrimSpace(string(cfg.Engine.Kind))))
	if cfg.Engine.Kind == "" {
		cfg.Engine.Kind = EngineChrome
	}
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	cfg.Web.PrimaryDomain = strings.TrimSpace(cfg.Web.PrimaryDomain)
	cfg.Butler.Address = strings.TrimSpace(cfg.Butler.Address)
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	c := *m.config
	return &c
}

// ConfigFile returns the path of the configuration file.
func (m *Manager) ConfigFile() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(m.configDir, configFileName)
}

func (m *Manager) setDefaults() {
	d := DefaultConfig()
	v := m.viper

	v.SetDefault("web.devtools", d.Web.DevTools)
	v.SetDefault("web.dont_show_webviews", d.Web.DontShowWebviews)
	v.SetDefault("web.primary_domain", d.Web.PrimaryDomain)

	v.SetDefault("engine.kind", string(d.Engine.Kind))
	v.SetDefault("engine.remote_url", d.Engine.RemoteURL)
	v.SetDefault("engine.exec_path", d.Engine.ExecPath)
	v.SetDefault("engine.user_data_dir", d.Engine.UserDataDir)
	v.SetDefault("engine.headless", d.Engine.Headless)
	v.SetDefault("engine.width", d.Engine.Width)
	v.SetDefault("engine.height", d.Engine.Height)

	v.SetDefault("butler.enabled", d.Butler.Enabled)
	v.SetDefault("butler.address", d.Butler.Address)
	v.SetDefault("butler.secret", d.Butler.Secret)
	v.SetDefault("butler.timeout_seconds", d.Butler.TimeoutSeconds)

	v.SetDefault("uploads.cache_entries", d.Uploads.CacheEntries)
	v.SetDefault("uploads.cache_ttl_seconds", d.Uploads.CacheTTLSeconds)

	v.SetDefault("database.path", d.Database.Path)

	v.SetDefault("control.enabled", d.Control.Enabled)
	v.SetDefault("control.listen", d.Control.Listen)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.file.enabled", d.Logging.File.Enabled)
	v.SetDefault("logging.file.dir", d.Logging.File.Dir)
	v.SetDefault("logging.file.max_size_mb", d.Logging.File.MaxSizeMB)
	v.SetDefault("logging.file.max_backups", d.Logging.File.MaxBackups)
	v.SetDefault("logging.file.max_age_days", d.Logging.File.MaxAgeDays)
	v.SetDefault("logging.file.compress", d.Logging.File.Compress)
}
