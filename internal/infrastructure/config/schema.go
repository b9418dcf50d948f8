// Package config loads, validates and watches the gamedesk configuration.
package config

// Config represents the complete configuration for gamedesk.
type Config struct {
	Web      WebConfig      `mapstructure:"web" toml:"web" json:"web"`
	Engine   EngineConfig   `mapstructure:"engine" toml:"engine" json:"engine"`
	Butler   ButlerConfig   `mapstructure:"butler" toml:"butler" json:"butler"`
	Uploads  UploadsConfig  `mapstructure:"uploads" toml:"uploads" json:"uploads"`
	Database DatabaseConfig `mapstructure:"database" toml:"database" json:"database"`
	Control  ControlConfig  `mapstructure:"control" toml:"control" json:"control"`
	Logging  LoggingConfig  `mapstructure:"logging" toml:"logging" json:"logging"`
}

// WebConfig controls browsing surfaces. Changes apply without restart.
type WebConfig struct {
	// DevTools opens detached developer tools on every surface's first load
	// when above 1. Env: DEVTOOLS
	DevTools int `mapstructure:"devtools" toml:"devtools" json:"devtools" jsonschema:"minimum=0"`
	// DontShowWebviews disables context menus and developer tools.
	// Env: ITCH_DONT_SHOW_WEBVIEWS
	DontShowWebviews bool `mapstructure:"dont_show_webviews" toml:"dont_show_webviews" json:"dont_show_webviews"`
	// PrimaryDomain is the storefront domain URLs are classified against.
	PrimaryDomain string `mapstructure:"primary_domain" toml:"primary_domain" json:"primary_domain"`
}

// EngineKind selects the surface engine.
type EngineKind string

const (
	// EngineChrome drives Chromium over the DevTools protocol.
	EngineChrome EngineKind = "chrome"
	// EngineHeadless keeps surfaces in memory without rendering.
	EngineHeadless EngineKind = "headless"
)

// EngineConfig configures the surface engine.
type EngineConfig struct {
	Kind EngineKind `mapstructure:"kind" toml:"kind" json:"kind" jsonschema:"enum=chrome,enum=headless"`
	// RemoteURL attaches to a running browser instead of launching one.
	RemoteURL   string `mapstructure:"remote_url" toml:"remote_url" json:"remote_url"`
	ExecPath    string `mapstructure:"exec_path" toml:"exec_path" json:"exec_path"`
	UserDataDir string `mapstructure:"user_data_dir" toml:"user_data_dir" json:"user_data_dir"`
	Headless    bool   `mapstructure:"headless" toml:"headless" json:"headless"`
	Width       int    `mapstructure:"width" toml:"width" json:"width" jsonschema:"minimum=1"`
	Height      int    `mapstructure:"height" toml:"height" json:"height" jsonschema:"minimum=1"`
}

// ButlerConfig points at the background download service.
type ButlerConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled" json:"enabled"`
	Address string `mapstructure:"address" toml:"address" json:"address"`
	// Secret authenticates the connection. Env: GAMEDESK_BUTLER_SECRET
	Secret         string `mapstructure:"secret" toml:"secret" json:"secret"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" toml:"timeout_seconds" json:"timeout_seconds" jsonschema:"minimum=0"`
}

// UploadsConfig tunes the upload lookup cache.
type UploadsConfig struct {
	CacheEntries    int `mapstructure:"cache_entries" toml:"cache_entries" json:"cache_entries" jsonschema:"minimum=0"`
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" toml:"cache_ttl_seconds" json:"cache_ttl_seconds" jsonschema:"minimum=0"`
}

// DatabaseConfig locates the local state database.
type DatabaseConfig struct {
	// Path defaults to $XDG_DATA_HOME/gamedesk/gamedesk.db.
	Path string `mapstructure:"path" toml:"path" json:"path"`
}

// ControlConfig exposes the local control API.
type ControlConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled" json:"enabled"`
	Listen  string `mapstructure:"listen" toml:"listen" json:"listen"`
}

// LoggingConfig controls log verbosity and the optional file sink.
type LoggingConfig struct {
	Level  string        `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format string        `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
	File   LogFileConfig `mapstructure:"file" toml:"file" json:"file"`
}

// LogFileConfig configures the rotating log file.
type LogFileConfig struct {
	Enabled    bool   `mapstructure:"enabled" toml:"enabled" json:"enabled"`
	Dir        string `mapstructure:"dir" toml:"dir" json:"dir"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" jsonschema:"minimum=0"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups" jsonschema:"minimum=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" toml:"max_age_days" json:"max_age_days" jsonschema:"minimum=0"`
	Compress   bool   `mapstructure:"compress" toml:"compress" json:"compress"`
}
