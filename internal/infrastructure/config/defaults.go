package config

import domainurl "github.com/bnema/gamedesk/internal/domain/url"

// Default values not derived from the environment.
const (
	DefaultControlListen      = "127.0.0.1:9339"
	DefaultButlerTimeout      = 30
	DefaultUploadCacheEntries = 64
	DefaultUploadCacheTTL     = 300
)

// DefaultConfig returns the configuration used when nothing overrides it.
// Paths are resolved later, in Load.
func DefaultConfig() *Config {
	return &Config{
		Web: WebConfig{
			PrimaryDomain: domainurl.DefaultPrimaryDomain,
		},
		Engine: EngineConfig{
			Kind:     EngineChrome,
			Headless: false,
			Width:    1280,
			Height:   720,
		},
		Butler: ButlerConfig{
			Enabled:        false,
			TimeoutSeconds: DefaultButlerTimeout,
		},
		Uploads: UploadsConfig{
			CacheEntries:    DefaultUploadCacheEntries,
			CacheTTLSeconds: DefaultUploadCacheTTL,
		},
		Control: ControlConfig{
			Enabled: false,
			Listen:  DefaultControlListen,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File: LogFileConfig{
				Enabled:    false,
				MaxSizeMB:  10,
				MaxBackups: 5,
				MaxAgeDays: 7,
				Compress:   true,
			},
		},
	}
}
