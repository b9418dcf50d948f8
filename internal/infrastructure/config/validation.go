package config

import (
	"fmt"
	"net"
	"strings"
)

// validateConfig reports every invalid value at once.
func validateConfig(cfg *Config) error {
	var errs []string

	errs = append(errs, validateWeb(cfg)...)
	errs = append(errs, validateEngine(cfg)...)
	errs = append(errs, validateButler(cfg)...)
	errs = append(errs, validateUploads(cfg)...)
	errs = append(errs, validateControl(cfg)...)
	errs = append(errs, validateLogging(cfg)...)

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func validateWeb(cfg *Config) []string {
	var errs []string
	if cfg.Web.DevTools < 0 {
		errs = append(errs, "web.devtools must be non-negative")
	}
	if strings.ContainsAny(cfg.Web.PrimaryDomain, "/: ") {
		errs = append(errs, fmt.Sprintf("web.primary_domain must be a bare domain (got: %s)", cfg.Web.PrimaryDomain))
	}
	return errs
}

func validateEngine(cfg *Config) []string {
	var errs []string
	switch cfg.Engine.Kind {
	case EngineChrome, EngineHeadless:
	default:
		errs = append(errs, fmt.Sprintf("engine.kind must be one of: chrome, headless (got: %s)", cfg.Engine.Kind))
	}
	if cfg.Engine.Width <= 0 || cfg.Engine.Height <= 0 {
		errs = append(errs, "engine.width and engine.height must be positive")
	}
	return errs
}

func validateButler(cfg *Config) []string {
	var errs []string
	if cfg.Butler.Enabled && cfg.Butler.Address == "" {
		errs = append(errs, "butler.address is required when butler.enabled is true")
	}
	if cfg.Butler.TimeoutSeconds < 0 {
		errs = append(errs, "butler.timeout_seconds must be non-negative")
	}
	return errs
}

func validateUploads(cfg *Config) []string {
	var errs []string
	if cfg.Uploads.CacheEntries < 0 {
		errs = append(errs, "uploads.cache_entries must be non-negative")
	}
	if cfg.Uploads.CacheTTLSeconds < 0 {
		errs = append(errs, "uploads.cache_ttl_seconds must be non-negative")
	}
	return errs
}

func validateControl(cfg *Config) []string {
	if !cfg.Control.Enabled {
		return nil
	}
	if _, _, err := net.SplitHostPort(cfg.Control.Listen); err != nil {
		return []string{fmt.Sprintf("control.listen must be host:port (got: %s)", cfg.Control.Listen)}
	}
	return nil
}

func validateLogging(cfg *Config) []string {
	var errs []string
	switch cfg.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "":
	default:
		errs = append(errs, fmt.Sprintf(
			"logging.level must be one of: trace, debug, info, warn, error (got: %s)",
			cfg.Logging.Level,
		))
	}
	switch cfg.Logging.Format {
	case "json", "console", "":
	default:
		errs = append(errs, fmt.Sprintf(
			"logging.format must be one of: json, console (got: %s)",
			cfg.Logging.Format,
		))
	}
	f := cfg.Logging.File
	if f.MaxSizeMB < 0 || f.MaxBackups < 0 || f.MaxAgeDays < 0 {
		errs = append(errs, "logging.file sizes and ages must be non-negative")
	}
	return errs
}
