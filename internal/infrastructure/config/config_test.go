package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every XDG directory at a temp dir and clears the
// variables the manager reads.
func isolate(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	for _, name := range []string{
		"DEVTOOLS", "ITCH_DONT_SHOW_WEBVIEWS", "GAMEDESK_LOG_LEVEL", "GAMEDESK_LOG_FORMAT",
		"GAMEDESK_LOGGING_LEVEL", "GAMEDESK_WEB_DEVTOOLS", "GAMEDESK_CONTROL_ENABLED",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	return root
}

func loadManager(t *testing.T, dir string) *Manager {
	t.Helper()
	m, err := NewManager(WithConfigDir(dir))
	require.NoError(t, err)
	require.NoError(t, m.Load())
	return m
}

func TestLoad_CreatesDefaultFile(t *testing.T) {
	root := isolate(t)
	dir := filepath.Join(root, "config", appName)

	m := loadManager(t, dir)
	cfg := m.Get()

	assert.FileExists(t, filepath.Join(dir, configFileName))
	assert.Equal(t, EngineChrome, cfg.Engine.Kind)
	assert.Equal(t, "itch.io", cfg.Web.PrimaryDomain)
	assert.Equal(t, DefaultControlListen, cfg.Control.Listen)
	assert.Equal(t, filepath.Join(root, "data", appName, databaseName), cfg.Database.Path)
	assert.Equal(t, filepath.Join(root, "state", appName, "logs"), cfg.Logging.File.Dir)
}

func TestLoad_ReadsFile(t *testing.T) {
	root := isolate(t)
	dir := filepath.Join(root, "cfg")
	require.NoError(t, os.MkdirAll(dir, dirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(`
[engine]
kind = "Headless"

[web]
devtools = 1
primary_domain = "itch.zone"
`), filePerm))

	cfg := loadManager(t, dir).Get()
	assert.Equal(t, EngineHeadless, cfg.Engine.Kind, "kind is normalized")
	assert.Equal(t, 1, cfg.Web.DevTools)
	assert.Equal(t, "itch.zone", cfg.Web.PrimaryDomain)
	assert.Equal(t, 1280, cfg.Engine.Width, "unset keys keep defaults")
}

func TestLoad_LegacyEnvironment(t *testing.T) {
	root := isolate(t)
	t.Setenv("DEVTOOLS", "2")
	t.Setenv("ITCH_DONT_SHOW_WEBVIEWS", "1")
	t.Setenv("GAMEDESK_CONTROL_ENABLED", "true")
	t.Setenv("GAMEDESK_LOG_LEVEL", "debug")

	cfg := loadManager(t, filepath.Join(root, "cfg")).Get()
	assert.Equal(t, 2, cfg.Web.DevTools)
	assert.True(t, cfg.Web.DontShowWebviews)
	assert.True(t, cfg.Control.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	root := isolate(t)
	dir := filepath.Join(root, "cfg")
	require.NoError(t, os.MkdirAll(dir, dirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(`
[engine]
kind = "firefox"

[butler]
enabled = true
`), filePerm))

	m, err := NewManager(WithConfigDir(dir))
	require.NoError(t, err)
	err = m.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine.kind")
	assert.Contains(t, err.Error(), "butler.address")
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"negative devtools", func(c *Config) { c.Web.DevTools = -1 }, "web.devtools"},
		{"domain with scheme", func(c *Config) { c.Web.PrimaryDomain = "https://itch.io" }, "web.primary_domain"},
		{"bad listen", func(c *Config) { c.Control.Enabled = true; c.Control.Listen = "9339" }, "control.listen"},
		{"bad listen ignored when disabled", func(c *Config) { c.Control.Listen = "9339" }, ""},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"negative cache", func(c *Config) { c.Uploads.CacheTTLSeconds = -1 }, "uploads.cache_ttl_seconds"},
		{"zero size", func(c *Config) { c.Engine.Width = 0 }, "engine.width"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestWatch_ReloadsAndNotifies(t *testing.T) {
	root := isolate(t)
	dir := filepath.Join(root, "cfg")
	m := loadManager(t, dir)

	changes := make(chan *Config, 16)
	m.OnConfigChange(func(c *Config) {
		select {
		case changes <- c:
		default:
		}
	})
	require.NoError(t, m.Watch())
	require.NoError(t, m.Watch(), "watching twice is a no-op")

	cfg := m.Get()
	cfg.Web.DevTools = 2
	cfg.Web.DontShowWebviews = true
	require.NoError(t, WriteConfigOrdered(cfg, m.ConfigFile()))

	// a write can surface as several events; wait for the complete one
	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-changes:
			if c.Web.DevTools != 2 {
				continue
			}
			assert.True(t, c.Web.DontShowWebviews)
			assert.Eventually(t, func() bool { return m.Get().Web.DontShowWebviews }, time.Second, 10*time.Millisecond)
			return
		case <-deadline:
			t.Fatal("no reload after config change")
		}
	}
}

func TestWriteConfigOrdered_SortsTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", configFileName)
	require.NoError(t, WriteConfigOrdered(DefaultConfig(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var headers []string
	for _, line := range strings.Split(string(data), "\n") {
		if m := tableHeader.FindStringSubmatch(line); m != nil {
			headers = append(headers, m[1])
		}
	}
	assert.Equal(t, []string{
		"butler", "control", "database", "engine", "logging", "logging.file", "uploads", "web",
	}, headers)

	assert.Error(t, WriteConfigOrdered(nil, path))
}

func TestSortTables(t *testing.T) {
	in := "top = 1\n\n[b]\nx = 1\n\n[a.c]\ny = 2\n[a]\nz = 3\n"
	want := "top = 1\n\n[a]\nz = 3\n\n[a.c]\ny = 2\n\n[b]\nx = 1\n"
	assert.Equal(t, want, sortTables(in))
	assert.Equal(t, "", sortTables(""))
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"dont_show_webviews"`)
	assert.Contains(t, s, `"headless"`)
	assert.Contains(t, s, `"cache_ttl_seconds"`)

	root := isolate(t)
	m, err := NewManager(WithConfigDir(filepath.Join(root, "cfg")))
	require.NoError(t, err)
	require.NoError(t, m.Load())
	path, err := m.GenerateSchemaFile()
	require.NoError(t, err)
	assert.FileExists(t, path)
}
