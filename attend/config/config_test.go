package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadExampleINI(t *testing.T) {
	conf, err := Load(filepath.Join("..", "..", "config_example.ini"))
	require.NoError(t, err)

	assert.Equal(t, "meet", conf.GetString("DefaultPlatform"))
	assert.Equal(t, 4, conf.GetInt("WorkerPoolSize"))
	assert.Equal(t, []string{"zoom", "teams", "webex", "other"}, conf.GetPluginStrings("generic", "platforms"))
	assert.True(t, conf.PluginEnabled("whatsapp"))
}

func TestDefaults(t *testing.T) {
	conf, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", conf.GetString("LogLevel"))
	assert.Equal(t, "text", conf.GetString("LogFormat"))
	assert.Equal(t, "links.db", conf.GetString("Database"))
	assert.Equal(t, 1, conf.GetInt("DBMaxOpenConns"))
	assert.Equal(t, 3600, conf.GetInt("DBConnMaxLifetimeSec"))
	assert.Equal(t, 4, conf.GetInt("WorkerPoolSize"))
	assert.Equal(t, "meet", conf.GetString("DefaultPlatform"))
	assert.False(t, conf.GetBool("LogSource"))
	assert.Zero(t, conf.GetFloat64("ImportRateLimit"))
	assert.Equal(t, 1, conf.GetInt("ImportRateBurst"))
	assert.Nil(t, conf.PluginNames())
}

func TestFlatKeysOverrideDefaults(t *testing.T) {
	path := writeConfig(t, `LogLevel = debug
LogSource = true
WorkerPoolSize = 9
Database = /tmp/other.db
`)
	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", conf.GetString("LogLevel"))
	assert.True(t, conf.GetBool("LogSource"))
	assert.Equal(t, 9, conf.GetInt("WorkerPoolSize"))
	assert.Equal(t, "/tmp/other.db", conf.GetString("Database"))
}

func TestPluginSections(t *testing.T) {
	path := writeConfig(t, `DefaultPlatform = whatsapp

[plugins.meet]
aliases = hangouts, meet-link
priority = 10
enabled = true

[plugins.generic]
platforms = zoom,teams
enabled = false
`)
	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"generic", "meet"}, conf.PluginNames())

	meetCfg, ok := conf.GetPluginConfig("meet")
	require.True(t, ok)
	assert.Equal(t, "hangouts, meet-link", meetCfg["aliases"])

	assert.Equal(t, []string{"hangouts", "meet-link"}, conf.GetPluginStrings("meet", "aliases"))
	assert.Equal(t, 10, conf.GetPluginInt("meet", "priority"))
	assert.True(t, conf.GetPluginBool("meet", "enabled"))
	assert.True(t, conf.PluginEnabled("meet"))
	assert.False(t, conf.PluginEnabled("generic"))
	assert.Equal(t, []string{"zoom", "teams"}, conf.GetPluginStrings("generic", "platforms"))
}

func TestPluginConfigNotFound(t *testing.T) {
	conf, err := Load(writeConfig(t, `LogLevel = info`))
	require.NoError(t, err)

	_, ok := conf.GetPluginConfig("nonexistent")
	assert.False(t, ok)
	assert.Empty(t, conf.GetPluginString("nonexistent", "key"))
	assert.Zero(t, conf.GetPluginInt("nonexistent", "key"))
	assert.False(t, conf.GetPluginBool("nonexistent", "key"))
	assert.Empty(t, conf.GetPluginStrings("nonexistent", "key"))
	assert.True(t, conf.PluginEnabled("nonexistent"), "unconfigured plugins stay enabled")
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("AUTOATTEND_DEFAULTPLATFORM", "zoom")

	conf, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "zoom", conf.GetString("DefaultPlatform"))
}

func TestSetOverride(t *testing.T) {
	conf, err := Load("")
	require.NoError(t, err)

	conf.Set("Database", "override.db")
	assert.Equal(t, "override.db", conf.GetString("Database"))
}

func TestGetStringSliceSplitsCommas(t *testing.T) {
	conf, err := Load(writeConfig(t, `Extra = a, b ,,c`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, conf.GetStringSlice("Extra"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)
}
