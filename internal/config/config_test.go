package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestInit(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "forager.yaml")

	configContent := `
bot:
  name: HighBots
  log_level: debug
strategy:
  rush_turn: 370
  spawn_max_turn: 200
  sticky_return: true
trace:
  enabled: true
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	cfg = nil
	v = nil

	require.NoError(t, Init(configFile))

	c := Get()
	assert.Equal(t, "HighBots", c.Bot.Name)
	assert.Equal(t, "debug", c.Bot.LogLevel)
	assert.Equal(t, 370, c.Strategy.RushTurn)
	assert.Equal(t, 200, c.Strategy.SpawnMaxTurn)
	assert.True(t, c.Strategy.StickyReturn)
	assert.True(t, c.Trace.Enabled)
	assert.Equal(t, "traces", c.Trace.Dir)
	// Untouched keys keep their defaults.
	assert.Equal(t, 330, c.Strategy.ConvertMaxTurn)
	assert.Equal(t, filepath.Clean(configFile), filepath.Clean(ConfigFilePath()))
}

func TestInitWithDefaults(t *testing.T) {
	cfg = nil
	v = nil

	require.NoError(t, Init("/non/existent/path/forager.yaml"))

	c := Get()
	assert.Equal(t, "Forager", c.Bot.Name)
	assert.InDelta(t, 0.1, c.Strategy.LowHaliteFraction, 1e-12)
	assert.InDelta(t, 0.4, c.Strategy.EarlyCargoFraction, 1e-12)
	assert.InDelta(t, 1/1.5, c.Strategy.LateCargoFraction, 1e-12)
	assert.Equal(t, 100, c.Strategy.CargoPhaseTurn)
	assert.Equal(t, 470, c.Strategy.RushTurn)
	assert.Equal(t, 6000, c.Strategy.ConvertMinBalance)
	assert.Equal(t, 15, c.Strategy.ShipyardHandicap)
	assert.Equal(t, 250, c.Strategy.SpawnMaxTurn)
	assert.False(t, c.Strategy.StickyReturn)
	assert.False(t, c.Trace.Enabled)
}

func TestEnvironmentVariables(t *testing.T) {
	cfg = nil
	v = nil

	t.Setenv("FORAGER_STRATEGY_SPAWN_MAX_TURN", "180")
	t.Setenv("FORAGER_BOT_LOG_LEVEL", "warn")

	require.NoError(t, Init(""))

	c := Get()
	assert.Equal(t, 180, c.Strategy.SpawnMaxTurn)
	assert.Equal(t, "warn", c.Bot.LogLevel)
}

func TestSet(t *testing.T) {
	cfg = nil
	v = nil

	require.NoError(t, Init(""))

	Set("strategy.shipyard_handicap", 5)
	Set("bot.name", "Tuned")

	c := Get()
	assert.Equal(t, 5, c.Strategy.ShipyardHandicap)
	assert.Equal(t, "Tuned", c.Bot.Name)
}

func TestLoadEnvironmentConfig(t *testing.T) {
	tmpDir := t.TempDir()

	baseConfig := filepath.Join(tmpDir, "forager.yaml")
	require.NoError(t, os.WriteFile(baseConfig, []byte(`
strategy:
  rush_turn: 470
  spawn_max_turn: 250
`), 0644))

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "forager.local.yaml"), []byte(`
strategy:
  rush_turn: 370
bot:
  log_level: debug
`), 0644))

	oldWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer func() { _ = os.Chdir(oldWd) }()

	cfg = nil
	v = nil

	require.NoError(t, Init(baseConfig))
	require.NoError(t, LoadEnvironmentConfig("local"))

	c := Get()
	assert.Equal(t, 370, c.Strategy.RushTurn)
	assert.Equal(t, 250, c.Strategy.SpawnMaxTurn)
	assert.Equal(t, "debug", c.Bot.LogLevel)
}

func TestDump(t *testing.T) {
	cfg = nil
	v = nil
	require.NoError(t, Init(""))

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, Get()))

	var decoded Config
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *Get(), decoded)
	assert.Contains(t, buf.String(), "spawn_max_turn: 250")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg = nil
		v = nil
		require.NoError(t, Init(""))
		c := *Get()
		return &c
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad log level", func(c *Config) { c.Bot.LogLevel = "loud" }},
		{"bad log format", func(c *Config) { c.Bot.LogFormat = "xml" }},
		{"empty name", func(c *Config) { c.Bot.Name = "  " }},
		{"zero low fraction", func(c *Config) { c.Strategy.LowHaliteFraction = 0 }},
		{"cargo fraction above one", func(c *Config) { c.Strategy.LateCargoFraction = 1.5 }},
		{"negative rush turn", func(c *Config) { c.Strategy.RushTurn = -1 }},
		{"negative handicap", func(c *Config) { c.Strategy.ShipyardHandicap = -3 }},
		{"negative spawn turn", func(c *Config) { c.Strategy.SpawnMaxTurn = -1 }},
		{"trace without dir", func(c *Config) { c.Trace.Enabled = true; c.Trace.Dir = "" }},
	}

	require.NoError(t, Validate(valid()))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, Validate(c))
		})
	}
}
