package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestFileOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
audio:
  master_volume: 0.8
game:
  start_scene: CafeScene
  debug: true
input:
  joystick: always
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 0.8, cfg.Audio.MasterVolume)
	assert.Equal(t, 0.35, cfg.Audio.MusicVolume, "unset fields keep defaults")
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, "CafeScene", cfg.Game.StartScene)
	assert.True(t, cfg.Game.Debug)
	assert.Equal(t, 60, cfg.Game.TPS)
	assert.Equal(t, "always", cfg.Input.Joystick)
	assert.Equal(t, 800, cfg.Window.Width)
}

func TestParseErrors(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "audio: [not, a, map]"))
	assert.ErrorContains(t, err, "failed to parse config")

	_, err = LoadConfig(writeConfig(t, "audio:\n  master_volume: 2\n"))
	assert.ErrorContains(t, err, "master_volume")

	_, err = LoadConfig(writeConfig(t, "input:\n  joystick: sometimes\n"))
	assert.ErrorContains(t, err, "joystick")

	_, err = LoadConfig(writeConfig(t, "game:\n  tps: 0\n"))
	assert.ErrorContains(t, err, "tps")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{}
	getenv := func(k string) string { return env[k] }

	cfg := DefaultConfig()
	cfg.ApplyEnv(getenv)
	assert.Equal(t, DefaultConfig(), cfg, "no variables, no change")

	env[EnvAudio] = "off"
	env[EnvMasterVolume] = "75"
	cfg.ApplyEnv(getenv)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, 0.75, cfg.Audio.MasterVolume)

	env[EnvAudio] = "true"
	env[EnvMasterVolume] = "250"
	cfg.ApplyEnv(getenv)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 1.0, cfg.Audio.MasterVolume)

	env[EnvAudio] = "maybe"
	env[EnvMasterVolume] = "loud"
	cfg.ApplyEnv(getenv)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, 1.0, cfg.Audio.MasterVolume)
}
