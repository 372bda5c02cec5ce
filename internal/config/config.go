// Package config holds the player-facing settings for the game: window,
// audio, start-up and input. Settings are loaded from a YAML file on top of
// the defaults, then audio can be overridden from the environment.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the audio section.
const (
	EnvAudio        = "LOOKINGBACK_AUDIO"
	EnvMasterVolume = "LOOKINGBACK_MASTER_VOLUME"
)

// Config holds all settings
type Config struct {
	Window WindowConfig `yaml:"window"`
	Audio  AudioConfig  `yaml:"audio"`
	Game   GameConfig   `yaml:"game"`
	Input  InputConfig  `yaml:"input"`
}

// WindowConfig describes the desktop window
type WindowConfig struct {
	Width      int    `yaml:"width"`  // Window width in pixels (the logical screen stays 800×600)
	Height     int    `yaml:"height"` // Window height in pixels
	Title      string `yaml:"title"`
	Resizable  bool   `yaml:"resizable"`
	Fullscreen bool   `yaml:"fullscreen"`
}

// AudioConfig controls the synthesizer output
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	SampleRate   int     `yaml:"sample_rate"`   // Hz
	MasterVolume float64 `yaml:"master_volume"` // 0.0 - 1.0
	MusicVolume  float64 `yaml:"music_volume"`  // 0.0 - 1.0
	SFXVolume    float64 `yaml:"sfx_volume"`    // 0.0 - 1.0
	BufferMS     int     `yaml:"buffer_ms"`     // Player buffer; 0 keeps the backend default
}

// GameConfig controls start-up
type GameConfig struct {
	StartScene string `yaml:"start_scene"` // Scene to enter first (normally BootScene)
	TPS        int    `yaml:"tps"`         // Simulation ticks per second
	Seed       int64  `yaml:"seed"`        // 0 picks a time-based seed
	Debug      bool   `yaml:"debug"`
}

// InputConfig controls the touch controls
type InputConfig struct {
	Joystick     string  `yaml:"joystick"`      // auto, always or never
	JoystickSize float64 `yaml:"joystick_size"` // Base diameter in pixels
}

// DefaultConfig returns the settings used when no file is present
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     800,
			Height:    600,
			Title:     "Our Love: Looking Back",
			Resizable: true,
		},
		Audio: AudioConfig{
			Enabled:      true,
			SampleRate:   44100,
			MasterVolume: 0.5,
			MusicVolume:  0.35,
			SFXVolume:    0.4,
			BufferMS:     100,
		},
		Game: GameConfig{
			StartScene: "BootScene",
			TPS:        60,
		},
		Input: InputConfig{
			Joystick:     "auto",
			JoystickSize: 128,
		},
	}
}

// LoadConfig loads settings from a YAML file. A missing file yields the
// defaults; fields absent from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("config: %s not found, using defaults", path)
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	log.Printf("config: loaded %s", path)
	return config, nil
}

// Validate checks ranges that would otherwise fail deep inside the engine.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Game.TPS <= 0 {
		return fmt.Errorf("invalid tps %d", c.Game.TPS)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate %d", c.Audio.SampleRate)
	}
	for name, v := range map[string]float64{
		"master_volume": c.Audio.MasterVolume,
		"music_volume":  c.Audio.MusicVolume,
		"sfx_volume":    c.Audio.SFXVolume,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s %.2f out of range [0,1]", name, v)
		}
	}
	switch strings.ToLower(c.Input.Joystick) {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("invalid joystick mode %q", c.Input.Joystick)
	}
	return nil
}

// ApplyEnv overrides the audio section from the environment. Malformed
// values are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}

	if enabled := getenv(EnvAudio); enabled != "" {
		switch strings.ToLower(enabled) {
		case "on":
			c.Audio.Enabled = true
		case "off":
			c.Audio.Enabled = false
		default:
			if val, err := strconv.ParseBool(enabled); err == nil {
				c.Audio.Enabled = val
			}
		}
	}

	// 0-100 converted to 0.0-1.0
	if volume := getenv(EnvMasterVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			c.Audio.MasterVolume = float64(val) / 100.0
			if c.Audio.MasterVolume < 0 {
				c.Audio.MasterVolume = 0
			}
			if c.Audio.MasterVolume > 1 {
				c.Audio.MasterVolume = 1
			}
		}
	}
}
