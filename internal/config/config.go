// Package config loads ganrobot configuration from a TOML file with
// environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables recognized for overrides, matching the names the
// robot's original tooling used.
const (
	EnvName       = "GAN_ROBOT_NAME"
	EnvMoveChar   = "GAN_ROBOT_MOVE_CHARACTERISTIC"
	EnvStatusChar = "GAN_ROBOT_STATUS_CHARACTERISTIC"
)

// Robot identifies the device and its BLE endpoints.
type Robot struct {
	Name                 string `toml:"name"`
	MoveCharacteristic   string `toml:"move_characteristic"`
	StatusCharacteristic string `toml:"status_characteristic"`
}

// Scramble holds scramble generation defaults.
type Scramble struct {
	DefaultMoves int `toml:"default_moves"`
}

// Scan holds device discovery settings.
type Scan struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Config is the full ganrobot configuration.
type Config struct {
	Robot    Robot    `toml:"robot"`
	Scramble Scramble `toml:"scramble"`
	Scan     Scan     `toml:"scan"`
}

// Default returns the built-in configuration for a stock GAN robot.
func Default() *Config {
	return &Config{
		Robot: Robot{
			Name:                 "GAN-a7f13",
			MoveCharacteristic:   "0000fff3-0000-1000-8000-00805f9b34fb",
			StatusCharacteristic: "0000fff2-0000-1000-8000-00805f9b34fb",
		},
		Scramble: Scramble{DefaultMoves: 8},
		Scan:     Scan{TimeoutSeconds: 10},
	}
}

// DefaultPath returns the default config file location,
// ~/.ganrobot/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".ganrobot", "config.toml"), nil
}

// Load reads the config file at path, falling back to defaults if the file
// does not exist, then applies environment overrides and validates.
// An empty path means DefaultPath.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// No file is fine; defaults plus env cover it.
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvName); v != "" {
		c.Robot.Name = v
	}
	if v := os.Getenv(EnvMoveChar); v != "" {
		c.Robot.MoveCharacteristic = v
	}
	if v := os.Getenv(EnvStatusChar); v != "" {
		c.Robot.StatusCharacteristic = v
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Robot.Name == "" {
		return errors.New("config: robot name must not be empty")
	}
	if _, err := uuid.Parse(c.Robot.MoveCharacteristic); err != nil {
		return fmt.Errorf("config: invalid move characteristic UUID %q: %w",
			c.Robot.MoveCharacteristic, err)
	}
	if _, err := uuid.Parse(c.Robot.StatusCharacteristic); err != nil {
		return fmt.Errorf("config: invalid status characteristic UUID %q: %w",
			c.Robot.StatusCharacteristic, err)
	}
	if c.Scramble.DefaultMoves < 0 {
		return errors.New("config: scramble default_moves must not be negative")
	}
	if c.Scan.TimeoutSeconds <= 0 {
		return errors.New("config: scan timeout_seconds must be positive")
	}
	return nil
}
