// Package cli implements the command-line interface for ganrobot.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ganrobot/ganrobot/internal/ble"
	"github.com/ganrobot/ganrobot/internal/config"
)

const version = "0.1.0"

var (
	// Global flags
	configPath string
	robotName  string
	moveChar   string
	statusChar string
	verbose    bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "ganrobot",
	Short: "GAN robot move driver",
	Long: `ganrobot drives a GAN cube-solving robot over Bluetooth Low Energy.

It translates standard cube notation into the robot's binary move frames,
generates scrambles the robot can execute, and tracks the robot's
remaining-move status while it works through a sequence.`,
	Version: version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.ganrobot/config.toml)")
	rootCmd.PersistentFlags().StringVar(&robotName, "name", "", "Robot device name (overrides config)")
	rootCmd.PersistentFlags().StringVar(&moveChar, "move-characteristic", "", "Move characteristic UUID (overrides config)")
	rootCmd.PersistentFlags().StringVar(&statusChar, "status-characteristic", "", "Status characteristic UUID (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// newLogger builds the slog logger for transport and command output.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig loads the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if robotName != "" {
		cfg.Robot.Name = robotName
	}
	if moveChar != "" {
		cfg.Robot.MoveCharacteristic = moveChar
	}
	if statusChar != "" {
		cfg.Robot.StatusCharacteristic = statusChar
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newClient builds a BLE client from the effective config.
func newClient(cfg *config.Config, log *slog.Logger) (*ble.Client, error) {
	return ble.NewClient(ble.Config{
		Name:                 cfg.Robot.Name,
		MoveCharacteristic:   cfg.Robot.MoveCharacteristic,
		StatusCharacteristic: cfg.Robot.StatusCharacteristic,
		Logger:               log,
	})
}

func scanTimeout(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Scan.TimeoutSeconds) * time.Second
}
