package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ganrobot/ganrobot"
)

var scrambleNum int

var scrambleCmd = &cobra.Command{
	Use:   "scramble",
	Short: "Scramble the cube",
	Long: `Generate a random scramble and have the robot execute it.

The scramble draws only from the five faces the robot can drive (the cradle
grips the cube by the up face) and never turns the same face twice in a row.`,
	RunE: runScramble,
}

func init() {
	rootCmd.AddCommand(scrambleCmd)
	scrambleCmd.Flags().IntVarP(&scrambleNum, "num", "n", -1, "Number of scramble moves (default from config)")
}

func runScramble(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	num := scrambleNum
	if num < 0 {
		num = cfg.Scramble.DefaultMoves
	}

	moves, err := ganrobot.Scramble(num, ganrobot.WithFaces(ganrobot.DrivableFaces...))
	if err != nil {
		return err
	}

	fmt.Printf("Scramble: %s\n", ganrobot.FormatMoves(moves))
	if len(moves) == 0 {
		return nil
	}

	log := newLogger()
	client, err := newClient(cfg, log)
	if err != nil {
		return fmt.Errorf("BLE not available: %w", err)
	}

	ctx := context.Background()
	if err := client.ConnectByName(ctx, scanTimeout(cfg)); err != nil {
		return err
	}
	defer client.Disconnect()

	return client.DoMoves(ctx, moves)
}
