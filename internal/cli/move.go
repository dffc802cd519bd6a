package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ganrobot/ganrobot"
)

var moveCmd = &cobra.Command{
	Use:   "move <sequence>",
	Short: "Execute a move sequence",
	Long: `Execute a move sequence on the robot.

The sequence uses standard cube notation, whitespace-separated:
R, R', R2 and R2' (and likewise for L, D, F, B). The robot cannot drive
the up face. Example:

  ganrobot move "R D2 F' B2 L"

Parsing happens before anything is written; a bad token aborts the command
and nothing is sent to the robot.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMove,
}

func init() {
	rootCmd.AddCommand(moveCmd)
}

func runMove(cmd *cobra.Command, args []string) error {
	moves, err := ganrobot.ParseMoves(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if len(moves) == 0 {
		return nil
	}

	// Surface up-face moves before connecting.
	if _, _, err := ganrobot.EncodeMoves(moves, 0); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := newClient(cfg, newLogger())
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
