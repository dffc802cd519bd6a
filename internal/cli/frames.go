package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ganrobot/ganrobot"
)

var framesSeq uint8

var framesCmd = &cobra.Command{
	Use:   "frames <sequence>",
	Short: "Show the encoded frames for a move sequence",
	Long: `Encode a move sequence and print the resulting binary frames as hex,
without connecting to a robot. Useful for auditing the wire protocol.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFrames,
}

func init() {
	rootCmd.AddCommand(framesCmd)
	framesCmd.Flags().Uint8Var(&framesSeq, "seq", 0, "Starting sequence counter")
}

func runFrames(cmd *cobra.Command, args []string) error {
	moves, err := ganrobot.ParseMoves(strings.Join(args, " "))
	if err != nil {
		return err
	}

	frames, seq, err := ganrobot.EncodeMoves(moves, framesSeq)
	if err != nil {
		return err
	}

	fmt.Printf("Moves:  %s\n", ganrobot.FormatMoves(moves))
	for i, frame := range frames {
		fmt.Printf("Frame %d: % X\n", i, frame[:])
	}
	fmt.Printf("Counter: %d -> %d\n", framesSeq, seq)
	fmt.Printf("Estimated duration: %s\n", ganrobot.EstimateDuration(moves))

	return nil
}
