package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for GAN robots",
	Long:  `Scan for nearby GAN robots over Bluetooth Low Energy and list them.`,
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := newClient(cfg, newLogger())
	if err != nil {
		return fmt.Errorf("BLE not available: %w", err)
	}

	fmt.Println("Scanning for GAN robots...")

	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout(cfg))
	defer cancel()

	results, err := client.Scan(ctx, scanTimeout(cfg))
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No robots found. Is the robot powered on and in range?")
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Name", "Address", "RSSI (dBm)"})
	for _, r := range results {
		tw.AppendRow(table.Row{r.Name, r.UUID, r.RSSI})
	}
	tw.Render()

	return nil
}
