package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/backup"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the full journal to a backup snapshot",
	Long: `Write all trades and settings to a portable snapshot file.

A .xz extension writes a compressed snapshot, anything else plain JSON.

Examples:
  tradebook export backup.json
  tradebook export backup.json.xz`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	snap, err := backup.Export(j)
	if err != nil {
		return err
	}
	if err := backup.WriteFile(args[0], snap); err != nil {
		return err
	}

	fmt.Printf("✓ Exported %d trades to %s\n", len(snap.Trades), args[0])
	return nil
}
