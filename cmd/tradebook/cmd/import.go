package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/backup"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore the journal from a backup snapshot",
	Long: `Replace all trades (and settings, when the snapshot carries them) with
the contents of a backup file. Accepts .json, .xz and .zip backups.

The restore is all-or-nothing: a malformed snapshot leaves the journal
untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	snap, err := backup.ReadFile(args[0])
	if err != nil {
		return err
	}

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	if err := backup.Import(j, snap); err != nil {
		return err
	}

	fmt.Printf("✓ Imported %d trades from %s\n", len(snap.Trades), args[0])
	return nil
}
