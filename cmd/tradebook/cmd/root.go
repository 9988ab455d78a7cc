package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/config"
	"github.com/rustyeddy/tradebook/journal"
)

var rootCmd = &cobra.Command{
	Use:   "tradebook",
	Short: "A local journal for discretionary trading wins and losses",
	Long: `Tradebook records discretionary trading profits and losses in a local
SQLite journal and aggregates them into weekly/monthly summaries.

It provides commands for:
  - Recording, listing, editing and deleting trades
  - Weekly and monthly profit/loss buckets
  - Overall win rate, profit factor and balance
  - Running balance series for charting
  - Portable JSON backup export and restore`,
}

var (
	dbPath     string
	configPath string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to SQLite journal DB (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
}

// openJournal resolves the database path (--db flag, then config file, then
// the built-in default) and opens the store. Callers defer Close exactly once.
func openJournal() (*journal.SQLite, error) {
	path := dbPath
	if path == "" {
		if configPath != "" {
			cfg, err := config.LoadFromFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("load config: %w", err)
			}
			path = cfg.Database.Path
		} else {
			path = config.Default().Database.Path
		}
	}

	j, err := journal.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}
