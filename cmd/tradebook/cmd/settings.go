package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/journal"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change account settings",
	Long: `Show the account settings, or change them with the set subcommand.

Examples:
  tradebook settings
  tradebook settings set --fund 2500 --currency EUR`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the initial fund and currency",
	Args:  cobra.NoArgs,
	RunE:  runSettingsSet,
}

var (
	settingsFund     float64
	settingsCurrency string
)

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsSetCmd)

	settingsSetCmd.Flags().Float64Var(&settingsFund, "fund", 0, "starting balance")
	settingsSetCmd.Flags().StringVar(&settingsCurrency, "currency", "", "display currency: USD, EUR or MGA")
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	s, err := j.GetSettings()
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	fmt.Printf("Initial Fund: %s%.2f\n", s.Currency.Symbol(), s.InitialFund)
	fmt.Printf("Currency:     %s\n", s.Currency)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	s, err := j.GetSettings()
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	if cmd.Flags().Changed("fund") {
		s.InitialFund = settingsFund
	}
	if cmd.Flags().Changed("currency") {
		cur, err := journal.ParseCurrency(settingsCurrency)
		if err != nil {
			return err
		}
		s.Currency = cur
	}

	if err := j.UpdateSettings(s.InitialFund, s.Currency); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}

	fmt.Printf("✓ Settings updated: %s%.2f %s\n", s.Currency.Symbol(), s.InitialFund, s.Currency)
	return nil
}
