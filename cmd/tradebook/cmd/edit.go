package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/journal"
)

var editCmd = &cobra.Command{
	Use:   "edit <trade-id>",
	Short: "Edit an existing trade",
	Long: `Update fields of the trade with the given id. Only the flags you pass
change; the rest keep their stored values. An unknown id is an error.

Example:
  tradebook edit 01HV... --amount 175 --desc "partial fill"`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editAmount string
	editType   string
	editDate   string
	editDesc   string
)

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVarP(&editAmount, "amount", "a", "", "new amount")
	editCmd.Flags().StringVarP(&editType, "type", "t", "", "new type: profit or loss")
	editCmd.Flags().StringVar(&editDate, "date", "", "new date YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS")
	editCmd.Flags().StringVar(&editDesc, "desc", "", "new description")
}

func runEdit(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	rec, err := j.GetTrade(args[0])
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("amount") {
		amount, err := strconv.ParseFloat(editAmount, 64)
		if err != nil {
			return fmt.Errorf("%w: amount %q is not a number", journal.ErrValidation, editAmount)
		}
		rec.Amount = amount
	}
	if cmd.Flags().Changed("type") {
		typ, err := journal.ParseTradeType(editType)
		if err != nil {
			return err
		}
		rec.Type = typ
	}
	if cmd.Flags().Changed("date") {
		date, err := parseDateArg(editDate)
		if err != nil {
			return err
		}
		rec.Date = date
	}
	if cmd.Flags().Changed("desc") {
		rec.Description = editDesc
	}

	if err := j.UpdateTrade(rec); err != nil {
		return fmt.Errorf("update trade: %w", err)
	}

	fmt.Printf("✓ Updated %s\n", rec.ID)
	return nil
}
