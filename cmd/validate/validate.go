// Package validate implements the validate command
package validate

import (
	"fmt"

	"budget-recon/cmd/common"
	"budget-recon/cmd/reconcile"
	"budget-recon/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the validate command
var Cmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the three exports can be read and carry the required columns",
	Long: `Read the purchasing, ledger and tracking exports without writing anything.
Prints the encoding and row count detected for each export and lists every
required column that is missing. Exits non-zero when an export cannot be read
or lacks a required column.`,
	Args: cobra.NoArgs,
	RunE: validateFunc,
}

var inputFlags = reconcile.Flags{}

func init() {
	Cmd.Flags().StringVar(&inputFlags.Purchasing, "purchasing", "", "Purchasing (Unimarket) export")
	Cmd.Flags().StringVar(&inputFlags.Ledger, "ledger", "", "Ledger (Banner) export")
	Cmd.Flags().StringVar(&inputFlags.Tracking, "tracking", "", "Tracking (Supabase) export")
}

func validateFunc(cmd *cobra.Command, args []string) error {
	appContainer, err := root.GetContainer()
	if err != nil {
		return err
	}
	reconcile.ApplyFlags(appContainer.GetConfig(), inputFlags)

	reports, err := common.ValidateInputs(appContainer)
	if err != nil {
		return err
	}
	if err := common.WriteInputReports(cmd.OutOrStdout(), reports); err != nil {
		return err
	}

	for _, r := range reports {
		if !r.Valid() {
			return fmt.Errorf("%s export is missing required columns", r.Dataset)
		}
	}
	return nil
}
