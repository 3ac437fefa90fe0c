// Package reconcile implements the reconcile command
package reconcile

import (
	"budget-recon/cmd/common"
	"budget-recon/cmd/root"
	"budget-recon/internal/config"

	"github.com/spf13/cobra"
)

// Flags holds the reconcile command's path overrides. Empty values keep
// the configured paths.
type Flags struct {
	Purchasing string
	Ledger     string
	Tracking   string
	OutputDir  string
	Summary    string
}

var (
	// RunFlags is bound to the command line
	RunFlags = Flags{}

	// Cmd represents the reconcile command
	Cmd = &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile purchasing, ledger and tracking exports",
		Long: `Reconcile the purchasing, ledger and tracking exports and write four reports:

  requisitions_grouped.csv           purchasing lines grouped by requisition
  banner_docs_grouped.csv            ledger lines grouped by document code
  requisition_banner_reconciled.csv  one record per requisition or unlinked document
  review_needed.csv                  the records whose match_status is not exact_match

A run summary is printed to stderr. A missing required column aborts the run
before any report is written.

Example:
  budget-recon reconcile --purchasing "Unimarket Export.csv" --ledger "YTD Banner Lines.csv" \
    --tracking SupabaseBudgetExport.csv --output-dir reports/`,
		Args: cobra.NoArgs,
		RunE: reconcileFunc,
	}
)

func init() {
	Cmd.Flags().StringVar(&RunFlags.Purchasing, "purchasing", "", "Purchasing (Unimarket) export")
	Cmd.Flags().StringVar(&RunFlags.Ledger, "ledger", "", "Ledger (Banner) export")
	Cmd.Flags().StringVar(&RunFlags.Tracking, "tracking", "", "Tracking (Supabase) export")
	Cmd.Flags().StringVarP(&RunFlags.OutputDir, "output-dir", "o", "", "Directory for the reports")
	Cmd.Flags().StringVar(&RunFlags.Summary, "summary", "", "Also write a YAML run summary to this file")
}

// ApplyFlags copies the non-empty overrides in f onto cfg.
func ApplyFlags(cfg *config.Config, f Flags) {
	if f.Purchasing != "" {
		cfg.Inputs.Purchasing = f.Purchasing
	}
	if f.Ledger != "" {
		cfg.Inputs.Ledger = f.Ledger
	}
	if f.Tracking != "" {
		cfg.Inputs.Tracking = f.Tracking
	}
	if f.OutputDir != "" {
		cfg.Outputs.Directory = f.OutputDir
	}
	if f.Summary != "" {
		cfg.Outputs.Summary = f.Summary
	}
}

func reconcileFunc(cmd *cobra.Command, args []string) error {
	appContainer, err := root.GetContainer()
	if err != nil {
		return err
	}
	ApplyFlags(appContainer.GetConfig(), RunFlags)

	_, err = common.ProcessRun(cmd.Context(), appContainer, cmd.ErrOrStderr())
	return err
}
