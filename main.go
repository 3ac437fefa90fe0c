package main

import (
	"fmt"
	"os"

	"budget-recon/cmd/reconcile"
	"budget-recon/cmd/root"
	"budget-recon/cmd/validate"
	"budget-recon/cmd/version"
	"budget-recon/internal/config"
)

func init() {
	// 1. Load .env before viper reads the environment. Nothing is logged yet:
	// the logger depends on configuration that may come from this file.
	if _, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
	}

	// 2. Initialize root command flags
	root.Init()

	// 3. Add all subcommands
	root.Cmd.AddCommand(reconcile.Cmd)
	root.Cmd.AddCommand(validate.Cmd)
	root.Cmd.AddCommand(version.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
