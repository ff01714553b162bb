// Package cli wires the kassa commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kassa",
	Short: "kassa builds cash flow reports from MoySklad",
	Long:  `kassa fetches cash-in and cash-out documents from the MoySklad API and renders a currency balance report.`,
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(createReportCmd())
	rootCmd.AddCommand(createServeCmd())
}
