package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "vesound",
		Short: "Layered-earth sounding curves and VES equivalence",
		Long: `vesound forward-models DC resistivity sounding curves over 1D layered
earth models and demonstrates VES equivalence: models that conserve layer
conductance (thickness/resistivity) produce nearly identical curves.

It builds a symmetric four-electrode survey, predicts apparent resistivity
per station, compares model curves pointwise, exports synthetic observation
files, and records runs in a local catalog.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newForwardCmd(),
		newCompareCmd(),
		newRunsCmd(),
		newMCPServerCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "vesound version %s\n", version)
			}
		},
	}
}
