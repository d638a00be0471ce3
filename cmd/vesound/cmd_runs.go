package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kvernstuen/vesound/internal/store"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			limit, _ := cmd.Flags().GetInt("limit")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			st, err := store.NewRunStore(cfg.Store.Path)
			if err != nil {
				return err
			}
			defer st.Close()

			metas, err := st.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(metas)
			}

			out := cmd.OutOrStdout()
			if len(metas) == 0 {
				fmt.Fprintln(out, "No recorded runs.")
				return nil
			}
			fmt.Fprintf(out, "%-14s %-20s %10s %8s %s\n", "ID", "CREATED", "STATIONS", "MODELS", "QUANTITY")
			for _, m := range metas {
				fmt.Fprintf(out, "%-14s %-20s %10d %8d %s\n",
					m.ID, m.CreatedAt.Local().Format(time.DateTime), m.NStations, m.NModels, m.Quantity)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 0, "Maximum number of runs to list (0 = all)")
	cmd.AddCommand(newRunsShowCmd())
	return cmd
}

func newRunsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one recorded run in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			st, err := store.NewRunStore(cfg.Store.Path)
			if err != nil {
				return err
			}
			defer st.Close()

			run, err := st.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(run)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s (%s)\n", run.ID, run.CreatedAt.Local().Format(time.DateTime))
			fmt.Fprintf(out, "Survey: %d stations, a = [%g, %g] m, quantity %s\n",
				run.NStations, run.AMin, run.AMax, run.Quantity)
			for _, m := range run.Models {
				fmt.Fprintf(out, "  %s\n", m)
			}
			if run.Summary != nil {
				fmt.Fprintf(out, "Summary: max |Δρa| = %.4g, mean = %.4g, max rel = %.3g%%\n",
					run.Summary.MaxAbsDiff, run.Summary.MeanAbsDiff, 100*run.Summary.MaxRelDiff)
			}
			fmt.Fprintf(out, "%-20s %8s %12s %16s\n", "MODEL", "STATION", "a (m)", "value")
			for _, snd := range run.Soundings {
				fmt.Fprintf(out, "%-20s %8d %12.4f %16.4f\n", snd.Model, snd.Station, snd.Separation, snd.Value)
			}
			return nil
		},
	}
}
