package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kvernstuen/vesound/internal/compare"
	"github.com/kvernstuen/vesound/internal/geometry"
	"github.com/kvernstuen/vesound/internal/solver"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the sounding curves of the first two configured models",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			relTol, _ := cmd.Flags().GetFloat64("rel-tol")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if len(cfg.Models) < 2 {
				return fmt.Errorf("compare needs at least two configured models, got %d", len(cfg.Models))
			}
			log := newLogger(cfg)

			survey, err := geometry.BuildWennerSurvey(cfg.Survey.AMin, cfg.Survey.AMax, cfg.Survey.NStations)
			if err != nil {
				return err
			}
			seps := geometry.Separations(cfg.Survey.AMin, cfg.Survey.AMax, cfg.Survey.NStations)

			sol := solver.NewLayeredSolver()
			modelA, modelB := cfg.Models[0], cfg.Models[1]
			dataA, err := forwardModel(cmd.Context(), log, sol, survey, modelA, seps)
			if err != nil {
				return err
			}
			dataB, err := forwardModel(cmd.Context(), log, sol, survey, modelB, seps)
			if err != nil {
				return err
			}

			diff, err := compare.AbsDiff(dataA, dataB)
			if err != nil {
				return err
			}
			summary, err := compare.Summarize(dataA, dataB)
			if err != nil {
				return err
			}
			equivalent := summary.MaxRelDiff <= relTol

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"model_a":    modelA,
					"model_b":    modelB,
					"abs_diff":   diff,
					"summary":    summary,
					"rel_tol":    relTol,
					"equivalent": equivalent,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%12s %16s %16s %12s\n", "a (m)", modelA.Name, modelB.Name, "|diff|")
			for i := range dataA {
				fmt.Fprintf(out, "%12.4f %16.4f %16.4f %12.4f\n", seps[i], dataA[i], dataB[i], diff[i])
			}
			fmt.Fprintf(out, "max |Δρa| = %.4g ohm-m, mean = %.4g, max rel = %.3g%%\n",
				summary.MaxAbsDiff, summary.MeanAbsDiff, 100*summary.MaxRelDiff)
			if equivalent {
				fmt.Fprintf(out, "Curves are equivalent within %.3g%%\n", 100*relTol)
			} else {
				fmt.Fprintf(out, "Curves differ beyond %.3g%%\n", 100*relTol)
			}
			return nil
		},
	}

	cmd.Flags().Float64("rel-tol", 0.05, "Relative tolerance for the equivalence verdict")
	return cmd
}
