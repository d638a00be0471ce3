package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kvernstuen/vesound/internal/compare"
	"github.com/kvernstuen/vesound/internal/export"
	"github.com/kvernstuen/vesound/internal/geometry"
	"github.com/kvernstuen/vesound/internal/solver"
	"github.com/kvernstuen/vesound/internal/store"
)

// runResult is the machine-readable summary of a full pipeline run.
type runResult struct {
	RunID       string             `json:"run_id,omitempty"`
	OutputDir   string             `json:"output_dir"`
	Separations []float64          `json:"separations"`
	Curves      map[string][]float64 `json:"curves"`
	Summaries   []modelSummary     `json:"summaries,omitempty"`
}

type modelSummary struct {
	Model   string          `json:"model"`
	Against string          `json:"against"`
	Summary compare.Summary `json:"summary"`
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Forward-model all configured models, compare, export, and record",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			outDir, _ := cmd.Flags().GetString("out")
			noStore, _ := cmd.Flags().GetBool("no-store")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if outDir != "" {
				cfg.Output.Dir = outDir
			}
			if len(cfg.Models) == 0 {
				return fmt.Errorf("no models configured")
			}
			log := newLogger(cfg)

			survey, err := geometry.BuildWennerSurvey(cfg.Survey.AMin, cfg.Survey.AMax, cfg.Survey.NStations)
			if err != nil {
				return err
			}
			seps := geometry.Separations(cfg.Survey.AMin, cfg.Survey.AMax, cfg.Survey.NStations)
			log.Info("survey built", "stations", survey.NSources(),
				"a_min", cfg.Survey.AMin, "a_max", cfg.Survey.AMax)

			sol := solver.NewLayeredSolver()
			exporter := export.New(cfg.Output.Dir)
			ctx := cmd.Context()

			res := runResult{
				OutputDir:   cfg.Output.Dir,
				Separations: seps,
				Curves:      make(map[string][]float64, len(cfg.Models)),
			}
			rec := store.Run{
				AMin:      cfg.Survey.AMin,
				AMax:      cfg.Survey.AMax,
				NStations: cfg.Survey.NStations,
				Quantity:  string(solver.ApparentResistivity),
				Models:    cfg.Models,
			}

			var reference []float64
			for i, model := range cfg.Models {
				data, err := forwardModel(ctx, log, sol, survey, model, seps)
				if err != nil {
					return err
				}
				res.Curves[model.Name] = data

				for j, v := range data {
					rec.Soundings = append(rec.Soundings, store.Sounding{
						Model: model.Name, Station: j, Separation: seps[j], Value: v,
					})
				}

				noiser := export.UniformNoiser(cfg.Noise.Fraction, cfg.Noise.Seed+uint64(i))
				if err := exporter.Write(survey, model, data, noiser); err != nil {
					return err
				}
				log.Info("exported", "model", model.Name, "dir", cfg.Output.Dir)

				if i == 0 {
					reference = data
					continue
				}
				summary, err := compare.Summarize(reference, data)
				if err != nil {
					return err
				}
				res.Summaries = append(res.Summaries, modelSummary{
					Model:   model.Name,
					Against: cfg.Models[0].Name,
					Summary: summary,
				})
				if i == 1 {
					rec.Summary = &summary
				}
			}

			if cfg.Store.Enabled && !noStore {
				st, err := store.NewRunStore(cfg.Store.Path)
				if err != nil {
					return err
				}
				defer st.Close()
				id, err := st.SaveRun(ctx, rec)
				if err != nil {
					return fmt.Errorf("failed to record run: %w", err)
				}
				res.RunID = id
				log.Info("run recorded", "id", id)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(res)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sounding: %d stations, a = [%g, %g] m\n",
				len(seps), cfg.Survey.AMin, cfg.Survey.AMax)
			for _, m := range cfg.Models {
				fmt.Fprintf(out, "  %s: %d layers, conductances %v S\n",
					m.Name, m.NLayers(), m.Conductances())
			}
			for _, ms := range res.Summaries {
				fmt.Fprintf(out, "%s vs %s: max |Δρa| = %.4g ohm-m, max rel diff = %.3g%%\n",
					ms.Model, ms.Against, ms.Summary.MaxAbsDiff, 100*ms.Summary.MaxRelDiff)
			}
			fmt.Fprintf(out, "Results written to %s\n", cfg.Output.Dir)
			if res.RunID != "" {
				fmt.Fprintf(out, "Run recorded as %s\n", res.RunID)
			}
			return nil
		},
	}

	cmd.Flags().String("out", "", "Output directory (overrides config)")
	cmd.Flags().Bool("no-store", false, "Skip recording the run in the catalog")
	return cmd
}
