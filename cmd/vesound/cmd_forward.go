package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kvernstuen/vesound/internal/earth"
	"github.com/kvernstuen/vesound/internal/geometry"
	"github.com/kvernstuen/vesound/internal/solver"
)

func newForwardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forward",
		Short: "Forward-model one layered model over the configured survey",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			name, _ := cmd.Flags().GetString("name")
			thickStr, _ := cmd.Flags().GetString("thicknesses")
			rhoStr, _ := cmd.Flags().GetString("resistivities")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log := newLogger(cfg)

			var model earth.Model
			if rhoStr == "" {
				if len(cfg.Models) == 0 {
					return fmt.Errorf("no models configured; pass --resistivities or add models to the config")
				}
				model = cfg.Models[0]
			} else {
				thicknesses, err := parseFloats(thickStr)
				if err != nil {
					return fmt.Errorf("invalid --thicknesses: %w", err)
				}
				resistivities, err := parseFloats(rhoStr)
				if err != nil {
					return fmt.Errorf("invalid --resistivities: %w", err)
				}
				if model, err = earth.NewModel(name, thicknesses, resistivities); err != nil {
					return err
				}
			}

			survey, err := geometry.BuildWennerSurvey(cfg.Survey.AMin, cfg.Survey.AMax, cfg.Survey.NStations)
			if err != nil {
				return err
			}
			seps := geometry.Separations(cfg.Survey.AMin, cfg.Survey.AMax, cfg.Survey.NStations)

			data, err := forwardModel(cmd.Context(), log, solver.NewLayeredSolver(), survey, model, seps)
			if err != nil {
				return err
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"model":                  model,
					"separations":            seps,
					"apparent_resistivities": data,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", model)
			fmt.Fprintf(out, "%12s %16s\n", "a (m)", "rho_a (ohm-m)")
			for i := range data {
				fmt.Fprintf(out, "%12.4f %16.4f\n", seps[i], data[i])
			}
			return nil
		},
	}

	cmd.Flags().String("name", "model", "Model name")
	cmd.Flags().String("thicknesses", "", "Comma-separated layer thicknesses in meters (one fewer than resistivities)")
	cmd.Flags().String("resistivities", "", "Comma-separated layer resistivities in ohm-m")
	return cmd
}
