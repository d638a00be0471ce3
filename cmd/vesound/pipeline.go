package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kvernstuen/vesound/internal/config"
	"github.com/kvernstuen/vesound/internal/earth"
	"github.com/kvernstuen/vesound/internal/geometry"
	"github.com/kvernstuen/vesound/internal/logging"
	"github.com/kvernstuen/vesound/internal/solver"
)

// loadConfig resolves the --config flag into a validated Config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the operational logger from config.
func newLogger(cfg *config.Config) *slog.Logger {
	return logging.NewLogger(cfg.Logging.Level, os.Stderr)
}

// forwardModel runs one model over the survey, tracing per-station output.
func forwardModel(ctx context.Context, log *slog.Logger, s solver.Solver,
	survey geometry.Survey, model earth.Model, seps []float64) ([]float64, error) {

	log.Debug("forward modelling", "model", model.Name,
		"layers", model.NLayers(), "conductances", model.Conductances())

	data, err := s.Predict(ctx, survey, model, solver.ApparentResistivity)
	if err != nil {
		return nil, fmt.Errorf("forward modelling %s: %w", model.Name, err)
	}
	for i, v := range data {
		log.Log(ctx, logging.LevelTrace, "station",
			"model", model.Name, "a", seps[i], "rhoa", v)
	}
	return data, nil
}

// parseFloats parses a comma-separated list like "50,20" into a slice.
func parseFloats(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
