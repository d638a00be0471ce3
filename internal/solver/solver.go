// Package solver computes predicted sounding data for a survey over a
// layered half-space. Callers depend on the Solver interface only; the
// numerics live behind it.
package solver

import (
	"context"
	"errors"

	"github.com/kvernstuen/vesound/internal/earth"
	"github.com/kvernstuen/vesound/internal/geometry"
)

// Quantity selects what a forward run predicts.
type Quantity string

const (
	// ApparentResistivity is the half-space-equivalent resistivity per
	// station, in ohm-m. The default for sounding work.
	ApparentResistivity Quantity = "apparent_resistivity"

	// Potential is the measured voltage per unit injected current
	// (ohms) per station.
	Potential Quantity = "potential"
)

// Domain errors for forward modelling.
var (
	// ErrSolverDiverged indicates the forward computation produced a
	// non-finite or non-physical value. It is never returned silently
	// inside the data vector.
	ErrSolverDiverged = errors.New("solver: forward computation diverged")

	// ErrUnknownQuantity indicates an unsupported quantity selector.
	ErrUnknownQuantity = errors.New("solver: unknown quantity")
)

// Solver predicts one value per survey source, in survey order. Output is
// deterministic given identical inputs.
type Solver interface {
	Predict(ctx context.Context, survey geometry.Survey, model earth.Model, q Quantity) ([]float64, error)
}
