package solver

import (
	"context"
	"fmt"
	"math"

	"github.com/kvernstuen/vesound/internal/earth"
	"github.com/kvernstuen/vesound/internal/geometry"
)

// LayeredSolver is the default Solver for 1D layered half-spaces.
//
// The surface potential of a point current source over a layered earth is
// the Hankel integral U(r) = (I/2π) ∫ T(λ) J0(λr) dλ, where T is the
// resistivity transform built bottom-up by the tanh recurrence
//
//	T_i(λ) = (T_{i+1} + ρ_i·tanh(λh_i)) / (1 + T_{i+1}·tanh(λh_i)/ρ_i).
//
// The integral is split as ρ₁/r plus the transform deviation (T−ρ₁), which
// decays like exp(−2λh₁) and is integrated by composite Simpson quadrature
// with math.J0 as the Bessel kernel.
type LayeredSolver struct {
	// TailDecay sets the quadrature truncation point: integration stops
	// once the deviation bound exp(-TailDecay) is reached.
	TailDecay float64

	// Step is the quadrature step in the dimensionless variable u = λr.
	Step float64
}

// NewLayeredSolver returns a solver with quadrature settings good for a
// few significant digits across realistic sounding geometries.
func NewLayeredSolver() *LayeredSolver {
	return &LayeredSolver{TailDecay: 30, Step: 0.05}
}

// Predict computes one value per source, in survey order.
func (s *LayeredSolver) Predict(ctx context.Context, survey geometry.Survey, model earth.Model, q Quantity) ([]float64, error) {
	if q != ApparentResistivity && q != Potential {
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuantity, q)
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}

	sources := survey.Sources()
	data := make([]float64, len(sources))
	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(src.Receivers) != 1 {
			return nil, fmt.Errorf("%w: source %d has %d receivers, want 1",
				geometry.ErrInvalidSurvey, i, len(src.Receivers))
		}

		dv, gf, err := s.station(src, model)
		if err != nil {
			return nil, fmt.Errorf("station %d: %w", i, err)
		}

		v := dv
		if q == ApparentResistivity {
			v = dv * gf
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || (q == ApparentResistivity && v <= 0) {
			return nil, fmt.Errorf("%w: station %d produced %g", ErrSolverDiverged, i, v)
		}
		data[i] = v
	}
	return data, nil
}

// station returns the potential difference per unit current and the
// geometric factor for one four-electrode (or pole-reduced) spread.
func (s *LayeredSolver) station(src geometry.Source, model earth.Model) (dv, gf float64, err error) {
	rx := src.Receivers[0]

	// Signed electrode-pair terms: +AM, −BM, −AN, +BN. Pole sources and
	// receivers drop the terms involving the electrode at infinity.
	type pair struct {
		r    float64
		sign float64
	}
	pairs := []pair{{dist(src.A, rx.M), 1}}
	if !src.Pole {
		pairs = append(pairs, pair{dist(src.B, rx.M), -1})
	}
	if !rx.Pole {
		pairs = append(pairs, pair{dist(src.A, rx.N), -1})
		if !src.Pole {
			pairs = append(pairs, pair{dist(src.B, rx.N), 1})
		}
	}

	var sum, geom float64
	for _, p := range pairs {
		if p.r <= 0 {
			return 0, 0, fmt.Errorf("%w: coincident electrodes", geometry.ErrInvalidSurvey)
		}
		sum += p.sign * s.kernelIntegral(p.r, model)
		geom += p.sign / p.r
	}
	if geom == 0 {
		return 0, 0, fmt.Errorf("%w: degenerate geometry (zero geometric factor)", geometry.ErrInvalidSurvey)
	}

	dv = sum / (2 * math.Pi)
	gf = 2 * math.Pi / geom
	return dv, gf, nil
}

// kernelIntegral evaluates G(r) = ∫₀^∞ T(λ) J0(λr) dλ. The homogeneous
// part integrates exactly to ρ₁/r; the deviation is integrated numerically
// in u = λr over the range where exp(−2λh₁) has not died off.
func (s *LayeredSolver) kernelIntegral(r float64, model earth.Model) float64 {
	rho1 := model.Resistivities[0]
	if model.NLayers() == 1 {
		return rho1 / r
	}

	h1 := model.Thicknesses[0]
	uMax := s.TailDecay / (2 * h1) * r
	n := int(math.Ceil(uMax / s.Step))
	if n < 64 {
		n = 64
	}
	if n > 1<<20 {
		n = 1 << 20
	}
	if n%2 == 1 {
		n++
	}

	// Composite Simpson over the deviation integrand
	// f(u) = (T(u/r) − ρ₁) J0(u).
	f := func(u float64) float64 {
		return (transform(u/r, model) - rho1) * math.J0(u)
	}
	h := uMax / float64(n)
	sum := f(0) + f(uMax)
	for j := 1; j < n; j++ {
		w := 4.0
		if j%2 == 0 {
			w = 2.0
		}
		sum += w * f(float64(j)*h)
	}
	dev := sum * h / 3

	return (rho1 + dev) / r
}

// transform evaluates the resistivity transform T(λ) bottom-up.
func transform(lambda float64, model earth.Model) float64 {
	rhos := model.Resistivities
	hs := model.Thicknesses

	t := rhos[len(rhos)-1]
	for i := len(hs) - 1; i >= 0; i-- {
		th := math.Tanh(lambda * hs[i])
		t = (t + rhos[i]*th) / (1 + t*th/rhos[i])
	}
	return t
}

func dist(a, b geometry.Electrode) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
