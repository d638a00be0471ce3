package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// BuildWennerSurvey constructs a sounding survey of nStations symmetric
// four-electrode spreads centered on the origin. Electrode separations a
// are linearly spaced over [aMin, aMax]; for each a the current electrodes
// sit at x = ∓1.5a and the single potential dipole at x = ∓0.5a, all on
// the surface (y = z = 0).
func BuildWennerSurvey(aMin, aMax float64, nStations int) (Survey, error) {
	if aMin <= 0 || aMax <= 0 {
		return Survey{}, fmt.Errorf("%w: separations must be > 0 (got aMin=%g, aMax=%g)",
			ErrInvalidSurvey, aMin, aMax)
	}
	if aMax < aMin {
		return Survey{}, fmt.Errorf("%w: aMax=%g < aMin=%g", ErrInvalidSurvey, aMax, aMin)
	}
	if nStations < 1 {
		return Survey{}, fmt.Errorf("%w: nStations=%d must be >= 1", ErrInvalidSurvey, nStations)
	}

	separations := Separations(aMin, aMax, nStations)

	sources := make([]Source, 0, nStations)
	for _, a := range separations {
		src := Source{
			A: Electrode{X: -1.5 * a},
			B: Electrode{X: 1.5 * a},
			Receivers: []Receiver{{
				M: Electrode{X: -0.5 * a},
				N: Electrode{X: 0.5 * a},
			}},
		}
		sources = append(sources, src)
	}
	return NewSurvey(sources), nil
}

// Separations returns n electrode separations linearly spaced over
// [aMin, aMax]. For n == 1 the single separation is aMin.
func Separations(aMin, aMax float64, n int) []float64 {
	if n == 1 {
		return []float64{aMin}
	}
	return floats.Span(make([]float64, n), aMin, aMax)
}

// Separation recovers the electrode separation a of a symmetric spread
// from its potential dipole: a = |N.X - M.X| of the first receiver.
func Separation(src Source) float64 {
	if len(src.Receivers) == 0 {
		return 0
	}
	r := src.Receivers[0]
	d := r.N.X - r.M.X
	if d < 0 {
		return -d
	}
	return d
}
