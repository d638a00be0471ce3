// Package compare measures the pointwise agreement of predicted sounding
// curves from the same survey.
package compare

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrLengthMismatch indicates two data vectors that cannot originate from
// the same survey.
var ErrLengthMismatch = errors.New("compare: predicted data lengths differ")

// AbsDiff returns the elementwise absolute difference |a[i]−b[i]|.
func AbsDiff(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(a), len(b))
	}
	d := make([]float64, len(a))
	for i := range a {
		d[i] = math.Abs(a[i] - b[i])
	}
	return d, nil
}

// Summary condenses the agreement of two curves for display and storage.
type Summary struct {
	// MaxAbsDiff is the worst pointwise absolute difference.
	MaxAbsDiff float64 `json:"max_abs_diff"`

	// MeanAbsDiff is the average pointwise absolute difference.
	MeanAbsDiff float64 `json:"mean_abs_diff"`

	// MaxRelDiff is the worst pointwise |a−b|/|a|.
	MaxRelDiff float64 `json:"max_rel_diff"`

	// N is the number of compared stations.
	N int `json:"n"`
}

// Summarize compares two predicted data vectors from the same survey.
func Summarize(a, b []float64) (Summary, error) {
	diff, err := AbsDiff(a, b)
	if err != nil {
		return Summary{}, err
	}
	if len(diff) == 0 {
		return Summary{}, nil
	}

	s := Summary{
		MaxAbsDiff:  floats.Max(diff),
		MeanAbsDiff: stat.Mean(diff, nil),
		N:           len(diff),
	}
	for i := range a {
		if a[i] == 0 {
			continue
		}
		if rel := diff[i] / math.Abs(a[i]); rel > s.MaxRelDiff {
			s.MaxRelDiff = rel
		}
	}
	return s, nil
}

// Equivalent reports whether two curves agree within relTol at every
// station. This is the pass/fail form of the equivalence demonstration.
func Equivalent(a, b []float64, relTol float64) (bool, error) {
	s, err := Summarize(a, b)
	if err != nil {
		return false, err
	}
	return s.MaxRelDiff <= relTol, nil
}
