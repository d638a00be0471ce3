package earth

import (
	"errors"
	"math"
	"testing"
)

func TestNewModel(t *testing.T) {
	tests := []struct {
		name          string
		thicknesses   []float64
		resistivities []float64
		wantErr       bool
	}{
		{
			name:          "three layer model",
			thicknesses:   []float64{50, 20},
			resistivities: []float64{2000, 10, 2000},
			wantErr:       false,
		},
		{
			name:          "homogeneous half-space",
			thicknesses:   nil,
			resistivities: []float64{100},
			wantErr:       false,
		},
		{
			name:          "thickness count off by one",
			thicknesses:   []float64{50},
			resistivities: []float64{2000, 10, 2000},
			wantErr:       true,
		},
		{
			name:          "too many thicknesses",
			thicknesses:   []float64{50, 20, 5},
			resistivities: []float64{2000, 10, 2000},
			wantErr:       true,
		},
		{
			name:          "no layers",
			thicknesses:   nil,
			resistivities: nil,
			wantErr:       true,
		},
		{
			name:          "zero thickness",
			thicknesses:   []float64{0, 20},
			resistivities: []float64{2000, 10, 2000},
			wantErr:       true,
		},
		{
			name:          "negative resistivity",
			thicknesses:   []float64{50, 20},
			resistivities: []float64{2000, -10, 2000},
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewModel(tt.name, tt.thicknesses, tt.resistivities)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewModel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidModel) {
				t.Errorf("NewModel() error = %v, want ErrInvalidModel", err)
			}
		})
	}
}

func TestConductances(t *testing.T) {
	a, err := NewModel("a", []float64{50, 20}, []float64{2000, 10, 2000})
	if err != nil {
		t.Fatalf("NewModel(a): %v", err)
	}
	b, err := NewModel("b", []float64{50, 10}, []float64{2000, 5, 2000})
	if err != nil {
		t.Fatalf("NewModel(b): %v", err)
	}

	sa, sb := a.Conductances(), b.Conductances()
	if len(sa) != 2 || len(sb) != 2 {
		t.Fatalf("Conductances() lengths = %d, %d, want 2, 2", len(sa), len(sb))
	}

	// The middle layer is where the two models differ; equal conductance
	// there is what makes them equivalent.
	if math.Abs(sa[1]-2.0) > 1e-12 {
		t.Errorf("model a middle conductance = %v, want 2.0", sa[1])
	}
	if math.Abs(sa[1]-sb[1]) > 1e-12 {
		t.Errorf("middle conductances differ: %v vs %v", sa[1], sb[1])
	}
}

func TestNLayers(t *testing.T) {
	m, err := NewModel("m", []float64{50, 20}, []float64{2000, 10, 2000})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	if got := m.NLayers(); got != 3 {
		t.Errorf("NLayers() = %d, want 3", got)
	}
}
