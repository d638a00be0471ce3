// Package earth defines the 1D layered-earth resistivity model used as
// input to forward modelling.
package earth

import (
	"errors"
	"fmt"
)

// ErrInvalidModel indicates malformed layer arrays: inconsistent lengths
// or non-positive thicknesses/resistivities.
var ErrInvalidModel = errors.New("earth: invalid layered model")

// Model is a 1D layered half-space. Layers are ordered top-down; the
// bottom layer extends to infinite depth, so there is one fewer thickness
// than resistivity. A Model is a value object: construct once, read only.
type Model struct {
	// Name labels the model in exports and the run catalog.
	Name string `json:"name" yaml:"name"`

	// Thicknesses holds the finite layer thicknesses in meters, top-down.
	// Length is NLayers()-1.
	Thicknesses []float64 `json:"thicknesses" yaml:"thicknesses"`

	// Resistivities holds per-layer resistivity in ohm-m, top-down.
	Resistivities []float64 `json:"resistivities" yaml:"resistivities"`
}

// NewModel validates and returns a layered model.
func NewModel(name string, thicknesses, resistivities []float64) (Model, error) {
	m := Model{Name: name, Thicknesses: thicknesses, Resistivities: resistivities}
	if err := m.Validate(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// Validate checks the layer-array invariants.
func (m Model) Validate() error {
	if len(m.Resistivities) == 0 {
		return fmt.Errorf("%w: no layers", ErrInvalidModel)
	}
	if len(m.Thicknesses) != len(m.Resistivities)-1 {
		return fmt.Errorf("%w: %d thicknesses for %d resistivities (want %d)",
			ErrInvalidModel, len(m.Thicknesses), len(m.Resistivities), len(m.Resistivities)-1)
	}
	for i, h := range m.Thicknesses {
		if h <= 0 {
			return fmt.Errorf("%w: thickness[%d] = %g must be > 0", ErrInvalidModel, i, h)
		}
	}
	for i, rho := range m.Resistivities {
		if rho <= 0 {
			return fmt.Errorf("%w: resistivity[%d] = %g must be > 0", ErrInvalidModel, i, rho)
		}
	}
	return nil
}

// NLayers returns the layer count including the infinite bottom layer.
func (m Model) NLayers() int {
	return len(m.Resistivities)
}

// Conductances returns per-layer conductance (thickness/resistivity, in
// siemens) for the finite layers. Conductance is the quantity conserved
// across equivalent models; it is diagnostic output only and feeds nothing
// downstream.
func (m Model) Conductances() []float64 {
	s := make([]float64, len(m.Thicknesses))
	for i, h := range m.Thicknesses {
		s[i] = h / m.Resistivities[i]
	}
	return s
}

// String formats the model for log lines and CLI output.
func (m Model) String() string {
	return fmt.Sprintf("Model{%s: %d layers, h=%v, rho=%v}",
		m.Name, m.NLayers(), m.Thicknesses, m.Resistivities)
}
