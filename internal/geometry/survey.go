// Package geometry defines electrode layouts for DC resistivity soundings.
package geometry

import "errors"

// ErrInvalidSurvey indicates bad survey construction parameters.
var ErrInvalidSurvey = errors.New("geometry: invalid survey parameters")

// Electrode is a point electrode position in meters. For 1D soundings
// y and z are zero by convention.
type Electrode struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Receiver is a potential measurement: a dipole (M, N) or, when Pole is
// set, a single electrode M with N at effective infinity.
type Receiver struct {
	M    Electrode `json:"m"`
	N    Electrode `json:"n"`
	Pole bool      `json:"pole,omitempty"`
}

// Source is a current injection: a dipole (A, B) or, when Pole is set, a
// single electrode A with the return at effective infinity. A source owns
// the receivers measured while it is active.
type Source struct {
	A         Electrode  `json:"a"`
	B         Electrode  `json:"b"`
	Pole      bool       `json:"pole,omitempty"`
	Receivers []Receiver `json:"receivers"`
}

// Survey is an ordered sequence of sources. Insertion order is measurement
// order, and predicted data follows it. A Survey is immutable once built.
type Survey struct {
	sources []Source
}

// NewSurvey copies sources into an immutable Survey.
func NewSurvey(sources []Source) Survey {
	cp := make([]Source, len(sources))
	copy(cp, sources)
	return Survey{sources: cp}
}

// Sources returns a copy of the source sequence in measurement order.
func (s Survey) Sources() []Source {
	cp := make([]Source, len(s.sources))
	copy(cp, s.sources)
	return cp
}

// NSources returns the number of sources, which is also the length of any
// predicted data vector for this survey.
func (s Survey) NSources() int {
	return len(s.sources)
}
