// Package store provides the local run catalog: every forward-modelling
// run's parameters, predicted data, and comparison summary, persisted to
// SQLite for later inspection.
package store

import (
	"errors"
	"time"

	"github.com/kvernstuen/vesound/internal/compare"
	"github.com/kvernstuen/vesound/internal/earth"
)

// ErrRunNotFound indicates a run ID absent from the catalog.
var ErrRunNotFound = errors.New("store: run not found")

// Run is one recorded forward-modelling run.
type Run struct {
	// ID is a short content-derived identifier assigned on save.
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Survey parameters.
	AMin      float64 `json:"a_min"`
	AMax      float64 `json:"a_max"`
	NStations int     `json:"n_stations"`

	// Quantity names what was predicted (apparent resistivity or potential).
	Quantity string `json:"quantity"`

	// Models are the layered models that were forward-modelled.
	Models []earth.Model `json:"models"`

	// Soundings holds the predicted curves, one entry per model per station.
	Soundings []Sounding `json:"soundings"`

	// Summary compares the second model against the first, when a run
	// modelled at least two.
	Summary *compare.Summary `json:"summary,omitempty"`
}

// Sounding is one predicted value of one model's curve.
type Sounding struct {
	Model      string  `json:"model"`
	Station    int     `json:"station"`
	Separation float64 `json:"separation"`
	Value      float64 `json:"value"`
}

// RunMeta is the listing view of a run.
type RunMeta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	NStations int       `json:"n_stations"`
	NModels   int       `json:"n_models"`
	Quantity  string    `json:"quantity"`
}
