// Package mcp provides an MCP (Model Context Protocol) server exposing the
// forward modeller to agents.
package mcp

// ModelSpec is a layered-earth model as supplied by a tool caller.
type ModelSpec struct {
	Name          string    `json:"name,omitempty" jsonschema:"Label for the model in the output"`
	Thicknesses   []float64 `json:"thicknesses,omitempty" jsonschema:"Finite layer thicknesses in meters top-down, one fewer than resistivities; empty for a homogeneous half-space"`
	Resistivities []float64 `json:"resistivities" jsonschema:"Per-layer resistivity in ohm-m top-down; the last layer is infinite"`
}

// SurveySpec describes the symmetric-spread sounding geometry.
type SurveySpec struct {
	AMin      float64 `json:"a_min" jsonschema:"Smallest electrode separation in meters"`
	AMax      float64 `json:"a_max" jsonschema:"Largest electrode separation in meters"`
	NStations int     `json:"n_stations" jsonschema:"Number of linearly spaced separations"`
}

// ForwardInput defines the input for the ves_forward tool.
type ForwardInput struct {
	Survey SurveySpec `json:"survey" jsonschema:"Sounding geometry to build"`
	Model  ModelSpec  `json:"model" jsonschema:"Layered model to forward-model"`
}

// ForwardOutput defines the output for the ves_forward tool.
type ForwardOutput struct {
	Separations  []float64 `json:"separations" jsonschema:"Electrode separations in meters in station order"`
	Apparent     []float64 `json:"apparent_resistivities" jsonschema:"Predicted apparent resistivity in ohm-m per station"`
	Conductances []float64 `json:"conductances" jsonschema:"Per finite layer conductance thickness/resistivity in siemens"`
}

// CompareInput defines the input for the ves_compare tool.
type CompareInput struct {
	Survey SurveySpec `json:"survey" jsonschema:"Sounding geometry shared by both models"`
	ModelA ModelSpec  `json:"model_a" jsonschema:"Reference layered model"`
	ModelB ModelSpec  `json:"model_b" jsonschema:"Layered model compared against the reference"`
	RelTol float64    `json:"rel_tol,omitempty" jsonschema:"Relative tolerance for the equivalence verdict, default 0.05"`
}

// CompareOutput defines the output for the ves_compare tool.
type CompareOutput struct {
	Separations []float64 `json:"separations" jsonschema:"Electrode separations in meters in station order"`
	ApparentA   []float64 `json:"apparent_a" jsonschema:"Apparent resistivity curve of model_a"`
	ApparentB   []float64 `json:"apparent_b" jsonschema:"Apparent resistivity curve of model_b"`
	AbsDiff     []float64 `json:"abs_diff" jsonschema:"Pointwise absolute difference of the curves"`
	MaxAbsDiff  float64   `json:"max_abs_diff" jsonschema:"Worst pointwise absolute difference"`
	MeanAbsDiff float64   `json:"mean_abs_diff" jsonschema:"Mean pointwise absolute difference"`
	MaxRelDiff  float64   `json:"max_rel_diff" jsonschema:"Worst pointwise relative difference"`
	Equivalent  bool      `json:"equivalent" jsonschema:"Whether the curves agree within rel_tol at every station"`
}
