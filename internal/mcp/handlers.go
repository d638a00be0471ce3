package mcp

import (
	"context"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kvernstuen/vesound/internal/compare"
	"github.com/kvernstuen/vesound/internal/earth"
	"github.com/kvernstuen/vesound/internal/geometry"
	"github.com/kvernstuen/vesound/internal/solver"
)

func (s *Server) handleForward(ctx context.Context, req *sdk.CallToolRequest, args ForwardInput) (*sdk.CallToolResult, ForwardOutput, error) {
	survey, err := buildSurvey(args.Survey)
	if err != nil {
		return nil, ForwardOutput{}, err
	}
	model, err := buildModel(args.Model, "model")
	if err != nil {
		return nil, ForwardOutput{}, err
	}

	data, err := s.solver.Predict(ctx, survey, model, solver.ApparentResistivity)
	if err != nil {
		return nil, ForwardOutput{}, fmt.Errorf("forward modelling failed: %w", err)
	}

	return nil, ForwardOutput{
		Separations:  geometry.Separations(args.Survey.AMin, args.Survey.AMax, args.Survey.NStations),
		Apparent:     data,
		Conductances: model.Conductances(),
	}, nil
}

func (s *Server) handleCompare(ctx context.Context, req *sdk.CallToolRequest, args CompareInput) (*sdk.CallToolResult, CompareOutput, error) {
	survey, err := buildSurvey(args.Survey)
	if err != nil {
		return nil, CompareOutput{}, err
	}
	modelA, err := buildModel(args.ModelA, "model_a")
	if err != nil {
		return nil, CompareOutput{}, err
	}
	modelB, err := buildModel(args.ModelB, "model_b")
	if err != nil {
		return nil, CompareOutput{}, err
	}

	relTol := args.RelTol
	if relTol <= 0 {
		relTol = 0.05
	}

	dataA, err := s.solver.Predict(ctx, survey, modelA, solver.ApparentResistivity)
	if err != nil {
		return nil, CompareOutput{}, fmt.Errorf("forward modelling %s failed: %w", modelA.Name, err)
	}
	dataB, err := s.solver.Predict(ctx, survey, modelB, solver.ApparentResistivity)
	if err != nil {
		return nil, CompareOutput{}, fmt.Errorf("forward modelling %s failed: %w", modelB.Name, err)
	}

	diff, err := compare.AbsDiff(dataA, dataB)
	if err != nil {
		return nil, CompareOutput{}, err
	}
	summary, err := compare.Summarize(dataA, dataB)
	if err != nil {
		return nil, CompareOutput{}, err
	}

	return nil, CompareOutput{
		Separations: geometry.Separations(args.Survey.AMin, args.Survey.AMax, args.Survey.NStations),
		ApparentA:   dataA,
		ApparentB:   dataB,
		AbsDiff:     diff,
		MaxAbsDiff:  summary.MaxAbsDiff,
		MeanAbsDiff: summary.MeanAbsDiff,
		MaxRelDiff:  summary.MaxRelDiff,
		Equivalent:  summary.MaxRelDiff <= relTol,
	}, nil
}

func buildSurvey(spec SurveySpec) (geometry.Survey, error) {
	return geometry.BuildWennerSurvey(spec.AMin, spec.AMax, spec.NStations)
}

func buildModel(spec ModelSpec, fallbackName string) (earth.Model, error) {
	name := spec.Name
	if name == "" {
		name = fallbackName
	}
	return earth.NewModel(name, spec.Thicknesses, spec.Resistivities)
}
