package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/kvernstuen/vesound/internal/compare"
	"github.com/kvernstuen/vesound/internal/earth"
)

func newTestStore(t *testing.T) *RunStore {
	t.Helper()
	s, err := NewRunStore(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("NewRunStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRun() Run {
	return Run{
		AMin:      20,
		AMax:      100,
		NStations: 3,
		Quantity:  "apparent_resistivity",
		Models: []earth.Model{
			{Name: "a", Thicknesses: []float64{50, 20}, Resistivities: []float64{2000, 10, 2000}},
			{Name: "b", Thicknesses: []float64{50, 10}, Resistivities: []float64{2000, 5, 2000}},
		},
		Soundings: []Sounding{
			{Model: "a", Station: 0, Separation: 20, Value: 1500.1},
			{Model: "a", Station: 1, Separation: 60, Value: 900.2},
			{Model: "a", Station: 2, Separation: 100, Value: 600.3},
			{Model: "b", Station: 0, Separation: 20, Value: 1501.0},
			{Model: "b", Station: 1, Separation: 60, Value: 901.1},
			{Model: "b", Station: 2, Separation: 100, Value: 601.2},
		},
		Summary: &compare.Summary{MaxAbsDiff: 0.9, MeanAbsDiff: 0.9, MaxRelDiff: 0.0015, N: 3},
	}
}

func TestSaveAndGetRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.SaveRun(ctx, testRun())
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if len(id) != 12 {
		t.Errorf("run ID %q, want 12 hex chars", id)
	}

	got, err := s.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.NStations != 3 || got.Quantity != "apparent_resistivity" {
		t.Errorf("run = %+v", got)
	}
	if len(got.Models) != 2 || got.Models[0].Name != "a" {
		t.Errorf("models = %+v", got.Models)
	}
	if len(got.Soundings) != 6 {
		t.Errorf("len(Soundings) = %d, want 6", len(got.Soundings))
	}
	if got.Summary == nil || got.Summary.N != 3 {
		t.Errorf("summary = %+v", got.Summary)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestGetRunNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetRun(context.Background(), "deadbeef0000")
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("error = %v, want ErrRunNotFound", err)
	}
}

func TestListRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		run := testRun()
		run.NStations = 3 + i
		if _, err := s.SaveRun(ctx, run); err != nil {
			t.Fatalf("SaveRun %d: %v", i, err)
		}
	}

	metas, err := s.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(metas) != 3 {
		t.Fatalf("len(metas) = %d, want 3", len(metas))
	}
	for _, m := range metas {
		if m.NModels != 2 {
			t.Errorf("run %s: NModels = %d, want 2", m.ID, m.NModels)
		}
	}

	limited, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns(limit=2): %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("len(limited) = %d, want 2", len(limited))
	}
}

func TestRunWithoutSummary(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run := testRun()
	run.Summary = nil
	run.Models = run.Models[:1]
	run.Soundings = run.Soundings[:3]

	id, err := s.SaveRun(ctx, run)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	got, err := s.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Summary != nil {
		t.Errorf("summary = %+v, want nil", got.Summary)
	}
}
