package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestConfig points output and store at the test's temp directory so
// runs never touch the working tree.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := `
survey:
  a_min: 20
  a_max: 100
  n_stations: 5
models:
  - name: model_a
    thicknesses: [50, 20]
    resistivities: [2000, 10, 2000]
  - name: model_b
    thicknesses: [50, 10]
    resistivities: [2000, 5, 2000]
noise:
  fraction: 0.025
  seed: 1
output:
  dir: ` + filepath.Join(dir, "out") + `
store:
  enabled: true
  path: ` + filepath.Join(dir, "runs.db") + `
logging:
  level: info
`
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRunCmdEndToEnd(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := execute(t, newRunCmd(), "run", "--config", cfgPath, "--json")
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	var res runResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output not JSON: %v (%q)", err, out)
	}
	if len(res.Separations) != 5 {
		t.Errorf("len(Separations) = %d, want 5", len(res.Separations))
	}
	if len(res.Curves) != 2 {
		t.Errorf("len(Curves) = %d, want 2", len(res.Curves))
	}
	if len(res.Summaries) != 1 {
		t.Fatalf("len(Summaries) = %d, want 1", len(res.Summaries))
	}
	// The configured models share middle-layer conductance: the whole
	// point of the default exercise.
	if res.Summaries[0].Summary.MaxRelDiff > 0.05 {
		t.Errorf("equivalent models diverge by %v", res.Summaries[0].Summary.MaxRelDiff)
	}
	if res.RunID == "" {
		t.Error("run not recorded")
	}

	// Export files land in the output directory, one triple per model.
	for _, name := range []string{"model_a", "model_b"} {
		for _, f := range []string{name + ".dobs", "true_" + name + ".txt", "layers" + name + ".txt"} {
			if _, err := os.Stat(filepath.Join(res.OutputDir, f)); err != nil {
				t.Errorf("missing export %s: %v", f, err)
			}
		}
	}
}

func TestRunCmdNoStore(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := execute(t, newRunCmd(), "run", "--config", cfgPath, "--json", "--no-store")
	if err != nil {
		t.Fatalf("run --no-store: %v", err)
	}
	var res runResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output not JSON: %v", err)
	}
	if res.RunID != "" {
		t.Errorf("run recorded despite --no-store: %s", res.RunID)
	}
}

func TestForwardCmdWithFlags(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := execute(t, newForwardCmd(), "forward", "--config", cfgPath,
		"--name", "custom", "--thicknesses", "50,20", "--resistivities", "2000,10,2000", "--json")
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	var res struct {
		Apparent []float64 `json:"apparent_resistivities"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output not JSON: %v (%q)", err, out)
	}
	if len(res.Apparent) != 5 {
		t.Errorf("len(apparent) = %d, want 5", len(res.Apparent))
	}
	for i, v := range res.Apparent {
		if v <= 0 {
			t.Errorf("station %d: apparent resistivity %v not positive", i, v)
		}
	}
}

func TestForwardCmdRejectsBadModel(t *testing.T) {
	cfgPath := writeTestConfig(t)

	_, err := execute(t, newForwardCmd(), "forward", "--config", cfgPath,
		"--thicknesses", "50", "--resistivities", "2000,10,2000")
	if err == nil {
		t.Fatal("expected error for inconsistent layer arrays")
	}
}

func TestForwardCmdEmptyModelsConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := `
survey:
  a_min: 20
  a_max: 100
  n_stations: 5
models: []
output:
  dir: ` + filepath.Join(dir, "out") + `
`
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := execute(t, newForwardCmd(), "forward", "--config", cfgPath)
	if err == nil {
		t.Fatal("expected error with no configured models and no --resistivities")
	}
	if !strings.Contains(err.Error(), "no models configured") {
		t.Errorf("error = %v, want mention of missing models", err)
	}

	// Flags still work without configured models.
	if _, err := execute(t, newForwardCmd(), "forward", "--config", cfgPath,
		"--resistivities", "100"); err != nil {
		t.Fatalf("forward with flags: %v", err)
	}
}

func TestCompareCmd(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := execute(t, newCompareCmd(), "compare", "--config", cfgPath)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if !strings.Contains(out, "equivalent within") {
		t.Errorf("expected equivalence verdict in output:\n%s", out)
	}
}

func TestRunsCmdListsRecordedRun(t *testing.T) {
	cfgPath := writeTestConfig(t)

	if _, err := execute(t, newRunCmd(), "run", "--config", cfgPath); err != nil {
		t.Fatalf("run: %v", err)
	}

	out, err := execute(t, newRunsCmd(), "runs", "--config", cfgPath, "--json")
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	var metas []struct {
		ID      string `json:"id"`
		NModels int    `json:"n_models"`
	}
	if err := json.Unmarshal([]byte(out), &metas); err != nil {
		t.Fatalf("output not JSON: %v (%q)", err, out)
	}
	if len(metas) != 1 {
		t.Fatalf("len(metas) = %d, want 1", len(metas))
	}
	if metas[0].NModels != 2 {
		t.Errorf("NModels = %d, want 2", metas[0].NModels)
	}

	show, err := execute(t, newRunsCmd(), "runs", "show", metas[0].ID, "--config", cfgPath)
	if err != nil {
		t.Fatalf("runs show: %v", err)
	}
	if !strings.Contains(show, metas[0].ID) || !strings.Contains(show, "model_a") {
		t.Errorf("runs show output missing run detail:\n%s", show)
	}
}
