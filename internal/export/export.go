// Package export writes survey geometry, synthetic observations, and model
// parameters to flat text files.
package export

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/kvernstuen/vesound/internal/compare"
	"github.com/kvernstuen/vesound/internal/earth"
	"github.com/kvernstuen/vesound/internal/geometry"
)

// Exporter writes one model's result files into Dir. Files are written
// independently; there is no transactional guarantee across them, and a
// failed run's partial output is not a valid result.
type Exporter struct {
	Dir string
}

// New returns an Exporter rooted at dir.
func New(dir string) *Exporter {
	return &Exporter{Dir: dir}
}

// Write emits three files for the model:
//
//	<name>.dobs        electrode positions + noised observation, one row per source
//	true_<name>.txt    one resistivity per line
//	layers<name>.txt   one integer-rounded thickness per line
//
// The observation column is data[i] passed through noiser; row order is
// survey order. Returns compare.ErrLengthMismatch when data does not match
// the survey and geometry.ErrInvalidSurvey when a source does not carry
// exactly one receiver.
func (e *Exporter) Write(survey geometry.Survey, model earth.Model, data []float64, noiser Noiser) error {
	sources := survey.Sources()
	if len(data) != len(sources) {
		return fmt.Errorf("%w: %d values for %d sources", compare.ErrLengthMismatch, len(data), len(sources))
	}
	if noiser == nil {
		noiser = NoNoise
	}

	if err := os.MkdirAll(e.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var dobs strings.Builder
	for i, src := range sources {
		if len(src.Receivers) != 1 {
			return fmt.Errorf("%w: source %d has %d receivers, want 1",
				geometry.ErrInvalidSurvey, i, len(src.Receivers))
		}
		rx := src.Receivers[0]
		for _, el := range []geometry.Electrode{src.A, src.B, rx.M, rx.N} {
			fmt.Fprintf(&dobs, "%.4e %.4e %.4e ", el.X, el.Y, el.Z)
		}
		fmt.Fprintf(&dobs, "%.4e\n", noiser(data[i]))
	}
	if err := e.writeFile(model.Name+".dobs", dobs.String()); err != nil {
		return err
	}

	var trues strings.Builder
	for _, rho := range model.Resistivities {
		fmt.Fprintf(&trues, "%.4e\n", rho)
	}
	if err := e.writeFile("true_"+model.Name+".txt", trues.String()); err != nil {
		return err
	}

	var layers strings.Builder
	for _, h := range model.Thicknesses {
		fmt.Fprintf(&layers, "%d\n", int(math.Round(h)))
	}
	return e.writeFile("layers"+model.Name+".txt", layers.String())
}

func (e *Exporter) writeFile(name, content string) error {
	path := filepath.Join(e.Dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
