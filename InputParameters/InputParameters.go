package InputParameters

import (
	"fmt"
	"io"
	"runtime"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
)

// Parameters obtained from the YAML input file
type ExportParameters struct {
	Title               string  `json:"Title"`
	GridFile            string  `json:"GridFile"`
	OutputDir           string  `json:"OutputDir"`
	ParallelDegree      int     `json:"ParallelDegree"`
	DegenerateTolerance float64 `json:"DegenerateTolerance"`
	WriteNodes          bool    `json:"WriteNodes"`
	WriteElements       bool    `json:"WriteElements"`
	WriteVoronoi        bool    `json:"WriteVoronoi"`
	WriteReport         bool    `json:"WriteReport"`
}

// NewExportParameters returns the settings used when no input file is given
func NewExportParameters() *ExportParameters {
	return &ExportParameters{
		OutputDir:      ".",
		ParallelDegree: runtime.NumCPU(),
		WriteNodes:     true,
		WriteElements:  true,
		WriteVoronoi:   true,
		WriteReport:    true,
	}
}

// Parse overlays the YAML document on the current values
func (ep *ExportParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, ep); err != nil {
		return errors.Wrap(err, "parsing export parameters")
	}
	return ep.Validate()
}

func (ep *ExportParameters) Validate() error {
	switch {
	case ep.ParallelDegree < 0:
		return errors.Errorf("ParallelDegree must not be negative, have %d", ep.ParallelDegree)
	case ep.DegenerateTolerance < 0:
		return errors.Errorf("DegenerateTolerance must not be negative, have %g", ep.DegenerateTolerance)
	case ep.OutputDir == "":
		return errors.New("OutputDir is empty")
	}
	return nil
}

func (ep *ExportParameters) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ep.Title)
	fmt.Fprintf(w, "[%s]\t\t= GridFile\n", ep.GridFile)
	fmt.Fprintf(w, "[%s]\t\t= OutputDir\n", ep.OutputDir)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Parallel Degree\n", ep.ParallelDegree)
	fmt.Fprintf(w, "%8.3g\t\t= Degenerate Tolerance\n", ep.DegenerateTolerance)
	fmt.Fprintf(w, "nodes=%t elements=%t voronoi=%t report=%t\t= Outputs\n",
		ep.WriteNodes, ep.WriteElements, ep.WriteVoronoi, ep.WriteReport)
}
