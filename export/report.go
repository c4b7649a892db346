package export

import (
	"io"
	"math"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/notargets/tesnet/dual"
	"github.com/notargets/tesnet/geometry2D"
	"github.com/notargets/tesnet/mesh"
)

type TraceFailure struct {
	FeatureID int    `json:"fid"`
	Node      int    `json:"node"`
	Error     string `json:"error"`
}

// Report is the run summary written to report.yaml
type Report struct {
	Title         string                    `json:"title,omitempty"`
	GridFile      string                    `json:"gridFile,omitempty"`
	Statistics    mesh.Statistics           `json:"statistics"`
	Degenerate    []mesh.DegenerateTriangle `json:"degenerate,omitempty"`
	Cells         int                       `json:"cells"`
	BoundaryCells int                       `json:"boundaryCells"`
	Failures      []TraceFailure            `json:"failures,omitempty"`
	PrimalArea    float64                   `json:"primalArea"`
	DualArea      float64                   `json:"dualArea"`
	AreaBalanced  bool                      `json:"areaBalanced"`
	Outputs       []string                  `json:"outputs,omitempty"`
}

const areaTolerance = 1e-9

// NewReport summarizes a traced topology. The dual area is measured on go-geom polygons built from
// the cell rings, independently of the shoelace sum used by the tracer tests.
func NewReport(topo *mesh.Topology, res *dual.Result) (rpt *Report) {
	var (
		m      = topo.Mesh
		primal = make([]float64, m.NumElements())
		cells  = make([]float64, len(res.Cells))
	)
	for k := range primal {
		primal[k] = geometry2D.SignedArea(m.Corners(k))
	}
	for i, cell := range res.Cells {
		cells[i] = PolygonArea(cell)
	}
	rpt = &Report{
		Statistics:    topo.Statistics(),
		Degenerate:    topo.Orientation.Degenerate,
		Cells:         len(res.Cells),
		BoundaryCells: res.BoundaryCount(),
		PrimalArea:    floats.Sum(primal),
		DualArea:      floats.Sum(cells),
	}
	for _, f := range res.Failures {
		rpt.Failures = append(rpt.Failures, TraceFailure{FeatureID: f.FeatureID, Node: f.Node, Error: f.Err.Error()})
	}
	rpt.AreaBalanced = len(rpt.Failures) == 0 &&
		scalar.EqualWithinAbsOrRel(rpt.PrimalArea, rpt.DualArea, areaTolerance, areaTolerance)
	return
}

// PolygonArea is the unsigned area of a cell ring
func PolygonArea(cell dual.Cell) float64 {
	coords := make([]geom.Coord, len(cell.Points))
	for i, p := range cell.Points {
		coords[i] = geom.Coord{p.X, p.Y}
	}
	if !geometry2D.IsClosed(cell.Points) && len(coords) > 0 {
		coords = append(coords, coords[0])
	}
	if len(coords) < 4 {
		return 0
	}
	poly := geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{coords})
	return math.Abs(poly.Area())
}

func (rpt *Report) Write(w io.Writer) error {
	data, err := yaml.Marshal(rpt)
	if err != nil {
		return errors.Wrap(err, "encoding report")
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "writing report")
}
