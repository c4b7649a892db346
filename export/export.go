// Package export writes the triangulation and its dual cells as GeoJSON, plus plain text dumps
// and a run report.
package export

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/notargets/tesnet/InputParameters"
	"github.com/notargets/tesnet/dual"
	"github.com/notargets/tesnet/mesh"
	"github.com/notargets/tesnet/utils"
)

const (
	NodesFile    = "nodes.dat"
	ElementsFile = "elements.dat"
	ElementsJSON = "elements.json"
	VoronoiJSON  = "voronoi.json"
	ReportFile   = "report.yaml"
)

// Run normalizes the mesh and writes the outputs selected in ep to ep.OutputDir. Incidence,
// adjacency and the dual cells are only built when the voronoi collection or the report is wanted.
func Run(m *mesh.Mesh, ep *InputParameters.ExportParameters) (rpt *Report, err error) {
	var (
		log   = utils.Logger()
		start = time.Now()
		topo  *mesh.Topology
		res   *dual.Result
	)
	if err = os.MkdirAll(ep.OutputDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating output directory %s", ep.OutputDir)
	}
	if ep.WriteVoronoi || ep.WriteReport {
		topo, err = mesh.BuildTopology(m, mesh.Options{
			ParallelDegree:      ep.ParallelDegree,
			DegenerateTolerance: ep.DegenerateTolerance,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "building topology of %s", ep.GridFile)
		}
		res = dual.TraceAll(topo, ep.ParallelDegree)
		rpt = NewReport(topo, res)
	} else {
		var orient *mesh.OrientationReport
		if orient, err = mesh.Normalize(m, ep.ParallelDegree, ep.DegenerateTolerance); err != nil {
			return nil, err
		}
		rpt = &Report{Degenerate: orient.Degenerate}
	}
	rpt.Title, rpt.GridFile = ep.Title, ep.GridFile

	write := func(name string, fn func(w io.Writer) error) {
		if err != nil {
			return
		}
		path := filepath.Join(ep.OutputDir, name)
		if err = writeFile(path, fn); err != nil {
			return
		}
		rpt.Outputs = append(rpt.Outputs, name)
		log.Infow("wrote output", "file", path)
	}
	if ep.WriteNodes {
		write(NodesFile, func(w io.Writer) error { return WriteNodes(w, m) })
	}
	if ep.WriteElements {
		write(ElementsFile, func(w io.Writer) error { return WriteElements(w, m) })
		write(ElementsJSON, func(w io.Writer) error { return WriteCollection(w, ElementCollection(m)) })
	}
	if ep.WriteVoronoi {
		write(VoronoiJSON, func(w io.Writer) error { return WriteCollection(w, CellCollection(res.Cells)) })
	}
	if ep.WriteReport {
		if !rpt.AreaBalanced {
			log.Warnw("dual area differs from mesh area", "primal", rpt.PrimalArea, "dual", rpt.DualArea)
		}
		write(ReportFile, rpt.Write)
	}
	if err != nil {
		return nil, err
	}
	log.Infow("export finished", "elapsed", time.Since(start), "memory", utils.GetMemUsage())
	return
}

func writeFile(path string, fn func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "closing %s", path)
		}
	}()
	return fn(f)
}
