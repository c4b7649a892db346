package mesh

import (
	"fmt"
	"io"
	"time"

	"github.com/notargets/tesnet/utils"
)

type Options struct {
	ParallelDegree      int
	DegenerateTolerance float64 // sliver height over longest side, 0 flags only zero area elements
}

// Topology bundles a normalized mesh with its incidence and adjacency. It is read-only once
// built and safe to share between goroutines.
type Topology struct {
	Mesh        *Mesh
	Incidence   *Incidence
	Adjacency   *Adjacency
	Orientation *OrientationReport
}

// BuildTopology normalizes orientation in place, then derives incidence and adjacency
func BuildTopology(m *Mesh, opts Options) (topo *Topology, err error) {
	var (
		log   = utils.Logger()
		start = time.Now()
	)
	topo = &Topology{Mesh: m}
	if topo.Orientation, err = Normalize(m, opts.ParallelDegree, opts.DegenerateTolerance); err != nil {
		return nil, err
	}
	topo.Incidence = BuildIncidence(m)
	if topo.Adjacency, err = BuildAdjacency(m, topo.Incidence); err != nil {
		return nil, err
	}
	if orphans := topo.Incidence.Orphans(); len(orphans) != 0 {
		log.Warnw("nodes without elements", "count", len(orphans))
	}
	log.Infow("topology built", "nodes", utils.Count(m.NumNodes()), "elements", utils.Count(m.NumElements()),
		"elapsed", time.Since(start))
	return
}

type Statistics struct {
	Nodes         int `json:"nodes"`
	Elements      int `json:"elements"`
	InteriorEdges int `json:"interiorEdges"`
	BoundaryEdges int `json:"boundaryEdges"`
	BoundaryNodes int `json:"boundaryNodes"`
	OrphanNodes   int `json:"orphanNodes"`
	Flipped       int `json:"flipped"`
	Degenerate    int `json:"degenerate"`
}

func (topo *Topology) Statistics() (st Statistics) {
	var (
		m        = topo.Mesh
		boundary = topo.Adjacency.BoundaryEdges(m)
		onBound  = make(map[int]struct{})
	)
	for _, ek := range boundary {
		v := ek.GetVertices(false)
		onBound[v[0]], onBound[v[1]] = struct{}{}, struct{}{}
	}
	st = Statistics{
		Nodes:         m.NumNodes(),
		Elements:      m.NumElements(),
		InteriorEdges: topo.Adjacency.InteriorEdgeCount(),
		BoundaryEdges: len(boundary),
		BoundaryNodes: len(onBound),
		OrphanNodes:   len(topo.Incidence.Orphans()),
	}
	if topo.Orientation != nil {
		st.Flipped = topo.Orientation.Flipped
		st.Degenerate = len(topo.Orientation.Degenerate)
	}
	return
}

func (st Statistics) Print(w io.Writer) {
	fmt.Fprintf(w, "Mesh Statistics:\n")
	fmt.Fprintf(w, "  Nodes:          %s\n", utils.Count(st.Nodes))
	fmt.Fprintf(w, "  Elements:       %s\n", utils.Count(st.Elements))
	fmt.Fprintf(w, "  Interior edges: %s\n", utils.Count(st.InteriorEdges))
	fmt.Fprintf(w, "  Boundary edges: %s\n", utils.Count(st.BoundaryEdges))
	fmt.Fprintf(w, "  Boundary nodes: %s\n", utils.Count(st.BoundaryNodes))
	fmt.Fprintf(w, "  Orphan nodes:   %s\n", utils.Count(st.OrphanNodes))
	fmt.Fprintf(w, "  Flipped:        %s\n", utils.Count(st.Flipped))
	fmt.Fprintf(w, "  Degenerate:     %s\n", utils.Count(st.Degenerate))
}
