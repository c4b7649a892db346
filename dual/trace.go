// Package dual builds the dual (Voronoi style) cell of every mesh node by walking the ring of
// elements around it through the adjacency table.
package dual

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/tesnet/geometry2D"
	"github.com/notargets/tesnet/mesh"
)

// Cell is a closed ring, the first point is repeated at the end
type Cell struct {
	Node     int
	Points   []r2.Vec
	Boundary bool // closed through the node coordinate
	Elements int  // elements visited by the walk
}

func (c Cell) Area() float64 { return geometry2D.RingArea(c.Points) }

type walker struct {
	topo    *mesh.Topology
	node    int
	corners map[int]int // element to corner of node, from the incidence entries
	visited map[int]struct{}
}

func newWalker(topo *mesh.Topology, n int, incident []mesh.Incident) (w *walker) {
	w = &walker{
		topo:    topo,
		node:    n,
		corners: make(map[int]int, len(incident)),
		visited: map[int]struct{}{incident[0].Element: {}},
	}
	for _, in := range incident {
		w.corners[in.Element] = in.Corner
	}
	return
}

func (w *walker) centroid(k int) r2.Vec {
	return geometry2D.Centroid(w.topo.Mesh.Corners(k))
}

func (w *walker) midpoint(k, s int) r2.Vec {
	a, b := w.topo.Mesh.SideNodes(k, s)
	return geometry2D.Midpoint(w.topo.Mesh.Node(a), w.topo.Mesh.Node(b))
}

// enter moves the walk into element u and returns the corner of the node there
func (w *walker) enter(u int) (corner int, err error) {
	if _, seen := w.visited[u]; seen {
		return -1, errors.Wrapf(mesh.ErrTopologyInconsistency, "node %d: element %d reached twice", w.node, u)
	}
	corner, ok := w.corners[u]
	if !ok {
		return -1, errors.Wrapf(mesh.ErrTopologyInconsistency, "node %d: not a corner of element %d", w.node, u)
	}
	w.visited[u] = struct{}{}
	return
}

// Trace walks the elements around node n. Phase one rotates forward from the first incident
// element and either closes the ring or stops at the boundary. In the second case phase two
// rotates backward from the same element to the other boundary side and the cell is closed
// through the node itself.
func Trace(topo *mesh.Topology, n int) (cell Cell, err error) {
	incident := topo.Incidence.Of(n)
	if len(incident) == 0 {
		return cell, errors.Wrapf(mesh.ErrEmptyIncidence, "node %d", n)
	}
	var (
		adj   = topo.Adjacency
		start = incident[0]
		w     = newWalker(topo, n, incident)
		fwd   = make([]r2.Vec, 0, 2*len(incident)+1)
		back  []r2.Vec // points ahead of fwd, in reverse order
	)
	cell.Node = n
	k, c := start.Element, start.Corner
	for closed := false; !closed; {
		fwd = append(fwd, w.centroid(k))
		s := mesh.Next(c)
		fwd = append(fwd, w.midpoint(k, s))
		switch u := adj.Neighbor(k, s); u {
		case mesh.None:
			cell.Boundary = true
			closed = true
		case start.Element:
			fwd = append(fwd, w.centroid(start.Element))
			closed = true
		default:
			if c, err = w.enter(u); err != nil {
				return
			}
			k = u
		}
	}
	if cell.Boundary {
		k, c = start.Element, start.Corner
		for {
			s := mesh.Prev(c)
			back = append(back, w.midpoint(k, s))
			u := adj.Neighbor(k, s)
			if u == mesh.None {
				break
			}
			if c, err = w.enter(u); err != nil {
				return
			}
			k = u
			back = append(back, w.centroid(k))
		}
		node := topo.Mesh.Node(n)
		back = append(back, node)
		fwd = append(fwd, node)
	}
	if len(w.visited) != len(incident) {
		return Cell{}, errors.Wrapf(mesh.ErrTopologyInconsistency,
			"node %d: walk reached %d of %d incident elements", n, len(w.visited), len(incident))
	}
	cell.Elements = len(w.visited)
	cell.Points = make([]r2.Vec, 0, len(back)+len(fwd))
	for i := len(back) - 1; i >= 0; i-- {
		cell.Points = append(cell.Points, back[i])
	}
	cell.Points = append(cell.Points, fwd...)
	return
}
