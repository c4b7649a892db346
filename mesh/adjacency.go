package mesh

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"

	"github.com/notargets/tesnet/types"
)

// None marks a side on the mesh boundary
const None = -1

// Adjacency holds the neighbor of every element side, side s of element k is at 3*k+s
type Adjacency struct {
	nbr []int
}

// BuildAdjacency finds the element across every side by searching the incidence of the first
// endpoint of that side for another element that also holds the second endpoint.
func BuildAdjacency(m *Mesh, inc *Incidence) (adj *Adjacency, err error) {
	adj = &Adjacency{nbr: make([]int, 3*m.NumElements())}
	for k := range m.elements {
		for s := 0; s < 3; s++ {
			var (
				a, b  = m.SideNodes(k, s)
				found []int
			)
			for _, in := range inc.Of(a) {
				if in.Element == k {
					continue
				}
				if _, ok := m.CornerOf(in.Element, b); ok {
					found = append(found, in.Element)
				}
			}
			switch len(found) {
			case 0:
				adj.nbr[3*k+s] = None
			case 1:
				u := found[0]
				if _, ok := m.CornerOf(u, m.elements[k][s]); ok {
					return nil, &MalformedTriangleError{Element: u, Corners: m.elements[u][:],
						Reason: fmt.Sprintf("duplicates element %d", k)}
				}
				adj.nbr[3*k+s] = u
			default:
				elements := append([]int{k}, found...)
				sort.Ints(elements)
				return nil, &NonManifoldEdgeError{Edge: types.NewEdgeKey([2]int{a, b}), Elements: elements}
			}
		}
	}
	if err = adj.Verify(m); err != nil {
		return nil, err
	}
	return
}

func (adj *Adjacency) Neighbor(k, s int) int { return adj.nbr[3*k+s] }

func (adj *Adjacency) NumElements() int { return len(adj.nbr) / 3 }

// SideTo returns the side of element k that faces element u
func (adj *Adjacency) SideTo(k, u int) (s int, ok bool) {
	for s = 0; s < 3; s++ {
		if adj.nbr[3*k+s] == u {
			return s, true
		}
	}
	return -1, false
}

// Verify checks that every neighbor relation points back and joins the same two nodes
func (adj *Adjacency) Verify(m *Mesh) error {
	for k := 0; k < adj.NumElements(); k++ {
		for s := 0; s < 3; s++ {
			u := adj.Neighbor(k, s)
			if u == None {
				continue
			}
			back, ok := adj.SideTo(u, k)
			if !ok {
				return errors.Wrapf(ErrTopologyInconsistency,
					"element %d side %d points to %d, which has no side back", k, s, u)
			}
			a, b := m.SideNodes(k, s)
			ua, ub := m.SideNodes(u, back)
			if types.NewEdgeKey([2]int{a, b}) != types.NewEdgeKey([2]int{ua, ub}) {
				return errors.Wrapf(ErrTopologyInconsistency,
					"element %d side %d and element %d side %d do not share nodes", k, s, u, back)
			}
		}
	}
	return nil
}

// BoundaryEdges returns the sides without a neighbor, sorted by edge key
func (adj *Adjacency) BoundaryEdges(m *Mesh) (edges []types.EdgeKey) {
	for k := 0; k < adj.NumElements(); k++ {
		for s := 0; s < 3; s++ {
			if adj.Neighbor(k, s) == None {
				a, b := m.SideNodes(k, s)
				edges = append(edges, types.NewEdgeKey([2]int{a, b}))
			}
		}
	}
	sort.Sort(types.EdgeKeySlice(edges))
	return
}

// InteriorEdgeCount counts shared sides once
func (adj *Adjacency) InteriorEdgeCount() (count int) {
	for _, u := range adj.nbr {
		if u != None {
			count++
		}
	}
	return count / 2
}
