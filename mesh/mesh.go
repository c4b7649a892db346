package mesh

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Mesh is the node and element store. Node coordinates never change after construction, element
// corners are only reordered by Normalize.
type Mesh struct {
	nodes    []r2.Vec
	elements [][3]int
}

// NewMesh validates and copies the input. Node indices are 0-based.
func NewMesh(nodes []r2.Vec, elements [][]int) (m *Mesh, err error) {
	m = &Mesh{
		nodes:    make([]r2.Vec, len(nodes)),
		elements: make([][3]int, len(elements)),
	}
	copy(m.nodes, nodes)
	for k, corners := range elements {
		if len(corners) != 3 {
			return nil, &MalformedTriangleError{Element: k, Corners: corners,
				Reason: fmt.Sprintf("has %d corners, need 3", len(corners))}
		}
		copy(m.elements[k][:], corners)
		if err = m.checkElement(k); err != nil {
			return nil, err
		}
	}
	return
}

func (m *Mesh) checkElement(k int) error {
	var (
		el = m.elements[k]
		nv = len(m.nodes)
	)
	for i, n := range el {
		if n < 0 || n >= nv {
			return &MalformedTriangleError{Element: k, Corners: el[:],
				Reason: fmt.Sprintf("node index %d outside [0,%d)", n, nv)}
		}
		for j := 0; j < i; j++ {
			if el[j] == n {
				return &MalformedTriangleError{Element: k, Corners: el[:],
					Reason: fmt.Sprintf("node %d repeated", n)}
			}
		}
	}
	return nil
}

func (m *Mesh) NumNodes() int    { return len(m.nodes) }
func (m *Mesh) NumElements() int { return len(m.elements) }

func (m *Mesh) Node(n int) r2.Vec { return m.nodes[n] }

// Nodes returns the coordinate array itself, callers must not modify it
func (m *Mesh) Nodes() []r2.Vec { return m.nodes }

func (m *Mesh) Element(k int) [3]int { return m.elements[k] }

// Corners returns the coordinates of element k in corner order
func (m *Mesh) Corners(k int) (a, b, c r2.Vec) {
	el := m.elements[k]
	return m.nodes[el[0]], m.nodes[el[1]], m.nodes[el[2]]
}

// CornerOf returns the local corner index of node n in element k
func (m *Mesh) CornerOf(k, n int) (corner int, ok bool) {
	for i, v := range m.elements[k] {
		if v == n {
			return i, true
		}
	}
	return -1, false
}

var (
	nextTab = [3]int{1, 2, 0} // next corner or side
	prevTab = [3]int{2, 0, 1} // previous corner or side
)

func Next(corner int) int { return nextTab[corner] }
func Prev(corner int) int { return prevTab[corner] }

// SideNodes returns the nodes of side s, the side opposite corner s
func (m *Mesh) SideNodes(k, s int) (a, b int) {
	el := m.elements[k]
	return el[nextTab[s]], el[prevTab[s]]
}
