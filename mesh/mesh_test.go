package mesh

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/tesnet/geometry2D"
	"github.com/notargets/tesnet/types"
)

var triangleNodes = []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 2, Y: 0}}

func TestNewMesh(t *testing.T) {
	{ // Test valid input is copied
		elements := [][]int{{0, 1, 2}}
		m, err := NewMesh(triangleNodes, elements)
		require.NoError(t, err)
		elements[0][0] = 3
		assert.Equal(t, [3]int{0, 1, 2}, m.Element(0))
		assert.Equal(t, 4, m.NumNodes())
		assert.Equal(t, 1, m.NumElements())
		a, b, c := m.Corners(0)
		assert.Equal(t, triangleNodes[:3], []r2.Vec{a, b, c})
	}
	{ // Test malformed elements
		for _, bad := range [][]int{{0, 1}, {0, 1, 2, 3}, {0, 1, 4}, {-1, 1, 2}, {0, 1, 1}} {
			_, err := NewMesh(triangleNodes, [][]int{{0, 1, 2}, bad})
			require.Error(t, err, "%v", bad)
			assert.True(t, errors.Is(err, ErrMalformedTriangle))
			var mte *MalformedTriangleError
			require.True(t, errors.As(err, &mte))
			assert.Equal(t, 1, mte.Element)
		}
	}
	{ // Test corner and side lookup
		m := UnitSquare()
		c, ok := m.CornerOf(1, 3)
		assert.True(t, ok)
		assert.Equal(t, 2, c)
		_, ok = m.CornerOf(0, 3)
		assert.False(t, ok)
		a, b := m.SideNodes(0, 1)
		assert.Equal(t, [2]int{2, 0}, [2]int{a, b})
		for c := 0; c < 3; c++ {
			assert.Equal(t, c, Prev(Next(c)))
		}
	}
}

func TestNormalize(t *testing.T) {
	{ // Test a clockwise element gets its first two corners swapped
		m, err := NewMesh(triangleNodes, [][]int{{0, 2, 1}})
		require.NoError(t, err)
		rpt, err := Normalize(m, 1, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, rpt.Flipped)
		assert.Equal(t, [3]int{2, 0, 1}, m.Element(0))
		a, b, c := m.Corners(0)
		assert.True(t, geometry2D.SignedArea(a, b, c) > 0)
	}
	{ // Test idempotence
		m := StructuredGrid(4, 3)
		rpt, err := Normalize(m, 1, 0)
		require.NoError(t, err)
		assert.Equal(t, 6, rpt.Flipped)
		rpt, err = Normalize(m, 1, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, rpt.Flipped)
	}
	{ // Test collinear and sliver elements are flagged and left alone
		nodes := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 0.5, Y: -1e-14}}
		m, err := NewMesh(nodes, [][]int{{0, 1, 2}, {0, 1, 3}})
		require.NoError(t, err)
		rpt, err := Normalize(m, 1, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, rpt.Flipped)
		require.Len(t, rpt.Degenerate, 1)
		assert.Equal(t, DegenerateTriangle{Element: 0, Area: 0}, rpt.Degenerate[0])
		assert.Equal(t, [3]int{0, 1, 2}, m.Element(0))

		m, err = NewMesh(nodes, [][]int{{0, 1, 2}, {0, 1, 3}})
		require.NoError(t, err)
		rpt, err = Normalize(m, 1, 1e-12)
		require.NoError(t, err)
		assert.Equal(t, 1, rpt.Flipped)
		require.Len(t, rpt.Degenerate, 2)
		assert.Equal(t, 1, rpt.Degenerate[1].Element)
		assert.True(t, rpt.Degenerate[1].Area < 0)
		assert.Equal(t, [3]int{0, 1, 2}, m.Element(0))
		assert.Equal(t, [3]int{1, 0, 3}, m.Element(1))
		for k := 0; k < m.NumElements(); k++ {
			assert.True(t, geometry2D.SignedArea(m.Corners(k)) >= 0)
		}
	}
	{ // Test a clockwise sliver is flipped and reported when the tolerance flags it
		nodes := []r2.Vec{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 0.01}, {X: 1, Y: -1}}
		for _, tol := range []float64{0, 0.1} {
			m, err := NewMesh(nodes, [][]int{{1, 0, 2}, {0, 3, 1}})
			require.NoError(t, err)
			rpt, err := Normalize(m, 2, tol)
			require.NoError(t, err)
			assert.Equal(t, 1, rpt.Flipped)
			assert.Equal(t, [3]int{0, 1, 2}, m.Element(0))
			assert.InDelta(t, 0.01, geometry2D.SignedArea(m.Corners(0)), 1e-15)
			if tol == 0 {
				assert.Empty(t, rpt.Degenerate)
			} else {
				assert.Equal(t, []DegenerateTriangle{{Element: 0, Area: -0.01}}, rpt.Degenerate)
			}
		}
	}
	{ // Test parallel buckets give the serial result
		serial, parallel := StructuredGrid(7, 5), StructuredGrid(7, 5)
		rptSerial, err := Normalize(serial, 1, 0)
		require.NoError(t, err)
		rptParallel, err := Normalize(parallel, 4, 0)
		require.NoError(t, err)
		assert.Equal(t, rptSerial, rptParallel)
		for k := 0; k < serial.NumElements(); k++ {
			assert.Equal(t, serial.Element(k), parallel.Element(k))
		}
	}
	{ // Test a corrupted store is rejected
		m := UnitSquare()
		m.elements[1][2] = 9
		_, err := Normalize(m, 2, 0)
		assert.True(t, errors.Is(err, ErrMalformedTriangle))
	}
}

func TestIncidence(t *testing.T) {
	m := UnitSquare()
	inc := BuildIncidence(m)
	assert.Equal(t, 4, inc.NumNodes())
	assert.Equal(t, []Incident{{0, 0}, {1, 0}}, inc.Of(0))
	assert.Equal(t, []Incident{{0, 1}}, inc.Of(1))
	assert.Equal(t, []Incident{{0, 2}, {1, 1}}, inc.Of(2))
	assert.Equal(t, []Incident{{1, 2}}, inc.Of(3))
	assert.Empty(t, inc.Orphans())
	{ // Test every corner occurs exactly once
		m := StructuredGrid(3, 3)
		inc := BuildIncidence(m)
		var total int
		for n := 0; n < m.NumNodes(); n++ {
			for _, in := range inc.Of(n) {
				assert.Equal(t, n, m.Element(in.Element)[in.Corner])
				total++
			}
		}
		assert.Equal(t, 3*m.NumElements(), total)
	}
	{ // Test orphan node
		m, err := NewMesh(triangleNodes, [][]int{{0, 1, 2}})
		require.NoError(t, err)
		assert.Equal(t, []int{3}, BuildIncidence(m).Orphans())
	}
}

func TestAdjacency(t *testing.T) {
	{ // Test unit square
		m := UnitSquare()
		adj, err := BuildAdjacency(m, BuildIncidence(m))
		require.NoError(t, err)
		assert.Equal(t, []int{None, 1, None, None, None, 0}, adj.nbr)
		assert.Equal(t, 1, adj.InteriorEdgeCount())
		assert.Len(t, adj.BoundaryEdges(m), 4)
		s, ok := adj.SideTo(1, 0)
		assert.True(t, ok)
		assert.Equal(t, 2, s)
	}
	{ // Test hexagon fan
		m := Hexagon()
		adj, err := BuildAdjacency(m, BuildIncidence(m))
		require.NoError(t, err)
		assert.Equal(t, 6, adj.InteriorEdgeCount())
		boundary := adj.BoundaryEdges(m)
		require.Len(t, boundary, 6)
		assert.Equal(t, types.NewEdgeKey([2]int{1, 2}), boundary[0])
		for k := 0; k < 6; k++ {
			assert.Equal(t, None, adj.Neighbor(k, 0))
		}
	}
	{ // Test structured grid symmetry after normalization
		m := StructuredGrid(5, 4)
		_, err := Normalize(m, 3, 0)
		require.NoError(t, err)
		adj, err := BuildAdjacency(m, BuildIncidence(m))
		require.NoError(t, err)
		assert.NoError(t, adj.Verify(m))
		// 2*(5+4) boundary sides, 3*40 sides total
		assert.Len(t, adj.BoundaryEdges(m), 18)
		assert.Equal(t, (120-18)/2, adj.InteriorEdgeCount())
	}
	{ // Test three elements on one edge
		nodes := []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0.5, Y: 1}, {X: 0.5, Y: -1}, {X: 0.5, Y: 2}}
		m, err := NewMesh(nodes, [][]int{{0, 1, 2}, {1, 0, 3}, {0, 1, 4}})
		require.NoError(t, err)
		_, err = BuildAdjacency(m, BuildIncidence(m))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNonManifoldEdge))
		var nme *NonManifoldEdgeError
		require.True(t, errors.As(err, &nme))
		assert.Equal(t, []int{0, 1, 2}, nme.Elements)
		assert.Equal(t, types.NewEdgeKey([2]int{0, 1}), nme.Edge)
	}
	{ // Test duplicated element
		m, err := NewMesh(triangleNodes, [][]int{{0, 1, 2}, {1, 2, 0}})
		require.NoError(t, err)
		_, err = BuildAdjacency(m, BuildIncidence(m))
		assert.True(t, errors.Is(err, ErrMalformedTriangle))
	}
	{ // Test a broken table fails verification
		m := UnitSquare()
		adj, err := BuildAdjacency(m, BuildIncidence(m))
		require.NoError(t, err)
		adj.nbr[5] = None
		assert.True(t, errors.Is(adj.Verify(m), ErrTopologyInconsistency))
	}
}

func TestTopology(t *testing.T) {
	m := StructuredGrid(2, 2)
	topo, err := BuildTopology(m, Options{ParallelDegree: 2})
	require.NoError(t, err)
	st := topo.Statistics()
	assert.Equal(t, Statistics{
		Nodes:         9,
		Elements:      8,
		InteriorEdges: 8,
		BoundaryEdges: 8,
		BoundaryNodes: 8,
		Flipped:       2,
	}, st)
	var buf bytes.Buffer
	st.Print(&buf)
	assert.Contains(t, buf.String(), "Boundary edges: 8")

	_, err = BuildTopology(Hexagon(), Options{})
	assert.NoError(t, err)
}
