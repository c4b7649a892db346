package readfiles

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/tesnet/mesh"
	"github.com/notargets/tesnet/types"
)

// From here: https://su2code.github.io/docs_v7/Mesh-File/
type SU2ElementType uint8

const (
	ELType_LINE          SU2ElementType = 3
	ELType_Triangle                     = 5
	ELType_Quadrilateral                = 9
)

// Markers holds the boundary edges of every SU2 marker tag
type Markers map[string][]types.EdgeKey

// Check compares the marker edges with the boundary edges of the mesh. Unmarked lists boundary
// edges that no marker names and stray lists marker edges that are not on the boundary, both sorted.
func (mk Markers) Check(boundary []types.EdgeKey) (unmarked, stray []types.EdgeKey) {
	var (
		marked = make(map[types.EdgeKey]struct{})
		onBdry = make(map[types.EdgeKey]struct{}, len(boundary))
	)
	for _, edges := range mk {
		for _, en := range edges {
			marked[en] = struct{}{}
		}
	}
	for _, en := range boundary {
		onBdry[en] = struct{}{}
		if _, ok := marked[en]; !ok {
			unmarked = append(unmarked, en)
		}
	}
	for en := range marked {
		if _, ok := onBdry[en]; !ok {
			stray = append(stray, en)
		}
	}
	sort.Sort(types.EdgeKeySlice(unmarked))
	sort.Sort(types.EdgeKeySlice(stray))
	return
}

// ReadSU2 reads a 2D triangle mesh, node numbers are 0-based in SU2 files
func ReadSU2(r io.Reader) (m *mesh.Mesh, markers Markers, err error) {
	lr := newLineReader(r)
	dim, err := lr.readNumber("NDIME")
	if err != nil {
		return
	}
	if dim != 2 {
		return nil, nil, lr.errorf("only 2D meshes are supported, have NDIME= %d", dim)
	}
	elements, err := readSU2Elements(lr)
	if err != nil {
		return
	}
	nodes, err := readSU2Vertices(lr)
	if err != nil {
		return
	}
	if markers, err = readSU2Markers(lr); err != nil {
		return
	}
	m, err = mesh.NewMesh(nodes, elements)
	return
}

func readSU2Elements(lr *lineReader) (elements [][]int, err error) {
	var (
		n          int
		nType      int
		v1, v2, v3 int
	)
	K, err := lr.readNumber("NELEM")
	if err != nil {
		return
	}
	elements = make([][]int, K)
	for k := 0; k < K; k++ {
		line, err := lr.getLine()
		if err != nil {
			return nil, err
		}
		if n, err = fmt.Sscanf(line, "%d %d %d %d", &nType, &v1, &v2, &v3); err != nil || n != 4 {
			return nil, lr.errorf("unable to read element vertices: [%s]", line)
		}
		if SU2ElementType(nType) != ELType_Triangle {
			return nil, lr.errorf("element %d has type %d, only triangles are supported", k, nType)
		}
		elements[k] = []int{v1, v2, v3}
	}
	return
}

func readSU2Vertices(lr *lineReader) (nodes []r2.Vec, err error) {
	var (
		n    int
		x, y float64
	)
	Nv, err := lr.readNumber("NPOIN")
	if err != nil {
		return
	}
	nodes = make([]r2.Vec, Nv)
	for i := 0; i < Nv; i++ {
		line, err := lr.getLine()
		if err != nil {
			return nil, err
		}
		if n, err = fmt.Sscanf(line, "%f %f", &x, &y); err != nil || n != 2 {
			return nil, lr.errorf("unable to read coordinates: [%s]", line)
		}
		nodes[i] = r2.Vec{X: x, Y: y}
	}
	return
}

func readSU2Markers(lr *lineReader) (markers Markers, err error) {
	var (
		n, nType, v1, v2 int
	)
	nMarks, err := lr.readNumber("NMARK")
	if err != nil {
		return
	}
	markers = make(Markers, nMarks)
	for i := 0; i < nMarks; i++ {
		label, err := lr.readLabel("MARKER_TAG")
		if err != nil {
			return nil, err
		}
		nEdges, err := lr.readNumber("MARKER_ELEMS")
		if err != nil {
			return nil, err
		}
		for j := 0; j < nEdges; j++ {
			line, err := lr.getLine()
			if err != nil {
				return nil, err
			}
			if n, err = fmt.Sscanf(line, "%d %d %d", &nType, &v1, &v2); err != nil || n != 3 {
				return nil, lr.errorf("unable to read marker edge: [%s]", line)
			}
			if SU2ElementType(nType) != ELType_LINE {
				return nil, lr.errorf("markers should only contain line elements in 2D")
			}
			if v1 < 0 || v2 < 0 {
				return nil, lr.errorf("negative node number in marker %s: [%s]", label, line)
			}
			// Repeated tags, such as periodic pairs, accumulate on one tag
			markers[label] = append(markers[label], types.NewEdgeKey([2]int{v1, v2}))
		}
	}
	return
}
