package readfiles

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/tesnet/mesh"
)

// ReadGambit2D reads the nodes and triangles of a 2D Gambit neutral file. Material groups and
// boundary sets after the element section are not needed and are not read.
func ReadGambit2D(r io.Reader) (m *mesh.Mesh, err error) {
	lr := newLineReader(r)
	// Skip first six lines
	if err = lr.skipLines(6); err != nil {
		return
	}
	Nv, K, Nsd, err := readGambitHeader(lr)
	if err != nil {
		return
	}
	if Nsd != 2 {
		return nil, lr.errorf("only 2D meshes are supported, have %d space dimensions", Nsd)
	}
	if err = lr.skipLines(2); err != nil {
		return
	}
	nodes, err := readGambitVertices(lr, Nv)
	if err != nil {
		return
	}
	if err = lr.skipLines(2); err != nil {
		return
	}
	elements, err := readGambitTris(lr, K)
	if err != nil {
		return
	}
	return mesh.NewMesh(nodes, elements)
}

func readGambitHeader(lr *lineReader) (Nv, K, Nsd int, err error) {
	/*
		Nv      // num nodes in mesh
		K       // num elements
		Nmats   // num material groups
		Nbcs    // num boundary groups
		Nsd;    // num space dimensions
	*/
	var (
		n, Nmats, Nbcs, dum int
	)
	line, err := lr.getLine()
	if err != nil {
		return
	}
	if n, err = fmt.Sscanf(line, "%d %d %d %d %d %d", &Nv, &K, &Nmats, &Nbcs, &Nsd, &dum); err != nil || n < 6 {
		err = lr.errorf("read fewer than 6 dimensions, read %d, line: %s", n, line)
	}
	return
}

func readGambitVertices(lr *lineReader, Nv int) (nodes []r2.Vec, err error) {
	var (
		n, ind int
		x, y   float64
		seen   = make([]bool, Nv)
	)
	nodes = make([]r2.Vec, Nv)
	for i := 0; i < Nv; i++ {
		line, err := lr.getLine()
		if err != nil {
			return nil, err
		}
		if n, err = fmt.Sscanf(line, "%d %f %f", &ind, &x, &y); err != nil || n < 3 {
			return nil, lr.errorf("unable to read node coordinates: [%s]", line)
		}
		if ind < 1 || ind > Nv || seen[ind-1] {
			return nil, lr.errorf("node number %d invalid or repeated", ind)
		}
		seen[ind-1] = true
		nodes[ind-1] = r2.Vec{X: x, Y: y}
	}
	return
}

func readGambitTris(lr *lineReader, K int) (elements [][]int, err error) {
	//-------------------------------------
	// Triangles in 2D:
	//-------------------------------------
	// ENDOFSECTION
	//    ELEMENTS/CELLS 1.3.0
	//      1  3  3        1       2       3
	//      2  3  3        3       2       4
	var (
		n, ind, typ, nNodes int
		n1, n2, n3          int
	)
	elements = make([][]int, K)
	for i := 0; i < K; i++ {
		line, err := lr.getLine()
		if err != nil {
			return nil, err
		}
		if n, err = fmt.Sscanf(line, "%d %d %d", &ind, &typ, &nNodes); err != nil || n < 3 {
			return nil, lr.errorf("unable to read element header: [%s]", line)
		}
		if nNodes != 3 {
			return nil, lr.errorf("element %d has %d nodes, only triangles are supported", ind, nNodes)
		}
		if n, err = fmt.Sscanf(line, "%d %d %d %d %d %d", &ind, &typ, &nNodes, &n1, &n2, &n3); err != nil || n < 6 {
			return nil, lr.errorf("unable to read element nodes: [%s]", line)
		}
		if ind < 1 || ind > K || elements[ind-1] != nil {
			return nil, lr.errorf("element number %d invalid or repeated", ind)
		}
		elements[ind-1] = []int{n1 - 1, n2 - 1, n3 - 1}
	}
	return
}
