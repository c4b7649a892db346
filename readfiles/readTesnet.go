package readfiles

import (
	"io"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/tesnet/adore"
	"github.com/notargets/tesnet/mesh"
)

var elementSets = [3]string{"ELEMENT NODES 1", "ELEMENT NODES 2", "ELEMENT NODES 3"}

// ReadTesnet builds a mesh from the coordinate and element node sets of a Triwaco grid file,
// element node numbers there are 1-based
func ReadTesnet(r io.Reader) (m *mesh.Mesh, err error) {
	c, err := adore.Scan(r)
	if err != nil {
		return
	}
	return TesnetMesh(c)
}

func TesnetMesh(c *adore.Collection) (m *mesh.Mesh, err error) {
	x, err := c.Require("X-COORDINATES")
	if err != nil {
		return
	}
	y, err := c.Require("Y-COORDINATES")
	if err != nil {
		return
	}
	if x.Count() != y.Count() || x.IsText() || y.IsText() {
		return nil, errors.Errorf("coordinate sets differ: %s and %s", x, y)
	}
	nodes := make([]r2.Vec, x.Count())
	for i := range nodes {
		nodes[i] = r2.Vec{X: x.Numbers[i], Y: y.Numbers[i]}
	}
	var corners [3][]int
	for i, name := range elementSets {
		b, err := c.Require(name)
		if err != nil {
			return nil, err
		}
		if corners[i], err = b.Ints(); err != nil {
			return nil, err
		}
		if len(corners[i]) != len(corners[0]) {
			return nil, errors.Errorf("element sets differ in length: %d and %d", len(corners[0]), len(corners[i]))
		}
	}
	elements := make([][]int, len(corners[0]))
	for k := range elements {
		elements[k] = []int{corners[0][k] - 1, corners[1][k] - 1, corners[2][k] - 1}
	}
	return mesh.NewMesh(nodes, elements)
}
