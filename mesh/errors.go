package mesh

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/notargets/tesnet/types"
)

var (
	ErrMalformedTriangle     = errors.New("malformed triangle")
	ErrNonManifoldEdge       = errors.New("non-manifold edge")
	ErrEmptyIncidence        = errors.New("node has no incident elements")
	ErrTopologyInconsistency = errors.New("topology inconsistency")
)

// MalformedTriangleError is fatal for the whole run
type MalformedTriangleError struct {
	Element int
	Corners []int
	Reason  string
}

func (e *MalformedTriangleError) Error() string {
	return fmt.Sprintf("malformed triangle: element %d %v: %s", e.Element, e.Corners, e.Reason)
}

func (e *MalformedTriangleError) Is(target error) bool { return target == ErrMalformedTriangle }

// NonManifoldEdgeError names every element sharing an edge that has more than two elements on it
type NonManifoldEdgeError struct {
	Edge     types.EdgeKey
	Elements []int
}

func (e *NonManifoldEdgeError) Error() string {
	return fmt.Sprintf("non-manifold edge: nodes %s shared by elements %v", e.Edge, e.Elements)
}

func (e *NonManifoldEdgeError) Is(target error) bool { return target == ErrNonManifoldEdge }

// DegenerateTriangle is a warning, the element stays in the mesh. Area is the signed area before
// normalization.
type DegenerateTriangle struct {
	Element int     `json:"element"`
	Area    float64 `json:"area"`
}
