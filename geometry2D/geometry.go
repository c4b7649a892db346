package geometry2D

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// SignedArea returns the area of triangle abc, positive when the corners run counter-clockwise
func SignedArea(a, b, c r2.Vec) float64 {
	return 0.5 * r2.Cross(r2.Sub(b, a), r2.Sub(c, a))
}

// Centroid returns the barycenter of triangle abc
func Centroid(a, b, c r2.Vec) r2.Vec {
	return r2.Triangle{a, b, c}.Centroid()
}

func Midpoint(a, b r2.Vec) r2.Vec {
	return r2.Scale(0.5, r2.Add(a, b))
}

// IsDegenerate reports a triangle with zero signed area, or one whose height over its longest side
// is within tol of that side's length. The tolerance is relative, so it does not depend on the
// mesh units.
func IsDegenerate(a, b, c r2.Vec, tol float64) bool {
	if SignedArea(a, b, c) == 0 {
		return true
	}
	if tol <= 0 {
		return false
	}
	longest := math.Max(r2.Norm(r2.Sub(b, a)), math.Max(r2.Norm(r2.Sub(c, b)), r2.Norm(r2.Sub(a, c))))
	return r2.Triangle{a, b, c}.IsDegenerate(tol * longest)
}

// RingArea is the shoelace area of a ring, positive for counter-clockwise rings. The ring may or
// may not repeat its first point at the end.
func RingArea(ring []r2.Vec) (area float64) {
	n := len(ring)
	if n < 3 {
		return 0
	}
	for i := 0; i < n; i++ {
		area += r2.Cross(ring[i], ring[(i+1)%n])
	}
	return 0.5 * area
}

// IsClosed reports whether the first and last points of a ring coincide
func IsClosed(ring []r2.Vec) bool {
	if len(ring) < 2 {
		return false
	}
	return ring[0] == ring[len(ring)-1]
}

// Bounds returns the bounding box of the points
func Bounds(pts []r2.Vec) (box r2.Box) {
	if len(pts) == 0 {
		return
	}
	box.Min, box.Max = pts[0], pts[0]
	for _, p := range pts[1:] {
		box.Min.X, box.Min.Y = math.Min(box.Min.X, p.X), math.Min(box.Min.Y, p.Y)
		box.Max.X, box.Max.Y = math.Max(box.Max.X, p.X), math.Max(box.Max.Y, p.Y)
	}
	return
}
