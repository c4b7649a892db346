package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// UnitSquare is the unit square split along the diagonal from node 0 to node 2
func UnitSquare() *Mesh {
	m, _ := NewMesh(
		[]r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		[][]int{{0, 1, 2}, {0, 2, 3}})
	return m
}

// Hexagon is a fan of six elements around node 0 with the rim on the unit circle
func Hexagon() *Mesh {
	nodes := []r2.Vec{{}}
	var elements [][]int
	for i := 0; i < 6; i++ {
		theta := float64(i) * math.Pi / 3
		nodes = append(nodes, r2.Vec{X: math.Cos(theta), Y: math.Sin(theta)})
		elements = append(elements, []int{0, i + 1, (i+1)%6 + 1})
	}
	m, _ := NewMesh(nodes, elements)
	return m
}

// StructuredGrid covers [0,nx]x[0,ny] with two elements per unit cell, the first element of every
// other cell is written clockwise
func StructuredGrid(nx, ny int) *Mesh {
	var (
		nodes    = make([]r2.Vec, 0, (nx+1)*(ny+1))
		elements = make([][]int, 0, 2*nx*ny)
		id       = func(i, j int) int { return j*(nx+1) + i }
	)
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			nodes = append(nodes, r2.Vec{X: float64(i), Y: float64(j)})
		}
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			n00, n10, n11, n01 := id(i, j), id(i+1, j), id(i+1, j+1), id(i, j+1)
			if (i+j)%2 == 1 {
				elements = append(elements, []int{n10, n00, n11})
			} else {
				elements = append(elements, []int{n00, n10, n11})
			}
			elements = append(elements, []int{n00, n11, n01})
		}
	}
	m, _ := NewMesh(nodes, elements)
	return m
}
