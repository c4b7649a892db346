package dual

import (
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/tesnet/mesh"
	"github.com/notargets/tesnet/utils"
)

// Failure records a node whose cell could not be traced, FeatureID is the node index + 1
type Failure struct {
	Node      int
	FeatureID int
	Err       error
}

type Result struct {
	Cells    []Cell // traced cells in node order, failed nodes are absent
	Failures []Failure
}

// TraceAll traces every node, splitting the node range into parallelDegree buckets. The topology
// is only read, so buckets share it without locking.
func TraceAll(topo *mesh.Topology, parallelDegree int) (res *Result) {
	var (
		log      = utils.Logger()
		start    = time.Now()
		pm       = utils.NewPartitionMap(parallelDegree, topo.Mesh.NumNodes())
		cells    = make([][]Cell, pm.ParallelDegree)
		failures = make([][]Failure, pm.ParallelDegree)
		wg       = sync.WaitGroup{}
	)
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			nMin, nMax := pm.GetBucketRange(np)
			for n := nMin; n < nMax; n++ {
				cell, err := Trace(topo, n)
				if err != nil {
					failures[np] = append(failures[np], Failure{Node: n, FeatureID: n + 1, Err: err})
					continue
				}
				cells[np] = append(cells[np], cell)
			}
		}(np)
	}
	wg.Wait()
	res = &Result{}
	for np := 0; np < pm.ParallelDegree; np++ {
		res.Cells = append(res.Cells, cells[np]...)
		res.Failures = append(res.Failures, failures[np]...)
	}
	for _, f := range res.Failures {
		log.Warnw("dual cell skipped", "node", f.Node, "fid", f.FeatureID, "error", f.Err)
	}
	log.Infow("dual cells traced", "cells", utils.Count(len(res.Cells)), "failed", len(res.Failures),
		"elapsed", time.Since(start))
	return
}

// Area sums the cell areas
func (res *Result) Area() float64 {
	areas := make([]float64, len(res.Cells))
	for i, c := range res.Cells {
		areas[i] = c.Area()
	}
	return floats.Sum(areas)
}

func (res *Result) BoundaryCount() (count int) {
	for _, c := range res.Cells {
		if c.Boundary {
			count++
		}
	}
	return
}
