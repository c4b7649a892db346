package mesh

import (
	"golang.org/x/sync/errgroup"

	"github.com/notargets/tesnet/geometry2D"
	"github.com/notargets/tesnet/utils"
)

// OrientationReport summarizes one normalization pass
type OrientationReport struct {
	Flipped    int                  `json:"flipped"`
	Degenerate []DegenerateTriangle `json:"degenerate,omitempty"`
}

// Normalize puts every element in counter-clockwise order by swapping its first two corners when
// the signed area is negative. Zero area elements keep their order. Zero area elements and slivers
// within the relative tolerance tol are reported as degenerate. Running it twice flips nothing the
// second time.
func Normalize(m *Mesh, parallelDegree int, tol float64) (rpt *OrientationReport, err error) {
	var (
		pm      = utils.NewPartitionMap(parallelDegree, m.NumElements())
		flipped = make([]int, pm.ParallelDegree)
		degen   = make([][]DegenerateTriangle, pm.ParallelDegree)
		g       errgroup.Group
	)
	for np := 0; np < pm.ParallelDegree; np++ {
		np := np
		g.Go(func() error {
			kMin, kMax := pm.GetBucketRange(np)
			for k := kMin; k < kMax; k++ {
				if err := m.checkElement(k); err != nil {
					return err
				}
				a, b, c := m.Corners(k)
				area := geometry2D.SignedArea(a, b, c)
				if geometry2D.IsDegenerate(a, b, c, tol) {
					degen[np] = append(degen[np], DegenerateTriangle{Element: k, Area: area})
				}
				if area < 0 {
					el := &m.elements[k]
					el[0], el[1] = el[1], el[0]
					flipped[np]++
				}
			}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return
	}
	rpt = &OrientationReport{}
	for np := range flipped {
		rpt.Flipped += flipped[np]
		rpt.Degenerate = append(rpt.Degenerate, degen[np]...)
	}
	log := utils.Logger()
	for _, d := range rpt.Degenerate {
		log.Warnw("degenerate element", "element", d.Element, "nodes", m.Element(d.Element), "area", d.Area)
	}
	log.Debugw("orientation normalized", "elements", m.NumElements(), "flipped", rpt.Flipped,
		"degenerate", len(rpt.Degenerate))
	return
}
