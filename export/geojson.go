package export

import (
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/tesnet/dual"
	"github.com/notargets/tesnet/mesh"
)

// Ring converts a point list to a closed ring, repeating the first point when needed
func Ring(pts []r2.Vec) (ring orb.Ring) {
	ring = make(orb.Ring, 0, len(pts)+1)
	for _, p := range pts {
		ring = append(ring, orb.Point{p.X, p.Y})
	}
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return
}

// PolygonFeature encodes one ring as a feature whose id and only property is fid
func PolygonFeature(fid int, pts []r2.Vec) *geojson.Feature {
	f := geojson.NewFeature(orb.Polygon{Ring(pts)})
	f.ID = fid
	f.Properties["fid"] = fid
	return f
}

// ElementCollection encodes every element as a triangle, fid is the element index + 1
func ElementCollection(m *mesh.Mesh) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for k := 0; k < m.NumElements(); k++ {
		a, b, c := m.Corners(k)
		fc.Append(PolygonFeature(k+1, []r2.Vec{a, b, c}))
	}
	return fc
}

// CellCollection encodes traced dual cells, fid is the node index + 1
func CellCollection(cells []dual.Cell) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, cell := range cells {
		fc.Append(PolygonFeature(cell.Node+1, cell.Points))
	}
	return fc
}

func WriteCollection(w io.Writer, fc *geojson.FeatureCollection) error {
	data, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "encoding feature collection")
	}
	if _, err = w.Write(append(data, '\n')); err != nil {
		return errors.Wrap(err, "writing feature collection")
	}
	return nil
}
