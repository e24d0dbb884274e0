// Package export кодирует диаграмму в GeoJSON и WKT.
package export

import (
	"encoding/json"

	"github.com/0x0FACED/go-sweepline/pkg/bbox"
	"github.com/0x0FACED/go-sweepline/pkg/voronoi"
	"github.com/cockroachdb/errors"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkt"
)

func pointFlat(p voronoi.Point) []float64 {
	return []float64{float64(p.X), float64(p.Y)}
}

// FeatureCollection собирает сайты, вершины и обрезанные ребра в одну коллекцию.
func FeatureCollection(d *voronoi.Diagram, segs []bbox.Segment) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{}

	for _, s := range d.Sites {
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry:   geom.NewPointFlat(geom.XY, pointFlat(s.Point)),
			Properties: map[string]interface{}{"kind": voronoi.KindSite.String()},
		})
	}
	for _, v := range d.Vertices {
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry:   geom.NewPointFlat(geom.XY, pointFlat(v.Point)),
			Properties: map[string]interface{}{"kind": voronoi.KindVertex.String()},
		})
	}
	for _, seg := range segs {
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: geom.NewLineStringFlat(geom.XY, []float64{seg.A.X, seg.A.Y, seg.B.X, seg.B.Y}),
			Properties: map[string]interface{}{
				"kind":  "edge",
				"left":  []int{seg.Left.X, seg.Left.Y},
				"right": []int{seg.Right.X, seg.Right.Y},
			},
		})
	}
	return fc
}

// GeoJSON кодирует FeatureCollection в JSON.
func GeoJSON(d *voronoi.Diagram, segs []bbox.Segment) ([]byte, error) {
	data, err := json.Marshal(FeatureCollection(d, segs))
	if err != nil {
		return nil, errors.Wrap(err, "export: encoding geojson")
	}
	return data, nil
}

// WKT возвращает MULTIPOINT сайтов и MULTILINESTRING обрезанных ребер.
func WKT(d *voronoi.Diagram, segs []bbox.Segment) (sites string, edges string, err error) {
	flat := make([]float64, 0, 2*len(d.Sites))
	for _, s := range d.Sites {
		flat = append(flat, pointFlat(s.Point)...)
	}
	sites, err = wkt.Marshal(geom.NewMultiPointFlat(geom.XY, flat))
	if err != nil {
		return "", "", errors.Wrap(err, "export: encoding sites")
	}

	coords := make([]float64, 0, 4*len(segs))
	ends := make([]int, 0, len(segs))
	for _, seg := range segs {
		coords = append(coords, seg.A.X, seg.A.Y, seg.B.X, seg.B.Y)
		ends = append(ends, len(coords))
	}
	edges, err = wkt.Marshal(geom.NewMultiLineStringFlat(geom.XY, coords, ends))
	if err != nil {
		return "", "", errors.Wrap(err, "export: encoding edges")
	}
	return sites, edges, nil
}
