package track

import (
	"fmt"
	"io"
	"strconv"

	geojson "github.com/paulmach/go.geojson"

	"raceline-editor/internal/common"
)

// LoadGeoJSON reads a FeatureCollection whose coordinates are already in the
// metric map frame. LineString and MultiLineString members become one way per
// line; Polygon and MultiPolygon members become one way per ring. Other
// geometry types are skipped.
func LoadGeoJSON(r io.Reader) (*Network, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, loadErr("read geojson: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, loadErr("parse geojson: %w", err)
	}

	net := &Network{}
	for i, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		id := featureID(f, i)

		var lines [][][]float64
		g := f.Geometry
		switch g.Type {
		case geojson.GeometryLineString:
			lines = [][][]float64{g.LineString}
		case geojson.GeometryMultiLineString:
			lines = g.MultiLineString
		case geojson.GeometryPolygon:
			lines = g.Polygon
		case geojson.GeometryMultiPolygon:
			for _, poly := range g.MultiPolygon {
				lines = append(lines, poly...)
			}
		default:
			continue
		}

		for j, line := range lines {
			pts, err := toPoints(line)
			if err != nil {
				return nil, loadErr("feature %s: %w", id, err)
			}
			if len(pts) < 2 {
				continue
			}
			wayID := id
			if len(lines) > 1 {
				wayID = id + "/" + strconv.Itoa(j)
			}
			net.Ways = append(net.Ways, BoundaryWay{ID: wayID, Points: pts})
		}
	}
	return net, nil
}

func featureID(f *geojson.Feature, index int) string {
	if f.ID != nil {
		return fmt.Sprint(f.ID)
	}
	return strconv.Itoa(index)
}

func toPoints(coords [][]float64) ([]common.Vec2, error) {
	pts := make([]common.Vec2, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			return nil, fmt.Errorf("position with %d coordinates", len(c))
		}
		pts = append(pts, common.Vec2{X: c[0], Y: c[1]})
	}
	return pts, nil
}
