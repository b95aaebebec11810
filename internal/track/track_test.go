package track

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raceline-editor/internal/common"
)

const sampleOSM = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
  <node id="1" lat="0" lon="0">
    <tag k="local_x" v="0.5"/>
    <tag k="local_y" v="1.5"/>
  </node>
  <node id="2" lat="0" lon="0">
    <tag k="local_x" v="10"/>
    <tag k="local_y" v="-2"/>
    <tag k="ele" v="3"/>
  </node>
  <node id="3" lat="0" lon="0">
    <tag k="local_x" v="20"/>
  </node>
  <node id="4" lat="0" lon="0">
    <tag k="local_x" v="30"/>
    <tag k="local_y" v="4"/>
  </node>
  <way id="100">
    <nd ref="1"/>
    <nd ref="2"/>
    <nd ref="4"/>
    <tag k="type" v="line_thin"/>
  </way>
  <way id="101">
    <nd ref="3"/>
    <nd ref="2"/>
  </way>
  <way id="102">
    <nd ref="4"/>
    <nd ref="99"/>
    <nd ref="1"/>
  </way>
  <relation id="500">
    <member type="way" ref="100" role="left"/>
  </relation>
</osm>
`

func TestLoadOSM(t *testing.T) {
	net, err := LoadOSM(strings.NewReader(sampleOSM))
	require.NoError(t, err)

	// Way 101 loses node 3 (no local_y) and falls below two points.
	require.Len(t, net.Ways, 2)
	assert.Equal(t, "100", net.Ways[0].ID)
	assert.Equal(t, []common.Vec2{{X: 0.5, Y: 1.5}, {X: 10, Y: -2}, {X: 30, Y: 4}}, net.Ways[0].Points)
	assert.Equal(t, "102", net.Ways[1].ID)
	assert.Equal(t, []common.Vec2{{X: 30, Y: 4}, {X: 0.5, Y: 1.5}}, net.Ways[1].Points)
	assert.Equal(t, 5, net.PointCount())
}

func TestLoadOSMErrors(t *testing.T) {
	tests := map[string]string{
		"malformed xml": `<osm><node id="1">`,
		"bad local_x":   `<osm><node id="1"><tag k="local_x" v="abc"/><tag k="local_y" v="1"/></node></osm>`,
		"bad local_y":   `<osm><node id="1"><tag k="local_x" v="1"/><tag k="local_y" v=""/></node></osm>`,
		"nan local_x":   `<osm><node id="7"><tag k="local_x" v="NaN"/><tag k="local_y" v="1"/></node></osm>`,
		"inf local_y":   `<osm><node id="7"><tag k="local_x" v="1"/><tag k="local_y" v="-Inf"/></node></osm>`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadOSM(strings.NewReader(doc))
			var le *common.LoadError
			assert.True(t, errors.As(err, &le), "got %v", err)
		})
	}
}

func TestEncodeOSMRoundTrip(t *testing.T) {
	ways := []BoundaryWay{
		{Points: []common.Vec2{{X: -1.25, Y: 2}, {X: 3, Y: 4.125}}},
		{Points: []common.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeOSM(&buf, ways))

	net, err := LoadOSM(&buf)
	require.NoError(t, err)
	require.Len(t, net.Ways, 2)
	assert.Equal(t, ways[0].Points, net.Ways[0].Points)
	assert.Equal(t, ways[1].Points, net.Ways[1].Points)
	assert.NotEqual(t, net.Ways[0].ID, net.Ways[1].ID)
}

const sampleGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "id": "left", "properties": {},
     "geometry": {"type": "LineString", "coordinates": [[0, 0], [5, 1], [10, 0]]}},
    {"type": "Feature", "properties": {},
     "geometry": {"type": "MultiLineString", "coordinates": [[[1, 1], [2, 2]], [[3, 3], [4, 4]]]}},
    {"type": "Feature", "properties": {},
     "geometry": {"type": "Point", "coordinates": [7, 7]}},
    {"type": "Feature", "properties": {},
     "geometry": {"type": "Polygon", "coordinates": [[[0, 0], [1, 0], [1, 1], [0, 0]]]}}
  ]
}`

func TestLoadGeoJSON(t *testing.T) {
	net, err := LoadGeoJSON(strings.NewReader(sampleGeoJSON))
	require.NoError(t, err)

	require.Len(t, net.Ways, 4)
	assert.Equal(t, "left", net.Ways[0].ID)
	assert.Len(t, net.Ways[0].Points, 3)
	assert.Equal(t, "1/0", net.Ways[1].ID)
	assert.Equal(t, "1/1", net.Ways[2].ID)
	assert.Equal(t, common.Vec2{X: 3, Y: 3}, net.Ways[2].Points[0])
	assert.Equal(t, "3", net.Ways[3].ID)
	assert.Len(t, net.Ways[3].Points, 4)
}

func TestLoadGeoJSONMalformed(t *testing.T) {
	_, err := LoadGeoJSON(strings.NewReader(`{"type": "FeatureCollection", "features": [`))
	var le *common.LoadError
	assert.True(t, errors.As(err, &le))
}

func TestLoadDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	osmPath := filepath.Join(dir, "map.osm")
	jsonPath := filepath.Join(dir, "map.geojson")
	require.NoError(t, os.WriteFile(osmPath, []byte(sampleOSM), 0o644))
	require.NoError(t, os.WriteFile(jsonPath, []byte(sampleGeoJSON), 0o644))

	net, err := Load(osmPath)
	require.NoError(t, err)
	assert.Len(t, net.Ways, 2)

	net, err = Load(jsonPath)
	require.NoError(t, err)
	assert.Len(t, net.Ways, 4)

	_, err = Load(filepath.Join(dir, "missing.osm"))
	var le *common.LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, filepath.Join(dir, "missing.osm"), le.Path)

	bad := filepath.Join(dir, "bad.osm")
	require.NoError(t, os.WriteFile(bad, []byte("<osm>"), 0o644))
	_, err = Load(bad)
	require.True(t, errors.As(err, &le))
	assert.Equal(t, bad, le.Path)
}

func TestNetworkEachPoint(t *testing.T) {
	net := &Network{Ways: []BoundaryWay{
		{Points: []common.Vec2{{X: 1}, {X: 2}}},
		{Points: []common.Vec2{{X: 3}, {X: 4}, {X: 5}}},
	}}
	var xs []float64
	net.EachPoint(func(p common.Vec2) { xs = append(xs, p.X) })
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, xs)
}
