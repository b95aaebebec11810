package track

import (
	"encoding/xml"
	"io"
	"math"
	"strconv"

	"raceline-editor/internal/common"
)

const (
	tagLocalX = "local_x"
	tagLocalY = "local_y"
)

type osmDocument struct {
	XMLName   xml.Name  `xml:"osm"`
	Version   string    `xml:"version,attr,omitempty"`
	Generator string    `xml:"generator,attr,omitempty"`
	Nodes     []osmNode `xml:"node"`
	Ways      []osmWay  `xml:"way"`
}

type osmNode struct {
	ID   string   `xml:"id,attr"`
	Lat  string   `xml:"lat,attr,omitempty"`
	Lon  string   `xml:"lon,attr,omitempty"`
	Tags []osmTag `xml:"tag"`
}

type osmWay struct {
	ID   string   `xml:"id,attr"`
	Refs []osmRef `xml:"nd"`
	Tags []osmTag `xml:"tag"`
}

type osmRef struct {
	Ref string `xml:"ref,attr"`
}

type osmTag struct {
	K string `xml:"k,attr"`
	V string `xml:"v,attr"`
}

// LoadOSM parses a Lanelet2 OSM map. Node positions come from the local_x and
// local_y tags (metric map frame); nodes without both are ignored, and ways
// with fewer than two resolvable nodes are dropped.
func LoadOSM(r io.Reader) (*Network, error) {
	var doc osmDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, loadErr("parse osm: %w", err)
	}

	nodes := make(map[string]common.Vec2, len(doc.Nodes))
	for _, n := range doc.Nodes {
		var x, y float64
		var hasX, hasY bool
		for _, tag := range n.Tags {
			switch tag.K {
			case tagLocalX:
				v, ok := parseLocal(tag.V)
				if !ok {
					return nil, loadErr("node %s: bad %s %q", n.ID, tagLocalX, tag.V)
				}
				x, hasX = v, true
			case tagLocalY:
				v, ok := parseLocal(tag.V)
				if !ok {
					return nil, loadErr("node %s: bad %s %q", n.ID, tagLocalY, tag.V)
				}
				y, hasY = v, true
			}
		}
		if hasX && hasY {
			nodes[n.ID] = common.Vec2{X: x, Y: y}
		}
	}

	net := &Network{}
	for _, w := range doc.Ways {
		pts := make([]common.Vec2, 0, len(w.Refs))
		for _, nd := range w.Refs {
			if p, ok := nodes[nd.Ref]; ok {
				pts = append(pts, p)
			}
		}
		if len(pts) >= 2 {
			net.Ways = append(net.Ways, BoundaryWay{ID: w.ID, Points: pts})
		}
	}
	return net, nil
}

// parseLocal accepts finite decimal coordinates only.
func parseLocal(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// EncodeOSM writes ways as a minimal Lanelet2-style OSM document with
// sequential node and way ids. Every way is tagged type=line_thin.
func EncodeOSM(w io.Writer, ways []BoundaryWay) error {
	doc := osmDocument{Version: "0.6", Generator: "raceline-editor"}
	nextID := 1
	for _, way := range ways {
		ow := osmWay{Tags: []osmTag{{K: "type", V: "line_thin"}}}
		for _, p := range way.Points {
			id := strconv.Itoa(nextID)
			nextID++
			doc.Nodes = append(doc.Nodes, osmNode{
				ID:  id,
				Lat: "0",
				Lon: "0",
				Tags: []osmTag{
					{K: tagLocalX, V: strconv.FormatFloat(p.X, 'f', -1, 64)},
					{K: tagLocalY, V: strconv.FormatFloat(p.Y, 'f', -1, 64)},
				},
			})
			ow.Refs = append(ow.Refs, osmRef{Ref: id})
		}
		ow.ID = strconv.Itoa(nextID)
		nextID++
		doc.Ways = append(doc.Ways, ow)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
