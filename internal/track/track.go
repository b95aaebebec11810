package track

import "raceline-editor/internal/common"

// BoundaryWay is one polyline of the road network (e.g. a lane edge).
// It always holds at least two points and is never modified after load.
type BoundaryWay struct {
	ID     string
	Points []common.Vec2
}

// Network is the read-only road-network geometry drawn under the racing line.
type Network struct {
	Ways []BoundaryWay
}

// PointCount returns the number of points over all ways.
func (n *Network) PointCount() int {
	total := 0
	for _, w := range n.Ways {
		total += len(w.Points)
	}
	return total
}

// EachPoint calls fn for every point of every way, in order.
func (n *Network) EachPoint(fn func(p common.Vec2)) {
	for _, w := range n.Ways {
		for _, p := range w.Points {
			fn(p)
		}
	}
}
