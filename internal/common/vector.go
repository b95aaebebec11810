package common

import "math"

// Vec2 is a point or offset in world coordinates (meters).
type Vec2 struct {
	X, Y float64
}

// Sub subtracts other from v.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// DistSq returns the squared distance between two points.
func (v Vec2) DistSq(other Vec2) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	return dx*dx + dy*dy
}

// IsFinite reports whether both components are neither NaN nor infinite.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
