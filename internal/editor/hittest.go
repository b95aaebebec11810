package editor

import (
	"math"

	"raceline-editor/internal/common"
	"raceline-editor/internal/viewport"
)

// Nearest returns the index of the marker closest to at, provided it lies
// within radius pixels. Equal distances resolve to the lowest index.
// Linear search; racing lines are a few thousand points at most.
func Nearest(markers []viewport.ScreenPoint, at viewport.ScreenPoint, radius float64) int {
	minDistSq := math.MaxFloat64
	closestIdx := NoHit
	pos := common.Vec2(at)

	for i, m := range markers {
		distSq := pos.DistSq(common.Vec2(m))
		if distSq < minDistSq {
			minDistSq = distSq
			closestIdx = i
		}
	}

	if closestIdx == NoHit || minDistSq > radius*radius {
		return NoHit
	}
	return closestIdx
}
