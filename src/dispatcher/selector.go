package dispatcher

import (
	"math"

	"liftsim/src/types"
)

// ChooseNextTarget picks the next floor to service with a directional SCAN policy:
//  1. closest cabin request or same-direction call ahead
//  2. closest cabin request or opposite-direction call behind (turnaround)
//  3. farthest opposite-direction call ahead (ride to the end, serve it on the way back)
//  4. nearest request regardless of direction
//
// When canPickup is false hall calls are ignored, cabin requests are always visible.
func ChooseNextTarget(reqs *Requests, pos float64, dir types.MotorDirection, canPickup bool, eps float64) (types.Target, bool) {
	if !reqs.HasAny() {
		return types.Target{}, false
	}
	if dir == types.MD_Stop {
		return ChooseNearestTarget(reqs, pos, canPickup, eps)
	}

	sameCalls, oppositeCalls := reqs.Calls(dir), reqs.Calls(-dir)
	if !canPickup {
		sameCalls, oppositeCalls = FloorSet{}, FloorSet{}
	}

	if floor, ok := closest(pos, func(f int) bool { return isAhead(f, pos, dir, eps) }, reqs.Cabin, sameCalls); ok {
		return reqs.BuildTargetForFloor(floor, dir)
	}
	if floor, ok := closest(pos, func(f int) bool { return isAhead(f, pos, -dir, eps) }, reqs.Cabin, oppositeCalls); ok {
		return reqs.BuildTargetForFloor(floor, -dir)
	}
	if floor, ok := farthest(pos, func(f int) bool { return isAhead(f, pos, dir, eps) }, oppositeCalls); ok {
		return reqs.BuildTargetForFloor(floor, -dir)
	}
	return ChooseNearestTarget(reqs, pos, canPickup, eps)
}

// ChooseNearestTarget returns the request closest to pos. Ties go to the lower floor.
func ChooseNearestTarget(reqs *Requests, pos float64, canPickup bool, eps float64) (types.Target, bool) {
	sets := []FloorSet{reqs.Cabin}
	if canPickup {
		sets = append(sets, reqs.Up, reqs.Down)
	}
	floor, ok := closest(pos, func(int) bool { return true }, sets...)
	if !ok {
		return types.Target{}, false
	}

	switch {
	case float64(floor) > pos+eps:
		return reqs.BuildTargetForFloor(floor, types.MD_Up)
	case float64(floor) < pos-eps:
		return reqs.BuildTargetForFloor(floor, types.MD_Down)
	}
	return reqs.BuildTargetForFloor(floor, types.MD_Stop)
}

// closest scans the union of sets in ascending floor order and returns the accepted
// floor with the smallest distance to pos.
func closest(pos float64, accept func(int) bool, sets ...FloorSet) (int, bool) {
	best, bestDist := 0, math.Inf(1)
	for _, floor := range union(sets...) {
		if !accept(floor) {
			continue
		}
		if d := math.Abs(float64(floor) - pos); d < bestDist {
			best, bestDist = floor, d
		}
	}
	return best, !math.IsInf(bestDist, 1)
}

func farthest(pos float64, accept func(int) bool, sets ...FloorSet) (int, bool) {
	best, bestDist := 0, -1.0
	for _, floor := range union(sets...) {
		if !accept(floor) {
			continue
		}
		if d := math.Abs(float64(floor) - pos); d > bestDist {
			best, bestDist = floor, d
		}
	}
	return best, bestDist >= 0
}

func union(sets ...FloorSet) []int {
	merged := make(FloorSet)
	for _, s := range sets {
		for floor := range s {
			merged[floor] = true
		}
	}
	return merged.Sorted()
}
