package dispatcher

import "liftsim/src/types"

// ShouldPreempt reports whether next is a closer stop on the way to active.
// Requests behind the car or beyond the active target never preempt.
func ShouldPreempt(active, next types.Target, pos float64, dir types.MotorDirection, eps float64) bool {
	if dir == types.MD_Stop || next.Equal(active) {
		return false
	}
	return isAhead(next.Floor, pos, dir, eps) && isAhead(active.Floor, float64(next.Floor), dir, eps)
}
