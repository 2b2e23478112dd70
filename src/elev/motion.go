package elev

import (
	"log/slog"
	"math"
	"time"

	"liftsim/src/dispatcher"
	"liftsim/src/types"
)

// trip is one continuous move from a position to a target floor.
type trip struct {
	start    time.Time
	from     float64
	target   types.Target
	duration time.Duration
}

// positionAt follows a cubic ease-out curve and reaches the target exactly when done.
func (t *trip) positionAt(now time.Time) (pos float64, done bool) {
	progress := min(float64(now.Sub(t.start))/float64(t.duration), 1)
	if progress < 0 {
		progress = 0
	}
	if progress >= 1 {
		return float64(t.target.Floor), true
	}
	eased := 1 - math.Pow(1-progress, 3)
	return t.from + (float64(t.target.Floor)-t.from)*eased, false
}

// tripDuration is proportional to distance but never below the minimum trip time.
func (c *Car) tripDuration(distance float64) time.Duration {
	d := time.Duration(distance / c.cfg.Speed * float64(time.Second))
	return max(d, c.cfg.MinTripDuration)
}

// startMoveTo replaces any trip or pending phase with a move to target. A target at the
// current position opens the doors right away.
func (c *Car) startMoveTo(target types.Target) {
	c.cancelPending()
	c.trip = nil

	from := c.state.Position
	c.state.ActiveTarget = &target
	if math.Abs(float64(target.Floor)-from) <= c.cfg.FloorEpsilon {
		c.state.Behaviour = types.Idle
		c.beginStopSequence(target.Floor)
		return
	}

	if float64(target.Floor) > from {
		c.state.Dir = types.MD_Up
	} else {
		c.state.Dir = types.MD_Down
	}
	c.state.Behaviour = types.Moving
	c.trip = &trip{
		start:    c.clock(),
		from:     from,
		target:   target,
		duration: c.tripDuration(math.Abs(float64(target.Floor) - from)),
	}
	slog.Debug("Starting trip",
		"from", from,
		"target", target,
		"dir", c.state.Dir,
		"duration", c.trip.duration)
}

// Step advances the current trip to the clock's time. Called once per frame.
func (c *Car) Step() {
	if c.state.Behaviour != types.Moving || c.trip == nil {
		return
	}
	t := c.trip
	pos, done := t.positionAt(c.clock())
	if c.OnTick(pos) {
		return
	}
	if done {
		c.OnArrival(t.target.Floor)
	}
}

// OnTick records the car position during a trip and reports whether a closer stop
// preempted the trip.
func (c *Car) OnTick(pos float64) bool {
	if c.state.Behaviour != types.Moving {
		return false
	}
	c.state.Position = min(max(pos, 1), float64(c.cfg.NumFloors))
	return c.maybePreempt(c.state.Position)
}

// maybePreempt retargets the trip when a stop appears between the car and its target.
func (c *Car) maybePreempt(pos float64) bool {
	if c.state.Behaviour != types.Moving || c.state.ActiveTarget == nil || c.state.Dir == types.MD_Stop {
		return false
	}
	next, ok := dispatcher.ChooseNextTarget(c.reqs, pos, c.state.Dir, c.canPickup(), c.cfg.FloorEpsilon)
	if !ok || !dispatcher.ShouldPreempt(*c.state.ActiveTarget, next, pos, c.state.Dir, c.cfg.FloorEpsilon) {
		return false
	}
	slog.Info("Preempting trip", "from", *c.state.ActiveTarget, "to", next, "position", pos)
	c.startMoveTo(next)
	return true
}

// OnArrival stops the car at floor and starts the door cycle.
func (c *Car) OnArrival(floor int) {
	if c.state.Behaviour != types.Moving {
		return
	}
	c.trip = nil
	c.state.Behaviour = types.Idle
	slog.Debug("Arrived", "floor", floor, "dir", c.state.Dir)
	c.beginStopSequence(floor)
}
