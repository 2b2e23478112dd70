package elev

import (
	"log/slog"

	"liftsim/src/types"
)

// beginStopSequence opens the doors at floor: riders for this floor get off now, boarding
// follows once the doors are open and the last rider is out.
func (c *Car) beginStopSequence(floor int) {
	if c.state.Behaviour == types.DoorOpen {
		return
	}
	c.trip = nil
	c.state.Behaviour = types.DoorOpen
	c.state.Floor = floor
	c.state.Position = float64(floor)

	// One stop serves every panel request pending at this floor.
	c.manual.ClearFloor(floor)
	unloadDuration := c.unload(floor)
	c.sync()

	slog.Debug("Doors open", "floor", floor, "target", c.state.ActiveTarget, "exiting", len(c.exiting))
	c.schedule(max(c.cfg.DoorOpenDuration, unloadDuration), types.PhaseBoard)
}

// HandleTimeout runs the door phase that expired. Timeouts from a superseded chain are
// dropped.
func (c *Car) HandleTimeout(timeout types.Timeout) {
	if timeout.Gen != c.gen || c.state.Behaviour != types.DoorOpen {
		slog.Debug("Ignoring stale timeout", "phase", timeout.Phase, "gen", timeout.Gen, "current", c.gen)
		return
	}

	switch timeout.Phase {
	case types.PhaseBoard:
		c.removeExited()
		boardDuration := c.board(c.state.Floor)
		c.schedule(max(c.cfg.DwellDuration, boardDuration), types.PhaseClose)
	case types.PhaseClose:
		c.seatBoarded()
		slog.Debug("Doors closing", "floor", c.state.Floor)
		c.schedule(c.cfg.DoorCloseDuration, types.PhaseComplete)
	case types.PhaseComplete:
		c.OnSequenceComplete()
	}
}

// OnSequenceComplete ends the door cycle and dispatches the next move.
func (c *Car) OnSequenceComplete() {
	if c.state.Behaviour != types.DoorOpen {
		return
	}
	c.state.Behaviour = types.Idle
	c.state.ActiveTarget = nil
	c.Dispatch()
}
