package elev

import (
	"log/slog"
	"math"
	"time"

	"github.com/tiendc/go-deepcopy"

	"liftsim/src/config"
	"liftsim/src/dispatcher"
	"liftsim/src/types"
)

// Scheduler holds the single pending door phase of a car.
type Scheduler interface {
	Start(d time.Duration, timeout types.Timeout)
	Stop()
}

// CarState is the observable state of the car.
type CarState struct {
	Floor        int                  `json:"floor"`
	Position     float64              `json:"position"`
	Dir          types.MotorDirection `json:"dir"`
	Behaviour    types.ElevBehaviour  `json:"behaviour"`
	ActiveTarget *types.Target        `json:"active_target,omitempty"`
}

// Car is the dispatch core of one elevator car. It is not safe for concurrent use,
// the executor owns it and serializes every call.
type Car struct {
	cfg   config.Config
	sched Scheduler
	clock func() time.Time

	state CarState
	trip  *trip
	gen   uint64

	// manual holds panel requests, reqs is manual plus passenger-derived requests.
	manual *dispatcher.Requests
	reqs   *dispatcher.Requests

	waiting map[int][]types.Passenger
	riders  []types.Passenger
	exiting []types.Passenger
	nextID  int
}

type Option func(*Car)

// WithClock replaces time.Now as the trip clock.
func WithClock(clock func() time.Time) Option {
	return func(c *Car) { c.clock = clock }
}

// NewCar returns an idle car resting at floor 1.
func NewCar(cfg config.Config, sched Scheduler, opts ...Option) *Car {
	c := &Car{
		cfg:   cfg,
		sched: sched,
		clock: time.Now,
		state: CarState{
			Floor:     1,
			Position:  1,
			Dir:       types.MD_Stop,
			Behaviour: types.Idle,
		},
		manual:  dispatcher.NewRequests(),
		reqs:    dispatcher.NewRequests(),
		waiting: make(map[int][]types.Passenger, cfg.NumFloors),
		nextID:  1,
	}
	for _, opt := range opts {
		opt(c)
	}
	slog.Debug("Car initialized", "floors", cfg.NumFloors, "capacity", cfg.Capacity)
	return c
}

func (c *Car) State() CarState {
	return c.state
}

// Requests returns the effective request collections. Callers must not modify them.
func (c *Car) Requests() *dispatcher.Requests {
	return c.reqs
}

// SubmitCabinRequest records a destination from inside the car. Requests for the floor the
// car is heading to, for the floor it rests at, or already pending are ignored.
func (c *Car) SubmitCabinRequest(floor int) bool {
	if !c.validFloor(floor) {
		return false
	}
	if c.state.Behaviour == types.Moving && c.state.ActiveTarget != nil && c.state.ActiveTarget.Floor == floor {
		slog.Debug("Cabin request ignored, already heading there", "floor", floor)
		return false
	}
	if c.restingAt(floor) {
		slog.Debug("Cabin request ignored, car is at floor", "floor", floor)
		return false
	}
	if c.reqs.Cabin.Has(floor) {
		return false
	}

	c.manual.Cabin.Add(floor)
	c.reqs.Cabin.Add(floor)
	slog.Info("Cabin request", "floor", floor)
	c.afterRequest()
	return true
}

// SubmitHallCall records a call from a floor. There is no up call at the top floor and no
// down call at the bottom floor.
func (c *Car) SubmitHallCall(floor int, dir types.MotorDirection) bool {
	if !c.validFloor(floor) {
		return false
	}
	if dir == types.MD_Stop ||
		(dir == types.MD_Up && floor == c.cfg.NumFloors) ||
		(dir == types.MD_Down && floor == 1) {
		slog.Debug("Hall call rejected", "floor", floor, "dir", dir)
		return false
	}
	if c.reqs.Calls(dir).Has(floor) {
		return false
	}
	if c.restingAt(floor) {
		slog.Debug("Hall call ignored, car is at floor", "floor", floor)
		return false
	}

	c.manual.Calls(dir).Add(floor)
	c.reqs.Calls(dir).Add(floor)
	slog.Info("Hall call", "floor", floor, "dir", dir)
	c.afterRequest()
	return true
}

// HandleButton routes a panel button press to the matching request.
func (c *Car) HandleButton(btn types.ButtonEvent) bool {
	if btn.Button == types.BT_Cab {
		return c.SubmitCabinRequest(btn.Floor)
	}
	return c.SubmitHallCall(btn.Floor, btn.Button.HallDir())
}

// Snapshot returns a deep copy of the car for readers outside the executor.
func (c *Car) Snapshot() Snapshot {
	src := Snapshot{
		State:         c.state,
		Requests:      *c.reqs,
		Waiting:       c.waiting,
		Riders:        c.riders,
		Exiting:       c.exiting,
		NumFloors:     c.cfg.NumFloors,
		Capacity:      c.cfg.Capacity,
		MaxPassengers: c.cfg.MaxPassengers,
	}
	snap := Snapshot{}
	if err := deepcopy.Copy(&snap, &src); err != nil {
		panic(err)
	}
	return snap
}

// afterRequest re-evaluates the trip after a new request. During the door cycle the
// request waits for the next dispatch.
func (c *Car) afterRequest() {
	switch c.state.Behaviour {
	case types.Moving:
		c.maybePreempt(c.state.Position)
	case types.Idle:
		c.Dispatch()
	}
}

// Dispatch picks the next target of an idle car: serve the floor it rests at, move to the
// next target, or go idle.
func (c *Car) Dispatch() {
	if c.state.Behaviour != types.Idle {
		return
	}
	c.sync()

	floor := int(math.Round(c.state.Position))
	if c.atFloor(floor) && dispatcher.HasServiceableRequestAt(c.reqs, floor, c.state.Dir, c.canPickup(), c.cfg.FloorEpsilon) {
		target, _ := c.reqs.BuildTargetForFloor(floor, c.state.Dir)
		c.state.ActiveTarget = &target
		c.beginStopSequence(floor)
		return
	}

	target, ok := dispatcher.ChooseNextTarget(c.reqs, c.state.Position, c.state.Dir, c.canPickup(), c.cfg.FloorEpsilon)
	if !ok {
		if c.state.Dir != types.MD_Stop {
			slog.Debug("No reachable requests, going idle", "floor", c.state.Floor)
		}
		c.state.Dir = types.MD_Stop
		c.state.ActiveTarget = nil
		return
	}
	c.startMoveTo(target)
}

func (c *Car) canPickup() bool {
	return len(c.riders) < c.cfg.Capacity
}

func (c *Car) validFloor(floor int) bool {
	if floor < 1 || floor > c.cfg.NumFloors {
		slog.Warn("Request for floor out of range", "floor", floor, "numFloors", c.cfg.NumFloors)
		return false
	}
	return true
}

func (c *Car) atFloor(floor int) bool {
	return math.Abs(float64(floor)-c.state.Position) <= c.cfg.FloorEpsilon
}

// restingAt reports whether the car stands at floor, idle or with its doors cycling.
func (c *Car) restingAt(floor int) bool {
	return c.state.Behaviour != types.Moving && c.atFloor(floor)
}

// schedule arms the next door phase. A new generation invalidates older timeouts.
func (c *Car) schedule(d time.Duration, phase types.DoorPhase) {
	c.gen++
	c.sched.Start(d, types.Timeout{Phase: phase, Gen: c.gen})
}

// cancelPending stops the pending phase so nothing from an older chain can run.
func (c *Car) cancelPending() {
	c.gen++
	c.sched.Stop()
}
