package elev

import (
	"fmt"
	"log/slog"
	"time"

	"liftsim/src/dispatcher"
	"liftsim/src/types"
)

// PassengerCount counts every passenger still in the system: waiting, riding or exiting.
func (c *Car) PassengerCount() int {
	n := len(c.riders) + len(c.exiting)
	for _, queue := range c.waiting {
		n += len(queue)
	}
	return n
}

func (c *Car) CanSpawn() bool {
	return c.PassengerCount() < c.cfg.MaxPassengers
}

// SpawnPassenger queues a new passenger at origin. It refuses once the system holds the
// maximum number of passengers.
func (c *Car) SpawnPassenger(origin, destination int) (types.Passenger, bool) {
	if !c.CanSpawn() {
		return types.Passenger{}, false
	}
	if origin == destination || !c.validFloor(origin) || !c.validFloor(destination) {
		slog.Warn("Invalid passenger trip", "origin", origin, "destination", destination)
		return types.Passenger{}, false
	}

	p := types.NewPassenger(c.nextID, origin, destination)
	c.nextID++
	c.waiting[origin] = append(c.waiting[origin], p)
	slog.Info("Passenger spawned", "id", p.ID, "origin", origin, "destination", destination, "dir", p.Dir)

	c.sync()
	c.afterRequest()
	return p, true
}

// Waiting returns the queue at floor in arrival order. Callers must not modify it.
func (c *Car) Waiting(floor int) []types.Passenger {
	return c.waiting[floor]
}

func (c *Car) Riders() []types.Passenger {
	return c.riders
}

// unload moves riders for floor out of the car and returns how long they take to leave.
func (c *Car) unload(floor int) time.Duration {
	var staying []types.Passenger
	leaving := 0
	for _, p := range c.riders {
		if p.Destination != floor {
			staying = append(staying, p)
			continue
		}
		p.State = types.Exiting
		c.exiting = append(c.exiting, p)
		leaving++
	}
	c.riders = staying
	if leaving == 0 {
		return 0
	}
	slog.Info("Passengers leaving", "floor", floor, "count", leaving)
	return time.Duration(leaving)*c.cfg.ExitStagger + c.cfg.ExitDuration
}

func (c *Car) removeExited() {
	for _, p := range c.exiting {
		slog.Debug("Passenger removed", "id", p.ID)
	}
	c.exiting = nil
}

// board lets waiters at floor into the car and returns how long boarding takes.
func (c *Car) board(floor int) time.Duration {
	queue := c.waiting[floor]
	if len(queue) == 0 {
		return 0
	}
	capacityLeft := c.cfg.Capacity - len(c.riders)
	if capacityLeft <= 0 {
		slog.Debug("Car full, nobody boards", "floor", floor, "waiting", len(queue))
		return 0
	}

	dir := dispatcher.BoardDirection(c.reqs, floor, queue, c.state.Dir, c.state.ActiveTarget, c.cfg.FloorEpsilon)
	boarders, remaining := dispatcher.SelectBoarders(queue, dir, capacityLeft)
	if len(boarders) == 0 {
		return 0
	}
	c.waiting[floor] = remaining
	if len(remaining) == 0 {
		delete(c.waiting, floor)
	}

	for _, p := range boarders {
		p.State = types.Boarding
		c.riders = append(c.riders, p)
	}
	if len(c.riders) > c.cfg.Capacity {
		panic(fmt.Sprintf("car holds %d riders, capacity is %d", len(c.riders), c.cfg.Capacity))
	}
	if c.state.Dir == types.MD_Stop {
		c.state.Dir = boarders[0].Dir
	}
	slog.Info("Passengers boarding", "floor", floor, "count", len(boarders), "dir", dir, "riders", len(c.riders))

	c.sync()
	return time.Duration(len(boarders))*c.cfg.BoardStagger + c.cfg.BoardDuration
}

// seatBoarded marks everyone who boarded at this stop as riding.
func (c *Car) seatBoarded() {
	for i := range c.riders {
		if c.riders[i].State == types.Boarding {
			c.riders[i].State = types.Riding
		}
	}
}

// sync rebuilds the effective requests from the panel requests, the riders' destinations
// and the waiting queues.
func (c *Car) sync() {
	reqs := dispatcher.NewRequests()
	reqs.Union(c.manual)
	for _, p := range c.riders {
		reqs.Cabin.Add(p.Destination)
	}
	for floor, queue := range c.waiting {
		for _, p := range queue {
			reqs.Calls(p.Dir).Add(floor)
		}
	}
	c.reqs = reqs

	if n := c.PassengerCount(); n > c.cfg.MaxPassengers {
		panic(fmt.Sprintf("%d passengers in the system, maximum is %d", n, c.cfg.MaxPassengers))
	}
}
