package executor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"liftsim/src/config"
	"liftsim/src/elev"
	"liftsim/src/types"
)

var ErrStopped = errors.New("executor stopped")

// Command runs against the car on the executor goroutine.
type Command struct {
	Exec func(car *elev.Car)
}

// Executor serializes every access to the car on one goroutine: frame ticks, door
// timeouts, spawns and commands from outside.
type Executor struct {
	cfg      config.Config
	car      *elev.Car
	timeouts <-chan types.Timeout
	spawner  *Spawner
	cmds     chan Command
	done     chan struct{}
}

// New returns an executor for car. A nil spawner disables passengers.
func New(cfg config.Config, car *elev.Car, timeouts <-chan types.Timeout, spawner *Spawner) *Executor {
	return &Executor{
		cfg:      cfg,
		car:      car,
		timeouts: timeouts,
		spawner:  spawner,
		cmds:     make(chan Command),
		done:     make(chan struct{}),
	}
}

// Run drives the car until ctx is cancelled.
func (e *Executor) Run(ctx context.Context) {
	defer close(e.done)

	frame := time.NewTicker(e.cfg.FrameInterval)
	defer frame.Stop()

	var spawnTimer *time.Timer
	var spawnCh <-chan time.Time
	if e.spawner != nil {
		e.warmUp()
		spawnTimer = time.NewTimer(e.spawner.Delay())
		defer spawnTimer.Stop()
		spawnCh = spawnTimer.C
	}
	e.car.Dispatch()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Executor stopping", "reason", ctx.Err())
			return

		case <-frame.C:
			e.car.Step()

		case timeout := <-e.timeouts:
			e.car.HandleTimeout(timeout)

		case cmd := <-e.cmds:
			cmd.Exec(e.car)

		case <-spawnCh:
			e.spawn()
			spawnTimer.Reset(e.spawner.Delay())
		}
	}
}

// warmUp fills the floors with a few passengers before the car first moves.
func (e *Executor) warmUp() {
	for range e.cfg.WarmUpPassengers {
		e.spawn()
	}
}

func (e *Executor) spawn() {
	if !e.car.CanSpawn() {
		slog.Debug("Passenger limit reached, skipping spawn", "max", e.cfg.MaxPassengers)
		return
	}
	origin, destination := e.spawner.Trip()
	e.car.SpawnPassenger(origin, destination)
}

// Do runs exec on the executor goroutine and waits for it to finish.
func (e *Executor) Do(ctx context.Context, exec func(car *elev.Car)) error {
	finished := make(chan struct{})
	cmd := Command{Exec: func(car *elev.Car) {
		exec(car)
		close(finished)
	}}

	select {
	case e.cmds <- cmd:
	case <-e.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	// A command that was handed over always runs to completion.
	<-finished
	return nil
}

// Submit presses a panel button and reports whether it added a request.
func (e *Executor) Submit(ctx context.Context, btn types.ButtonEvent) (bool, error) {
	var accepted bool
	err := e.Do(ctx, func(car *elev.Car) {
		accepted = car.HandleButton(btn)
	})
	return accepted, err
}

// State returns a snapshot of the car taken on the executor goroutine.
func (e *Executor) State(ctx context.Context) (elev.Snapshot, error) {
	var snap elev.Snapshot
	err := e.Do(ctx, func(car *elev.Car) {
		snap = car.Snapshot()
	})
	return snap, err
}
