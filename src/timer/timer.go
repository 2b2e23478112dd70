package timer

import (
	"context"
	"log/slog"
	"time"

	"liftsim/src/types"
)

type TimerAction int

const (
	Start TimerAction = iota
	Stop
)

type action struct {
	kind     TimerAction
	duration time.Duration
	timeout  types.Timeout
}

// PhaseTimer holds at most one pending door phase. Starting it replaces the pending phase,
// stopping it drops the phase even if it already expired but was not delivered yet.
type PhaseTimer struct {
	ctx      context.Context
	actions  chan action
	timeouts chan types.Timeout
}

func New(ctx context.Context) *PhaseTimer {
	pt := &PhaseTimer{
		ctx:      ctx,
		actions:  make(chan action, 1),
		timeouts: make(chan types.Timeout),
	}
	go pt.run(ctx)
	return pt
}

// C delivers expired phases.
func (pt *PhaseTimer) C() <-chan types.Timeout {
	return pt.timeouts
}

func (pt *PhaseTimer) Start(d time.Duration, timeout types.Timeout) {
	pt.send(action{kind: Start, duration: d, timeout: timeout})
}

func (pt *PhaseTimer) Stop() {
	pt.send(action{kind: Stop})
}

// send drops the action once the timer goroutine is gone.
func (pt *PhaseTimer) send(a action) {
	select {
	case pt.actions <- a:
	case <-pt.ctx.Done():
	}
}

func (pt *PhaseTimer) run(ctx context.Context) {
	t := time.NewTimer(time.Hour)
	t.Stop()
	var pending types.Timeout
	fired := false

	for {
		// Only offer the timeout while one is due, so actions are never blocked by a reader.
		var out chan<- types.Timeout
		if fired {
			out = pt.timeouts
		}

		select {
		case <-ctx.Done():
			t.Stop()
			return
		case a := <-pt.actions:
			switch a.kind {
			case Start:
				resetTimer(t, a.duration)
				pending = a.timeout
			case Stop:
				stopTimer(t)
			}
			fired = false
		case <-t.C:
			fired = true
			slog.Debug("Phase timer expired", "phase", pending.Phase, "gen", pending.Gen)
		case out <- pending:
			fired = false
		}
	}
}

// Stops the timer and resets it.
func resetTimer(t *time.Timer, d time.Duration) {
	stopTimer(t)
	t.Reset(d)
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
