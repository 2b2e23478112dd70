package timer

import (
	"context"
	"testing"
	"time"

	"liftsim/src/types"
)

const wait = 500 * time.Millisecond

func TestPhaseTimerDelivers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pt := New(ctx)

	want := types.Timeout{Phase: types.PhaseBoard, Gen: 1}
	pt.Start(5*time.Millisecond, want)

	select {
	case got := <-pt.C():
		if got != want {
			t.Errorf("got %+v, want %+v", got, want)
		}
	case <-time.After(wait):
		t.Fatal("timeout not delivered")
	}
}

func TestPhaseTimerRestartReplacesPending(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pt := New(ctx)

	pt.Start(time.Hour, types.Timeout{Phase: types.PhaseBoard, Gen: 1})
	want := types.Timeout{Phase: types.PhaseClose, Gen: 2}
	pt.Start(5*time.Millisecond, want)

	select {
	case got := <-pt.C():
		if got != want {
			t.Errorf("got %+v, want %+v", got, want)
		}
	case <-time.After(wait):
		t.Fatal("timeout not delivered")
	}
}

func TestPhaseTimerStopDropsExpired(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pt := New(ctx)

	pt.Start(time.Millisecond, types.Timeout{Phase: types.PhaseComplete, Gen: 3})
	time.Sleep(20 * time.Millisecond) // expired, nobody reading yet
	pt.Stop()

	select {
	case got := <-pt.C():
		t.Errorf("stopped timer delivered %+v", got)
	case <-time.After(50 * time.Millisecond):
	}
}
