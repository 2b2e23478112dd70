package dispatcher

import (
	"testing"

	"liftsim/src/types"
)

func TestShouldPreempt(t *testing.T) {
	tests := []struct {
		name   string
		active types.Target
		next   types.Target
		pos    float64
		dir    types.MotorDirection
		want   bool
	}{
		{"closer stop on the way up", types.CabinTarget(8), types.CabinTarget(6), 4, types.MD_Up, true},
		{"call behind the car", types.CabinTarget(8), types.HallTarget(2, types.MD_Down), 4, types.MD_Up, false},
		{"beyond the target", types.CabinTarget(8), types.CabinTarget(9), 4, types.MD_Up, false},
		{"same floor different source", types.CabinTarget(8), types.HallTarget(8, types.MD_Up), 4, types.MD_Up, false},
		{"same target", types.CabinTarget(8), types.CabinTarget(8), 4, types.MD_Up, false},
		{"already at the new floor", types.CabinTarget(8), types.CabinTarget(4), 4, types.MD_Up, false},
		{"closer stop on the way down", types.CabinTarget(1), types.HallTarget(3, types.MD_Down), 5.5, types.MD_Down, true},
		{"above the car going down", types.CabinTarget(1), types.CabinTarget(7), 5.5, types.MD_Down, false},
		{"idle never preempts", types.CabinTarget(8), types.CabinTarget(6), 4, types.MD_Stop, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldPreempt(tt.active, tt.next, tt.pos, tt.dir, eps); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// Moving up toward 8 at position 4, a cabin request for 6 preempts the trip.
func TestPreemptOnTheWay(t *testing.T) {
	active := types.CabinTarget(8)
	reqs := newRequests([]int{8, 6}, nil, nil)

	next, ok := ChooseNextTarget(reqs, 4, types.MD_Up, true, eps)
	if !ok || next != types.CabinTarget(6) {
		t.Fatalf("expected Cab(6), got %v", next)
	}
	if !ShouldPreempt(active, next, 4, types.MD_Up, eps) {
		t.Error("expected preemption")
	}
}

// Moving up toward 8 at position 4, a down call at 2 does not preempt.
func TestNoPreemptBehind(t *testing.T) {
	active := types.CabinTarget(8)
	reqs := newRequests([]int{8}, nil, []int{2})

	next, ok := ChooseNextTarget(reqs, 4, types.MD_Up, true, eps)
	if !ok {
		t.Fatal("expected a target")
	}
	if ShouldPreempt(active, next, 4, types.MD_Up, eps) {
		t.Errorf("unexpected preemption by %v", next)
	}
}
