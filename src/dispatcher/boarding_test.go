package dispatcher

import (
	"testing"

	"liftsim/src/types"
)

func queueOf(dests ...int) []types.Passenger {
	const origin = 5
	queue := make([]types.Passenger, 0, len(dests))
	for i, d := range dests {
		queue = append(queue, types.NewPassenger(i+1, origin, d))
	}
	return queue
}

func ids(ps []types.Passenger) []int {
	out := make([]int, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestBoardDirection(t *testing.T) {
	upCall := types.HallTarget(5, types.MD_Up)
	downCall := types.HallTarget(5, types.MD_Down)
	cabin := types.CabinTarget(5)

	tests := []struct {
		name   string
		reqs   *Requests
		queue  []types.Passenger
		carDir types.MotorDirection
		active *types.Target
		want   types.MotorDirection
	}{
		{"empty queue", NewRequests(), nil, types.MD_Up, nil, types.MD_Stop},
		{"up car boards up", newRequests([]int{9}, nil, nil), queueOf(8, 2), types.MD_Up, nil, types.MD_Up},
		{"up car leaves down waiters while work remains above", newRequests([]int{9}, nil, nil), queueOf(2), types.MD_Up, nil, types.MD_Stop},
		{"up car reverses here", newRequests([]int{3}, nil, nil), queueOf(2), types.MD_Up, nil, types.MD_Down},
		{"down car boards down", NewRequests(), queueOf(8, 2), types.MD_Down, nil, types.MD_Down},
		{"down car leaves up waiters while work remains below", newRequests(nil, nil, []int{1}), queueOf(8), types.MD_Down, nil, types.MD_Stop},
		{"down car reverses here", NewRequests(), queueOf(8), types.MD_Down, nil, types.MD_Up},
		{"idle follows up call", NewRequests(), queueOf(2, 8), types.MD_Stop, &upCall, types.MD_Up},
		{"idle follows down call", NewRequests(), queueOf(8, 2), types.MD_Stop, &downCall, types.MD_Down},
		{"idle cabin target prefers up", NewRequests(), queueOf(2, 8), types.MD_Stop, &cabin, types.MD_Up},
		{"idle without target prefers up", NewRequests(), queueOf(2, 8), types.MD_Stop, nil, types.MD_Up},
		{"idle only down waiters", NewRequests(), queueOf(2, 1), types.MD_Stop, &upCall, types.MD_Down},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BoardDirection(tt.reqs, 5, tt.queue, tt.carDir, tt.active, eps); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectBoardersQueueOrder(t *testing.T) {
	queue := queueOf(8, 2, 9, 7, 1) // ids 1..5, up: 1 3 4, down: 2 5
	boarders, remaining := SelectBoarders(queue, types.MD_Up, 2)

	if got := ids(boarders); len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("expected boarders [1 3], got %v", got)
	}
	if got := ids(remaining); len(got) != 3 || got[0] != 2 || got[1] != 4 || got[2] != 5 {
		t.Errorf("expected remaining [2 4 5], got %v", got)
	}
}

func TestSelectBoardersCapacity(t *testing.T) {
	queue := queueOf(8, 9, 7)
	for capacityLeft := -1; capacityLeft <= 4; capacityLeft++ {
		boarders, remaining := SelectBoarders(queue, types.MD_Up, capacityLeft)
		if len(boarders) > max(capacityLeft, 0) {
			t.Errorf("capacity %d boarded %d", capacityLeft, len(boarders))
		}
		if len(boarders)+len(remaining) != len(queue) {
			t.Errorf("capacity %d lost passengers", capacityLeft)
		}
	}
	if boarders, _ := SelectBoarders(queue, types.MD_Stop, 8); len(boarders) != 0 {
		t.Error("MD_Stop boarded passengers")
	}
}

// Up and down waiters at the same floor: the up call is served first, down waiters stay.
func TestBothDirectionsWaiting(t *testing.T) {
	reqs := newRequests(nil, []int{5}, []int{5})
	queue := queueOf(9, 1) // id 1 up, id 2 down

	target, ok := ChooseNextTarget(reqs, 1, types.MD_Stop, true, eps)
	if !ok || target != types.HallTarget(5, types.MD_Up) {
		t.Fatalf("expected HallUp(5), got %v", target)
	}
	dir := BoardDirection(reqs, 5, queue, types.MD_Stop, &target, eps)
	boarders, remaining := SelectBoarders(queue, dir, 8)
	if got := ids(boarders); len(got) != 1 || got[0] != 1 {
		t.Errorf("expected passenger 1 to board, got %v", got)
	}
	if got := ids(remaining); len(got) != 1 || got[0] != 2 {
		t.Errorf("expected passenger 2 to wait, got %v", got)
	}
}

func TestHasServiceableRequestAt(t *testing.T) {
	tests := []struct {
		name      string
		reqs      *Requests
		carDir    types.MotorDirection
		canPickup bool
		want      bool
	}{
		{"drop-off", newRequests([]int{5}, nil, nil), types.MD_Up, false, true},
		{"full car ignores pickup", newRequests(nil, []int{5}, nil), types.MD_Up, false, false},
		{"same direction pickup", newRequests(nil, []int{5}, nil), types.MD_Up, true, true},
		{"opposite pickup with work ahead", newRequests([]int{8}, nil, []int{5}), types.MD_Up, true, false},
		{"opposite pickup at turnaround", newRequests(nil, nil, []int{5}), types.MD_Up, true, true},
		{"down car opposite pickup with work below", newRequests([]int{2}, []int{5}, nil), types.MD_Down, true, false},
		{"idle takes anything", newRequests(nil, nil, []int{5}), types.MD_Stop, true, true},
		{"nothing here", newRequests([]int{2}, nil, nil), types.MD_Stop, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasServiceableRequestAt(tt.reqs, 5, tt.carDir, tt.canPickup, eps); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
