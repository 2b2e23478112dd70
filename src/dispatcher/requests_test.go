package dispatcher

import (
	"testing"

	"liftsim/src/types"
)

const eps = 0.001

// newRequests builds a request model from floor lists.
func newRequests(cabin, up, down []int) *Requests {
	r := NewRequests()
	for _, f := range cabin {
		r.Cabin.Add(f)
	}
	for _, f := range up {
		r.Up.Add(f)
	}
	for _, f := range down {
		r.Down.Add(f)
	}
	return r
}

func TestFloorSetAddIsIdempotent(t *testing.T) {
	s := make(FloorSet)
	if !s.Add(3) {
		t.Error("first add should report a change")
	}
	if s.Add(3) {
		t.Error("second add should be a no-op")
	}
	if len(s) != 1 {
		t.Errorf("expected one floor, got %v", s.Sorted())
	}
}

func TestHasAny(t *testing.T) {
	if NewRequests().HasAny() {
		t.Error("empty model reports requests")
	}
	for _, r := range []*Requests{
		newRequests([]int{2}, nil, nil),
		newRequests(nil, []int{2}, nil),
		newRequests(nil, nil, []int{2}),
	} {
		if !r.HasAny() {
			t.Errorf("expected requests in %+v", r)
		}
	}
}

func TestBuildTargetForFloor(t *testing.T) {
	tests := []struct {
		name      string
		reqs      *Requests
		preferred types.MotorDirection
		want      types.Target
		wantOK    bool
	}{
		{"nothing pending", newRequests([]int{2}, []int{3}, nil), types.MD_Up, types.Target{}, false},
		{"cabin beats calls going up", newRequests([]int{5}, []int{5}, []int{5}), types.MD_Up, types.CabinTarget(5), true},
		{"cabin beats calls going down", newRequests([]int{5}, []int{5}, []int{5}), types.MD_Down, types.CabinTarget(5), true},
		{"up call preferred going up", newRequests(nil, []int{5}, []int{5}), types.MD_Up, types.HallTarget(5, types.MD_Up), true},
		{"down call preferred going down", newRequests(nil, []int{5}, []int{5}), types.MD_Down, types.HallTarget(5, types.MD_Down), true},
		{"default order is up first", newRequests(nil, []int{5}, []int{5}), types.MD_Stop, types.HallTarget(5, types.MD_Up), true},
		{"only down call going up", newRequests(nil, nil, []int{5}), types.MD_Up, types.HallTarget(5, types.MD_Down), true},
		{"only up call going down", newRequests(nil, []int{5}, nil), types.MD_Down, types.HallTarget(5, types.MD_Up), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.reqs.BuildTargetForFloor(5, tt.preferred)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("got %v (%v), want %v (%v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestHasRequestsBeyond(t *testing.T) {
	r := newRequests([]int{2}, []int{7}, []int{9})
	tests := []struct {
		pos  float64
		dir  types.MotorDirection
		want bool
	}{
		{5, types.MD_Up, true},    // up call at 7
		{7, types.MD_Up, false},   // down call at 9 is not up service
		{5, types.MD_Down, true},  // cabin at 2
		{2, types.MD_Down, false}, // nothing below 2
		{5, types.MD_Stop, false},
	}
	for _, tt := range tests {
		if got := r.HasRequestsBeyond(tt.pos, tt.dir, eps); got != tt.want {
			t.Errorf("HasRequestsBeyond(%v, %v) = %v, want %v", tt.pos, tt.dir, got, tt.want)
		}
	}
}

func TestUnionAndClearFloor(t *testing.T) {
	r := newRequests([]int{2}, nil, []int{4})
	r.Union(newRequests([]int{3}, []int{4}, nil))
	if !r.Equal(newRequests([]int{2, 3}, []int{4}, []int{4})) {
		t.Fatalf("unexpected union %+v", r)
	}
	r.ClearFloor(4)
	if r.HasAt(4) {
		t.Error("floor 4 not cleared")
	}
	if !r.Cabin.Has(2) || !r.Cabin.Has(3) {
		t.Error("other floors cleared")
	}
	r.Clear()
	if r.HasAny() {
		t.Error("clear left requests")
	}
}
