package dispatcher

import (
	"encoding/json"
	"maps"
	"slices"

	"liftsim/src/types"
)

// FloorSet is a set of floors. Adding an existing floor is a no-op.
type FloorSet map[int]bool

func (s FloorSet) Add(floor int) bool {
	if s[floor] {
		return false
	}
	s[floor] = true
	return true
}

func (s FloorSet) Has(floor int) bool {
	return s[floor]
}

func (s FloorSet) Sorted() []int {
	return slices.Sorted(maps.Keys(s))
}

// MarshalJSON encodes the set as an ascending list of floors.
func (s FloorSet) MarshalJSON() ([]byte, error) {
	floors := s.Sorted()
	if floors == nil {
		floors = []int{}
	}
	return json.Marshal(floors)
}

// Requests holds the three pending request collections of the car.
type Requests struct {
	Cabin FloorSet `json:"cabin"`
	Up    FloorSet `json:"up"`
	Down  FloorSet `json:"down"`
}

func NewRequests() *Requests {
	return &Requests{
		Cabin: make(FloorSet),
		Up:    make(FloorSet),
		Down:  make(FloorSet),
	}
}

// Calls returns the hall call set for callers travelling in dir.
func (r *Requests) Calls(dir types.MotorDirection) FloorSet {
	if dir == types.MD_Up {
		return r.Up
	}
	return r.Down
}

func (r *Requests) HasAny() bool {
	return len(r.Cabin) > 0 || len(r.Up) > 0 || len(r.Down) > 0
}

func (r *Requests) HasAt(floor int) bool {
	return r.Cabin.Has(floor) || r.Up.Has(floor) || r.Down.Has(floor)
}

func (r *Requests) Clear() {
	clear(r.Cabin)
	clear(r.Up)
	clear(r.Down)
}

// ClearFloor removes every request at floor. One stop serves all of them.
func (r *Requests) ClearFloor(floor int) {
	delete(r.Cabin, floor)
	delete(r.Up, floor)
	delete(r.Down, floor)
}

// Union adds every request of other to r.
func (r *Requests) Union(other *Requests) {
	maps.Copy(r.Cabin, other.Cabin)
	maps.Copy(r.Up, other.Up)
	maps.Copy(r.Down, other.Down)
}

// Equal reports whether both hold the same floors in every collection.
func (r *Requests) Equal(other *Requests) bool {
	return maps.Equal(r.Cabin, other.Cabin) &&
		maps.Equal(r.Up, other.Up) &&
		maps.Equal(r.Down, other.Down)
}

// BuildTargetForFloor resolves the pending requests at floor to one target.
// A cabin request always wins, the hall call tie-break follows preferredDir
// and defaults to up.
func (r *Requests) BuildTargetForFloor(floor int, preferredDir types.MotorDirection) (types.Target, bool) {
	hasCabin := r.Cabin.Has(floor)
	hasUp := r.Up.Has(floor)
	hasDown := r.Down.Has(floor)

	switch {
	case hasCabin:
		return types.CabinTarget(floor), true
	case preferredDir == types.MD_Down && hasDown:
		return types.HallTarget(floor, types.MD_Down), true
	case hasUp:
		return types.HallTarget(floor, types.MD_Up), true
	case hasDown:
		return types.HallTarget(floor, types.MD_Down), true
	}
	return types.Target{}, false
}

// HasRequestsBeyond reports whether a cabin request or a call in dir lies strictly
// beyond pos when travelling in dir.
func (r *Requests) HasRequestsBeyond(pos float64, dir types.MotorDirection, eps float64) bool {
	if dir == types.MD_Stop {
		return false
	}
	calls := r.Calls(dir)
	for _, set := range []FloorSet{r.Cabin, calls} {
		for floor := range set {
			if isAhead(floor, pos, dir, eps) {
				return true
			}
		}
	}
	return false
}

// isAhead reports whether floor lies strictly ahead of pos in dir.
func isAhead(floor int, pos float64, dir types.MotorDirection, eps float64) bool {
	return (float64(floor)-pos)*float64(dir) > eps
}
