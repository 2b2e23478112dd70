// State types shared with readers outside the executor.
package elev

import (
	"liftsim/src/dispatcher"
	"liftsim/src/types"
)

// Snapshot is a deep copy of the car, safe to read from any goroutine.
type Snapshot struct {
	State         CarState                  `json:"state"`
	Requests      dispatcher.Requests       `json:"requests"`
	Waiting       map[int][]types.Passenger `json:"waiting"`
	Riders        []types.Passenger         `json:"riders"`
	Exiting       []types.Passenger         `json:"exiting"`
	NumFloors     int                       `json:"num_floors"`
	Capacity      int                       `json:"capacity"`
	MaxPassengers int                       `json:"max_passengers"`
}

// WaitingCount returns the number of passengers queued on all floors.
func (s Snapshot) WaitingCount() int {
	n := 0
	for _, queue := range s.Waiting {
		n += len(queue)
	}
	return n
}

// Lamps reports which request lamps are lit at floor: cabin, hall up, hall down.
func (s Snapshot) Lamps(floor int) (cabin, up, down bool) {
	return s.Requests.Cabin.Has(floor), s.Requests.Up.Has(floor), s.Requests.Down.Has(floor)
}
