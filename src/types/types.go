package types

import "fmt"

type MotorDirection int

const (
	MD_Up   MotorDirection = 1
	MD_Down MotorDirection = -1
	MD_Stop MotorDirection = 0
)

func (d MotorDirection) String() string {
	switch d {
	case MD_Up:
		return "Up"
	case MD_Down:
		return "Down"
	}
	return "Idle"
}

// DirectionOf returns the sign of to-from as a direction.
func DirectionOf(from, to int) MotorDirection {
	if from < to {
		return MD_Up
	}
	if from > to {
		return MD_Down
	}
	return MD_Stop
}

type ButtonType int

const (
	BT_HallUp ButtonType = iota
	BT_HallDown
	BT_Cab
)

type ButtonEvent struct {
	Floor  int
	Button ButtonType
}

func (b ButtonEvent) String() string {
	switch b.Button {
	case BT_HallUp:
		return fmt.Sprintf("HallUp(%d)", b.Floor)
	case BT_HallDown:
		return fmt.Sprintf("HallDown(%d)", b.Floor)
	case BT_Cab:
		return fmt.Sprintf("Cab(%d)", b.Floor)
	}
	return "Unknown"
}

// HallDir maps a hall button to the direction the caller wants to travel.
func (b ButtonType) HallDir() MotorDirection {
	switch b {
	case BT_HallUp:
		return MD_Up
	case BT_HallDown:
		return MD_Down
	}
	return MD_Stop
}

type ElevBehaviour int

const (
	Idle ElevBehaviour = iota
	Moving
	DoorOpen
)

func (b ElevBehaviour) String() string {
	return [...]string{"Idle", "Moving", "DoorOpen"}[b]
}

type TargetSource int

const (
	SourceCabin TargetSource = iota
	SourceHall
)

// Target is the next floor to service. CallDir is MD_Stop unless Source is SourceHall.
type Target struct {
	Floor   int
	Source  TargetSource
	CallDir MotorDirection
}

func CabinTarget(floor int) Target {
	return Target{Floor: floor, Source: SourceCabin, CallDir: MD_Stop}
}

func HallTarget(floor int, dir MotorDirection) Target {
	return Target{Floor: floor, Source: SourceHall, CallDir: dir}
}

func (t Target) Equal(other Target) bool {
	return t == other
}

func (t Target) String() string {
	if t.Source == SourceCabin {
		return fmt.Sprintf("Cab(%d)", t.Floor)
	}
	if t.CallDir == MD_Up {
		return fmt.Sprintf("HallUp(%d)", t.Floor)
	}
	return fmt.Sprintf("HallDown(%d)", t.Floor)
}

type PassengerState int

const (
	Waiting PassengerState = iota
	Boarding
	Riding
	Exiting
)

func (s PassengerState) String() string {
	return [...]string{"Waiting", "Boarding", "Riding", "Exiting"}[s]
}

// Passenger is the data record of one rider. Presentation keeps its own state keyed by ID.
type Passenger struct {
	ID          int
	Origin      int
	Destination int
	Dir         MotorDirection
	State       PassengerState
}

func NewPassenger(id, origin, destination int) Passenger {
	return Passenger{
		ID:          id,
		Origin:      origin,
		Destination: destination,
		Dir:         DirectionOf(origin, destination),
		State:       Waiting,
	}
}

// DoorPhase is the next step of the stop sequence once its timer expires.
type DoorPhase int

const (
	PhaseBoard DoorPhase = iota
	PhaseClose
	PhaseComplete
)

func (p DoorPhase) String() string {
	return [...]string{"Board", "Close", "Complete"}[p]
}

// Timeout identifies one scheduled door phase. Gen lets the car drop stale timeouts.
type Timeout struct {
	Phase DoorPhase
	Gen   uint64
}
