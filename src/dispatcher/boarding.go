package dispatcher

import "liftsim/src/types"

// BoardDirection decides which waiting direction may board at floor.
//   - Moving up (down): board up (down) waiters. If nothing lies beyond in that
//     direction the car is about to reverse, so opposite waiters may board instead.
//   - Idle: follow the hall call the car was sent for, else prefer up.
//
// MD_Stop means nobody boards.
func BoardDirection(reqs *Requests, floor int, queue []types.Passenger, carDir types.MotorDirection, active *types.Target, eps float64) types.MotorDirection {
	hasUp, hasDown := waitingDirs(queue)
	if !hasUp && !hasDown {
		return types.MD_Stop
	}

	if carDir != types.MD_Stop {
		hasSame, hasOpposite := hasUp, hasDown
		if carDir == types.MD_Down {
			hasSame, hasOpposite = hasDown, hasUp
		}
		if hasSame {
			return carDir
		}
		if hasOpposite && !reqs.HasRequestsBeyond(float64(floor), carDir, eps) {
			return -carDir
		}
		return types.MD_Stop
	}

	if active != nil && active.Source == types.SourceHall {
		if active.CallDir == types.MD_Up && hasUp {
			return types.MD_Up
		}
		if active.CallDir == types.MD_Down && hasDown {
			return types.MD_Down
		}
	}
	if hasUp {
		return types.MD_Up
	}
	return types.MD_Down
}

// SelectBoarders takes waiters travelling in dir in queue order, at most capacityLeft of
// them. It returns the boarders and the queue that stays behind.
func SelectBoarders(queue []types.Passenger, dir types.MotorDirection, capacityLeft int) (boarders, remaining []types.Passenger) {
	if capacityLeft <= 0 || dir == types.MD_Stop {
		return nil, queue
	}
	for _, p := range queue {
		if p.Dir == dir && len(boarders) < capacityLeft {
			boarders = append(boarders, p)
			continue
		}
		remaining = append(remaining, p)
	}
	return boarders, remaining
}

// HasServiceableRequestAt reports whether a car resting at floor should open its doors
// there instead of moving: a rider gets off, or a waiter may get on.
func HasServiceableRequestAt(reqs *Requests, floor int, carDir types.MotorDirection, canPickup bool, eps float64) bool {
	if reqs.Cabin.Has(floor) {
		return true
	}
	if !canPickup {
		return false
	}
	hasUp, hasDown := reqs.Up.Has(floor), reqs.Down.Has(floor)
	switch carDir {
	case types.MD_Up:
		return hasUp || (hasDown && !reqs.HasRequestsBeyond(float64(floor), types.MD_Up, eps))
	case types.MD_Down:
		return hasDown || (hasUp && !reqs.HasRequestsBeyond(float64(floor), types.MD_Down, eps))
	}
	return hasUp || hasDown
}

func waitingDirs(queue []types.Passenger) (hasUp, hasDown bool) {
	for _, p := range queue {
		switch p.Dir {
		case types.MD_Up:
			hasUp = true
		case types.MD_Down:
			hasDown = true
		}
	}
	return hasUp, hasDown
}
