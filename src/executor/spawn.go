package executor

import (
	"math/rand/v2"
	"time"

	"liftsim/src/config"
)

// Spawner draws random passenger trips and the pause before the next one.
type Spawner struct {
	rng       *rand.Rand
	numFloors int
	minDelay  time.Duration
	maxDelay  time.Duration
}

// NewSpawner seeds the spawner from src. Pass a fixed source for repeatable runs.
func NewSpawner(cfg config.Config, src rand.Source) *Spawner {
	return &Spawner{
		rng:       rand.New(src),
		numFloors: cfg.NumFloors,
		minDelay:  cfg.SpawnMin,
		maxDelay:  cfg.SpawnMax,
	}
}

// Trip returns a random origin and a different random destination.
func (s *Spawner) Trip() (origin, destination int) {
	origin = 1 + s.rng.IntN(s.numFloors)
	destination = 1 + s.rng.IntN(s.numFloors-1)
	if destination >= origin {
		destination++
	}
	return origin, destination
}

// Delay returns a pause in [minDelay, maxDelay].
func (s *Spawner) Delay() time.Duration {
	if s.maxDelay <= s.minDelay {
		return s.minDelay
	}
	return s.minDelay + time.Duration(s.rng.Int64N(int64(s.maxDelay-s.minDelay)+1))
}
