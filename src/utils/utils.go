package utils

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"liftsim/src/dispatcher"
	"liftsim/src/elev"
	"liftsim/src/types"
)

// StateSource returns the current car snapshot.
type StateSource func(ctx context.Context) (elev.Snapshot, error)

// StatusLine renders a one-line summary of the car.
func StatusLine(snap elev.Snapshot) string {
	var b strings.Builder
	s := snap.State
	fmt.Fprintf(&b, "Floor %d (%.2f) | %v", s.Floor, s.Position, s.Behaviour)
	if s.Behaviour == types.Moving {
		fmt.Fprintf(&b, " %v", s.Dir)
	}
	if s.ActiveTarget != nil {
		fmt.Fprintf(&b, " -> %v", *s.ActiveTarget)
	}
	fmt.Fprintf(&b, " | Riders %d/%d | Waiting %d", len(snap.Riders), snap.Capacity, snap.WaitingCount())
	fmt.Fprintf(&b, " | Cab %s Up %s Down %s",
		floors(snap.Requests.Cabin),
		floors(snap.Requests.Up),
		floors(snap.Requests.Down))
	return b.String()
}

// PrintStatus overwrites the current terminal line with the car status.
func PrintStatus(snap elev.Snapshot) {
	fmt.Printf("\r%s    \r", StatusLine(snap))
}

// RunStatus prints the status every interval until ctx is cancelled.
func RunStatus(ctx context.Context, source StateSource, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			return
		case <-ticker.C:
			snap, err := source(ctx)
			if err != nil {
				slog.Debug("Status unavailable", "error", err)
				continue
			}
			PrintStatus(snap)
		}
	}
}

func floors(set dispatcher.FloorSet) string {
	return fmt.Sprint(set.Sorted())
}
