package globeengine

import (
	"context"
	"time"
)

// StartRingLoop resamples the pulsing-ring subset every RingRefreshInterval
// until ctx is cancelled. The caller that drives the render loop owns this
// task; cancellation stops the ticker before returning, so no timer
// survives teardown.
func (e *Engine) StartRingLoop(ctx context.Context) {
	ticker := time.NewTicker(RingRefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.RefreshRings()
		}
	}
}

// RefreshRings picks a fresh random subset of marker indices to pulse:
// four fifths of the markers, distinct, in draw order of selection.
func (e *Engine) RefreshRings() {
	e.dataMu.Lock()
	n := len(e.points)
	e.dataMu.Unlock()

	var sites []int
	if n > 0 {
		sites = GenRandomNumbers(0, n-1, n*4/5)
	}

	e.ringMu.Lock()
	e.ringSites = sites
	e.ringStart = time.Now()
	e.ringMu.Unlock()
}

// RingSites returns the indices currently pulsing, for the overlay and
// for tests.
func (e *Engine) RingSites() []int {
	e.ringMu.Lock()
	defer e.ringMu.Unlock()
	return append([]int(nil), e.ringSites...)
}
