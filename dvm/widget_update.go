package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"github.com/itohio/dvm/pkg/voltmeter"
)

const (
	refreshInterval = 16 * time.Millisecond // ~60 FPS
	readingInterval = 200 * time.Millisecond
)

// UpdateWidgetOnMainThread schedules a widget update function to run on the main Fyne thread.
// This is required because Fyne widgets cannot be updated directly from goroutines.
// The callback should copy data quickly and return as fast as possible.
func UpdateWidgetOnMainThread(callback func()) {
	if callback == nil {
		return
	}
	fyne.Do(callback)
}

// throttle forwards at most one call per interval to the main thread. The
// display lines change every tick, far faster than the screen refreshes.
type throttle struct {
	interval time.Duration
	fn       func()

	mu   sync.Mutex
	last time.Time
}

func newThrottle(interval time.Duration, fn func()) *throttle {
	return &throttle{interval: interval, fn: fn}
}

// Trigger schedules fn unless it was scheduled less than interval ago.
func (t *throttle) Trigger() {
	now := time.Now()

	t.mu.Lock()
	if now.Sub(t.last) < t.interval {
		t.mu.Unlock()
		return
	}
	t.last = now
	t.mu.Unlock()

	UpdateWidgetOnMainThread(t.fn)
}

// pollReading mirrors the guarded reading into the toolbar label until ctx
// is cancelled.
func pollReading(ctx context.Context, state *appState, vm *voltmeter.Voltmeter) {
	ticker := time.NewTicker(readingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			text := fmt.Sprintf("%.1f V", vm.Volts())
			UpdateWidgetOnMainThread(func() {
				if ctx.Err() == nil {
					state.reading.SetText(text)
				}
			})
		}
	}
}
