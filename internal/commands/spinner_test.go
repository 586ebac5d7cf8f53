package commands

import (
	"testing"
	"time"
)

func TestSpinnerLifecycle_StopWithSuccess(t *testing.T) {
	s := newSpinner("Waiting")
	s.start()
	// Let it spin briefly
	time.Sleep(50 * time.Millisecond)
	// Should stop cleanly and print success
	s.stopWithSuccess("done")
}

func TestSpinnerLifecycle_StopWithError(t *testing.T) {
	s := newSpinner("Waiting")
	s.start()
	time.Sleep(30 * time.Millisecond)
	// Should stop cleanly on error (no panic)
	s.stopWithError()
}

func TestSpinnerLifecycle_DoubleStop(t *testing.T) {
	s := newSpinner("Waiting")
	s.start()
	s.stopWithError()
	// Second stop must not panic on a closed channel
	s.stopWithError()
}
