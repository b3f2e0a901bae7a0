package core

import (
	"testing"
	"time"
)

func TestNow_WithoutCoarseClock(t *testing.T) {
	before := time.Now()
	got := Now()
	after := time.Now()
	if got.Before(before.Add(-time.Second)) || got.After(after.Add(time.Second)) {
		t.Errorf("Now() = %v, outside [%v, %v]", got, before, after)
	}
}

func TestCoarseClock(t *testing.T) {
	StartCoarseClock()
	StartCoarseClock() // second call must be a no-op

	first := Now()
	if first.IsZero() {
		t.Fatal("coarse clock returned zero time")
	}

	// The background goroutine refreshes every 500µs; after a generous
	// sleep the cached value must have advanced
	time.Sleep(20 * time.Millisecond)
	if !Now().After(first) {
		t.Error("coarse clock did not advance")
	}
}
