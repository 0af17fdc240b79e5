package game

import (
	"testing"
	"time"
)

func TestManualClock(t *testing.T) {
	start := time.Date(2024, 12, 15, 23, 0, 0, 0, time.Local)
	c := NewManualClock(start)

	if !c.Now().Equal(start) {
		t.Errorf("Now = %v, want %v", c.Now(), start)
	}
	c.Advance(90 * time.Second)
	if got := c.Now().Sub(start); got != 90*time.Second {
		t.Errorf("advanced by %v, want 90s", got)
	}
	c.Set(start)
	if !c.Now().Equal(start) {
		t.Error("Set did not jump back")
	}
}
