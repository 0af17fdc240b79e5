package systems

import (
	"testing"
	"time"

	"github.com/decker502/garage/pkg/components"
	"github.com/decker502/garage/pkg/ecs"
)

func TestSnapshot(t *testing.T) {
	p := newTestPanel(t)
	p.startEngine(t)

	speedo := NewSpeedometerSystem(p.em, p.cfg.Speedometer, p.sink, nil)
	speedo.OnScrollSample(0, 1000)
	speedo.OnScrollSample(250, 1100)

	NewHazardBlinkSystem(p.em, p.cfg.Hazard, p.sink, p.audio, p.frames).Toggle()
	ambient, _ := newAmbientSystems(p, nil)
	reading := ambient.Refresh(localTime(2026, time.October, 10, 23, 0))
	ambient.ToggleHeadlights(localTime(2026, time.October, 10, 23, 0))

	state := Snapshot(p.em, p.id)
	if !state.EngineStarted || !state.HazardsActive {
		t.Errorf("state = %+v", state)
	}
	if state.ScrollSpeed != 50 || state.LastScrollPosition != 250 || state.LastSampleTimeMs != 1100 {
		t.Errorf("speed state = %v / %v / %v", state.ScrollSpeed, state.LastScrollPosition, state.LastSampleTimeMs)
	}
	if state.HeadlightMode != components.HeadlightHigh {
		t.Errorf("headlight = %v, want HIGH", state.HeadlightMode)
	}
	if state.Darkness != reading {
		t.Errorf("darkness = %+v, want %+v", state.Darkness, reading)
	}
}

func TestSnapshotMissingEntity(t *testing.T) {
	state := Snapshot(ecs.NewEntityManager(), 42)
	if state != (components.SimulationState{}) {
		t.Errorf("expected zero state, got %+v", state)
	}
}
