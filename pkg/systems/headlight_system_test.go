package systems

import (
	"testing"

	"github.com/decker502/garage/pkg/components"
	"github.com/decker502/garage/pkg/game"
)

func TestNextHeadlightModeCycle(t *testing.T) {
	mode := components.HeadlightLow
	want := []components.HeadlightMode{
		components.HeadlightHigh,
		components.HeadlightOff,
		components.HeadlightLow,
		components.HeadlightHigh,
	}
	for i, w := range want {
		mode = NextHeadlightMode(mode)
		if mode != w {
			t.Fatalf("step %d: got %v, want %v", i, mode, w)
		}
	}
}

func TestKnobAngle(t *testing.T) {
	tests := map[components.HeadlightMode]float64{
		components.HeadlightOff:  -45,
		components.HeadlightLow:  0,
		components.HeadlightHigh: 45,
	}
	for mode, want := range tests {
		if got := KnobAngle(mode); got != want {
			t.Errorf("KnobAngle(%v) = %v, want %v", mode, got, want)
		}
	}
}

func TestHeadlightRender(t *testing.T) {
	p := newTestPanel(t)
	headlights := NewHeadlightSystem(p.em, p.sink)

	headlights.Render(components.HeadlightLow, 0.7)
	if v := p.sink.OpacityOr(game.ElementScrim, -1); v != 0.7 {
		t.Errorf("LOW scrim = %v, want 0.7", v)
	}
	if !p.sink.HasClass(game.ElementScrim, game.ClassRevealMask) {
		t.Error("LOW should set reveal mask")
	}

	headlights.Render(components.HeadlightHigh, 0.7)
	if v := p.sink.OpacityOr(game.ElementScrim, -1); v != 0 {
		t.Errorf("HIGH scrim = %v, want 0", v)
	}
	if p.sink.HasClass(game.ElementScrim, game.ClassRevealMask) {
		t.Error("HIGH should drop reveal mask")
	}

	headlights.Render(components.HeadlightOff, 0.7)
	if p.sink.HasClass(game.ElementPage, game.ClassHighBeam) {
		t.Error("OFF should drop high beam")
	}
	if v := p.sink.OpacityOr(game.ElementScrim, -1); v != 0.7 {
		t.Errorf("OFF scrim = %v, want 0.7", v)
	}
}

func TestHeadlightDefaultsToLow(t *testing.T) {
	p := newTestPanel(t)
	if mode := NewHeadlightSystem(p.em, nil).Mode(); mode != components.HeadlightLow {
		t.Errorf("initial mode = %v, want LOW", mode)
	}
}
