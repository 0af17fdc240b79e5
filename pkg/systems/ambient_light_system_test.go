package systems

import (
	"testing"
	"time"

	"github.com/decker502/garage/pkg/components"
	"github.com/decker502/garage/pkg/ecs"
	"github.com/decker502/garage/pkg/game"
)

func TestComputeTimeOpacity(t *testing.T) {
	cfg := newTestPanel(t).cfg.Ambient

	tests := []struct {
		hour, minute int
		want         float64
	}{
		{0, 0, 1},
		{3, 30, 1},
		{5, 59, 1},
		{6, 0, 1},
		{7, 0, 0.5},
		{7, 30, 0.25},
		{8, 0, 0},
		{12, 0, 0},
		{14, 0, 0},
		{17, 59, 0},
		{18, 0, 0},
		{19, 0, 0.5},
		{19, 30, 0.75},
		{20, 0, 1},
		{23, 0, 1},
	}

	for _, tt := range tests {
		now := localTime(2025, time.March, 3, tt.hour, tt.minute)
		if got := ComputeTimeOpacity(now, cfg); !approxEqual(got, tt.want, 1e-9) {
			t.Errorf("%02d:%02d: got %v, want %v", tt.hour, tt.minute, got, tt.want)
		}
	}
}

func TestComputeMoonDarkness(t *testing.T) {
	cfg := newTestPanel(t).cfg.Ambient

	tests := []struct {
		phase float64
		want  float64
	}{
		{0, 0.9},
		{0.25, 0.65},
		{0.5, 0.4},
		{0.75, 0.65},
		{0.999, 0.899},
	}
	for _, tt := range tests {
		if got := ComputeMoonDarkness(tt.phase, cfg); !approxEqual(got, tt.want, 1e-6) {
			t.Errorf("phase %v: got %v, want %v", tt.phase, got, tt.want)
		}
	}
}

func TestComputeDarknessReferenceNights(t *testing.T) {
	cfg := newTestPanel(t).cfg.Ambient

	// 满月夜较亮
	full := ComputeDarkness(localTime(2024, time.December, 15, 23, 0), cfg)
	if !approxEqual(full.FinalOpacity, 0.4, 0.02) {
		t.Errorf("full moon night: final %v, want ~0.4", full.FinalOpacity)
	}

	// 新月夜最暗
	newMoon := ComputeDarkness(localTime(2026, time.October, 10, 23, 0), cfg)
	if !approxEqual(newMoon.FinalOpacity, 0.9, 0.02) {
		t.Errorf("new moon night: final %v, want ~0.9", newMoon.FinalOpacity)
	}

	// 白天与月相无关
	noon := ComputeDarkness(localTime(2026, time.October, 10, 14, 0), cfg)
	if noon.FinalOpacity != 0 {
		t.Errorf("afternoon: final %v, want 0", noon.FinalOpacity)
	}
	if noon.MoonDarkness < cfg.MoonDarknessMin || noon.MoonDarkness > cfg.MoonDarknessMax {
		t.Errorf("moon darkness %v out of range", noon.MoonDarkness)
	}
}

func newAmbientSystems(p *testPanel, clock game.Clock) (*AmbientLightSystem, *HeadlightSystem) {
	headlights := NewHeadlightSystem(p.em, p.sink)
	return NewAmbientLightSystem(p.em, p.cfg.Ambient, p.sink, headlights, clock), headlights
}

func TestAmbientRefreshAppliesScrim(t *testing.T) {
	p := newTestPanel(t)
	ambient, _ := newAmbientSystems(p, nil)

	reading := ambient.Refresh(localTime(2026, time.October, 10, 23, 0))

	if v := p.sink.OpacityOr(game.ElementScrim, -1); !approxEqual(v, reading.FinalOpacity, 1e-9) {
		t.Errorf("scrim opacity = %v, want %v", v, reading.FinalOpacity)
	}
	if !p.sink.HasClass(game.ElementDashboard, game.ClassIlluminated) {
		t.Error("dashboard should be illuminated at night")
	}
	// 默认近光
	if !p.sink.HasClass(game.ElementScrim, game.ClassRevealMask) {
		t.Error("LOW beam should apply reveal mask")
	}
	if p.sink.Rotation(game.ElementHeadlightKnob) != 0 {
		t.Errorf("knob = %v, want 0 for LOW", p.sink.Rotation(game.ElementHeadlightKnob))
	}

	comp, _ := ecs.GetComponent[*components.AmbientComponent](p.em, p.id)
	if comp.Reading != reading || !comp.DashboardIlluminated {
		t.Errorf("component not updated: %+v", comp)
	}

	ambient.Refresh(localTime(2026, time.October, 10, 14, 0))
	if p.sink.HasClass(game.ElementDashboard, game.ClassIlluminated) {
		t.Error("dashboard should not be illuminated in daylight")
	}
	if v := p.sink.OpacityOr(game.ElementScrim, -1); v != 0 {
		t.Errorf("daylight scrim = %v, want 0", v)
	}
}

func TestAmbientIlluminationThresholdIsStrict(t *testing.T) {
	p := newTestPanel(t)
	p.cfg.Ambient.MoonDarknessMin = 0.4
	p.cfg.Ambient.MoonDarknessMax = 0.4
	ambient, _ := newAmbientSystems(p, nil)

	// 18:30 → 0.25 * 0.4 = 0.1
	ambient.Refresh(localTime(2025, time.March, 3, 18, 30))
	if p.sink.HasClass(game.ElementDashboard, game.ClassIlluminated) {
		t.Error("0.1 should not illuminate")
	}
	// 19:00 → 0.5 * 0.4 = 0.2，不大于阈值
	ambient.Refresh(localTime(2025, time.March, 3, 19, 0))
	if p.sink.HasClass(game.ElementDashboard, game.ClassIlluminated) {
		t.Error("exactly 0.2 should not illuminate")
	}
	// 19:30 → 0.3
	ambient.Refresh(localTime(2025, time.March, 3, 19, 30))
	if !p.sink.HasClass(game.ElementDashboard, game.ClassIlluminated) {
		t.Error("0.3 should illuminate")
	}
}

func TestToggleHeadlightsRerendersScrim(t *testing.T) {
	p := newTestPanel(t)
	ambient, headlights := newAmbientSystems(p, nil)
	night := localTime(2026, time.October, 10, 23, 0)
	reading := ambient.Refresh(night)

	// LOW → HIGH
	if mode := ambient.ToggleHeadlights(night); mode != components.HeadlightHigh {
		t.Fatalf("mode = %v, want HIGH", mode)
	}
	if v := p.sink.OpacityOr(game.ElementScrim, -1); v != 0 {
		t.Errorf("HIGH scrim = %v, want 0", v)
	}
	if !p.sink.HasClass(game.ElementScrim, game.ClassScrimDisabled) || !p.sink.HasClass(game.ElementPage, game.ClassHighBeam) {
		t.Error("HIGH should disable scrim and brighten page")
	}
	if p.sink.Rotation(game.ElementHeadlightKnob) != 45 {
		t.Errorf("knob = %v, want 45", p.sink.Rotation(game.ElementHeadlightKnob))
	}
	// 远光不影响仪表盘背光
	if !p.sink.HasClass(game.ElementDashboard, game.ClassIlluminated) {
		t.Error("dashboard illumination follows ambient, not headlights")
	}

	// HIGH → OFF
	if mode := ambient.ToggleHeadlights(night); mode != components.HeadlightOff {
		t.Fatalf("mode = %v, want OFF", mode)
	}
	if v := p.sink.OpacityOr(game.ElementScrim, -1); !approxEqual(v, reading.FinalOpacity, 1e-9) {
		t.Errorf("OFF scrim = %v, want %v", v, reading.FinalOpacity)
	}
	if p.sink.HasClass(game.ElementScrim, game.ClassRevealMask) || p.sink.HasClass(game.ElementScrim, game.ClassScrimDisabled) {
		t.Error("OFF should leave scrim plain")
	}
	if p.sink.Rotation(game.ElementHeadlightKnob) != -45 {
		t.Errorf("knob = %v, want -45", p.sink.Rotation(game.ElementHeadlightKnob))
	}

	// OFF → LOW
	ambient.ToggleHeadlights(night)
	if headlights.Mode() != components.HeadlightLow {
		t.Errorf("mode = %v, want LOW", headlights.Mode())
	}
}

func TestAmbientUpdateCadence(t *testing.T) {
	p := newTestPanel(t)
	clock := game.NewManualClock(localTime(2026, time.October, 10, 14, 0))
	ambient, _ := newAmbientSystems(p, clock)
	comp, _ := ecs.GetComponent[*components.AmbientComponent](p.em, p.id)

	ambient.Refresh(clock.Now())
	clock.Set(localTime(2026, time.October, 10, 23, 0))

	ambient.Update(59)
	if comp.Reading.FinalOpacity != 0 {
		t.Fatalf("recomputed before the interval elapsed: %v", comp.Reading.FinalOpacity)
	}

	ambient.Update(1)
	if comp.Reading.FinalOpacity < 0.8 {
		t.Errorf("expected night reading after 60s, got %v", comp.Reading.FinalOpacity)
	}
	if !comp.ComputedAt.Equal(clock.Now()) {
		t.Errorf("ComputedAt = %v, want %v", comp.ComputedAt, clock.Now())
	}

	// 一次错过多个周期也只计算一次，结果相同
	ambient.Update(600)
	if !comp.ComputedAt.Equal(clock.Now()) {
		t.Error("catch-up refresh should use the current clock")
	}
}
