package systems

import (
	"math/rand"
	"testing"

	"github.com/decker502/garage/pkg/components"
	"github.com/decker502/garage/pkg/config"
	"github.com/decker502/garage/pkg/ecs"
	"github.com/decker502/garage/pkg/game"
)

func TestScrollSpeedPercent(t *testing.T) {
	tests := []struct {
		name        string
		deltaY      float64
		deltaTimeMs float64
		want        float64
	}{
		{"at redline", 500, 100, 100},
		{"half redline", 250, 100, 50},
		{"above redline clamps", 5000, 100, 100},
		{"upward scroll uses magnitude", -250, 100, 50},
		{"no movement", 0, 100, 0},
		{"zero interval guarded", 500, 0, 0},
		{"negative interval guarded", 500, -16, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScrollSpeedPercent(tt.deltaY, tt.deltaTimeMs, 5)
			if !approxEqual(got, tt.want, 1e-9) {
				t.Errorf("ScrollSpeedPercent(%v, %v) = %v, want %v", tt.deltaY, tt.deltaTimeMs, got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Errorf("speed %v outside [0,100]", got)
			}
		})
	}
}

func TestOnScrollSampleIgnoredBeforeEngineStart(t *testing.T) {
	p := newTestPanel(t)
	speedo := NewSpeedometerSystem(p.em, p.cfg.Speedometer, p.sink, nil)

	speedo.OnScrollSample(800, 100)

	state := Snapshot(p.em, p.id)
	if state.ScrollSpeed != 0 {
		t.Errorf("speed = %v before engine start, want 0", state.ScrollSpeed)
	}
	if state.LastScrollPosition != 800 || state.LastSampleTimeMs != 100 {
		t.Errorf("bookkeeping not updated: %+v", state)
	}
}

func TestOnScrollSampleZeroIntervalKeepsSpeed(t *testing.T) {
	p := newTestPanel(t)
	p.startEngine(t)
	speedo := NewSpeedometerSystem(p.em, p.cfg.Speedometer, p.sink, nil)

	speedo.OnScrollSample(0, 1000)
	speedo.OnScrollSample(250, 1100) // 2.5 px/ms -> 50%
	speedo.OnScrollSample(900, 1100) // same timestamp

	state := Snapshot(p.em, p.id)
	if state.ScrollSpeed != 50 {
		t.Errorf("speed = %v, want 50 (sample with zero interval ignored)", state.ScrollSpeed)
	}
	if state.LastScrollPosition != 900 {
		t.Errorf("position bookkeeping = %v, want 900", state.LastScrollPosition)
	}
}

func TestOnScrollSampleNegativeIntervalKeepsSpeed(t *testing.T) {
	p := newTestPanel(t)
	p.startEngine(t)
	speedo := NewSpeedometerSystem(p.em, p.cfg.Speedometer, p.sink, nil)

	speedo.OnScrollSample(0, 1000)
	speedo.OnScrollSample(250, 1100) // 2.5 px/ms -> 50%
	speedo.OnScrollSample(1900, 900) // 时间戳早于上一次采样

	state := Snapshot(p.em, p.id)
	if state.ScrollSpeed != 50 {
		t.Errorf("speed = %v, want 50 (sample with negative interval ignored)", state.ScrollSpeed)
	}
	if state.LastScrollPosition != 1900 || state.LastSampleTimeMs != 900 {
		t.Errorf("bookkeeping = (%v, %v), want (1900, 900)", state.LastScrollPosition, state.LastSampleTimeMs)
	}

	// 下一次采样以回退后的时间为基准
	speedo.OnScrollSample(1910, 1000) // 0.1 px/ms -> 2%
	if got := Snapshot(p.em, p.id).ScrollSpeed; !approxEqual(got, 2, 1e-9) {
		t.Errorf("speed after recovery = %v, want 2", got)
	}
}

func TestOnScrollSampleReplacesSpeed(t *testing.T) {
	p := newTestPanel(t)
	p.startEngine(t)
	speedo := NewSpeedometerSystem(p.em, p.cfg.Speedometer, p.sink, nil)

	speedo.OnScrollSample(0, 0)
	speedo.OnScrollSample(500, 100)
	speedo.OnScrollSample(510, 200) // 0.1 px/ms -> 2%

	if got := Snapshot(p.em, p.id).ScrollSpeed; !approxEqual(got, 2, 1e-9) {
		t.Errorf("speed = %v, want 2 (replacement, not smoothing)", got)
	}
}

func TestDecayTickGeometric(t *testing.T) {
	p := newTestPanel(t)
	speedo := NewSpeedometerSystem(p.em, p.cfg.Speedometer, p.sink, nil)
	comp, _ := ecs.GetComponent[*components.SpeedometerComponent](p.em, p.id)
	comp.ScrollSpeed = 100

	prev := comp.ScrollSpeed
	ticks := 0
	for comp.ScrollSpeed > 0 {
		speedo.DecayTick()
		ticks++
		if comp.ScrollSpeed != 0 {
			if !approxEqual(comp.ScrollSpeed, prev*0.8, 1e-9) {
				t.Fatalf("tick %d: %v, want %v", ticks, comp.ScrollSpeed, prev*0.8)
			}
			if comp.ScrollSpeed < 1 {
				t.Fatalf("tick %d: %v below floor without snapping", ticks, comp.ScrollSpeed)
			}
		}
		prev = comp.ScrollSpeed
		if ticks > 100 {
			t.Fatal("decay never reached 0")
		}
	}

	// 100 * 0.8^20 ≈ 1.15, 0.8^21 ≈ 0.92 snaps to 0
	if ticks != 21 {
		t.Errorf("reached 0 after %d ticks, want 21", ticks)
	}

	speedo.DecayTick()
	if comp.ScrollSpeed != 0 {
		t.Errorf("decay on 0 changed speed to %v", comp.ScrollSpeed)
	}
}

func TestUpdateDrivesDecayCadence(t *testing.T) {
	p := newTestPanel(t)
	speedo := NewSpeedometerSystem(p.em, p.cfg.Speedometer, p.sink, nil)
	comp, _ := ecs.GetComponent[*components.SpeedometerComponent](p.em, p.id)
	comp.ScrollSpeed = 100

	speedo.Update(0.05)
	if comp.ScrollSpeed != 100 {
		t.Errorf("decayed before 100ms: %v", comp.ScrollSpeed)
	}

	// 0.05 + 0.3 = 0.35s -> three periods
	speedo.Update(0.3)
	if !approxEqual(comp.ScrollSpeed, 51.2, 1e-9) {
		t.Errorf("speed = %v, want 51.2 after three periods", comp.ScrollSpeed)
	}
}

func TestNeedleAngle(t *testing.T) {
	cfg := config.DefaultPanelConfig().Speedometer

	tests := []struct {
		speed float64
		want  float64
	}{
		{0, -120},
		{50, 0},
		{100, 120},
		{25, -60},
		{150, 120},
		{-5, -120},
	}
	for _, tt := range tests {
		if got := NeedleAngle(tt.speed, cfg); !approxEqual(got, tt.want, 1e-9) {
			t.Errorf("NeedleAngle(%v) = %v, want %v", tt.speed, got, tt.want)
		}
	}
}

func TestNeedleJitter(t *testing.T) {
	cfg := config.DefaultPanelConfig().Speedometer

	// 低速时不抽取随机数
	extreme := &stubRandom{values: []float64{0.999999}}
	if j := NeedleJitter(20, cfg, extreme); j != 0 {
		t.Errorf("jitter at speed 20 = %v, want 0", j)
	}
	if extreme.next != 0 {
		t.Error("random source consumed below threshold")
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		j := NeedleJitter(60, cfg, rng)
		if j < -1.5 || j > 1.5 {
			t.Fatalf("jitter %v outside [-1.5, 1.5]", j)
		}
	}

	if j := NeedleJitter(60, cfg, &stubRandom{values: []float64{0}}); j != -1.5 {
		t.Errorf("jitter at draw 0 = %v, want -1.5", j)
	}
	if j := NeedleJitter(60, cfg, nil); j != 0 {
		t.Errorf("nil source jitter = %v, want 0", j)
	}
}

func TestClassifyEscalation(t *testing.T) {
	cfg := config.DefaultPanelConfig().Speedometer

	tests := []struct {
		speed float64
		want  components.Escalation
	}{
		{0, components.EscalationNone},
		{50, components.EscalationNone},
		{75, components.EscalationNone},
		{75.0001, components.EscalationShake},
		{90, components.EscalationShake},
		{95, components.EscalationShake},
		{95.0001, components.EscalationViolent},
		{100, components.EscalationViolent},
	}
	for _, tt := range tests {
		if got := ClassifyEscalation(tt.speed, cfg); got != tt.want {
			t.Errorf("ClassifyEscalation(%v) = %v, want %v", tt.speed, got, tt.want)
		}
	}
}

func TestRenderEscalationClassesExclusive(t *testing.T) {
	p := newTestPanel(t)
	speedo := NewSpeedometerSystem(p.em, p.cfg.Speedometer, p.sink, nil)
	comp, _ := ecs.GetComponent[*components.SpeedometerComponent](p.em, p.id)

	check := func(speed float64, shake, violent bool) {
		t.Helper()
		comp.ScrollSpeed = speed
		speedo.Render()
		if got := p.sink.HasClass(game.ElementDashboard, game.ClassShaking); got != shake {
			t.Errorf("speed %v: shaking=%v, want %v", speed, got, shake)
		}
		if got := p.sink.HasClass(game.ElementDashboard, game.ClassShakingViolent); got != violent {
			t.Errorf("speed %v: violent=%v, want %v", speed, got, violent)
		}
		if got := p.sink.HasClass(game.ElementDashboard, game.ClassMotionBlur); got != violent {
			t.Errorf("speed %v: motion blur=%v, want %v", speed, got, violent)
		}
	}

	check(100, false, true)
	check(80, true, false)
	check(10, false, false)
	check(96, false, true)
}

func TestEndToEndRedlineScroll(t *testing.T) {
	p := newTestPanel(t)
	p.startEngine(t)
	speedo := NewSpeedometerSystem(p.em, p.cfg.Speedometer, p.sink, rand.New(rand.NewSource(1)))

	speedo.OnScrollSample(0, 10_000)
	speedo.OnScrollSample(500, 10_100) // 5 px/ms

	if got := Snapshot(p.em, p.id).ScrollSpeed; got != 100 {
		t.Fatalf("speed = %v, want 100", got)
	}
	if angle := p.sink.Rotation(game.ElementNeedle); angle < 118.5 || angle > 121.5 {
		t.Errorf("needle = %v, want 120 ± 1.5", angle)
	}
	if angle := speedo.RenderAngle(100); angle < 118.5 || angle > 121.5 {
		t.Errorf("RenderAngle(100) = %v, want 120 ± 1.5", angle)
	}
	if !p.sink.HasClass(game.ElementDashboard, game.ClassShakingViolent) {
		t.Error("redline should shake violently")
	}
}

func TestRenderAngleAtRestHasNoJitter(t *testing.T) {
	p := newTestPanel(t)
	speedo := NewSpeedometerSystem(p.em, p.cfg.Speedometer, p.sink, &stubRandom{values: []float64{0.9}})

	if got := speedo.RenderAngle(0); got != -120 {
		t.Errorf("RenderAngle(0) = %v, want -120", got)
	}
}
