// Package main provides an instrument panel verification tool.
//
// Usage:
//
//	go run ./cmd/verify_panel [flags]
//
// Flags:
//
//	--at <time>      Wall-clock time to simulate, "2006-01-02 15:04" (default: now)
//	--config <path>  Panel config YAML (default: built-in defaults)
//	--window         Open an interactive window instead of printing traces
//	--verbose        Enable verbose logging
//
// Headless mode prints three traces:
//   - needle angle while a scroll flick decays
//   - hazard lamp opacity over two blinker periods (silent clock)
//   - ambient darkness for every hour of the simulated day
//
// Window controls:
//
//	Wheel / arrows  - Scroll a virtual page
//	Enter           - Start engine
//	H / Z / L       - Horn / hazards / headlights
//	N               - Jump the clock forward one hour
//	Q               - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/decker502/garage/internal/lunar"
	"github.com/decker502/garage/pkg/config"
	"github.com/decker502/garage/pkg/game"
	"github.com/decker502/garage/pkg/scenes"
	"github.com/decker502/garage/pkg/systems"
	"github.com/decker502/garage/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var pageBackground = color.RGBA{R: 236, G: 232, B: 224, A: 255}

const (
	frameDt         = 1.0 / 60.0
	virtualPageSize = 4000.0
)

var (
	atFlag      = flag.String("at", "", `Time to simulate, e.g. "2026-10-10 23:00"`)
	configFlag  = flag.String("config", "", "Panel config YAML")
	windowFlag  = flag.Bool("window", false, "Open an interactive window")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	start := time.Now()
	if *atFlag != "" {
		t, err := time.ParseInLocation("2006-01-02 15:04", *atFlag, time.Local)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --at: %v\n", err)
			os.Exit(2)
		}
		start = t
	}

	cfg := config.DefaultPanelConfig()
	if *configFlag != "" {
		loaded, err := config.LoadPanelConfig(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if *windowFlag {
		runWindow(cfg, start)
		return
	}

	clock := game.NewManualClock(start)
	overlay, err := scenes.NewPanelOverlay(scenes.PanelDeps{
		Config:  cfg,
		Session: game.NewSessionStore(nil, "verify"),
		Clock:   clock,
		Rand:    rand.New(rand.NewSource(1)),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	traceSpeedometer(overlay)
	traceHazards(overlay, cfg)
	traceDarkness(cfg, start)
	fmt.Println()
	fmt.Print(overlay.Report())
}

// step 按 60fps 推进 seconds 秒
func step(o *scenes.PanelOverlay, seconds float64) {
	for n := int(math.Round(seconds / frameDt)); n > 0; n-- {
		o.Update(frameDt)
	}
}

func traceSpeedometer(o *scenes.PanelOverlay) {
	fmt.Println("== speedometer ==")
	o.StartEngine()
	step(o, 1)

	// 100ms 内滚动 600px：超过红线，指针打满
	o.OnScroll(600)
	step(o, 0.1)
	o.OnScroll(1200)

	fmt.Printf("%6s %8s %8s  %s\n", "t(ms)", "speed", "needle", "classes")
	for i := 0; i <= 20; i++ {
		sink := o.Sink()
		var classes []string
		for _, c := range []string{game.ClassShaking, game.ClassShakingViolent, game.ClassMotionBlur} {
			if sink.HasClass(game.ElementDashboard, c) {
				classes = append(classes, c)
			}
		}
		fmt.Printf("%6d %7.1f%% %7.1f°  %s\n", i*100, o.Snapshot().ScrollSpeed,
			sink.Rotation(game.ElementNeedle), strings.Join(classes, ","))
		step(o, 0.1)
	}
}

func traceHazards(o *scenes.PanelOverlay, cfg *config.PanelConfig) {
	fmt.Println("\n== hazards (silent clock) ==")
	o.ToggleHazards()

	period := cfg.Hazard.LoopPeriod()
	var b strings.Builder
	for t := time.Duration(0); t < 2*period; t += 20 * time.Millisecond {
		if systems.IsLampOn(t, cfg.Hazard) {
			b.WriteByte('#')
		} else {
			b.WriteByte('.')
		}
	}
	fmt.Printf("expected  %s\n", b.String())

	b.Reset()
	for i := 0; i < int(2*period/(20*time.Millisecond)); i++ {
		if o.Sink().OpacityOr(game.ElementHazardLampLeft, 0) > 0 {
			b.WriteByte('#')
		} else {
			b.WriteByte('.')
		}
		step(o, 0.02)
	}
	fmt.Printf("rendered  %s\n", b.String())
	o.ToggleHazards()
}

func traceDarkness(cfg *config.PanelConfig, day time.Time) {
	phase := lunar.Phase(day)
	fmt.Printf("\n== ambient %s (moon %s, phase %.3f) ==\n", day.Format("2006-01-02"), lunar.Name(phase), phase)
	fmt.Printf("%5s %6s %6s %6s\n", "hour", "time", "moon", "final")

	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	for h := 0; h < 24; h++ {
		r := systems.ComputeDarkness(midnight.Add(time.Duration(h)*time.Hour), cfg.Ambient)
		fmt.Printf("%02d:00 %6.2f %6.2f %6.2f\n", h, r.TimeOpacity, r.MoonDarkness, r.FinalOpacity)
	}
}

// panelWindow 交互式验证窗口
type panelWindow struct {
	overlay *scenes.PanelOverlay
	clock   *game.ManualClock
	scrollY float64
}

func runWindow(cfg *config.PanelConfig, start time.Time) {
	rm := game.NewResourceManager(audio.NewContext(48000))
	clock := game.NewManualClock(start)

	overlay, err := scenes.NewPanelOverlay(scenes.PanelDeps{
		Config:   cfg,
		Session:  game.NewSessionStore(nil, "verify"),
		Clock:    clock,
		Renderer: scenes.NewPanelRenderer(rm),
	})
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Instrument Panel Verification")
	w := &panelWindow{overlay: overlay, clock: clock}
	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

func (w *panelWindow) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		w.overlay.Close()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		w.clock.Advance(time.Hour)
		w.overlay.RefreshAmbient()
	}

	delta := utils.WheelScrollDelta(config.WheelScrollPixels) +
		utils.KeyScrollDelta(config.KeyScrollPixels, config.GameWindowHeight)
	if next := math.Max(0, math.Min(virtualPageSize, w.scrollY+delta)); next != w.scrollY {
		w.scrollY = next
		w.overlay.OnScroll(next)
	}

	w.overlay.HandleKeys()
	if pressed, x, y := utils.IsPointerJustPressed(); pressed {
		w.overlay.HandleClick(float64(x), float64(y))
	}
	w.overlay.Update(frameDt)
	return nil
}

func (w *panelWindow) Draw(screen *ebiten.Image) {
	screen.Fill(pageBackground)
	w.overlay.Draw(screen)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s\nscroll: %.0f\nclock: %s",
		w.overlay.Report(), w.scrollY, w.clock.Now().Format("2006-01-02 15:04")))
}

func (w *panelWindow) Layout(int, int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}
