package scenes

import (
	"image/color"
	"log"
	"math"

	"github.com/decker502/garage/pkg/config"
	"github.com/decker502/garage/pkg/game"
	"github.com/decker502/garage/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Panel colors
var (
	dashboardColor      = color.RGBA{R: 24, G: 24, B: 28, A: 240}
	dashboardLitColor   = color.RGBA{R: 30, G: 34, B: 46, A: 245}
	dialFaceColor       = color.RGBA{R: 12, G: 12, B: 14, A: 255}
	dialLitColor        = color.RGBA{R: 18, G: 40, B: 64, A: 255}
	dialTickColor       = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	redlineColor        = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	needleColor         = color.RGBA{R: 255, G: 90, B: 40, A: 255}
	labelColor          = color.RGBA{R: 220, G: 220, B: 220, A: 255}
	labelLitColor       = color.RGBA{R: 120, G: 200, B: 255, A: 255}
	hornColor           = color.RGBA{R: 60, G: 60, B: 70, A: 255}
	hazardSwitchColor   = color.RGBA{R: 90, G: 20, B: 20, A: 255}
	hazardActiveColor   = color.RGBA{R: 170, G: 30, B: 30, A: 255}
	hazardIconColor     = color.RGBA{R: 255, G: 70, B: 50, A: 255}
	hazardLampColor     = color.RGBA{R: 255, G: 150, B: 0, A: 255}
	knobColor           = color.RGBA{R: 70, G: 70, B: 78, A: 255}
	knobMarkColor       = color.RGBA{R: 240, G: 240, B: 160, A: 255}
	startButtonColor    = color.RGBA{R: 180, G: 20, B: 20, A: 255}
	startButtonRimColor = color.RGBA{R: 240, G: 240, B: 240, A: 255}
)

// PanelFrame 一帧绘制所需的仪表盘状态
type PanelFrame struct {
	Sink         *game.MemorySink
	DashboardTop float64
	StartButton  bool    // 启动按钮是否仍在布局中
	StartFade    float64 // 启动按钮淡出进度 [0, 1]
	Elapsed      float64 // 用于抖动动画
	Speed        float64 // 当前车速百分比，用于动态模糊残影
}

// PanelRenderer draws the instrument panel from the retained visual state.
// It never touches the simulation; everything it needs is in the MemorySink.
type PanelRenderer struct {
	labelFont *text.GoTextFace
	titleFont *text.GoTextFace

	scrim    *ebiten.Image // Offscreen night scrim
	beamMask *ebiten.Image // Low-beam cut-out, punched out of the scrim
}

// NewPanelRenderer creates a renderer using the default UI font.
func NewPanelRenderer(rm *game.ResourceManager) *PanelRenderer {
	r := &PanelRenderer{}

	var err error
	if r.labelFont, err = rm.DefaultFont(13); err != nil {
		log.Printf("[PanelRenderer] Failed to load label font: %v", err)
	}
	if r.titleFont, err = rm.DefaultFont(20); err != nil {
		log.Printf("[PanelRenderer] Failed to load title font: %v", err)
	}
	return r
}

// Draw renders the scrim, hazard lamps, start button and dashboard, in that order.
func (r *PanelRenderer) Draw(screen *ebiten.Image, frame PanelFrame) {
	sink := frame.Sink
	if sink == nil {
		return
	}

	if sink.HasClass(game.ElementPage, game.ClassHighBeam) {
		vector.DrawFilledRect(screen, 0, 0, config.GameWindowWidth, config.GameWindowHeight,
			color.RGBA{R: 255, G: 250, B: 230, A: 24}, false)
	}
	r.drawScrim(screen, sink)
	r.drawHazardLamps(screen, sink)

	if frame.StartButton {
		r.drawStartButton(screen, sink, frame.StartFade)
	}
	if sink.HasClass(game.ElementDashboard, game.ClassActive) || frame.DashboardTop < config.GameWindowHeight {
		r.drawDashboard(screen, frame)
	}
}

func (r *PanelRenderer) drawScrim(screen *ebiten.Image, sink *game.MemorySink) {
	if sink.HasClass(game.ElementScrim, game.ClassScrimDisabled) {
		return
	}
	opacity := sink.OpacityOr(game.ElementScrim, 0)
	if opacity <= 0 {
		return
	}

	if r.scrim == nil {
		r.scrim = ebiten.NewImage(config.GameWindowWidth, config.GameWindowHeight)
	}
	r.scrim.Fill(color.RGBA{R: 4, G: 6, B: 20, A: 255})

	// Low beam: punch a cone of light out of the scrim above the dashboard.
	if sink.HasClass(game.ElementScrim, game.ClassRevealMask) {
		mask := r.lowBeamMask()
		op := &ebiten.DrawImageOptions{}
		op.Blend = ebiten.BlendDestinationOut
		r.scrim.DrawImage(mask, op)
	}

	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(opacity))
	screen.DrawImage(r.scrim, op)
}

// lowBeamMask builds the cut-out once: a soft ellipse of light centred low on the screen.
func (r *PanelRenderer) lowBeamMask() *ebiten.Image {
	if r.beamMask != nil {
		return r.beamMask
	}
	r.beamMask = ebiten.NewImage(config.GameWindowWidth, config.GameWindowHeight)

	cx := float32(config.GameWindowWidth) / 2
	cy := float32(config.DashboardY) - 40
	const rings = 8
	for i := 0; i < rings; i++ {
		radius := float32(320 - i*30)
		alpha := uint8(40 + i*25)
		vector.DrawFilledCircle(r.beamMask, cx, cy, radius, color.RGBA{A: alpha}, true)
	}
	return r.beamMask
}

func (r *PanelRenderer) drawHazardLamps(screen *ebiten.Image, sink *game.MemorySink) {
	if !sink.HasClass(game.ElementHazardOverlay, game.ClassActive) {
		return
	}
	for _, lamp := range []struct {
		el game.Element
		x  float32
	}{
		{game.ElementHazardLampLeft, 0},
		{game.ElementHazardLampRight, config.GameWindowWidth - config.HazardLampWidth},
	} {
		opacity := sink.OpacityOr(lamp.el, 0)
		if opacity <= 0 {
			continue
		}
		c := scaleAlpha(hazardLampColor, opacity*0.85)
		vector.DrawFilledRect(screen, lamp.x, 0, config.HazardLampWidth, config.GameWindowHeight, c, false)
	}
}

func (r *PanelRenderer) drawStartButton(screen *ebiten.Image, sink *game.MemorySink, fade float64) {
	// Fading out once clicked; removed from layout after the reveal delay.
	alpha := 1.0
	if sink.HasClass(game.ElementStartButton, game.ClassHidden) {
		alpha = 1 - utils.EaseInQuad(fade)
	}

	x, y := float32(config.StartButtonX), float32(config.StartButtonY)
	w, h := float32(config.StartButtonWidth), float32(config.StartButtonHeight)
	vector.DrawFilledRect(screen, x, y, w, h, scaleAlpha(startButtonColor, alpha), true)
	vector.StrokeRect(screen, x, y, w, h, 2, scaleAlpha(startButtonRimColor, alpha), true)

	r.drawLabel(screen, r.titleFont, "START ENGINE", float64(x+w/2), float64(y+h/2)-11, scaleAlpha(startButtonRimColor, alpha))
}

func (r *PanelRenderer) drawDashboard(screen *ebiten.Image, frame PanelFrame) {
	sink := frame.Sink
	lit := sink.HasClass(game.ElementDashboard, game.ClassIlluminated)

	offsetX := 0.0
	switch {
	case sink.HasClass(game.ElementDashboard, game.ClassShakingViolent):
		offsetX = 3 * math.Sin(frame.Elapsed*90)
	case sink.HasClass(game.ElementDashboard, game.ClassShaking):
		offsetX = 1.5 * math.Sin(frame.Elapsed*60)
	}

	top := float32(frame.DashboardTop)
	panel := dashboardColor
	label := labelColor
	if lit {
		panel, label = dashboardLitColor, labelLitColor
	}
	vector.DrawFilledRect(screen, float32(offsetX), top, config.GameWindowWidth, config.DashboardHeight, panel, false)

	r.drawSpeedometer(screen, frame, offsetX, lit, label)
	r.drawHorn(screen, sink, offsetX, top, label)
	r.drawHazardSwitch(screen, sink, offsetX, top, label)
	r.drawHeadlightKnob(screen, sink, offsetX, top, label)
}

func (r *PanelRenderer) drawSpeedometer(screen *ebiten.Image, frame PanelFrame, offsetX float64, lit bool, label color.Color) {
	sink := frame.Sink
	cx := config.SpeedometerCenterX + offsetX
	cy := frame.DashboardTop + config.SpeedometerCenterY

	face := dialFaceColor
	if lit {
		face = dialLitColor
	}
	vector.DrawFilledCircle(screen, float32(cx), float32(cy), config.SpeedometerRadius, face, true)
	vector.StrokeCircle(screen, float32(cx), float32(cy), config.SpeedometerRadius, 2, dialTickColor, true)

	// Ticks every 10% from -120° to +120°, last two in red.
	for i := 0; i <= 10; i++ {
		angle := -120.0 + float64(i)*24
		c := dialTickColor
		if i >= 9 {
			c = redlineColor
		}
		x0, y0 := polar(cx, cy, config.SpeedometerRadius-10, angle)
		x1, y1 := polar(cx, cy, config.SpeedometerRadius-2, angle)
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, c, true)
	}

	angle := sink.Rotation(game.ElementNeedle)
	if sink.HasClass(game.ElementDashboard, game.ClassMotionBlur) {
		// Ghost needles trailing behind the real one.
		for i := 1; i <= 3; i++ {
			ghost := angle - float64(i)*frame.Speed*0.04
			x, y := polar(cx, cy, config.NeedleLength, ghost)
			vector.StrokeLine(screen, float32(cx), float32(cy), x, y, 3, scaleAlpha(needleColor, 0.35/float64(i)), true)
		}
	}
	x, y := polar(cx, cy, config.NeedleLength, angle)
	vector.StrokeLine(screen, float32(cx), float32(cy), x, y, 3, needleColor, true)
	vector.DrawFilledCircle(screen, float32(cx), float32(cy), 6, needleColor, true)

	r.drawLabel(screen, r.labelFont, "MPH", cx, cy+24, label)
}

func (r *PanelRenderer) drawHorn(screen *ebiten.Image, sink *game.MemorySink, offsetX float64, top float32, label color.Color) {
	cx := config.HornCenterX + offsetX
	cy := float64(top) + config.ButtonCenterY
	radius := config.ButtonRadius * sink.Scale(game.ElementHornButton)

	vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(radius), hornColor, true)
	vector.StrokeCircle(screen, float32(cx), float32(cy), float32(radius), 2, dialTickColor, true)
	r.drawLabel(screen, r.labelFont, "HORN", cx, cy-7, label)
}

func (r *PanelRenderer) drawHazardSwitch(screen *ebiten.Image, sink *game.MemorySink, offsetX float64, top float32, label color.Color) {
	cx := config.HazardCenterX + offsetX
	cy := float64(top) + config.ButtonCenterY

	fill := hazardSwitchColor
	if sink.HasClass(game.ElementHazardSwitch, game.ClassActive) {
		fill = hazardActiveColor
	}
	vector.DrawFilledCircle(screen, float32(cx), float32(cy), config.ButtonRadius, fill, true)

	// Warning triangle.
	icon := scaleAlpha(hazardIconColor, sink.OpacityOr(game.ElementHazardIcon, 1))
	const side = 34.0
	h := side * math.Sqrt(3) / 2
	ax, ay := float32(cx), float32(cy-h*2/3)
	bx, by := float32(cx-side/2), float32(cy+h/3)
	dx, dy := float32(cx+side/2), float32(cy+h/3)
	vector.StrokeLine(screen, ax, ay, bx, by, 4, icon, true)
	vector.StrokeLine(screen, bx, by, dx, dy, 4, icon, true)
	vector.StrokeLine(screen, dx, dy, ax, ay, 4, icon, true)

	r.drawLabel(screen, r.labelFont, "HAZARD", cx, cy+config.LabelOffsetY-14, label)
}

func (r *PanelRenderer) drawHeadlightKnob(screen *ebiten.Image, sink *game.MemorySink, offsetX float64, top float32, label color.Color) {
	cx := config.HeadlightCenterX + offsetX
	cy := float64(top) + config.ButtonCenterY

	vector.DrawFilledCircle(screen, float32(cx), float32(cy), config.KnobRadius, knobColor, true)
	x, y := polar(cx, cy, config.KnobRadius-4, sink.Rotation(game.ElementHeadlightKnob))
	vector.StrokeLine(screen, float32(cx), float32(cy), x, y, 4, knobMarkColor, true)

	r.drawLabel(screen, r.labelFont, "OFF  LOW  HIGH", cx, cy+config.LabelOffsetY-14, label)
}

func (r *PanelRenderer) drawLabel(screen *ebiten.Image, face *text.GoTextFace, s string, cx, y float64, c color.Color) {
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, y)
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(screen, s, face, op)
}

// polar returns the point at distance length from (cx, cy), rotated by degrees
// clockwise from straight up.
func polar(cx, cy, length, degrees float64) (float32, float32) {
	rad := degrees * math.Pi / 180
	return float32(cx + length*math.Sin(rad)), float32(cy - length*math.Cos(rad))
}

func scaleAlpha(c color.RGBA, alpha float64) color.RGBA {
	alpha = math.Max(0, math.Min(1, alpha))
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}
