package scenes

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/decker502/garage/internal/lunar"
	"github.com/decker502/garage/pkg/components"
	"github.com/decker502/garage/pkg/config"
	"github.com/decker502/garage/pkg/ecs"
	"github.com/decker502/garage/pkg/entities"
	"github.com/decker502/garage/pkg/game"
	"github.com/decker502/garage/pkg/systems"
	"github.com/decker502/garage/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PanelDeps 创建仪表盘覆盖层所需的依赖
type PanelDeps struct {
	Config   *config.PanelConfig
	Audio    *game.AudioManager
	Session  *game.SessionStore
	Clock    game.Clock          // nil 时使用系统时钟
	Rand     systems.RandomSource // nil 时使用按时间播种的随机源
	Renderer *PanelRenderer       // nil 时不绘制（无头运行）
}

// PanelOverlay 仪表盘覆盖层
//
// 每个页面创建一个，持有唯一的面板实体和所有子系统，并把页面事件
// （滚动、点击、按键、帧推进）分发给它们。页面离开时 Close 停止双闪循环。
type PanelOverlay struct {
	entityManager *ecs.EntityManager
	panelID       ecs.EntityID
	config        *config.PanelConfig
	sink          *game.MemorySink
	frames        *game.FrameLoop
	clock         game.Clock
	renderer      *PanelRenderer

	engine      *systems.EngineSystem
	speedometer *systems.SpeedometerSystem
	hazards     *systems.HazardBlinkSystem
	headlights  *systems.HeadlightSystem
	ambient     *systems.AmbientLightSystem
	horn        *systems.HornSystem

	elapsed         float64 // 覆盖层创建以来的时间（秒），作为滚动采样时间戳
	closed          bool
	copyToClipboard func(string) error
}

// NewPanelOverlay 创建仪表盘覆盖层并完成初始化：
// 读取会话中的发动机状态、计算一次环境光、把指针放到最小角度。
func NewPanelOverlay(deps PanelDeps) (*PanelOverlay, error) {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.DefaultPanelConfig()
	}

	em := ecs.NewEntityManager()
	panelID, err := entities.NewInstrumentPanelEntity(em, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create instrument panel: %w", err)
	}

	clock := deps.Clock
	if clock == nil {
		clock = game.SystemClock{}
	}
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	sink := game.NewMemorySink(game.PanelElements...)
	frames := game.NewFrameLoop()
	headlights := systems.NewHeadlightSystem(em, sink)

	o := &PanelOverlay{
		entityManager:   em,
		panelID:         panelID,
		config:          cfg,
		sink:            sink,
		frames:          frames,
		clock:           clock,
		renderer:        deps.Renderer,
		engine:          systems.NewEngineSystem(em, cfg.Engine, sink, deps.Audio, deps.Session),
		speedometer:     systems.NewSpeedometerSystem(em, cfg.Speedometer, sink, rng),
		hazards:         systems.NewHazardBlinkSystem(em, cfg.Hazard, sink, deps.Audio, frames),
		headlights:      headlights,
		ambient:         systems.NewAmbientLightSystem(em, cfg.Ambient, sink, headlights, clock),
		horn:            systems.NewHornSystem(em, cfg.Horn, sink, deps.Audio, rng),
		copyToClipboard: writeClipboard,
	}

	o.engine.Init()
	o.ambient.Refresh(clock.Now())
	o.speedometer.Render()
	return o, nil
}

// nowMs 返回当前采样时间戳（毫秒）
func (o *PanelOverlay) nowMs() int64 {
	return int64(math.Round(o.elapsed * 1000))
}

// OnScroll 页面滚动位置变化时调用
func (o *PanelOverlay) OnScroll(position float64) {
	o.speedometer.OnScrollSample(position, o.nowMs())
}

// StartEngine 点击启动按钮
func (o *PanelOverlay) StartEngine() {
	o.engine.Start()
}

// Honk 按下喇叭
func (o *PanelOverlay) Honk() {
	o.horn.Honk()
}

// ToggleHazards 拨动双闪开关
func (o *PanelOverlay) ToggleHazards() {
	o.hazards.Toggle()
}

// ToggleHeadlights 旋转大灯旋钮，同时重新计算环境光
func (o *PanelOverlay) ToggleHeadlights() components.HeadlightMode {
	return o.ambient.ToggleHeadlights(o.clock.Now())
}

// RefreshAmbient 立即按当前时间重算环境光（不等待整分钟节奏）
func (o *PanelOverlay) RefreshAmbient() {
	o.ambient.Refresh(o.clock.Now())
}

// DashboardTop 返回仪表盘当前顶部Y坐标（随升起进度变化）
func (o *PanelOverlay) DashboardTop() float64 {
	progress := utils.EaseOutCubic(o.engine.RevealProgress())
	return utils.Lerp(config.DashboardHiddenY, config.DashboardY, progress)
}

// StartButtonVisible 启动按钮是否仍可点击
func (o *PanelOverlay) StartButtonVisible() bool {
	return !o.engine.IsStarted()
}

// HandleClick 处理一次点击，返回是否被仪表盘消费
//
// 参数：
//   - x, y: 逻辑屏幕坐标
func (o *PanelOverlay) HandleClick(x, y float64) bool {
	if o.StartButtonVisible() {
		if x >= config.StartButtonX && x <= config.StartButtonX+config.StartButtonWidth &&
			y >= config.StartButtonY && y <= config.StartButtonY+config.StartButtonHeight {
			o.StartEngine()
			return true
		}
		return false
	}

	top := o.DashboardTop()
	switch {
	case withinCircle(x, y, config.HornCenterX, top+config.ButtonCenterY, config.ButtonRadius):
		o.Honk()
	case withinCircle(x, y, config.HazardCenterX, top+config.ButtonCenterY, config.ButtonRadius):
		o.ToggleHazards()
	case withinCircle(x, y, config.HeadlightCenterX, top+config.ButtonCenterY, config.KnobRadius):
		o.ToggleHeadlights()
	default:
		// 仪表盘面板本身吞掉点击，避免穿透到下面的缩略图
		return y >= top && y <= top+config.DashboardHeight
	}
	return true
}

func withinCircle(x, y, cx, cy, r float64) bool {
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= r*r
}

// HandleKeys 处理键盘快捷键，返回是否有按键被消费
//
// Enter 启动发动机，H 喇叭，Z 双闪，L 大灯，F9 复制仪表盘报告
func (o *PanelOverlay) HandleKeys() bool {
	consumed := false
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		o.StartEngine()
		consumed = true
	}
	if !o.engine.IsStarted() {
		return consumed
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.Honk()
		consumed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyZ) {
		o.ToggleHazards()
		consumed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		o.ToggleHeadlights()
		consumed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		if err := o.CopyReport(); err != nil {
			log.Printf("[PanelOverlay] Warning: failed to copy report: %v", err)
		}
		consumed = true
	}
	return consumed
}

// Update 推进所有子系统，并运行本帧的帧回调
// 参数：
//   - dt: 时间增量（秒）
func (o *PanelOverlay) Update(dt float64) {
	if o.closed {
		return
	}
	o.elapsed += dt

	o.engine.Update(dt)
	o.speedometer.Update(dt)
	o.ambient.Update(dt)
	o.horn.Update(dt)
	o.hazards.Update(dt)
	o.frames.RunFrame()
}

// Draw 绘制仪表盘覆盖层
func (o *PanelOverlay) Draw(screen *ebiten.Image) {
	if o.renderer == nil {
		return
	}
	o.renderer.Draw(screen, PanelFrame{
		Sink:         o.sink,
		DashboardTop: o.DashboardTop(),
		StartButton:  !o.sink.HasClass(game.ElementStartButton, game.ClassRemoved),
		StartFade:    o.engine.RevealProgress(),
		Elapsed:      o.elapsed,
		Speed:        o.Snapshot().ScrollSpeed,
	})
}

// Close 页面离开时调用：停止双闪循环并取消帧回调（可重复调用）
func (o *PanelOverlay) Close() {
	if o.closed {
		return
	}
	o.hazards.Stop()
	o.closed = true
}

// Snapshot 返回当前仪表盘状态
func (o *PanelOverlay) Snapshot() components.SimulationState {
	return systems.Snapshot(o.entityManager, o.panelID)
}

// Sink 返回保存视觉状态的输出
func (o *PanelOverlay) Sink() *game.MemorySink {
	return o.sink
}

// Report 生成仪表盘状态报告（调试用）
func (o *PanelOverlay) Report() string {
	state := o.Snapshot()
	reading := state.Darkness

	var b strings.Builder
	fmt.Fprintf(&b, "engine: %s\n", onOff(state.EngineStarted))
	fmt.Fprintf(&b, "speed: %.1f%% (needle %.1f°)\n", state.ScrollSpeed, o.sink.Rotation(game.ElementNeedle))
	fmt.Fprintf(&b, "hazards: %s\n", onOff(state.HazardsActive))
	fmt.Fprintf(&b, "headlights: %s\n", state.HeadlightMode)
	fmt.Fprintf(&b, "darkness: time %.2f × moon %.2f = %.2f\n", reading.TimeOpacity, reading.MoonDarkness, reading.FinalOpacity)
	fmt.Fprintf(&b, "moon: %s (phase %.3f)\n", lunar.Name(reading.MoonPhase), reading.MoonPhase)
	return b.String()
}

// CopyReport 把状态报告复制到系统剪贴板
func (o *PanelOverlay) CopyReport() error {
	report := o.Report()
	if err := o.copyToClipboard(report); err != nil {
		return err
	}
	log.Printf("[PanelOverlay] Report copied to clipboard")
	return nil
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
