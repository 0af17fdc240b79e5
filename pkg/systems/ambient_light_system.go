package systems

import (
	"math"
	"time"

	"github.com/decker502/garage/internal/lunar"
	"github.com/decker502/garage/pkg/components"
	"github.com/decker502/garage/pkg/config"
	"github.com/decker502/garage/pkg/ecs"
	"github.com/decker502/garage/pkg/game"
)

// ComputeTimeOpacity 根据本地时刻计算暗度
//
// 黄昏 [18:00, 20:00) 由 0 线性升到 1；夜间 [20:00, 24:00) ∪ [0:00, 6:00) 保持 1；
// 黎明 [6:00, 8:00) 由 1 线性降到 0；其余时间为 0。
func ComputeTimeOpacity(now time.Time, cfg config.AmbientConfig) float64 {
	hour := float64(now.Hour()) + float64(now.Minute())/60

	switch {
	case hour >= cfg.DuskStartHour && hour < cfg.DuskEndHour:
		return (hour - cfg.DuskStartHour) / (cfg.DuskEndHour - cfg.DuskStartHour)
	case hour >= cfg.DuskEndHour || hour < cfg.DawnStartHour:
		return 1
	case hour >= cfg.DawnStartHour && hour < cfg.DawnEndHour:
		return 1 - (hour-cfg.DawnStartHour)/(cfg.DawnEndHour-cfg.DawnStartHour)
	default:
		return 0
	}
}

// ComputeMoonDarkness 根据月相计算夜间暗度
// 满月（0.5）最亮为 MoonDarknessMin，新月（0 或趋近 1）最暗为 MoonDarknessMax
func ComputeMoonDarkness(phase float64, cfg config.AmbientConfig) float64 {
	span := cfg.MoonDarknessMax - cfg.MoonDarknessMin
	return cfg.MoonDarknessMin + math.Abs(phase-0.5)*2*span
}

// ComputeDarkness 计算一次完整的环境光读数
func ComputeDarkness(now time.Time, cfg config.AmbientConfig) components.DarknessReading {
	phase := lunar.Phase(now)
	timeOpacity := ComputeTimeOpacity(now, cfg)
	moonDarkness := ComputeMoonDarkness(phase, cfg)

	return components.DarknessReading{
		TimeOpacity:  timeOpacity,
		MoonDarkness: moonDarkness,
		FinalOpacity: timeOpacity * moonDarkness,
		MoonPhase:    phase,
	}
}

// AmbientLightSystem 环境光系统
//
// 按固定节奏（60s）根据墙钟时间和月相重新计算夜间遮罩，
// 每次计算后立即以当前大灯模式重新渲染大灯视觉。
// 大灯切换也走 ToggleHeadlights → Refresh，因此两者不会出现不一致的画面。
type AmbientLightSystem struct {
	entityManager *ecs.EntityManager
	config        config.AmbientConfig
	sink          game.VisualSink
	headlights    *HeadlightSystem
	clock         game.Clock
}

// NewAmbientLightSystem 创建环境光系统
//
// 参数：
//   - em: 实体管理器
//   - cfg: 环境光配置
//   - sink: 视觉输出（可为 nil）
//   - headlights: 大灯系统
//   - clock: 墙钟（nil 时使用系统时钟）
func NewAmbientLightSystem(em *ecs.EntityManager, cfg config.AmbientConfig, sink game.VisualSink, headlights *HeadlightSystem, clock game.Clock) *AmbientLightSystem {
	if clock == nil {
		clock = game.SystemClock{}
	}
	return &AmbientLightSystem{
		entityManager: em,
		config:        cfg,
		sink:          game.SinkOrNop(sink),
		headlights:    headlights,
		clock:         clock,
	}
}

// Refresh 重新计算环境光并同时重新渲染大灯
//
// 返回：
//   - components.DarknessReading: 本次读数
func (s *AmbientLightSystem) Refresh(now time.Time) components.DarknessReading {
	reading := ComputeDarkness(now, s.config)
	illuminated := reading.FinalOpacity > s.config.IlluminationThreshold

	for _, id := range ecs.GetEntitiesWith1[*components.AmbientComponent](s.entityManager) {
		ambient, _ := ecs.GetComponent[*components.AmbientComponent](s.entityManager, id)
		ambient.Reading = reading
		ambient.DashboardIlluminated = illuminated
		ambient.ComputedAt = now
	}

	s.sink.SetOpacity(game.ElementScrim, reading.FinalOpacity)
	s.sink.ToggleClass(game.ElementDashboard, game.ClassIlluminated, illuminated)

	if s.headlights != nil {
		s.headlights.RenderCurrent(reading.FinalOpacity)
	}
	return reading
}

// ToggleHeadlights 切换大灯模式并立即重新计算环境光
func (s *AmbientLightSystem) ToggleHeadlights(now time.Time) components.HeadlightMode {
	mode := components.HeadlightLow
	if s.headlights != nil {
		mode = s.headlights.Toggle()
	}
	s.Refresh(now)
	return mode
}

// Update 推进重新计算计时器
// 参数：
//   - dt: 时间增量（秒）
func (s *AmbientLightSystem) Update(dt float64) {
	due := false
	for _, id := range ecs.GetEntitiesWith1[*components.AmbientComponent](s.entityManager) {
		ambient, _ := ecs.GetComponent[*components.AmbientComponent](s.entityManager, id)
		if advanceTimer(&ambient.RefreshTimer, dt) > 0 {
			due = true
		}
	}
	// 错过多个周期只需计算一次
	if due {
		s.Refresh(s.clock.Now())
	}
}
