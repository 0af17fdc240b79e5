package systems

import (
	"math"

	"github.com/decker502/garage/pkg/components"
	"github.com/decker502/garage/pkg/config"
	"github.com/decker502/garage/pkg/ecs"
	"github.com/decker502/garage/pkg/game"
)

// RandomSource 随机数来源，*rand.Rand 满足该接口
// 测试中注入固定种子或桩实现以获得确定结果
type RandomSource interface {
	Float64() float64
}

// ScrollSpeedPercent 将一次滚动采样换算为车速百分比
//
// 参数：
//   - deltaY: 滚动距离（像素，取绝对值）
//   - deltaTimeMs: 采样间隔（毫秒），必须 > 0
//   - redline: 红线速度（像素/毫秒）
//
// 返回：
//   - float64: [0, 100] 内的百分比，速度达到红线即为 100
func ScrollSpeedPercent(deltaY, deltaTimeMs, redline float64) float64 {
	if deltaTimeMs <= 0 || redline <= 0 {
		return 0
	}
	velocity := math.Abs(deltaY) / deltaTimeMs
	return clamp(velocity/redline*100, 0, 100)
}

// DecaySpeed 计算一次衰减后的车速，低于下限时直接归零
func DecaySpeed(speed float64, cfg config.SpeedometerConfig) float64 {
	if speed == 0 {
		return 0
	}
	next := speed * cfg.DecayFactor
	if next < cfg.DecayFloor {
		return 0
	}
	return next
}

// NeedleAngle 将车速线性映射到指针角度（不含抖动）
// 0 → MinAngle（-120°），100 → MaxAngle（+120°）
func NeedleAngle(speed float64, cfg config.SpeedometerConfig) float64 {
	speed = clamp(speed, 0, 100)
	return cfg.MinAngle + speed/100*(cfg.MaxAngle-cfg.MinAngle)
}

// NeedleJitter 返回指针的机械抖动角度
// 仅在车速超过阈值时生效，范围 [-Amplitude/2, +Amplitude/2)
func NeedleJitter(speed float64, cfg config.SpeedometerConfig, rng RandomSource) float64 {
	if speed <= cfg.JitterThreshold || rng == nil {
		return 0
	}
	return (rng.Float64() - 0.5) * cfg.JitterAmplitude
}

// ClassifyEscalation 根据车速判定仪表盘抖动等级
// 边界值（75、95）归入较低等级
func ClassifyEscalation(speed float64, cfg config.SpeedometerConfig) components.Escalation {
	switch {
	case speed > cfg.ViolentThreshold:
		return components.EscalationViolent
	case speed > cfg.ShakeThreshold:
		return components.EscalationShake
	default:
		return components.EscalationNone
	}
}

// SpeedometerSystem 车速表系统
//
// 职责：
//   - 把滚动采样换算成车速（替换而非平滑）
//   - 按固定节奏（100ms）衰减车速
//   - 渲染指针角度和抖动等级
type SpeedometerSystem struct {
	entityManager *ecs.EntityManager
	config        config.SpeedometerConfig
	sink          game.VisualSink
	rng           RandomSource
}

// NewSpeedometerSystem 创建车速表系统
//
// 参数：
//   - em: 实体管理器
//   - cfg: 车速表配置
//   - sink: 视觉输出（可为 nil）
//   - rng: 抖动随机源（可为 nil，此时无抖动）
func NewSpeedometerSystem(em *ecs.EntityManager, cfg config.SpeedometerConfig, sink game.VisualSink, rng RandomSource) *SpeedometerSystem {
	return &SpeedometerSystem{
		entityManager: em,
		config:        cfg,
		sink:          game.SinkOrNop(sink),
		rng:           rng,
	}
}

// OnScrollSample 处理一次滚动采样
//
// 无论发动机是否启动、间隔是否为正，都会记录本次位置和时间；
// 只有发动机已启动且间隔 > 0 时才更新车速并重新渲染。
//
// 参数：
//   - position: 当前滚动偏移（像素）
//   - nowMs: 当前时间戳（毫秒）
func (s *SpeedometerSystem) OnScrollSample(position float64, nowMs int64) {
	entities := ecs.GetEntitiesWith2[*components.SpeedometerComponent, *components.EngineComponent](s.entityManager)

	for _, id := range entities {
		speedo, _ := ecs.GetComponent[*components.SpeedometerComponent](s.entityManager, id)
		engine, _ := ecs.GetComponent[*components.EngineComponent](s.entityManager, id)

		deltaY := math.Abs(position - speedo.LastScrollPosition)
		deltaTime := nowMs - speedo.LastSampleTimeMs

		speedo.LastScrollPosition = position
		speedo.LastSampleTimeMs = nowMs

		if !engine.Started || deltaTime <= 0 {
			continue
		}

		speedo.ScrollSpeed = ScrollSpeedPercent(deltaY, float64(deltaTime), s.config.RedlineVelocity)
		s.render(speedo)
	}
}

// DecayTick 执行一次衰减并重新渲染，车速已为 0 时不做任何事
func (s *SpeedometerSystem) DecayTick() {
	for _, id := range ecs.GetEntitiesWith1[*components.SpeedometerComponent](s.entityManager) {
		speedo, _ := ecs.GetComponent[*components.SpeedometerComponent](s.entityManager, id)
		s.decay(speedo)
	}
}

func (s *SpeedometerSystem) decay(speedo *components.SpeedometerComponent) {
	if speedo.ScrollSpeed == 0 {
		return
	}
	speedo.ScrollSpeed = DecaySpeed(speedo.ScrollSpeed, s.config)
	s.render(speedo)
}

// Update 推进衰减计时器
// 参数：
//   - dt: 时间增量（秒）
func (s *SpeedometerSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.SpeedometerComponent](s.entityManager) {
		speedo, _ := ecs.GetComponent[*components.SpeedometerComponent](s.entityManager, id)
		for i := advanceTimer(&speedo.DecayTimer, dt); i > 0; i-- {
			s.decay(speedo)
		}
	}
}

// RenderAngle 返回指定车速下的指针角度（含本次抖动）
// 抖动不写回状态，每次调用重新抽取
func (s *SpeedometerSystem) RenderAngle(speed float64) float64 {
	return NeedleAngle(speed, s.config) + NeedleJitter(speed, s.config, s.rng)
}

// Render 重新渲染所有车速表
func (s *SpeedometerSystem) Render() {
	for _, id := range ecs.GetEntitiesWith1[*components.SpeedometerComponent](s.entityManager) {
		speedo, _ := ecs.GetComponent[*components.SpeedometerComponent](s.entityManager, id)
		s.render(speedo)
	}
}

func (s *SpeedometerSystem) render(speedo *components.SpeedometerComponent) {
	s.sink.SetRotation(game.ElementNeedle, s.RenderAngle(speedo.ScrollSpeed))

	// 三种状态互斥，每次渲染都重新判定
	level := ClassifyEscalation(speedo.ScrollSpeed, s.config)
	s.sink.ToggleClass(game.ElementDashboard, game.ClassShaking, level == components.EscalationShake)
	s.sink.ToggleClass(game.ElementDashboard, game.ClassShakingViolent, level == components.EscalationViolent)
	s.sink.ToggleClass(game.ElementDashboard, game.ClassMotionBlur, level == components.EscalationViolent)
}

// clamp 将 v 限制在 [lo, hi]
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
