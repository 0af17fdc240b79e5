package systems

import (
	"log"
	"time"

	"github.com/decker502/garage/pkg/components"
	"github.com/decker502/garage/pkg/config"
	"github.com/decker502/garage/pkg/ecs"
	"github.com/decker502/garage/pkg/game"
)

// IsLampOn 判断音频时钟位于 position 时双闪灯是否点亮
//
// loopTime = position mod LoopPeriod，点亮窗口为 [OnStart, OnEnd)。
// 位置可以是任意大的自由计数值，负值按周期折回。
func IsLampOn(position time.Duration, cfg config.HazardConfig) bool {
	period := cfg.LoopPeriod()
	if period <= 0 {
		return false
	}
	loopTime := position % period
	if loopTime < 0 {
		loopTime += period
	}
	return loopTime >= cfg.OnStart() && loopTime < cfg.OnEnd()
}

// silentLoop 双闪音频不可用时的替代时钟，按帧时间推进
type silentLoop struct {
	running  bool
	position time.Duration
}

func (l *silentLoop) advance(dt float64) {
	if l.running {
		l.position += time.Duration(dt * float64(time.Second))
	}
}

func (l *silentLoop) reset() {
	l.running = false
	l.position = 0
}

// HazardBlinkSystem 双闪同步系统
//
// 开启时播放循环的"滴答"音频，并登记逐帧回调：每帧读取音频播放位置，
// 根据 IsLampOn 决定灯的透明度。灯光锁定的是音频位置而不是墙钟时间，
// 所以音频暂停、恢复或漂移时灯光会自动跟随。
//
// 关闭时停止音频并归零、取消逐帧回调（重复取消无害）、清除所有透明度覆盖。
type HazardBlinkSystem struct {
	entityManager *ecs.EntityManager
	config        config.HazardConfig
	sink          game.VisualSink
	audio         *game.AudioManager
	frames        *game.FrameLoop
	fallback      silentLoop
	useFallback   bool
}

// NewHazardBlinkSystem 创建双闪同步系统
//
// 参数：
//   - em: 实体管理器
//   - cfg: 双闪配置
//   - sink: 视觉输出（可为 nil）
//   - audio: 音频管理器（可为 nil，此时使用静默时钟）
//   - frames: 帧回调调度器
func NewHazardBlinkSystem(em *ecs.EntityManager, cfg config.HazardConfig, sink game.VisualSink, audio *game.AudioManager, frames *game.FrameLoop) *HazardBlinkSystem {
	return &HazardBlinkSystem{
		entityManager: em,
		config:        cfg,
		sink:          game.SinkOrNop(sink),
		audio:         audio,
		frames:        frames,
	}
}

// Toggle 切换双闪状态
func (s *HazardBlinkSystem) Toggle() {
	for _, id := range ecs.GetEntitiesWith1[*components.HazardComponent](s.entityManager) {
		hazard, _ := ecs.GetComponent[*components.HazardComponent](s.entityManager, id)
		if hazard.Active {
			s.deactivate(hazard)
		} else {
			s.activate(hazard)
		}
	}
}

// Stop 关闭双闪（页面卸载时调用），未开启时不做任何事
func (s *HazardBlinkSystem) Stop() {
	for _, id := range ecs.GetEntitiesWith1[*components.HazardComponent](s.entityManager) {
		hazard, _ := ecs.GetComponent[*components.HazardComponent](s.entityManager, id)
		if hazard.Active {
			s.deactivate(hazard)
		}
	}
}

func (s *HazardBlinkSystem) activate(hazard *components.HazardComponent) {
	hazard.Active = true
	s.setSwitchState(true)

	// 音频启动失败不影响视觉状态切换
	s.useFallback = s.audio == nil || !s.audio.PlayCue(game.CueBlinker)
	if s.useFallback {
		log.Printf("[HazardBlinkSystem] Warning: blinker cue unavailable, using silent clock")
		s.fallback.reset()
		s.fallback.running = true
	}

	s.Sync(hazard)
	s.scheduleFrame(hazard)
}

func (s *HazardBlinkSystem) deactivate(hazard *components.HazardComponent) {
	hazard.Active = false
	hazard.LampOn = false
	s.setSwitchState(false)

	if s.audio != nil {
		s.audio.StopCue(game.CueBlinker)
	}
	s.fallback.reset()

	if s.frames != nil {
		s.frames.Cancel(hazard.FrameHandle)
	}
	hazard.FrameHandle = 0

	s.sink.ClearOpacity(game.ElementHazardLampLeft)
	s.sink.ClearOpacity(game.ElementHazardLampRight)
	s.sink.ClearOpacity(game.ElementHazardIcon)
	s.sink.ClearOpacity(game.ElementHazardOverlay)
}

// scheduleFrame 登记下一帧的同步回调；回调执行后会再次登记自己
func (s *HazardBlinkSystem) scheduleFrame(hazard *components.HazardComponent) {
	if s.frames == nil {
		return
	}
	hazard.FrameHandle = s.frames.Request(func() {
		if !hazard.Active {
			return
		}
		s.Sync(hazard)
		s.scheduleFrame(hazard)
	})
}

// ClockPosition 返回双闪时钟的当前位置
func (s *HazardBlinkSystem) ClockPosition() time.Duration {
	if !s.useFallback && s.audio != nil {
		if cue, ok := s.audio.Cue(game.CueBlinker); ok {
			return cue.Position()
		}
	}
	return s.fallback.position
}

// Sync 读取时钟位置并应用灯光透明度
func (s *HazardBlinkSystem) Sync(hazard *components.HazardComponent) {
	on := IsLampOn(s.ClockPosition(), s.config)
	hazard.LampOn = on

	lamp, icon := s.config.LampOffOpacity, s.config.IconOffOpacity
	if on {
		lamp, icon = s.config.LampOnOpacity, s.config.IconOnOpacity
	}
	s.sink.SetOpacity(game.ElementHazardLampLeft, lamp)
	s.sink.SetOpacity(game.ElementHazardLampRight, lamp)
	s.sink.SetOpacity(game.ElementHazardIcon, icon)
}

// Update 推进静默时钟
// 参数：
//   - dt: 时间增量（秒）
func (s *HazardBlinkSystem) Update(dt float64) {
	if s.useFallback {
		s.fallback.advance(dt)
	}
}

// setSwitchState 更新开关与遮罩的 active / aria-checked 状态
func (s *HazardBlinkSystem) setSwitchState(active bool) {
	s.sink.ToggleClass(game.ElementHazardSwitch, game.ClassActive, active)
	s.sink.ToggleClass(game.ElementHazardSwitch, game.ClassChecked, active)
	s.sink.ToggleClass(game.ElementHazardOverlay, game.ClassActive, active)
}
