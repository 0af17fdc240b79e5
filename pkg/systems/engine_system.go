package systems

import (
	"log"

	"github.com/decker502/garage/pkg/components"
	"github.com/decker502/garage/pkg/config"
	"github.com/decker502/garage/pkg/ecs"
	"github.com/decker502/garage/pkg/game"
)

// EngineSystem 发动机系统
//
// 启动流程：启动按钮立即淡出 → 延迟 RevealDelay 后按钮移出布局、仪表盘升起。
// 启动标记写入 SessionStore，同一会话中再次进入页面时直接显示仪表盘。
type EngineSystem struct {
	entityManager *ecs.EntityManager
	config        config.EngineConfig
	sink          game.VisualSink
	audio         *game.AudioManager
	session       *game.SessionStore
}

// NewEngineSystem 创建发动机系统
//
// 参数：
//   - em: 实体管理器
//   - cfg: 发动机配置
//   - sink: 视觉输出（可为 nil）
//   - audio: 音频管理器（可为 nil）
//   - session: 会话存储（可为 nil，此时启动状态不跨页面保留）
func NewEngineSystem(em *ecs.EntityManager, cfg config.EngineConfig, sink game.VisualSink, audio *game.AudioManager, session *game.SessionStore) *EngineSystem {
	return &EngineSystem{
		entityManager: em,
		config:        cfg,
		sink:          game.SinkOrNop(sink),
		audio:         audio,
		session:       session,
	}
}

// Init 根据会话记录初始化发动机状态（页面加载时调用一次）
func (s *EngineSystem) Init() {
	started := s.session != nil && s.session.EngineStarted()

	for _, id := range ecs.GetEntitiesWith1[*components.EngineComponent](s.entityManager) {
		engine, _ := ecs.GetComponent[*components.EngineComponent](s.entityManager, id)
		engine.Started = started
		engine.Revealing = false
		engine.RevealElapsed = 0
		engine.StartButtonVisible = !started
		engine.DashboardActive = started
	}

	s.sink.ToggleClass(game.ElementStartButton, game.ClassHidden, started)
	s.sink.ToggleClass(game.ElementStartButton, game.ClassRemoved, started)
	s.sink.ToggleClass(game.ElementDashboard, game.ClassActive, started)
}

// Start 启动发动机，已启动时不做任何事
func (s *EngineSystem) Start() {
	for _, id := range ecs.GetEntitiesWith1[*components.EngineComponent](s.entityManager) {
		engine, _ := ecs.GetComponent[*components.EngineComponent](s.entityManager, id)
		if engine.Started {
			continue
		}

		engine.Started = true
		engine.Revealing = true
		engine.RevealElapsed = 0

		if s.session != nil {
			if err := s.session.MarkEngineStarted(); err != nil {
				log.Printf("[EngineSystem] Warning: failed to persist engine state: %v", err)
			}
		}
		if s.audio == nil || !s.audio.RestartCue(game.CueEngineStart) {
			log.Printf("[EngineSystem] Warning: failed to play %s", game.CueEngineStart)
		}

		s.sink.ToggleClass(game.ElementStartButton, game.ClassHidden, true)
		log.Printf("[EngineSystem] Engine started")
	}
}

// Update 推进仪表盘升起过渡
// 参数：
//   - dt: 时间增量（秒）
func (s *EngineSystem) Update(dt float64) {
	delay := s.config.RevealDelay().Seconds()
	for _, id := range ecs.GetEntitiesWith1[*components.EngineComponent](s.entityManager) {
		engine, _ := ecs.GetComponent[*components.EngineComponent](s.entityManager, id)
		if !engine.Revealing {
			continue
		}
		engine.RevealElapsed += dt
		if engine.RevealElapsed < delay {
			continue
		}

		engine.Revealing = false
		engine.StartButtonVisible = false
		engine.DashboardActive = true
		s.sink.ToggleClass(game.ElementStartButton, game.ClassRemoved, true)
		s.sink.ToggleClass(game.ElementDashboard, game.ClassActive, true)
	}
}

// IsStarted 返回发动机是否已启动
func (s *EngineSystem) IsStarted() bool {
	engine, ok := firstComponent[*components.EngineComponent](s.entityManager)
	return ok && engine.Started
}

// RevealProgress 返回仪表盘升起进度 [0, 1]
func (s *EngineSystem) RevealProgress() float64 {
	engine, ok := firstComponent[*components.EngineComponent](s.entityManager)
	switch {
	case !ok:
		return 0
	case engine.DashboardActive:
		return 1
	case !engine.Revealing:
		return 0
	}
	delay := s.config.RevealDelay().Seconds()
	if delay <= 0 {
		return 1
	}
	return clamp(engine.RevealElapsed/delay, 0, 1)
}
