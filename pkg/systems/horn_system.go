package systems

import (
	"log"

	"github.com/decker502/garage/pkg/components"
	"github.com/decker502/garage/pkg/config"
	"github.com/decker502/garage/pkg/ecs"
	"github.com/decker502/garage/pkg/game"
)

// PickHornCue 选择本次按喇叭使用的音效
// 以 AlternateChance 的概率（默认 1/6）换成搞笑喇叭，每次按下独立抽取
func PickHornCue(cfg config.HornConfig, rng RandomSource) string {
	if rng != nil && rng.Float64() < cfg.AlternateChance {
		return game.CueHornFunny
	}
	return game.CueHorn
}

// HornSystem 喇叭系统
type HornSystem struct {
	entityManager *ecs.EntityManager
	config        config.HornConfig
	sink          game.VisualSink
	audio         *game.AudioManager
	rng           RandomSource
}

// NewHornSystem 创建喇叭系统
func NewHornSystem(em *ecs.EntityManager, cfg config.HornConfig, sink game.VisualSink, audio *game.AudioManager, rng RandomSource) *HornSystem {
	return &HornSystem{
		entityManager: em,
		config:        cfg,
		sink:          game.SinkOrNop(sink),
		audio:         audio,
		rng:           rng,
	}
}

// Honk 按下喇叭：从头播放音效，按钮缩小片刻
func (s *HornSystem) Honk() {
	cue := PickHornCue(s.config, s.rng)
	if s.audio == nil || !s.audio.RestartCue(cue) {
		log.Printf("[HornSystem] Warning: failed to play %s", cue)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.HornComponent](s.entityManager) {
		horn, _ := ecs.GetComponent[*components.HornComponent](s.entityManager, id)
		horn.Pressed = true
		horn.PressElapsed = 0
		horn.LastCue = cue
		horn.Presses++
	}
	s.sink.SetScale(game.ElementHornButton, s.config.PressScale)
}

// Update 结束按下反馈
// 参数：
//   - dt: 时间增量（秒）
func (s *HornSystem) Update(dt float64) {
	duration := s.config.PressDuration().Seconds()
	for _, id := range ecs.GetEntitiesWith1[*components.HornComponent](s.entityManager) {
		horn, _ := ecs.GetComponent[*components.HornComponent](s.entityManager, id)
		if !horn.Pressed {
			continue
		}
		horn.PressElapsed += dt
		if horn.PressElapsed >= duration {
			horn.Pressed = false
			s.sink.ResetScale(game.ElementHornButton)
		}
	}
}
