package systems

import (
	"github.com/decker502/garage/pkg/components"
	"github.com/decker502/garage/pkg/ecs"
	"github.com/decker502/garage/pkg/game"
)

// KnobDegreesPerMode 旋钮每档旋转角度
const KnobDegreesPerMode = 45.0

// NextHeadlightMode 返回下一个大灯模式：OFF → LOW → HIGH → OFF
func NextHeadlightMode(mode components.HeadlightMode) components.HeadlightMode {
	next := (int(mode) + 1) % components.HeadlightModeCount
	if next < 0 {
		next += components.HeadlightModeCount
	}
	return components.HeadlightMode(next)
}

// KnobAngle 返回旋钮角度：OFF -45°，LOW 0°，HIGH +45°
func KnobAngle(mode components.HeadlightMode) float64 {
	return float64(int(mode)-1) * KnobDegreesPerMode
}

// HeadlightSystem 大灯系统
//
// 只负责模式切换和模式相关的视觉；遮罩不透明度由 AmbientLightSystem 设置。
// 切换模式应通过 AmbientLightSystem.ToggleHeadlights，保证两者一起重新渲染。
type HeadlightSystem struct {
	entityManager *ecs.EntityManager
	sink          game.VisualSink
}

// NewHeadlightSystem 创建大灯系统
func NewHeadlightSystem(em *ecs.EntityManager, sink game.VisualSink) *HeadlightSystem {
	return &HeadlightSystem{
		entityManager: em,
		sink:          game.SinkOrNop(sink),
	}
}

// Toggle 将所有大灯切换到下一个模式，返回新模式
func (s *HeadlightSystem) Toggle() components.HeadlightMode {
	mode := components.HeadlightLow
	for _, id := range ecs.GetEntitiesWith1[*components.HeadlightComponent](s.entityManager) {
		headlight, _ := ecs.GetComponent[*components.HeadlightComponent](s.entityManager, id)
		headlight.Mode = NextHeadlightMode(headlight.Mode)
		mode = headlight.Mode
	}
	return mode
}

// Mode 返回当前大灯模式（没有大灯实体时为 LOW）
func (s *HeadlightSystem) Mode() components.HeadlightMode {
	if headlight, ok := firstComponent[*components.HeadlightComponent](s.entityManager); ok {
		return headlight.Mode
	}
	return components.HeadlightLow
}

// RenderCurrent 以当前模式渲染
func (s *HeadlightSystem) RenderCurrent(ambientOpacity float64) {
	s.Render(s.Mode(), ambientOpacity)
}

// Render 渲染大灯模式
//
// 参数：
//   - mode: 大灯模式
//   - ambientOpacity: 本周期环境遮罩不透明度
//
// OFF 保持遮罩原样；LOW 在遮罩上开出可视区域（遮罩仍为环境不透明度）；
// HIGH 取消遮罩并整体提亮。
func (s *HeadlightSystem) Render(mode components.HeadlightMode, ambientOpacity float64) {
	s.sink.SetRotation(game.ElementHeadlightKnob, KnobAngle(mode))

	s.sink.ToggleClass(game.ElementScrim, game.ClassRevealMask, mode == components.HeadlightLow)
	s.sink.ToggleClass(game.ElementScrim, game.ClassScrimDisabled, mode == components.HeadlightHigh)
	s.sink.ToggleClass(game.ElementPage, game.ClassHighBeam, mode == components.HeadlightHigh)

	if mode == components.HeadlightHigh {
		s.sink.SetOpacity(game.ElementScrim, 0)
	} else {
		s.sink.SetOpacity(game.ElementScrim, ambientOpacity)
	}
}
