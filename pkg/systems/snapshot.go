package systems

import (
	"github.com/decker502/garage/pkg/components"
	"github.com/decker502/garage/pkg/ecs"
)

// Snapshot 汇总面板实体的各组件为一份只读状态
// 缺失的组件对应字段保持零值
func Snapshot(em *ecs.EntityManager, id ecs.EntityID) components.SimulationState {
	var state components.SimulationState

	if engine, ok := ecs.GetComponent[*components.EngineComponent](em, id); ok {
		state.EngineStarted = engine.Started
	}
	if speedo, ok := ecs.GetComponent[*components.SpeedometerComponent](em, id); ok {
		state.ScrollSpeed = speedo.ScrollSpeed
		state.LastScrollPosition = speedo.LastScrollPosition
		state.LastSampleTimeMs = speedo.LastSampleTimeMs
	}
	if hazard, ok := ecs.GetComponent[*components.HazardComponent](em, id); ok {
		state.HazardsActive = hazard.Active
	}
	if headlight, ok := ecs.GetComponent[*components.HeadlightComponent](em, id); ok {
		state.HeadlightMode = headlight.Mode
	}
	if ambient, ok := ecs.GetComponent[*components.AmbientComponent](em, id); ok {
		state.Darkness = ambient.Reading
	}
	return state
}

// firstComponent 返回第一个拥有组件 T 的实体上的该组件
func firstComponent[T any](em *ecs.EntityManager) (T, bool) {
	ids := ecs.GetEntitiesWith1[T](em)
	if len(ids) == 0 {
		var zero T
		return zero, false
	}
	return ecs.GetComponent[T](em, ids[0])
}
