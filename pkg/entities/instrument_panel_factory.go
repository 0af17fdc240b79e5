package entities

import (
	"fmt"

	"github.com/decker502/garage/pkg/components"
	"github.com/decker502/garage/pkg/config"
	"github.com/decker502/garage/pkg/ecs"
)

// 计时器名称
const (
	TimerSpeedDecay     = "speed_decay"
	TimerAmbientRefresh = "ambient_refresh"
)

// NewInstrumentPanelEntity 创建仪表盘实体
// 每个页面会话只创建一个；它持有车速、双闪、环境光、大灯、喇叭和发动机的全部状态
//
// 参数:
//   - em: 实体管理器
//   - cfg: 仪表盘配置（提供衰减与重算周期）
//
// 返回:
//   - ecs.EntityID: 创建的实体ID，失败返回 0
//   - error: 参数无效时返回错误
//
// 注意：大灯初始为近光，双闪初始关闭，发动机状态由 EngineSystem.Init 根据会话记录决定
func NewInstrumentPanelEntity(em *ecs.EntityManager, cfg *config.PanelConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("panel config cannot be nil")
	}

	entityID := em.CreateEntity()

	ecs.AddComponent(em, entityID, &components.EngineComponent{
		StartButtonVisible: true,
	})

	ecs.AddComponent(em, entityID, &components.SpeedometerComponent{
		DecayTimer: components.TimerComponent{
			Name:       TimerSpeedDecay,
			TargetTime: cfg.Speedometer.DecayInterval().Seconds(),
		},
	})

	ecs.AddComponent(em, entityID, &components.HazardComponent{})

	ecs.AddComponent(em, entityID, &components.AmbientComponent{
		RefreshTimer: components.TimerComponent{
			Name:       TimerAmbientRefresh,
			TargetTime: cfg.Ambient.RecomputeInterval().Seconds(),
		},
	})

	ecs.AddComponent(em, entityID, &components.HeadlightComponent{
		Mode: components.HeadlightLow,
	})

	ecs.AddComponent(em, entityID, &components.HornComponent{})

	return entityID, nil
}
