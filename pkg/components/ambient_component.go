package components

import "time"

// DarknessReading 一次环境光计算的结果
// 每个计算周期重新生成，不跨周期缓存
type DarknessReading struct {
	// TimeOpacity 由时刻决定的暗度 [0, 1]
	TimeOpacity float64

	// MoonDarkness 由月相决定的暗度 [0.4, 0.9]
	MoonDarkness float64

	// FinalOpacity 最终遮罩不透明度 = TimeOpacity * MoonDarkness
	FinalOpacity float64

	// MoonPhase 计算时使用的月相 [0, 1)
	MoonPhase float64
}

// AmbientComponent 环境光组件
type AmbientComponent struct {
	// Reading 最近一次计算结果
	Reading DarknessReading

	// DashboardIlluminated 仪表盘背光是否点亮
	DashboardIlluminated bool

	// ComputedAt 最近一次计算的时间
	ComputedAt time.Time

	// RefreshTimer 重新计算节奏计时器
	RefreshTimer TimerComponent
}
