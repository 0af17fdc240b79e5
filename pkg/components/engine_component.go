package components

// EngineComponent 发动机状态组件
//
// Started 为真后仪表盘才响应滚动；该标记会按浏览会话持久化，
// 同一会话内切换页面时直接显示仪表盘而不再播放启动流程。
type EngineComponent struct {
	// Started 发动机是否已启动
	Started bool

	// Revealing 是否处于"启动按钮淡出 → 仪表盘升起"的过渡中
	Revealing bool

	// RevealElapsed 过渡已经过的时间（秒）
	RevealElapsed float64

	// StartButtonVisible 启动按钮是否仍占据布局（display 未被置为 none）
	StartButtonVisible bool

	// DashboardActive 仪表盘是否已升起
	DashboardActive bool
}
