package components

// SimulationState 仪表盘状态快照
//
// 每个页面会话只有一份状态，分散存放在面板实体的各组件中；
// 该结构把它们汇总为一份只读视图，供调试报告和测试使用。
type SimulationState struct {
	EngineStarted      bool
	ScrollSpeed        float64
	LastScrollPosition float64
	LastSampleTimeMs   int64
	HazardsActive      bool
	HeadlightMode      HeadlightMode
	Darkness           DarknessReading
}
