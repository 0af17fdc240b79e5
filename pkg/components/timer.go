package components

// TimerComponent 通用周期计时器
// 用于固定节奏的行为（如车速衰减 100ms、环境光重算 60s）
// 注意：遵循 ECS 原则，组件仅存储数据，推进逻辑由系统实现
type TimerComponent struct {
	Name        string  // 计时器名称，如 "speed_decay"
	TargetTime  float64 // 周期（秒）
	CurrentTime float64 // 当前周期内已过时间（秒）
	IsReady     bool    // 本次推进是否至少完成了一个周期
}
