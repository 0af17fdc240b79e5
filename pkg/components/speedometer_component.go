package components

// SpeedometerComponent 车速表组件
// 存储由页面滚动速度推算出的"车速"
type SpeedometerComponent struct {
	// ScrollSpeed 车速百分比，始终位于 [0, 100]
	ScrollSpeed float64

	// LastScrollPosition 上一次采样的滚动位置（像素）
	LastScrollPosition float64

	// LastSampleTimeMs 上一次采样的时间戳（毫秒）
	LastSampleTimeMs int64

	// DecayTimer 衰减节奏计时器
	DecayTimer TimerComponent
}

// Escalation 仪表盘抖动等级
type Escalation int

const (
	// EscalationNone 无视觉效果
	EscalationNone Escalation = iota
	// EscalationShake 轻微抖动（75 < speed <= 95）
	EscalationShake
	// EscalationViolent 剧烈抖动 + 运动模糊（speed > 95）
	EscalationViolent
)

// String 返回抖动等级名称
func (e Escalation) String() string {
	switch e {
	case EscalationShake:
		return "shake"
	case EscalationViolent:
		return "violent"
	default:
		return "none"
	}
}
