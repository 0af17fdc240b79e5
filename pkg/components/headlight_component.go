package components

// HeadlightMode 大灯模式
type HeadlightMode int

const (
	// HeadlightOff 关闭：夜间遮罩完整生效
	HeadlightOff HeadlightMode = iota
	// HeadlightLow 近光：遮罩上开出可视区域
	HeadlightLow
	// HeadlightHigh 远光：取消遮罩并整体提亮
	HeadlightHigh
)

// HeadlightModeCount 模式总数，用于循环切换
const HeadlightModeCount = 3

// String 返回模式名称
func (m HeadlightMode) String() string {
	switch m {
	case HeadlightOff:
		return "OFF"
	case HeadlightLow:
		return "LOW"
	case HeadlightHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// HeadlightComponent 大灯组件，初始为近光
type HeadlightComponent struct {
	Mode HeadlightMode
}
