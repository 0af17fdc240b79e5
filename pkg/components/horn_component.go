package components

// HornComponent 喇叭组件
type HornComponent struct {
	// Pressed 按下反馈是否正在显示
	Pressed bool

	// PressElapsed 按下反馈已显示的时间（秒）
	PressElapsed float64

	// LastCue 最近一次播放的音效ID
	LastCue string

	// Presses 本会话按喇叭次数
	Presses int
}
