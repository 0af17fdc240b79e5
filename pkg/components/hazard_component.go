package components

// HazardComponent 双闪组件
//
// 状态机只有两个状态：INACTIVE / ACTIVE。
// ACTIVE 时每帧根据双闪音频循环的播放位置计算灯是否点亮。
type HazardComponent struct {
	// Active 双闪是否开启
	Active bool

	// LampOn 最近一次同步时灯是否点亮
	LampOn bool

	// FrameHandle 已登记的逐帧同步回调句柄，0 表示没有
	FrameHandle uint64
}
