package systems

import "github.com/decker502/garage/pkg/components"

// advanceTimer 推进周期计时器，返回本次完成的周期数
//
// 一帧内经过多个周期时（窗口失焦后恢复等）会返回大于 1 的值，
// 调用方应逐个补齐，保证衰减这类行为与帧率无关。
func advanceTimer(timer *components.TimerComponent, dt float64) int {
	timer.IsReady = false
	if timer.TargetTime <= 0 || dt <= 0 {
		return 0
	}

	timer.CurrentTime += dt
	periods := 0
	for timer.CurrentTime >= timer.TargetTime {
		timer.CurrentTime -= timer.TargetTime
		periods++
	}
	timer.IsReady = periods > 0
	return periods
}
