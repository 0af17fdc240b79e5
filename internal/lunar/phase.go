// Package lunar 提供粗略的月相计算
//
// 采用 Conway 风格的月龄近似公式，只依赖日期（年/月/日），不考虑时分和时区。
// 误差在数小时到一天之间，足够驱动环境光的夜间明暗效果。
package lunar

import (
	"math"
	"time"
)

// SynodicMonth 朔望月长度（天）
const SynodicMonth = 29.5305882

// epochOffset 公式中的日数偏移
const epochOffset = 694039.09

// 月相判定容差（以周期比例计）
const phaseTolerance = 0.02

// Phase 计算指定日期的月相
//
// 返回值位于 [0, 1)：0 与接近 1 表示新月，0.5 表示满月。
//
// 参数:
//   - date: 任意时间，仅使用其自身时区下的年、月、日
//
// 返回:
//   - float64: 在朔望月中的位置
func Phase(date time.Time) float64 {
	year := float64(date.Year())
	month := float64(date.Month())
	day := float64(date.Day())

	if month < 3 {
		year--
		month += 12
	}
	month++

	days := 365.25*year + 30.6*month + day - epochOffset
	cycles := days / SynodicMonth

	_, frac := math.Modf(cycles)
	if frac < 0 {
		frac++
	}
	if frac >= 1 {
		frac = 0
	}
	return frac
}

// DistanceFromNew 返回月相到新月的周期距离，范围 [0, 0.5]
func DistanceFromNew(phase float64) float64 {
	return math.Min(phase, 1-phase)
}

// IsNewMoon 判断月相是否处于新月附近
func IsNewMoon(phase float64) bool {
	return DistanceFromNew(phase) <= phaseTolerance
}

// IsFullMoon 判断月相是否处于满月附近
func IsFullMoon(phase float64) bool {
	return math.Abs(phase-0.5) <= phaseTolerance
}

// Name 返回月相的英文名称（八分法）
func Name(phase float64) string {
	names := [...]string{
		"new moon",
		"waxing crescent",
		"first quarter",
		"waxing gibbous",
		"full moon",
		"waning gibbous",
		"last quarter",
		"waning crescent",
	}
	idx := int(math.Floor(phase*8+0.5)) % len(names)
	return names[idx]
}
