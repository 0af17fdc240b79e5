package utils

import "math"

// 缓动函数
//
// 接受进度 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。越界输入先被夹到 [0, 1]。
// 仪表盘升起、启动按钮淡出、双闪遮罩等过渡都用它们控制速度曲线。

// Clamp01 将 t 限制在 [0, 1]
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// EaseOutCubic 三次方缓出：开始快，结束慢（仪表盘升起）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	t = Clamp01(t)
	return 1 - math.Pow(1-t, 3)
}

// EaseInQuad 二次方缓入：开始慢，结束较快（启动按钮淡出）
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	t = Clamp01(t)
	return t * t
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
