package utils

import "math"

// Easing Functions (缓动函数)
//
// 缓动函数把线性进度映射为"感知进度"，用于控制加速/减速。
// 除 EaseTransit 外，所有函数接受 t ∈ [0, 1]，返回值 ∈ [0, 1]，且 f(0)=0, f(1)=1。
//
// 参考：https://easings.net/

// EasingFunc 缓动函数类型
type EasingFunc func(t float64) float64

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInCubic 三次方缓入
// 公式：f(t) = t³
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（镜头拉远使用）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次方缓入缓出
// 特点：开始慢，中间快，结束慢（镜头角度、镜头推近使用）
// 公式：
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutExpo 指数缓出
// 公式：f(t) = 1 - 2^(-10t)
func EaseOutExpo(t float64) float64 {
	if t >= 1.0 {
		return 1.0
	}
	return 1 - math.Pow(2, -10*t)
}

// EaseTransit 航行缓动：前半段可延续当前速度，后半段平滑到达
//
// 前半段（t < 0.5）在"已经在运动"的线性进度 t 与"从静止起步"的二次缓入 2t² 之间混合，
// 混合权重为 startSpeedRatio × max(0, 1-2t)，到中点时完全回到二次缓入；
// 后半段（t >= 0.5）始终是 1 - (-2t+2)²/2，与入场速度无关。
//
// 前后两段刻意不对称：中途改道时起步不能顿挫，但每一次航行都必须平稳抵达。
//
// 参数:
//   - t: 线性时间进度 [0, 1]
//   - startSpeedRatio: 当前速度与新路径峰值速度之比 [0, 1]
//
// 返回:
//   - float64: 曲线参数 [0, 1]，t=1 时恒为 1
func EaseTransit(t, startSpeedRatio float64) float64 {
	if t < 0.5 {
		quadratic := 2 * t * t
		blend := startSpeedRatio * math.Max(0, 1-t*2)
		return quadratic + blend*(t-quadratic)
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// easingsByName 配置文件中使用的缓动名称
var easingsByName = map[string]EasingFunc{
	"linear":         EaseLinear,
	"easeInQuad":     EaseInQuad,
	"easeOutQuad":    EaseOutQuad,
	"easeInCubic":    EaseInCubic,
	"easeOutCubic":   EaseOutCubic,
	"easeInOutCubic": EaseInOutCubic,
	"easeOutExpo":    EaseOutExpo,
}

// EasingByName 根据名称查找缓动函数
// 未知名称返回 EaseLinear 与 false
func EasingByName(name string) (EasingFunc, bool) {
	if fn, ok := easingsByName[name]; ok {
		return fn, true
	}
	return EaseLinear, false
}
