package utils

import (
	"math"
	"testing"
)

// TestEaseLinear 测试线性缓动函数
func TestEaseLinear(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"中点", 0.5, 0.5},
		{"终点", 1.0, 1.0},
		{"四分之一", 0.25, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseLinear(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseLinear(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

// TestEaseOutCubic 测试三次方缓出函数
func TestEaseOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"终点", 1.0, 1.0},
		{"中点", 0.5, 0.875}, // 1 - (1-0.5)^3 = 1 - 0.125 = 0.875
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseOutCubic(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseOutCubic(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}

	// 验证"开始快，结束慢"的特性
	t.Run("开始快于线性", func(t *testing.T) {
		// 在前半段（p < 0.5），缓出函数应该比线性快
		for p := 0.1; p < 0.5; p += 0.1 {
			eased := EaseOutCubic(p)
			linear := EaseLinear(p)
			if eased <= linear {
				t.Errorf("EaseOutCubic(%v) = %v 应该大于线性值 %v（开始快）", p, eased, linear)
			}
		}
	})

	t.Run("整体快于线性", func(t *testing.T) {
		// EaseOut 的"结束慢"指的是速度减缓，而非位置落后
		// 由于前半段加速，整个过程中位置都会领先或等于线性
		for p := 0.0; p <= 1.0; p += 0.1 {
			eased := EaseOutCubic(p)
			linear := EaseLinear(p)
			// 允许微小的浮点误差
			if eased < linear-0.001 {
				t.Errorf("EaseOutCubic(%v) = %v 不应该落后于线性值 %v", p, eased, linear)
			}
		}
	})
}

// TestEaseInCubic 测试三次方缓入函数
func TestEaseInCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"终点", 1.0, 1.0},
		{"中点", 0.5, 0.125}, // 0.5^3 = 0.125
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseInCubic(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseInCubic(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

// TestEaseOutQuad 测试二次方缓出函数
func TestEaseOutQuad(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"终点", 1.0, 1.0},
		{"中点", 0.5, 0.75}, // 1 - (1-0.5)^2 = 1 - 0.25 = 0.75
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseOutQuad(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseOutQuad(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

// TestLerp 测试线性插值函数
func TestLerp(t *testing.T) {
	tests := []struct {
		name     string
		a        float64
		b        float64
		t        float64
		expected float64
	}{
		{"起点", 0.0, 100.0, 0.0, 0.0},
		{"中点", 0.0, 100.0, 0.5, 50.0},
		{"终点", 0.0, 100.0, 1.0, 100.0},
		{"四分之一", 0.0, 100.0, 0.25, 25.0},
		{"负数范围", -50.0, 50.0, 0.5, 0.0},
		{"逆向范围", 100.0, 0.0, 0.5, 50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Lerp(tt.a, tt.b, tt.t)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Lerp(%v, %v, %v) = %v, 期望 %v", tt.a, tt.b, tt.t, result, tt.expected)
			}
		})
	}
}

// TestScaleAnimation 测试缩放动画（从 1.0 到 0.85）
func TestScaleAnimation(t *testing.T) {
	startScale := 1.0
	endScale := 0.85

	tests := []struct {
		progress      float64
		expectedScale float64
	}{
		{0.0, 1.0},
		{1.0, 0.85},
		{0.5, 0.86875}, // 1.0 + (0.85 - 1.0) * 0.875 = 1.0 - 0.15 * 0.875 = 0.86875
	}

	for _, tt := range tests {
		easedProgress := EaseOutCubic(tt.progress)
		scale := Lerp(startScale, endScale, easedProgress)

		if math.Abs(scale-tt.expectedScale) > 0.001 {
			t.Errorf("进度 %v 时，缩放应该是 %v，实际: %v (easedProgress=%v)", tt.progress, tt.expectedScale, scale, easedProgress)
		}

		// 验证缩放在合理范围内
		if scale < endScale || scale > startScale {
			t.Errorf("缩放 %v 超出范围 [%v, %v]", scale, endScale, startScale)
		}
	}
}

// TestEaseInOutCubic 测试三次方缓入缓出函数
func TestEaseInOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"四分之一", 0.25, 0.0625}, // 4 * 0.25^3
		{"中点", 0.5, 0.5},
		{"四分之三", 0.75, 0.9375},
		{"终点", 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseInOutCubic(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseInOutCubic(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

// TestEaseTransit 测试航行缓动
func TestEaseTransit(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		ratio    float64
		expected float64
	}{
		{"静止起步-起点", 0.0, 0.0, 0.0},
		{"静止起步-四分之一", 0.25, 0.0, 0.125}, // 2 * 0.25²
		{"满速起步-四分之一", 0.25, 1.0, 0.1875}, // 0.125 + 0.5 * (0.25 - 0.125)
		{"半速起步-四分之一", 0.25, 0.5, 0.15625},
		{"中点与速度无关", 0.5, 1.0, 0.5},
		{"后半段与速度无关", 0.75, 1.0, 0.875}, // 1 - 0.5² / 2
		{"后半段静止起步", 0.75, 0.0, 0.875},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseTransit(tt.input, tt.ratio)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("EaseTransit(%v, %v) = %v, 期望 %v", tt.input, tt.ratio, result, tt.expected)
			}
		})
	}

	t.Run("终点精确收敛", func(t *testing.T) {
		for r := 0.0; r <= 1.0; r += 0.05 {
			if got := EaseTransit(1.0, r); got != 1.0 {
				t.Errorf("EaseTransit(1, %v) = %v, 期望精确 1.0", r, got)
			}
		}
	})

	t.Run("单调不减", func(t *testing.T) {
		for _, r := range []float64{0, 0.3, 0.7, 1} {
			prev := EaseTransit(0, r)
			for i := 1; i <= 100; i++ {
				cur := EaseTransit(float64(i)/100, r)
				if cur < prev-1e-12 {
					t.Errorf("ratio=%v: t=%v 时出现回退 %v < %v", r, float64(i)/100, cur, prev)
				}
				prev = cur
			}
		}
	})

	t.Run("起步斜率随速度比增大", func(t *testing.T) {
		const dt = 0.01
		slow := EaseTransit(dt, 0.2) / dt
		fast := EaseTransit(dt, 0.9) / dt
		if fast <= slow {
			t.Errorf("起步斜率 fast=%v 应大于 slow=%v", fast, slow)
		}
	})
}

// TestEasingByName 测试按名称查找缓动函数
func TestEasingByName(t *testing.T) {
	fn, ok := EasingByName("easeOutCubic")
	if !ok {
		t.Fatal("easeOutCubic 应该存在")
	}
	if math.Abs(fn(0.5)-0.875) > 0.001 {
		t.Errorf("easeOutCubic(0.5) = %v, 期望 0.875", fn(0.5))
	}

	fn, ok = EasingByName("bounce")
	if ok {
		t.Error("未知名称应返回 false")
	}
	if fn(0.3) != 0.3 {
		t.Errorf("未知名称应回退为线性缓动, got %v", fn(0.3))
	}
}
