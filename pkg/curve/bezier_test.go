package curve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/anchorflight/pkg/vmath"
)

func anchorAt(pos vmath.Vec3, yawDeg float64) Anchor {
	return NewAnchor("", pos, vmath.QuatFromEulerDegrees(0, yawDeg, 0))
}

func TestBuildControlSet(t *testing.T) {
	// 起点朝 +Z，终点朝 +X
	start := anchorAt(vmath.Vec3{0, 0, 0}, 0)
	end := anchorAt(vmath.Vec3{0, 0, 40}, 90)

	cs := BuildControlSet(start, end)

	// 间距 40，控制点距离 10
	assert.Equal(t, start.Position, cs.P0)
	assert.Equal(t, end.Position, cs.P3)
	assert.InDelta(t, -10.0, cs.P1[2], 1e-9, "P1 = start - startForward × cpd")
	assert.InDelta(t, 10.0, cs.P2[0], 1e-9, "P2 = end + endForward × cpd")
	assert.InDelta(t, 40.0, cs.P2[2], 1e-9)
}

func TestBuildControlSet_DegenerateAnchors(t *testing.T) {
	tests := []struct {
		name  string
		start Anchor
		end   Anchor
	}{
		{"完全重合", anchorAt(vmath.Vec3{1, 2, 3}, 0), anchorAt(vmath.Vec3{1, 2, 3}, 180)},
		{"距离低于阈值", anchorAt(vmath.Vec3{0, 0, 0}, 45), anchorAt(vmath.Vec3{0.01, 0, 0}, 45)},
		{"前方向为零向量", Anchor{Position: vmath.Vec3{5, 5, 5}}, Anchor{Position: vmath.Vec3{5, 5, 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, sampled := Build(tt.start, tt.end, DefaultSampleCount)

			assert.NotEqual(t, cs.P0, cs.P3, "P0 必须与 P3 分离")
			assert.Greater(t, sampled.Length(), 0.0)
			assert.False(t, math.IsNaN(sampled.Length()))
			for i, p := range sampled.Points() {
				require.True(t, vmath.IsFinite(p), "采样点 %d 非有限值: %v", i, p)
			}
			for _, param := range []float64{0, 0.25, 0.5, 0.999, 1} {
				assert.True(t, vmath.IsFinite(sampled.TangentAt(param)))
				assert.InDelta(t, 1.0, sampled.TangentAt(param).Len(), 1e-9)
			}
		})
	}
}

func TestSample(t *testing.T) {
	cs := ControlSet{
		P0: vmath.Vec3{0, 0, 0},
		P1: vmath.Vec3{0, 0, 1},
		P2: vmath.Vec3{0, 0, 2},
		P3: vmath.Vec3{0, 0, 3},
	}

	sampled := Sample(cs, 0)
	require.Len(t, sampled.Points(), DefaultSampleCount+1)

	// 控制点共线且等距时曲线退化为匀速直线
	assert.InDelta(t, 3.0, sampled.Length(), 1e-9)
	assert.Equal(t, cs.P0, sampled.At(0))
	assert.InDelta(t, 3.0, sampled.At(1)[2], 1e-12)
	assert.InDelta(t, 1.5, sampled.At(0.5)[2], 1e-9)

	// 超出范围的参数被限制
	assert.Equal(t, sampled.At(0), sampled.At(-1))
	assert.Equal(t, sampled.At(1), sampled.At(2))
	assert.Equal(t, sampled.At(0), sampled.At(math.NaN()))
}

func TestSampledCurve_AtInterpolatesBetweenSamples(t *testing.T) {
	cs := ControlSet{
		P0: vmath.Vec3{0, 0, 0},
		P1: vmath.Vec3{0, 0, 1},
		P2: vmath.Vec3{0, 0, 2},
		P3: vmath.Vec3{0, 0, 3},
	}
	sampled := Sample(cs, 4) // 点在 z = 0, 0.75, 1.5, 2.25, 3

	assert.InDelta(t, 0.375, sampled.At(0.125)[2], 1e-9)
	assert.InDelta(t, 2.625, sampled.At(0.875)[2], 1e-9)
}

func TestSampledCurve_TangentFollowsDirection(t *testing.T) {
	start := anchorAt(vmath.Vec3{0, 0, 0}, 180) // 朝 -Z，P1 在 +Z 方向
	end := anchorAt(vmath.Vec3{0, 0, 20}, 180)
	_, sampled := Build(start, end, DefaultSampleCount)

	// 起点沿 -startForward 离开，即 +Z
	tangent := sampled.TangentAt(0)
	assert.Greater(t, tangent[2], 0.99)

	mid := sampled.TangentAt(0.5)
	assert.Greater(t, mid[2], 0.99)
}
