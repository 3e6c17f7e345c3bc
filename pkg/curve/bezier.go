// Package curve 构建两个锚点之间的三次贝塞尔航线，并预采样为查找表
//
// 控制点沿锚点的前方向展开，使飞行器沿起点朝向离开、沿终点朝向进入。
// 预采样后的曲线支持 O(1) 的"曲线参数 → 位置"近似查询。
package curve

import (
	"math"

	"github.com/gonewx/anchorflight/pkg/vmath"
)

const (
	// MinDistance 锚点间距低于该值时视为重合
	MinDistance = 0.1
	// DegenerateOffset 锚点重合时起点沿前方向偏移的距离
	DegenerateOffset = 0.05
	// ControlPointRatio 控制点距离 = 锚点间距 × ControlPointRatio
	ControlPointRatio = 0.25
	// DefaultSampleCount 默认采样段数（得到 DefaultSampleCount+1 个点）
	DefaultSampleCount = 200
	// tangentEpsilon 有限差分求切线时的参数步长
	tangentEpsilon = 0.001
)

// ControlSet 三次贝塞尔曲线的四个控制点
type ControlSet struct {
	P0, P1, P2, P3 vmath.Vec3
}

// BuildControlSet 根据起止锚点计算控制点
//
// 算法：
//   - distance = |end - start|
//   - distance < MinDistance 时，起点改为 start + startForward × DegenerateOffset 并重新计算 distance
//   - cpd = distance × ControlPointRatio
//   - P1 = start - startForward × cpd（沿起点朝向离开）
//   - P2 = end + endForward × cpd（沿终点朝向进入）
//
// 返回的控制点在锚点重合时仍满足 P0 != P3。
func BuildControlSet(start, end Anchor) ControlSet {
	startForward := vmath.SafeNormalize(start.Forward, vmath.LocalForward)
	endForward := vmath.SafeNormalize(end.Forward, vmath.LocalForward)

	p0 := start.Position
	distance := vmath.Distance(p0, end.Position)
	if distance < MinDistance {
		p0 = p0.Add(startForward.Mul(DegenerateOffset))
		distance = vmath.Distance(p0, end.Position)
	}

	cpd := distance * ControlPointRatio
	return ControlSet{
		P0: p0,
		P1: p0.Sub(startForward.Mul(cpd)),
		P2: end.Position.Add(endForward.Mul(cpd)),
		P3: end.Position,
	}
}

// Point 计算贝塞尔曲线在参数 u ∈ [0, 1] 处的精确位置
func (cs ControlSet) Point(u float64) vmath.Vec3 {
	v := 1 - u
	b0 := v * v * v
	b1 := 3 * v * v * u
	b2 := 3 * v * u * u
	b3 := u * u * u
	return cs.P0.Mul(b0).Add(cs.P1.Mul(b1)).Add(cs.P2.Mul(b2)).Add(cs.P3.Mul(b3))
}

// SampledCurve 预采样的曲线：有序点列与累计弧长
// 每次航行创建一次，航行结束或取消后丢弃
type SampledCurve struct {
	points []vmath.Vec3
	length float64
}

// Sample 将控制点采样为 segments+1 个点
// segments <= 0 时使用 DefaultSampleCount
func Sample(cs ControlSet, segments int) *SampledCurve {
	if segments <= 0 {
		segments = DefaultSampleCount
	}

	points := make([]vmath.Vec3, segments+1)
	length := 0.0
	for i := 0; i <= segments; i++ {
		points[i] = cs.Point(float64(i) / float64(segments))
		if i > 0 {
			length += vmath.Distance(points[i-1], points[i])
		}
	}

	return &SampledCurve{points: points, length: length}
}

// Build 是 BuildControlSet + Sample 的便捷组合
func Build(start, end Anchor, segments int) (ControlSet, *SampledCurve) {
	cs := BuildControlSet(start, end)
	return cs, Sample(cs, segments)
}

// Length 返回曲线总弧长（折线近似）
func (c *SampledCurve) Length() float64 {
	return c.length
}

// Points 返回采样点（只读）
func (c *SampledCurve) Points() []vmath.Vec3 {
	return c.points
}

// At 通过线性索引插值查询曲线参数 param 处的位置
// param 会被限制在 [0, 1]
func (c *SampledCurve) At(param float64) vmath.Vec3 {
	n := len(c.points)
	if n == 0 {
		return vmath.Zero
	}
	if math.IsNaN(param) {
		param = 0
	}
	param = vmath.Clamp(param, 0, 1)

	index := param * float64(n-1)
	low := int(math.Floor(index))
	high := min(low+1, n-1)
	blend := index - float64(low)
	return vmath.LerpVec3(c.points[low], c.points[high], blend)
}

// TangentAt 用 ±0.001 的有限差分计算 param 处的单位切线
// 差分退化为零向量时返回首尾连线方向；首尾重合时返回 +Z
func (c *SampledCurve) TangentAt(param float64) vmath.Vec3 {
	p1 := c.At(math.Max(0, param-tangentEpsilon))
	p2 := c.At(math.Min(1, param+tangentEpsilon))

	fallback := vmath.LocalForward
	if n := len(c.points); n > 1 {
		fallback = vmath.SafeNormalize(c.points[n-1].Sub(c.points[0]), vmath.LocalForward)
	}
	return vmath.SafeNormalize(p2.Sub(p1), fallback)
}
