// Package vmath 提供三维向量与四元数的常用运算
//
// 底层类型直接复用 mgl64（go-gl/mathgl），这里只补充场景中经常用到、
// 但 mgl64 没有直接提供的组合运算：
//   - 左手系朝向四元数（+Z 轴指向 forward）
//   - 最短路径球面插值
//   - 欧拉角（度）与四元数互转
//   - 角度归一化与泛型 Clamp
package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/exp/constraints"
)

// Vec3 三维向量（X, Y, Z）
type Vec3 = mgl64.Vec3

// Quat 四元数（W + V）
type Quat = mgl64.Quat

var (
	// Zero 零向量
	Zero = Vec3{0, 0, 0}
	// Up 世界坐标系的上方向
	Up = Vec3{0, 1, 0}
	// LocalForward 物体局部坐标系的前方向（+Z）
	LocalForward = Vec3{0, 0, 1}
)

// epsilon 判断向量是否退化的阈值
const epsilon = 1e-9

// Clamp 将 v 限制在 [lo, hi] 范围内
func Clamp[T constraints.Float | constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Distance 返回两点间的欧氏距离
func Distance(a, b Vec3) float64 {
	return b.Sub(a).Len()
}

// LerpVec3 线性插值
// t=0 返回 a，t=1 返回 b
func LerpVec3(a, b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// IsFinite 检查向量的每个分量是否为有限值（非 NaN、非 Inf）
func IsFinite(v Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// IsFiniteQuat 检查四元数是否有限且非零
func IsFiniteQuat(q Quat) bool {
	if math.IsNaN(q.W) || math.IsInf(q.W, 0) || !IsFinite(q.V) {
		return false
	}
	return q.Len() > epsilon
}

// SafeNormalize 归一化向量，长度为 0 时返回 fallback
func SafeNormalize(v, fallback Vec3) Vec3 {
	l := v.Len()
	if l < epsilon {
		return fallback
	}
	return v.Mul(1 / l)
}

// Forward 返回四元数旋转后的局部 +Z 方向
func Forward(q Quat) Vec3 {
	return q.Rotate(LocalForward)
}

// QuatLookRotation 构造一个左手系朝向四元数：局部 +Z 指向 forward，局部 +Y 尽量贴近 up
//
// forward 与 up 平行时改用世界 +Z（或 +X）作为参考上方向，避免叉积退化。
//
// 参数:
//   - forward: 目标朝向（无需归一化）
//   - up: 参考上方向
//
// 返回:
//   - Quat: 单位四元数；forward 为零向量时返回单位旋转
func QuatLookRotation(forward, up Vec3) Quat {
	f := SafeNormalize(forward, Zero)
	if f == Zero {
		return mgl64.QuatIdent()
	}

	right := up.Cross(f)
	if right.Len() < epsilon {
		// forward 与 up 共线，换一个参考轴
		alt := Vec3{0, 0, 1}
		if math.Abs(f.Dot(alt)) > 0.99 {
			alt = Vec3{1, 0, 0}
		}
		right = alt.Cross(f)
	}
	right = right.Normalize()
	correctedUp := f.Cross(right).Normalize()

	// 列主序：第 0 列 = right，第 1 列 = up，第 2 列 = forward
	m := mgl64.Mat4{
		right[0], right[1], right[2], 0,
		correctedUp[0], correctedUp[1], correctedUp[2], 0,
		f[0], f[1], f[2], 0,
		0, 0, 0, 1,
	}
	return mgl64.Mat4ToQuat(m).Normalize()
}

// QuatSlerpShortest 沿最短弧做球面插值
// mgl64.QuatSlerp 不保证走最短路径，这里在点积为负时先翻转 b
func QuatSlerpShortest(a, b Quat, t float64) Quat {
	if a.Dot(b) < 0 {
		b = Quat{W: -b.W, V: b.V.Mul(-1)}
	}
	return mgl64.QuatSlerp(a, b, t).Normalize()
}

// QuatFromEulerDegrees 从欧拉角（度）构造四元数
// 旋转顺序与常见场景编辑器一致：先绕 Y（yaw），再绕 X（pitch），最后绕 Z（roll）
func QuatFromEulerDegrees(x, y, z float64) Quat {
	return mgl64.AnglesToQuat(
		mgl64.DegToRad(y),
		mgl64.DegToRad(x),
		mgl64.DegToRad(z),
		mgl64.YXZ,
	).Normalize()
}

// NormalizeAngle 将角度（弧度）归一化到 [-π, π]
func NormalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
