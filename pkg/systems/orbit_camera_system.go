package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gonewx/anchorflight/pkg/components"
	"github.com/gonewx/anchorflight/pkg/ecs"
	"github.com/gonewx/anchorflight/pkg/vmath"
)

// OrbitCameraSystem 追踪镜头系统
//
// 每帧：
//  1. 跟随实体时把目标点更新为实体位置
//  2. 按半径上下限钳制半径
//  3. 由球坐标计算镜头位置
//
// 角度与半径本身由关键帧动画驱动，这里不做插值。
type OrbitCameraSystem struct {
	EntityManager *ecs.EntityManager
}

// NewOrbitCameraSystem 创建追踪镜头系统
func NewOrbitCameraSystem(em *ecs.EntityManager) *OrbitCameraSystem {
	return &OrbitCameraSystem{EntityManager: em}
}

// Update 更新全部镜头
func (s *OrbitCameraSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.OrbitCameraComponent](s.EntityManager) {
		cam, _ := ecs.GetComponent[*components.OrbitCameraComponent](s.EntityManager, id)

		if cam.Follow != 0 {
			if tc, ok := ecs.GetComponent[*components.TransformComponent](s.EntityManager, cam.Follow); ok {
				cam.Target = tc.Position
			}
		}

		cam.Radius = ClampRadius(cam.Radius, cam.LowerRadiusLimit, cam.UpperRadiusLimit)
		cam.Position = cam.Target.Add(OrbitOffset(cam.Alpha, cam.Beta, cam.Radius))
	}
}

// ClampRadius 按上下限钳制半径，nil 表示该方向不限制
func ClampRadius(radius float64, lower, upper *float64) float64 {
	if lower != nil && radius < *lower {
		radius = *lower
	}
	if upper != nil && radius > *upper {
		radius = *upper
	}
	return radius
}

// OrbitOffset 球坐标 (alpha, beta, radius) 对应的相对目标点偏移
func OrbitOffset(alpha, beta, radius float64) vmath.Vec3 {
	sinB := math.Sin(beta)
	return vmath.Vec3{
		radius * math.Cos(alpha) * sinB,
		radius * math.Cos(beta),
		radius * math.Sin(alpha) * sinB,
	}
}

// ViewProjection 计算镜头的观察投影矩阵
//
// 半径为 0 时镜头与目标重合，观察方向退化，此时沿 alpha/beta 方向后退一个最小距离。
//
// 参数:
//   - cam: 镜头组件
//   - fovY: 垂直视角（弧度）
//   - aspect: 宽高比
//
// 返回:
//   - mgl64.Mat4: 投影矩阵 × 观察矩阵
func ViewProjection(cam *components.OrbitCameraComponent, fovY, aspect float64) mgl64.Mat4 {
	const minEyeDistance = 0.5

	eye := cam.Position
	if vmath.Distance(eye, cam.Target) < minEyeDistance {
		eye = cam.Target.Add(OrbitOffset(cam.Alpha, cam.Beta, minEyeDistance))
	}

	up := vmath.Up
	if math.Abs(vmath.SafeNormalize(cam.Target.Sub(eye), vmath.LocalForward).Dot(up)) > 0.999 {
		up = vmath.LocalForward
	}

	view := mgl64.LookAtV(eye, cam.Target, up)
	proj := mgl64.Perspective(fovY, aspect, 0.1, 1000)
	return proj.Mul4(view)
}
