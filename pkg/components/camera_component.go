package components

import (
	"github.com/gonewx/anchorflight/pkg/ecs"
	"github.com/gonewx/anchorflight/pkg/vmath"
)

// OrbitCameraComponent 绕目标旋转的追踪镜头
//
// 镜头位置由球坐标确定：
//
//	x = target.x + radius·cos(alpha)·sin(beta)
//	y = target.y + radius·cos(beta)
//	z = target.z + radius·sin(alpha)·sin(beta)
//
// Alpha、Beta、Radius 以及半径上下限都可以被关键帧动画独立驱动。
type OrbitCameraComponent struct {
	// Follow 镜头跟随的实体（0 表示固定看向 Target）
	Follow ecs.EntityID
	// Target 镜头看向的点（跟随实体时每帧由系统更新）
	Target vmath.Vec3

	// Alpha 水平角（弧度）
	Alpha float64
	// Beta 俯仰角（弧度，0 为正上方，π/2 为水平）
	Beta float64
	// Radius 与目标的距离
	Radius float64

	// LowerRadiusLimit 半径下限，nil 表示不限制
	LowerRadiusLimit *float64
	// UpperRadiusLimit 半径上限，nil 表示不限制
	UpperRadiusLimit *float64

	// Position 镜头世界坐标（由系统每帧计算）
	Position vmath.Vec3
}
