package motion

import (
	"github.com/gonewx/anchorflight/pkg/anim"
	"github.com/gonewx/anchorflight/pkg/vmath"
)

// 关键帧属性路径
const (
	PropPosition         = "position"
	PropRotation         = "rotation"
	PropAlpha            = "alpha"
	PropBeta             = "beta"
	PropRadius           = "radius"
	PropLowerRadiusLimit = "lowerRadiusLimit"
	PropUpperRadiusLimit = "upperRadiusLimit"
)

// Mesh 飞行器的一个可见部件
type Mesh interface {
	SetVisible(visible bool)
}

// Emitter 尾焰粒子发射器，Start/Stop 必须幂等
type Emitter interface {
	Start()
	Stop()
	IsStarted() bool
}

// Craft 可被航行驱动的飞行器
// 位置和朝向通过 anim.Target 的 "position"/"rotation" 路径被关键帧写入
type Craft interface {
	anim.Target
	Position() vmath.Vec3
	SetPosition(p vmath.Vec3)
	Rotation() vmath.Quat
	Meshes() []Mesh
}

// Camera 追踪镜头
// 五个标量属性都可以通过 anim.Target 的同名路径独立驱动
type Camera interface {
	anim.Target
	Alpha() float64
	Beta() float64
	Radius() float64
	// LowerRadiusLimit 返回半径下限；未设置时 ok 为 false
	LowerRadiusLimit() (limit float64, ok bool)
	// UpperRadiusLimit 返回半径上限；未设置时 ok 为 false
	UpperRadiusLimit() (limit float64, ok bool)
}

// ModeProvider 导航模式提供者
type ModeProvider interface {
	// GuidedActive 当前是否处于引导导航模式
	GuidedActive() bool
}

// Animator 关键帧播放器（*anim.Player 实现了该接口）
type Animator interface {
	Begin(target anim.Target, tracks []anim.Track, from, to, fps float64, onEnd func()) *anim.Animatable
	BeginDirect(target anim.Target, tracks []anim.Track, from, to, fps float64, onEnd func()) *anim.Animatable
	Stop(target anim.Target)
}
