package curve

import "github.com/gonewx/anchorflight/pkg/vmath"

// Anchor 场景中一个具名的、固定的位置与朝向
//
// Anchor 是只读快照：由场景配置创建，运动核心只读取它。
type Anchor struct {
	Name        string
	Position    vmath.Vec3
	Orientation vmath.Quat
	// Forward 朝向方向（单位向量）
	Forward vmath.Vec3
}

// NewAnchor 从位置和朝向四元数创建锚点
// Forward 由朝向四元数推导（局部 +Z 旋转后的方向）
func NewAnchor(name string, position vmath.Vec3, orientation vmath.Quat) Anchor {
	return Anchor{
		Name:        name,
		Position:    position,
		Orientation: orientation,
		Forward:     vmath.SafeNormalize(vmath.Forward(orientation), vmath.LocalForward),
	}
}

// WithForward 返回使用自定义前方向的副本
// 某些锚点的飞行前方向与模型朝向不一致（例如倒车入位），此时由配置显式指定
func (a Anchor) WithForward(forward vmath.Vec3) Anchor {
	a.Forward = vmath.SafeNormalize(forward, a.Forward)
	return a
}
