package components

import "github.com/gonewx/anchorflight/pkg/vmath"

// TransformComponent 实体在世界空间中的位置与朝向
type TransformComponent struct {
	Position vmath.Vec3
	Rotation vmath.Quat
}

// MeshPart 飞行器的一个可见部件
type MeshPart struct {
	Name string
	// Visibility 可见度：0 = 隐藏，1 = 完全可见
	Visibility float64
	// Enabled 部件是否参与渲染与更新
	Enabled bool
	// Size 部件在屏幕上绘制的尺寸（像素）
	Size float64
}

// SetVisible 同时切换部件的可见度与启用状态
func (m *MeshPart) SetVisible(visible bool) {
	m.Enabled = visible
	if visible {
		m.Visibility = 1
	} else {
		m.Visibility = 0
	}
}

// IsVisible 部件当前是否可见
func (m *MeshPart) IsVisible() bool {
	return m.Enabled && m.Visibility > 0
}

// MeshComponent 由多个部件组成的网格
type MeshComponent struct {
	Parts []*MeshPart
}

// AnyVisible 是否有任一部件可见
func (m *MeshComponent) AnyVisible() bool {
	for _, p := range m.Parts {
		if p.IsVisible() {
			return true
		}
	}
	return false
}
