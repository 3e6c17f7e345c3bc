package entities

import (
	"fmt"

	"github.com/gonewx/anchorflight/pkg/components"
	"github.com/gonewx/anchorflight/pkg/ecs"
	"github.com/gonewx/anchorflight/pkg/motion"
	"github.com/gonewx/anchorflight/pkg/vmath"
)

// CraftPartNames 飞行器默认部件
var CraftPartNames = []string{"hull", "wing_left", "wing_right", "cockpit"}

// NewCraftEntity 创建飞行器实体
//
// 飞行器由变换、网格与尾焰发射器三个组件组成。
// 创建后处于隐藏状态，由航行开始时统一显示。
//
// 参数:
//   - em: 实体管理器
//   - position: 初始位置
//   - rotation: 初始朝向
//   - parts: 部件名称，为空时使用 CraftPartNames
//
// 返回:
//   - ecs.EntityID: 创建的飞行器实体ID，失败时为 0
//   - error: 创建失败的原因
func NewCraftEntity(em *ecs.EntityManager, position vmath.Vec3, rotation vmath.Quat, parts []string) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if !vmath.IsFinite(position) || !vmath.IsFiniteQuat(rotation) {
		return 0, fmt.Errorf("invalid craft pose: position=%v rotation=%v", position, rotation)
	}
	if len(parts) == 0 {
		parts = CraftPartNames
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TransformComponent{
		Position: position,
		Rotation: rotation.Normalize(),
	})

	mesh := &components.MeshComponent{}
	for i, name := range parts {
		size := 6.0
		if i == 0 {
			size = 10
		}
		mesh.Parts = append(mesh.Parts, &components.MeshPart{Name: name, Size: size})
	}
	ecs.AddComponent(em, id, mesh)

	ecs.AddComponent(em, id, &components.EmitterComponent{
		SpawnRate:        40,
		MaxParticles:     120,
		ParticleLifetime: 0.6,
		EjectSpeed:       6,
		Offset:           vmath.Vec3{0, 0, -1.2},
	})

	return id, nil
}

// CraftHandle 把飞行器实体包装为 motion.Craft
type CraftHandle struct {
	id        ecs.EntityID
	transform *components.TransformComponent
	mesh      *components.MeshComponent
	emitter   *components.EmitterComponent
}

// NewCraftHandle 为已存在的飞行器实体创建句柄
func NewCraftHandle(em *ecs.EntityManager, id ecs.EntityID) (*CraftHandle, error) {
	transform, ok := ecs.GetComponent[*components.TransformComponent](em, id)
	if !ok {
		return nil, fmt.Errorf("entity %d has no TransformComponent", id)
	}
	mesh, ok := ecs.GetComponent[*components.MeshComponent](em, id)
	if !ok {
		return nil, fmt.Errorf("entity %d has no MeshComponent", id)
	}
	emitter, _ := ecs.GetComponent[*components.EmitterComponent](em, id)

	return &CraftHandle{id: id, transform: transform, mesh: mesh, emitter: emitter}, nil
}

// ID 返回飞行器实体ID
func (h *CraftHandle) ID() ecs.EntityID { return h.id }

// AnimationKey 实现 anim.Target
func (h *CraftHandle) AnimationKey() string {
	return fmt.Sprintf("entity:%d", h.id)
}

// SetFloat 实现 anim.Target；飞行器没有标量属性
func (h *CraftHandle) SetFloat(string, float64) bool { return false }

// SetVec3 实现 anim.Target
func (h *CraftHandle) SetVec3(path string, v vmath.Vec3) bool {
	if path != motion.PropPosition {
		return false
	}
	h.transform.Position = v
	return true
}

// SetQuat 实现 anim.Target
func (h *CraftHandle) SetQuat(path string, q vmath.Quat) bool {
	if path != motion.PropRotation {
		return false
	}
	h.transform.Rotation = q
	return true
}

// Position 返回飞行器位置
func (h *CraftHandle) Position() vmath.Vec3 { return h.transform.Position }

// SetPosition 设置飞行器位置
func (h *CraftHandle) SetPosition(p vmath.Vec3) { h.transform.Position = p }

// Rotation 返回飞行器朝向
func (h *CraftHandle) Rotation() vmath.Quat { return h.transform.Rotation }

// Meshes 返回可切换显示的部件
func (h *CraftHandle) Meshes() []motion.Mesh {
	out := make([]motion.Mesh, 0, len(h.mesh.Parts))
	for _, p := range h.mesh.Parts {
		out = append(out, p)
	}
	return out
}

// Emitter 返回尾焰发射器；实体没有发射器时为 nil
//
// 返回值为 nil 时不要直接传给 motion.WithEmitter（会得到非 nil 的接口值），
// 应使用 EmitterOption。
func (h *CraftHandle) Emitter() *components.EmitterComponent { return h.emitter }

// EmitterOption 返回挂载尾焰发射器的控制器选项
func (h *CraftHandle) EmitterOption() motion.Option {
	if h.emitter == nil {
		return motion.WithEmitter(nil)
	}
	return motion.WithEmitter(h.emitter)
}

// Visible 飞行器当前是否可见
func (h *CraftHandle) Visible() bool { return h.mesh.AnyVisible() }
