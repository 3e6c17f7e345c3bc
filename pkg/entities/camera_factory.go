package entities

import (
	"fmt"
	"math"

	"github.com/gonewx/anchorflight/pkg/components"
	"github.com/gonewx/anchorflight/pkg/ecs"
	"github.com/gonewx/anchorflight/pkg/motion"
	"github.com/gonewx/anchorflight/pkg/vmath"
)

// NewOrbitCameraEntity 创建追踪镜头实体
//
// 参数:
//   - em: 实体管理器
//   - follow: 跟随的实体（0 表示固定看向原点）
//   - alpha, beta: 初始水平角与俯仰角（弧度）
//   - radius: 初始半径
//
// 返回:
//   - ecs.EntityID: 镜头实体ID，失败时为 0
//   - error: 创建失败的原因
func NewOrbitCameraEntity(em *ecs.EntityManager, follow ecs.EntityID, alpha, beta, radius float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if radius < 0 || math.IsNaN(radius) {
		return 0, fmt.Errorf("invalid camera radius %v", radius)
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.OrbitCameraComponent{
		Follow: follow,
		Alpha:  alpha,
		Beta:   beta,
		Radius: radius,
	})
	return id, nil
}

// CameraHandle 把镜头实体包装为 motion.Camera
type CameraHandle struct {
	id  ecs.EntityID
	cam *components.OrbitCameraComponent
}

// NewCameraHandle 为已存在的镜头实体创建句柄
func NewCameraHandle(em *ecs.EntityManager, id ecs.EntityID) (*CameraHandle, error) {
	cam, ok := ecs.GetComponent[*components.OrbitCameraComponent](em, id)
	if !ok {
		return nil, fmt.Errorf("entity %d has no OrbitCameraComponent", id)
	}
	return &CameraHandle{id: id, cam: cam}, nil
}

// ID 返回镜头实体ID
func (h *CameraHandle) ID() ecs.EntityID { return h.id }

// AnimationKey 实现 anim.Target
func (h *CameraHandle) AnimationKey() string {
	return fmt.Sprintf("entity:%d", h.id)
}

// SetFloat 实现 anim.Target
func (h *CameraHandle) SetFloat(path string, v float64) bool {
	switch path {
	case motion.PropAlpha:
		h.cam.Alpha = v
	case motion.PropBeta:
		h.cam.Beta = v
	case motion.PropRadius:
		h.cam.Radius = v
	case motion.PropLowerRadiusLimit:
		h.cam.LowerRadiusLimit = &v
	case motion.PropUpperRadiusLimit:
		h.cam.UpperRadiusLimit = &v
	default:
		return false
	}
	return true
}

// SetVec3 实现 anim.Target；镜头没有向量属性
func (h *CameraHandle) SetVec3(string, vmath.Vec3) bool { return false }

// SetQuat 实现 anim.Target；镜头没有旋转属性
func (h *CameraHandle) SetQuat(string, vmath.Quat) bool { return false }

func (h *CameraHandle) Alpha() float64  { return h.cam.Alpha }
func (h *CameraHandle) Beta() float64   { return h.cam.Beta }
func (h *CameraHandle) Radius() float64 { return h.cam.Radius }

// LowerRadiusLimit 实现 motion.Camera
func (h *CameraHandle) LowerRadiusLimit() (float64, bool) {
	if h.cam.LowerRadiusLimit == nil {
		return 0, false
	}
	return *h.cam.LowerRadiusLimit, true
}

// UpperRadiusLimit 实现 motion.Camera
func (h *CameraHandle) UpperRadiusLimit() (float64, bool) {
	if h.cam.UpperRadiusLimit == nil {
		return 0, false
	}
	return *h.cam.UpperRadiusLimit, true
}

// ClearRadiusLimits 取消半径限制（用户自由缩放）
func (h *CameraHandle) ClearRadiusLimits() {
	h.cam.LowerRadiusLimit = nil
	h.cam.UpperRadiusLimit = nil
}

// Component 返回底层组件
func (h *CameraHandle) Component() *components.OrbitCameraComponent { return h.cam }
