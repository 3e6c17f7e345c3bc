package systems

import (
	"math"

	"github.com/gonewx/anchorflight/pkg/components"
	"github.com/gonewx/anchorflight/pkg/ecs"
	"github.com/gonewx/anchorflight/pkg/vmath"
)

// goldenAngle 相邻粒子在喷口截面上的角度间隔，使粒子均匀散开
const goldenAngle = 2.399963229728653

// exhaustSpread 粒子横向速度占喷出速度的比例
const exhaustSpread = 0.15

// ExhaustSystem 尾焰粒子系统
//
// 处理顺序（每帧）：
//  1. 已有粒子衰老、移动，超过寿命的移除
//  2. 发射器处于启动状态时按 SpawnRate 生成新粒子
//
// 发射器停止后不再生成粒子，已有粒子自然消失。
type ExhaustSystem struct {
	EntityManager *ecs.EntityManager
}

// NewExhaustSystem 创建尾焰粒子系统
func NewExhaustSystem(em *ecs.EntityManager) *ExhaustSystem {
	return &ExhaustSystem{EntityManager: em}
}

// Update 推进 dt 秒
func (s *ExhaustSystem) Update(dt float64) {
	if dt <= 0 {
		return
	}

	entities := ecs.GetEntitiesWith2[
		*components.EmitterComponent,
		*components.TransformComponent,
	](s.EntityManager)

	for _, id := range entities {
		emitter, _ := ecs.GetComponent[*components.EmitterComponent](s.EntityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.EntityManager, id)

		s.ageParticles(emitter, dt)
		if emitter.Active {
			emitter.Age += dt
			s.spawnParticles(emitter, transform, dt)
		}
	}
}

func (s *ExhaustSystem) ageParticles(emitter *components.EmitterComponent, dt float64) {
	alive := emitter.Particles[:0]
	for _, p := range emitter.Particles {
		p.Age += dt
		if p.Age >= p.Lifetime {
			continue
		}
		p.Position = p.Position.Add(p.Velocity.Mul(dt))
		alive = append(alive, p)
	}
	clear(emitter.Particles[len(alive):])
	emitter.Particles = alive
}

func (s *ExhaustSystem) spawnParticles(emitter *components.EmitterComponent, transform *components.TransformComponent, dt float64) {
	if emitter.SpawnRate <= 0 {
		return
	}
	emitter.SpawnAccumulator += emitter.SpawnRate * dt

	origin := transform.Position.Add(transform.Rotation.Rotate(emitter.Offset))
	back := transform.Rotation.Rotate(vmath.LocalForward.Mul(-1))
	right := transform.Rotation.Rotate(vmath.Vec3{1, 0, 0})
	up := transform.Rotation.Rotate(vmath.Up)

	for emitter.SpawnAccumulator >= 1 {
		emitter.SpawnAccumulator--
		if emitter.MaxParticles > 0 && len(emitter.Particles) >= emitter.MaxParticles {
			continue
		}

		angle := float64(emitter.TotalLaunched) * goldenAngle
		spread := right.Mul(math.Cos(angle)).Add(up.Mul(math.Sin(angle))).Mul(exhaustSpread)
		velocity := back.Add(spread).Mul(emitter.EjectSpeed)

		emitter.Particles = append(emitter.Particles, components.ExhaustParticle{
			Position: origin,
			Velocity: velocity,
			Lifetime: emitter.ParticleLifetime,
		})
		emitter.TotalLaunched++
	}
}
