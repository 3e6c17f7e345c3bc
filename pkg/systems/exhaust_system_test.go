package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/anchorflight/pkg/components"
	"github.com/gonewx/anchorflight/pkg/ecs"
	"github.com/gonewx/anchorflight/pkg/vmath"
)

func newEmitterEntity(t *testing.T, em *ecs.EntityManager, emitter *components.EmitterComponent) ecs.EntityID {
	t.Helper()
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TransformComponent{Rotation: vmath.Quat{W: 1}})
	ecs.AddComponent(em, id, emitter)
	return id
}

func TestExhaustSystem_SpawnsOnlyWhenStarted(t *testing.T) {
	em := ecs.NewEntityManager()
	emitter := &components.EmitterComponent{
		SpawnRate:        60,
		MaxParticles:     100,
		ParticleLifetime: 10,
		EjectSpeed:       2,
		Offset:           vmath.Vec3{0, 0, -1},
	}
	newEmitterEntity(t, em, emitter)
	sys := NewExhaustSystem(em)

	for i := 0; i < 30; i++ {
		sys.Update(1.0 / 60)
	}
	assert.Empty(t, emitter.Particles, "未启动时不生成粒子")

	emitter.Start()
	for i := 0; i < 30; i++ {
		sys.Update(1.0 / 60)
	}
	assert.InDelta(t, 30, len(emitter.Particles), 1)
	assert.Equal(t, len(emitter.Particles), emitter.TotalLaunched)
	assert.InDelta(t, 0.5, emitter.Age, 1e-9)

	// 粒子从尾部喷口向 -Z 方向喷出
	first := emitter.Particles[0]
	assert.Less(t, first.Position.Z(), -1.0)
	assert.Less(t, first.Velocity.Z(), 0.0)

	emitter.Stop()
	launched := emitter.TotalLaunched
	sys.Update(1.0 / 60)
	assert.Equal(t, launched, emitter.TotalLaunched, "停止后不再生成")
	assert.NotEmpty(t, emitter.Particles, "已有粒子继续存在")
}

func TestExhaustSystem_CullsExpiredParticles(t *testing.T) {
	em := ecs.NewEntityManager()
	emitter := &components.EmitterComponent{
		SpawnRate:        60,
		ParticleLifetime: 0.25,
		EjectSpeed:       1,
	}
	newEmitterEntity(t, em, emitter)
	sys := NewExhaustSystem(em)

	emitter.Start()
	for i := 0; i < 60; i++ {
		sys.Update(1.0 / 60)
	}
	// 稳定后存活数量约为 SpawnRate × Lifetime
	assert.InDelta(t, 15, len(emitter.Particles), 1)

	emitter.Stop()
	for i := 0; i < 20; i++ {
		sys.Update(1.0 / 60)
	}
	assert.Empty(t, emitter.Particles)
}

func TestExhaustSystem_RespectsMaxParticles(t *testing.T) {
	em := ecs.NewEntityManager()
	emitter := &components.EmitterComponent{
		SpawnRate:        600,
		MaxParticles:     5,
		ParticleLifetime: 10,
	}
	newEmitterEntity(t, em, emitter)
	sys := NewExhaustSystem(em)

	emitter.Start()
	sys.Update(0.1)
	require.Len(t, emitter.Particles, 5)
	assert.Less(t, emitter.SpawnAccumulator, 1.0)
}

func TestEmitterComponent_StartStopIdempotent(t *testing.T) {
	e := &components.EmitterComponent{}
	e.Start()
	e.Age = 1
	e.Start()
	assert.Equal(t, 1.0, e.Age, "重复启动不重置")
	assert.True(t, e.IsStarted())

	e.Stop()
	e.Stop()
	assert.False(t, e.IsStarted())

	e.Start()
	assert.Zero(t, e.Age, "重新启动时重置运行时间")
}
