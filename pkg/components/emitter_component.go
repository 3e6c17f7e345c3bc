package components

import "github.com/gonewx/anchorflight/pkg/vmath"

// ExhaustParticle 一个尾焰粒子
type ExhaustParticle struct {
	Position vmath.Vec3 // 世界坐标
	Velocity vmath.Vec3 // 单位/秒
	Age      float64    // 已存在时间（秒）
	Lifetime float64    // 最大存在时间（秒）
}

// EmitterComponent 尾焰粒子发射器
//
// 发射器只在 Active 时生成新粒子；停止后已有粒子继续衰老直到消失。
// Start/Stop 幂等，可以在任意状态下重复调用。
type EmitterComponent struct {
	// Active 发射器是否正在生成粒子
	Active bool
	// Age 发射器本次启动后运行的时间（秒）
	Age float64

	// SpawnRate 每秒生成的粒子数
	SpawnRate float64
	// MaxParticles 同时存在的粒子上限
	MaxParticles int
	// ParticleLifetime 粒子存在时间（秒）
	ParticleLifetime float64
	// EjectSpeed 粒子相对飞行器向后喷出的速度（单位/秒）
	EjectSpeed float64
	// Offset 发射点相对飞行器的局部偏移（局部 -Z 为尾部）
	Offset vmath.Vec3

	// Particles 当前存活的粒子
	Particles []ExhaustParticle
	// SpawnAccumulator 未满一个粒子的生成量
	SpawnAccumulator float64
	// TotalLaunched 累计生成的粒子数
	TotalLaunched int
}

// Start 开始发射；已在发射时什么也不做
func (e *EmitterComponent) Start() {
	if e.Active {
		return
	}
	e.Active = true
	e.Age = 0
	e.SpawnAccumulator = 0
}

// Stop 停止发射；已停止时什么也不做
func (e *EmitterComponent) Stop() {
	e.Active = false
}

// IsStarted 发射器是否正在发射
func (e *EmitterComponent) IsStarted() bool {
	return e.Active
}
