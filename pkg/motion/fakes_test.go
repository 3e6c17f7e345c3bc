package motion

import (
	"context"
	"testing"

	"github.com/gonewx/anchorflight/pkg/anim"
	"github.com/gonewx/anchorflight/pkg/config"
	"github.com/gonewx/anchorflight/pkg/curve"
	"github.com/gonewx/anchorflight/pkg/scheduler"
	"github.com/gonewx/anchorflight/pkg/vmath"
)

const tick = 1.0 / 60

type fakeMesh struct {
	visible bool
	shows   int
	hides   int
}

func (m *fakeMesh) SetVisible(v bool) {
	m.visible = v
	if v {
		m.shows++
	} else {
		m.hides++
	}
}

type fakeEmitter struct {
	started bool
	starts  int
	stops   int
}

func (e *fakeEmitter) Start() {
	e.started = true
	e.starts++
}

func (e *fakeEmitter) Stop() {
	e.started = false
	e.stops++
}

func (e *fakeEmitter) IsStarted() bool { return e.started }

type fakeCraft struct {
	pos    vmath.Vec3
	rot    vmath.Quat
	meshes []*fakeMesh
}

func newFakeCraft() *fakeCraft {
	return &fakeCraft{
		rot:    vmath.Quat{W: 1},
		meshes: []*fakeMesh{{}, {}},
	}
}

func (c *fakeCraft) AnimationKey() string { return "craft" }

func (c *fakeCraft) SetFloat(string, float64) bool { return false }

func (c *fakeCraft) SetVec3(path string, v vmath.Vec3) bool {
	if path != PropPosition {
		return false
	}
	c.pos = v
	return true
}

func (c *fakeCraft) SetQuat(path string, q vmath.Quat) bool {
	if path != PropRotation {
		return false
	}
	c.rot = q
	return true
}

func (c *fakeCraft) Position() vmath.Vec3     { return c.pos }
func (c *fakeCraft) SetPosition(p vmath.Vec3) { c.pos = p }
func (c *fakeCraft) Rotation() vmath.Quat     { return c.rot }

func (c *fakeCraft) Meshes() []Mesh {
	out := make([]Mesh, len(c.meshes))
	for i, m := range c.meshes {
		out[i] = m
	}
	return out
}

func (c *fakeCraft) hides() int {
	n := 0
	for _, m := range c.meshes {
		n += m.hides
	}
	return n
}

func (c *fakeCraft) visible() bool {
	for _, m := range c.meshes {
		if !m.visible {
			return false
		}
	}
	return true
}

type fakeCamera struct {
	alpha, beta, radius float64
	lower, upper        *float64
}

func (c *fakeCamera) AnimationKey() string { return "camera" }

func (c *fakeCamera) SetFloat(path string, v float64) bool {
	switch path {
	case PropAlpha:
		c.alpha = v
	case PropBeta:
		c.beta = v
	case PropRadius:
		c.radius = v
	case PropLowerRadiusLimit:
		c.lower = &v
	case PropUpperRadiusLimit:
		c.upper = &v
	default:
		return false
	}
	return true
}

func (c *fakeCamera) SetVec3(string, vmath.Vec3) bool { return false }
func (c *fakeCamera) SetQuat(string, vmath.Quat) bool { return false }

func (c *fakeCamera) Alpha() float64  { return c.alpha }
func (c *fakeCamera) Beta() float64   { return c.beta }
func (c *fakeCamera) Radius() float64 { return c.radius }

func (c *fakeCamera) LowerRadiusLimit() (float64, bool) {
	if c.lower == nil {
		return 0, false
	}
	return *c.lower, true
}

func (c *fakeCamera) UpperRadiusLimit() (float64, bool) {
	if c.upper == nil {
		return 0, false
	}
	return *c.upper, true
}

type fakeMode struct{ guided bool }

func (m *fakeMode) GuidedActive() bool { return m.guided }

// rig 一套完整的测试装配：调度器、播放器、控制器与假协作者
type rig struct {
	sched   *scheduler.FrameScheduler
	player  *anim.Player
	craft   *fakeCraft
	emitter *fakeEmitter
	camera  *fakeCamera
	mode    *fakeMode
	ctrl    *Controller

	speeds []float64
	guided []bool
}

type rigOption func(*rig, *[]Option)

func withoutCamera() rigOption {
	return func(r *rig, opts *[]Option) { r.camera = nil }
}

func withMode(guided bool) rigOption {
	return func(r *rig, opts *[]Option) {
		r.mode = &fakeMode{guided: guided}
		*opts = append(*opts, WithModeProvider(r.mode))
	}
}

func newRig(t *testing.T, ropts ...rigOption) *rig {
	t.Helper()
	r := &rig{
		sched:   scheduler.NewFrameScheduler(60),
		player:  anim.NewPlayer(),
		craft:   newFakeCraft(),
		emitter: &fakeEmitter{},
		camera:  &fakeCamera{radius: 10},
	}
	r.player.Attach(r.sched)

	opts := []Option{WithEmitter(r.emitter), WithConfig(config.DefaultMotionConfig())}
	for _, o := range ropts {
		o(r, &opts)
	}
	if r.camera != nil {
		opts = append(opts, WithCamera(r.camera))
	}

	r.ctrl = NewController(r.sched, r.player, r.craft, opts...)
	r.ctrl.SpeedSignal.AddListener(func(_ context.Context, v float64) {
		r.speeds = append(r.speeds, v)
	}, "test.speed")
	r.ctrl.GuidedActiveSignal.AddListener(func(_ context.Context, v bool) {
		r.guided = append(r.guided, v)
	}, "test.guided")
	return r
}

func (r *rig) run(ticks int) {
	for i := 0; i < ticks; i++ {
		r.sched.Tick(tick)
	}
}

// anchorZ 位于 z 轴上、朝向 -Z 的锚点，航线沿 +Z 直线展开
func anchorZ(name string, z float64) curve.Anchor {
	return curve.NewAnchor(name, vmath.Vec3{0, 0, z}, vmath.QuatFromEulerDegrees(0, 180, 0))
}
