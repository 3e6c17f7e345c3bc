package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/anchorflight/pkg/scheduler"
	"github.com/gonewx/anchorflight/pkg/utils"
	"github.com/gonewx/anchorflight/pkg/vmath"
)

// fakeTarget 记录写入的属性
type fakeTarget struct {
	key    string
	floats map[string]float64
	vecs   map[string]vmath.Vec3
	quats  map[string]vmath.Quat
}

func newFakeTarget(key string) *fakeTarget {
	return &fakeTarget{
		key:    key,
		floats: map[string]float64{},
		vecs:   map[string]vmath.Vec3{},
		quats:  map[string]vmath.Quat{},
	}
}

func (f *fakeTarget) AnimationKey() string { return f.key }

func (f *fakeTarget) SetFloat(path string, v float64) bool {
	f.floats[path] = v
	return true
}

func (f *fakeTarget) SetVec3(path string, v vmath.Vec3) bool {
	f.vecs[path] = v
	return true
}

func (f *fakeTarget) SetQuat(path string, v vmath.Quat) bool {
	f.quats[path] = v
	return true
}

const dt = 1.0 / 60

func TestFloatTrack_ValueAt(t *testing.T) {
	tests := []struct {
		name     string
		easing   utils.EasingFunc
		frame    float64
		expected float64
	}{
		{"线性-起点", nil, 0, 10},
		{"线性-中点", nil, 30, 15},
		{"线性-超出终点", nil, 90, 20},
		{"线性-早于起点", nil, -5, 10},
		{"缓入缓出-四分之一", utils.EaseInOutCubic, 15, 10.625},
		{"缓出-中点", utils.EaseOutCubic, 30, 18.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewFloatTrack("radius", 10, 20, 60, tt.easing)
			assert.InDelta(t, tt.expected, tr.ValueAt(tt.frame), 1e-9)
		})
	}
}

func TestVec3Track_MultiKey(t *testing.T) {
	tr := &Vec3Track{Path: "position", Keys: []Key[vmath.Vec3]{
		{Frame: 0, Value: vmath.Vec3{0, 0, 0}},
		{Frame: 10, Value: vmath.Vec3{10, 0, 0}},
		{Frame: 20, Value: vmath.Vec3{10, 10, 0}},
	}}

	assert.Equal(t, vmath.Vec3{5, 0, 0}, tr.ValueAt(5))
	assert.Equal(t, vmath.Vec3{10, 0, 0}, tr.ValueAt(10))
	assert.Equal(t, vmath.Vec3{10, 5, 0}, tr.ValueAt(15))
	assert.Equal(t, vmath.Vec3{10, 10, 0}, tr.ValueAt(99))
}

func TestQuatTrack_Slerp(t *testing.T) {
	tr := &QuatTrack{Path: "rotation", Keys: []Key[vmath.Quat]{
		{Frame: 0, Value: vmath.QuatFromEulerDegrees(0, 0, 0)},
		{Frame: 10, Value: vmath.QuatFromEulerDegrees(0, 90, 0)},
	}}

	mid := vmath.Forward(tr.ValueAt(5))
	want := vmath.Forward(vmath.QuatFromEulerDegrees(0, 45, 0))
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], mid[i], 1e-9)
	}
}

func TestPlayer_PlaysToEndAndHolds(t *testing.T) {
	p := NewPlayer()
	target := newFakeTarget("camera")
	ended := 0

	p.Begin(target, []Track{NewFloatTrack("alpha", 0, 1, 60, nil)}, 0, 60, 60, func() { ended++ })
	require.True(t, p.IsAnimating(target))

	for i := 0; i < 30; i++ {
		p.Advance(dt)
	}
	assert.InDelta(t, 0.5, target.floats["alpha"], 1e-9)
	assert.Equal(t, 0, ended)

	for i := 0; i < 30; i++ {
		p.Advance(dt)
	}
	assert.Equal(t, 1.0, target.floats["alpha"])
	assert.Equal(t, 1, ended, "第 60 帧到达终点时恰好完成一次")
	assert.False(t, p.IsAnimating(target))

	p.Advance(dt)
	assert.Equal(t, 1, ended)
	assert.Equal(t, 0, p.ActiveCount())
}

func TestPlayer_BeginStopsExistingAndFiresCompletion(t *testing.T) {
	p := NewPlayer()
	target := newFakeTarget("ship")
	var events []string

	first := p.Begin(target, []Track{NewFloatTrack("x", 0, 1, 60, nil)}, 0, 60, 60, func() { events = append(events, "first") })
	p.Advance(dt)

	second := p.Begin(target, []Track{NewFloatTrack("x", 5, 6, 60, nil)}, 0, 60, 60, func() { events = append(events, "second") })

	assert.Equal(t, []string{"first"}, events, "被新动画打断时触发完成回调")
	assert.True(t, first.Done())
	assert.False(t, second.Done())
	assert.Equal(t, 1, p.ActiveCount())
}

func TestPlayer_BeginDirectRunsAlongside(t *testing.T) {
	p := NewPlayer()
	cam := newFakeTarget("camera")

	p.Begin(cam, []Track{NewFloatTrack("alpha", 0, 1, 60, nil)}, 0, 60, 60, nil)
	p.BeginDirect(cam, []Track{NewFloatTrack("radius", 10, 20, 15, nil)}, 0, 15, 60, nil)
	assert.Equal(t, 2, p.ActiveCount())

	for i := 0; i < 15; i++ {
		p.Advance(dt)
	}
	assert.Equal(t, 20.0, cam.floats["radius"])
	assert.InDelta(t, 0.25, cam.floats["alpha"], 1e-9)
	assert.Equal(t, 1, p.ActiveCount())
}

func TestPlayer_StopOnlyAffectsTarget(t *testing.T) {
	p := NewPlayer()
	ship := newFakeTarget("ship")
	cam := newFakeTarget("camera")
	shipEnded, camEnded := false, false

	p.Begin(ship, []Track{NewFloatTrack("x", 0, 1, 60, nil)}, 0, 60, 60, func() { shipEnded = true })
	p.Begin(cam, []Track{NewFloatTrack("alpha", 0, 1, 60, nil)}, 0, 60, 60, func() { camEnded = true })

	p.Stop(ship)
	assert.True(t, shipEnded)
	assert.False(t, camEnded)
	assert.False(t, p.IsAnimating(ship))
	assert.True(t, p.IsAnimating(cam))
}

func TestPlayer_CompletionMayBeginNewAnimation(t *testing.T) {
	p := NewPlayer()
	ship := newFakeTarget("ship")
	chained := false

	p.Begin(ship, []Track{NewFloatTrack("x", 0, 1, 2, nil)}, 0, 2, 60, func() {
		p.Begin(ship, []Track{NewFloatTrack("x", 1, 2, 2, nil)}, 0, 2, 60, func() { chained = true })
	})

	for i := 0; i < 4; i++ {
		p.Advance(dt)
	}
	assert.True(t, chained)
	assert.Equal(t, 2.0, ship.floats["x"])
}

func TestPlayer_AttachToScheduler(t *testing.T) {
	s := scheduler.NewFrameScheduler(60)
	p := NewPlayer()
	p.Attach(s)
	p.Attach(s) // 重复注册无效
	assert.Equal(t, 1, s.HookCount())

	ship := newFakeTarget("ship")
	p.Begin(ship, []Track{&Vec3Track{Path: "position", Keys: []Key[vmath.Vec3]{
		{Frame: 0, Value: vmath.Vec3{0, 0, 0}},
		{Frame: 60, Value: vmath.Vec3{0, 0, 60}},
	}}}, 0, 60, 60, nil)

	for i := 0; i < 60; i++ {
		s.Tick(dt)
	}
	assert.Equal(t, vmath.Vec3{0, 0, 60}, ship.vecs["position"])
}
