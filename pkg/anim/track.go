package anim

import (
	"sort"

	"github.com/gonewx/anchorflight/pkg/utils"
	"github.com/gonewx/anchorflight/pkg/vmath"
)

// Target 可被关键帧动画驱动的对象
//
// 属性按路径寻址（如 "position"、"radius"）；对象不认识的路径返回 false 并被忽略。
type Target interface {
	// AnimationKey 同一对象的所有动画共享同一个 key
	AnimationKey() string
	SetFloat(path string, v float64) bool
	SetVec3(path string, v vmath.Vec3) bool
	SetQuat(path string, v vmath.Quat) bool
}

// Track 一条属性轨道
type Track interface {
	// Property 返回属性路径
	Property() string
	// Apply 将第 frame 帧的值写入目标
	Apply(target Target, frame float64)
}

// Key 一个关键帧
type Key[V any] struct {
	Frame float64
	Value V
}

// segment 在有序关键帧中查找 frame 所在区间
// 返回区间起止下标与区间内的线性进度；frame 超出范围时钳制到首/尾关键帧
func segment(frames int, frameAt func(int) float64, frame float64) (lo, hi int, t float64) {
	if frames == 1 || frame <= frameAt(0) {
		return 0, 0, 0
	}
	last := frames - 1
	if frame >= frameAt(last) {
		return last, last, 0
	}

	hi = sort.Search(frames, func(i int) bool { return frameAt(i) > frame })
	lo = hi - 1
	span := frameAt(hi) - frameAt(lo)
	if span <= 0 {
		return hi, hi, 0
	}
	return lo, hi, (frame - frameAt(lo)) / span
}

// FloatTrack 标量轨道
// Easing 作用于每个关键帧区间内的进度；为 nil 时线性插值
type FloatTrack struct {
	Path   string
	Keys   []Key[float64]
	Easing utils.EasingFunc
}

// NewFloatTrack 创建两关键帧的标量轨道（from 帧 0 → to 帧 frames）
func NewFloatTrack(path string, from, to, frames float64, easing utils.EasingFunc) *FloatTrack {
	return &FloatTrack{
		Path:   path,
		Keys:   []Key[float64]{{Frame: 0, Value: from}, {Frame: frames, Value: to}},
		Easing: easing,
	}
}

// Property 实现 Track
func (tr *FloatTrack) Property() string { return tr.Path }

// ValueAt 计算第 frame 帧的值
func (tr *FloatTrack) ValueAt(frame float64) float64 {
	if len(tr.Keys) == 0 {
		return 0
	}
	lo, hi, t := segment(len(tr.Keys), func(i int) float64 { return tr.Keys[i].Frame }, frame)
	if tr.Easing != nil && lo != hi {
		t = tr.Easing(t)
	}
	return utils.Lerp(tr.Keys[lo].Value, tr.Keys[hi].Value, t)
}

// Apply 实现 Track
func (tr *FloatTrack) Apply(target Target, frame float64) {
	if len(tr.Keys) == 0 {
		return
	}
	target.SetFloat(tr.Path, tr.ValueAt(frame))
}

// Vec3Track 向量轨道，关键帧之间线性插值
type Vec3Track struct {
	Path string
	Keys []Key[vmath.Vec3]
}

// Property 实现 Track
func (tr *Vec3Track) Property() string { return tr.Path }

// ValueAt 计算第 frame 帧的值
func (tr *Vec3Track) ValueAt(frame float64) vmath.Vec3 {
	if len(tr.Keys) == 0 {
		return vmath.Zero
	}
	lo, hi, t := segment(len(tr.Keys), func(i int) float64 { return tr.Keys[i].Frame }, frame)
	return vmath.LerpVec3(tr.Keys[lo].Value, tr.Keys[hi].Value, t)
}

// Apply 实现 Track
func (tr *Vec3Track) Apply(target Target, frame float64) {
	if len(tr.Keys) == 0 {
		return
	}
	target.SetVec3(tr.Path, tr.ValueAt(frame))
}

// QuatTrack 旋转轨道，关键帧之间球面插值
type QuatTrack struct {
	Path string
	Keys []Key[vmath.Quat]
}

// Property 实现 Track
func (tr *QuatTrack) Property() string { return tr.Path }

// ValueAt 计算第 frame 帧的值
func (tr *QuatTrack) ValueAt(frame float64) vmath.Quat {
	if len(tr.Keys) == 0 {
		return vmath.Quat{W: 1}
	}
	lo, hi, t := segment(len(tr.Keys), func(i int) float64 { return tr.Keys[i].Frame }, frame)
	if lo == hi {
		return tr.Keys[lo].Value
	}
	return vmath.QuatSlerpShortest(tr.Keys[lo].Value, tr.Keys[hi].Value, t)
}

// Apply 实现 Track
func (tr *QuatTrack) Apply(target Target, frame float64) {
	if len(tr.Keys) == 0 {
		return
	}
	target.SetQuat(tr.Path, tr.ValueAt(frame))
}
