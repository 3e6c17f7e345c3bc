// Package anim 关键帧动画播放器
//
// Player 每帧推进所有正在播放的 Animatable，把轨道值写入目标对象。
// 语义：
//   - Begin 会先停止同一目标上正在播放的全部动画，再开始新动画
//   - BeginDirect 与已有动画并行播放
//   - 动画被停止与自然播放结束一样，都会触发完成回调
//   - 播放结束后目标保持最后一帧的值
package anim

import (
	"log"

	"github.com/ErikKalkoken/go-set"

	"github.com/gonewx/anchorflight/pkg/scheduler"
)

// Animatable 一组同时播放的轨道
type Animatable struct {
	target Target
	tracks []Track
	from   float64
	to     float64
	fps    float64
	onEnd  func()

	elapsed float64
	done    bool
}

// Target 返回被驱动的对象
func (a *Animatable) Target() Target { return a.target }

// frameEpsilon 累计浮点误差容差，避免 239.9999 帧多播一帧
const frameEpsilon = 1e-6

// Frame 返回当前帧
func (a *Animatable) Frame() float64 {
	f := a.from + a.elapsed*a.fps
	if f >= a.to-frameEpsilon {
		return a.to
	}
	return f
}

// Done 动画是否已结束（播放完成或被停止）
func (a *Animatable) Done() bool { return a.done }

// Player 关键帧动画播放器
type Player struct {
	active []*Animatable
	hook   scheduler.HookID
}

// NewPlayer 创建播放器
func NewPlayer() *Player {
	return &Player{}
}

// Attach 把播放器注册为调度器的每帧钩子
// 应在其他依赖动画结果的钩子之前注册，使它们在同一帧内观察到已更新的属性
func (p *Player) Attach(s *scheduler.FrameScheduler) {
	if p.hook != 0 {
		return
	}
	p.hook = s.AddHook("anim.Player", p.Advance)
}

// Begin 停止目标上已有的动画，然后开始播放 tracks
//
// 参数:
//   - target: 被驱动对象
//   - tracks: 属性轨道
//   - from, to: 起止帧
//   - fps: 每秒帧数
//   - onEnd: 完成回调（可为 nil），播放结束或被停止时调用
//
// 返回:
//   - *Animatable: 新动画
func (p *Player) Begin(target Target, tracks []Track, from, to, fps float64, onEnd func()) *Animatable {
	p.Stop(target)
	return p.BeginDirect(target, tracks, from, to, fps, onEnd)
}

// BeginDirect 不打断已有动画，直接开始播放 tracks
func (p *Player) BeginDirect(target Target, tracks []Track, from, to, fps float64, onEnd func()) *Animatable {
	if fps <= 0 {
		log.Printf("[AnimPlayer] 非法 fps=%v（目标 %s），改用 60", fps, target.AnimationKey())
		fps = 60
	}
	if to < from {
		to = from
	}

	a := &Animatable{
		target: target,
		tracks: tracks,
		from:   from,
		to:     to,
		fps:    fps,
		onEnd:  onEnd,
	}
	p.active = append(p.active, a)
	return a
}

// Stop 停止目标上的全部动画并触发它们的完成回调
func (p *Player) Stop(target Target) {
	key := target.AnimationKey()

	var stopped []*Animatable
	remaining := p.active[:0]
	for _, a := range p.active {
		if a.target.AnimationKey() == key {
			a.done = true
			stopped = append(stopped, a)
			continue
		}
		remaining = append(remaining, a)
	}
	clear(p.active[len(remaining):])
	p.active = remaining

	for _, a := range stopped {
		if a.onEnd != nil {
			a.onEnd()
		}
	}
}

// IsAnimating 目标上是否有正在播放的动画
func (p *Player) IsAnimating(target Target) bool {
	key := target.AnimationKey()
	for _, a := range p.active {
		if !a.done && a.target.AnimationKey() == key {
			return true
		}
	}
	return false
}

// ActiveCount 返回正在播放的动画数量
func (p *Player) ActiveCount() int {
	return len(p.active)
}

// Advance 推进 dt 秒
//
// 已到达终止帧的动画写入最后一帧后移出播放列表，随后依次触发完成回调。
// 完成回调中可以安全地开始或停止其他动画。
func (p *Player) Advance(dt float64) {
	snapshot := append([]*Animatable(nil), p.active...)

	var finished set.Set[*Animatable]
	for _, a := range snapshot {
		if a.done {
			continue
		}
		a.elapsed += dt
		frame := a.Frame()
		for _, tr := range a.tracks {
			tr.Apply(a.target, frame)
		}
		if frame >= a.to {
			a.done = true
			finished.Add(a)
		}
	}

	if finished.Size() == 0 {
		return
	}

	remaining := p.active[:0]
	for _, a := range p.active {
		if !finished.Contains(a) {
			remaining = append(remaining, a)
		}
	}
	clear(p.active[len(remaining):])
	p.active = remaining

	// 按开始顺序触发完成回调
	for _, a := range snapshot {
		if finished.Contains(a) && a.onEnd != nil {
			a.onEnd()
		}
	}
}
