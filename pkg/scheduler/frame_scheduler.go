// Package scheduler 提供单线程、逐帧驱动的回调调度器
//
// 所有持续逻辑（关键帧播放、速度追踪、拖拽减速）都注册为每帧钩子；
// 延迟触发（起飞延迟、到达推近）注册为以帧数为截止期的任务。
// 调度器不使用真实计时器，测试时只需用固定步长调用 Tick。
package scheduler

import (
	"cmp"
	"log"
	"math"
	"slices"

	"github.com/ErikKalkoken/go-set"
)

// HookID 每帧钩子的唯一标识，0 保留为无效值
type HookID uint64

// TaskID 延迟任务的唯一标识，0 保留为无效值
type TaskID uint64

// HookFunc 每帧钩子，dt 为本帧时长（秒）
type HookFunc func(dt float64)

type hook struct {
	id   HookID
	name string
	fn   HookFunc
}

type task struct {
	id       TaskID
	name     string
	dueFrame uint64
	fn       func()
}

// FrameScheduler 逐帧调度器
//
// 执行顺序（每次 Tick）：
//  1. 按注册顺序执行 Tick 开始前已注册的钩子
//  2. 按截止帧、注册顺序执行到期任务
//
// Tick 中移除的钩子若尚未执行则本帧不再执行；Tick 中新增的钩子从下一帧开始执行。
type FrameScheduler struct {
	tickDelta float64 // 标称帧时长（秒），用于把延迟换算为帧数

	hooks   []*hook
	tasks   map[TaskID]*task
	removed set.Set[HookID] // 本帧内被移除的钩子

	nextID    uint64
	frame     uint64
	elapsed   float64
	lastDelta float64
}

// NewFrameScheduler 创建调度器
//
// 参数:
//   - tps: 每秒帧数（<= 0 时使用 60）
func NewFrameScheduler(tps int) *FrameScheduler {
	if tps <= 0 {
		tps = 60
	}
	return &FrameScheduler{
		tickDelta: 1.0 / float64(tps),
		tasks:     make(map[TaskID]*task),
	}
}

// TickDelta 返回标称帧时长（秒）
func (s *FrameScheduler) TickDelta() float64 {
	return s.tickDelta
}

// AddHook 注册每帧钩子
func (s *FrameScheduler) AddHook(name string, fn HookFunc) HookID {
	s.nextID++
	id := HookID(s.nextID)
	s.hooks = append(s.hooks, &hook{id: id, name: name, fn: fn})
	return id
}

// RemoveHook 移除钩子；id 无效或已移除时什么也不做
func (s *FrameScheduler) RemoveHook(id HookID) {
	if id == 0 {
		return
	}
	idx := slices.IndexFunc(s.hooks, func(h *hook) bool { return h.id == id })
	if idx < 0 {
		return
	}
	s.hooks = slices.Delete(s.hooks, idx, idx+1)
	s.removed.Add(id)
}

// HasHook 检查钩子是否仍在注册中
func (s *FrameScheduler) HasHook(id HookID) bool {
	return slices.ContainsFunc(s.hooks, func(h *hook) bool { return h.id == id })
}

// HookCount 返回当前注册的钩子数量
func (s *FrameScheduler) HookCount() int {
	return len(s.hooks)
}

// After 在 delay 秒后执行 fn
//
// 截止期以帧为单位：ceil(delay / tickDelta)，至少为下一帧。
// 任务在截止帧的钩子全部执行完之后运行。
func (s *FrameScheduler) After(delay float64, name string, fn func()) TaskID {
	ticks := uint64(1)
	if delay > 0 && !math.IsInf(delay, 1) {
		// 减去一个极小量，避免 3.0/(1/60) 这类浮点误差多算一帧
		ticks = max(ticks, uint64(math.Ceil(delay/s.tickDelta-1e-9)))
	}

	s.nextID++
	id := TaskID(s.nextID)
	s.tasks[id] = &task{id: id, name: name, dueFrame: s.frame + ticks, fn: fn}
	return id
}

// CancelTask 取消尚未执行的任务
func (s *FrameScheduler) CancelTask(id TaskID) {
	delete(s.tasks, id)
}

// HasTask 检查任务是否仍在等待执行
func (s *FrameScheduler) HasTask(id TaskID) bool {
	_, ok := s.tasks[id]
	return ok
}

// Tick 推进一帧
//
// 参数:
//   - dt: 本帧时长（秒），<= 0 时使用标称帧时长
func (s *FrameScheduler) Tick(dt float64) {
	if dt <= 0 || math.IsNaN(dt) {
		dt = s.tickDelta
	}
	s.frame++
	s.elapsed += dt
	s.lastDelta = dt

	snapshot := slices.Clone(s.hooks)
	for _, h := range snapshot {
		if s.removed.Contains(h.id) {
			continue
		}
		h.fn(dt)
	}
	s.removed.Clear()

	s.runDueTasks()
}

func (s *FrameScheduler) runDueTasks() {
	due := make([]*task, 0)
	for _, t := range s.tasks {
		if t.dueFrame <= s.frame {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return
	}

	slices.SortFunc(due, func(a, b *task) int {
		if c := cmp.Compare(a.dueFrame, b.dueFrame); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})

	for _, t := range due {
		// 前面的任务可能取消了后面的任务
		if _, ok := s.tasks[t.id]; !ok {
			continue
		}
		delete(s.tasks, t.id)
		if t.fn == nil {
			log.Printf("[FrameScheduler] 任务 %q 没有回调，已跳过", t.name)
			continue
		}
		t.fn()
	}
}

// DeltaTime 返回上一帧时长（毫秒）
func (s *FrameScheduler) DeltaTime() float64 {
	return s.lastDelta * 1000
}

// Frame 返回已执行的帧数
func (s *FrameScheduler) Frame() uint64 {
	return s.frame
}

// Now 返回累计运行时间（秒）
func (s *FrameScheduler) Now() float64 {
	return s.elapsed
}
