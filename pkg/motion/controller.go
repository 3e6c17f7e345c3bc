// Package motion 引导导航的运动核心
//
// Controller 负责：
//   - 沿贝塞尔曲线播放航行（位置与朝向关键帧）
//   - 每帧追踪飞行器速度，使中途改道时可以延续当前速度
//   - 同步追踪镜头的角度与远近
//   - 取消航行时按指数阻尼滑行到静止
//
// 所有异步回调（每帧钩子、延迟任务、动画完成）都捕获创建时的航行编号，
// 执行前与当前编号比较，过期则静默丢弃。
package motion

import (
	"context"
	"time"

	"github.com/maniartech/signals"
	"golang.org/x/time/rate"

	"github.com/gonewx/anchorflight/pkg/config"
	"github.com/gonewx/anchorflight/pkg/curve"
	"github.com/gonewx/anchorflight/pkg/scheduler"
	"github.com/gonewx/anchorflight/pkg/vmath"
)

// Controller 运动控制器
//
// 单线程使用：所有方法与回调都在帧调度器所在的线程上执行。
type Controller struct {
	sched    *scheduler.FrameScheduler
	animator Animator
	craft    Craft
	emitter  Emitter
	camera   Camera
	mode     ModeProvider
	cfg      *config.MotionConfig
	ctx      context.Context

	// sessionID 航行编号，判断回调是否过期的唯一依据
	sessionID  uint64
	transiting bool

	// 速度采样
	lastPos    vmath.Vec3
	hasLastPos bool
	velocity   vmath.Vec3
	speed      float64

	trackerHook  scheduler.HookID
	dragHook     scheduler.HookID
	dragVelocity vmath.Vec3
	startTask    scheduler.TaskID
	zoomInTask   scheduler.TaskID

	path        *curve.SampledCurve
	destination curve.Anchor

	// SpeedSignal 每帧上报速度（航行中为追踪速度，滑行中为阻尼速度）
	SpeedSignal signals.Signal[float64]
	// GuidedActiveSignal 引导航行开始/结束
	GuidedActiveSignal signals.Signal[bool]

	metrics  *transitMetrics
	speedLog rate.Sometimes
}

// Option 控制器可选配置
type Option func(*Controller)

// WithEmitter 设置尾焰发射器
func WithEmitter(e Emitter) Option {
	return func(c *Controller) { c.emitter = e }
}

// WithCamera 设置追踪镜头；不设置时跳过全部镜头动画
func WithCamera(cam Camera) Option {
	return func(c *Controller) { c.camera = cam }
}

// WithModeProvider 设置导航模式提供者；不设置时视为始终处于引导模式
func WithModeProvider(m ModeProvider) Option {
	return func(c *Controller) { c.mode = m }
}

// WithConfig 设置运动参数
func WithConfig(cfg *config.MotionConfig) Option {
	return func(c *Controller) {
		if cfg != nil {
			c.cfg = cfg
		}
	}
}

// WithContext 设置信号上报使用的 context
func WithContext(ctx context.Context) Option {
	return func(c *Controller) { c.ctx = ctx }
}

// NewController 创建运动控制器
//
// 参数:
//   - sched: 帧调度器（速度追踪、拖拽、延迟任务都注册在这里）
//   - animator: 关键帧播放器，应早于控制器注册到同一调度器
//   - craft: 被驱动的飞行器
//   - opts: 可选配置
func NewController(sched *scheduler.FrameScheduler, animator Animator, craft Craft, opts ...Option) *Controller {
	c := &Controller{
		sched:              sched,
		animator:           animator,
		craft:              craft,
		cfg:                config.DefaultMotionConfig(),
		ctx:                context.Background(),
		SpeedSignal:        signals.NewSync[float64](),
		GuidedActiveSignal: signals.NewSync[bool](),
		metrics:            newTransitMetrics(),
		speedLog:           rate.Sometimes{Interval: time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SessionID 返回当前航行编号
func (c *Controller) SessionID() uint64 {
	return c.sessionID
}

// CurrentSpeed 返回飞行器当前速度
// 航行中为追踪速度，滑行中为阻尼速度，与 SpeedSignal 上报的值一致
func (c *Controller) CurrentSpeed() float64 {
	if c.IsDragging() {
		return c.dragVelocity.Len()
	}
	return c.speed
}

// CurrentVelocity 返回最近一帧追踪到的速度向量
func (c *Controller) CurrentVelocity() vmath.Vec3 {
	return c.velocity
}

// IsTransiting 是否有航行正在进行（包括等待起飞延迟）
func (c *Controller) IsTransiting() bool {
	return c.transiting
}

// IsDragging 是否正在滑行减速
func (c *Controller) IsDragging() bool {
	return c.dragHook != 0
}

// DragSpeed 返回滑行速度，未滑行时为 0
func (c *Controller) DragSpeed() float64 {
	if !c.IsDragging() {
		return 0
	}
	return c.dragVelocity.Len()
}

// Path 返回当前航线；没有航行时为 nil
func (c *Controller) Path() *curve.SampledCurve {
	return c.path
}

// Destination 返回最近一次航行的目的地
func (c *Controller) Destination() curve.Anchor {
	return c.destination
}

// Config 返回运动参数
func (c *Controller) Config() *config.MotionConfig {
	return c.cfg
}

// CurrentAnchor 以飞行器当前位姿构造锚点，用于中途改道
//
// 曲线沿 -Forward 离开起点，因此运动中的飞行器取速度反方向作为 Forward，
// 使新航线沿当前运动方向延伸。
func (c *Controller) CurrentAnchor(name string) curve.Anchor {
	a := curve.NewAnchor(name, c.craft.Position(), c.craft.Rotation())

	v := c.velocity
	if c.IsDragging() {
		v = c.dragVelocity
	}
	if v.Len() > c.cfg.MinBlendSpeed {
		a = a.WithForward(v.Mul(-1))
	}
	return a
}

// entrySpeed 新航行起步时延续的速度
// 航行中取追踪速度，滑行中取阻尼速度
func (c *Controller) entrySpeed() float64 {
	if c.IsDragging() {
		return c.dragVelocity.Len()
	}
	return c.speed
}

// guidedActive 导航模式是否仍为引导模式
func (c *Controller) guidedActive() bool {
	return c.mode == nil || c.mode.GuidedActive()
}

func (c *Controller) emitSpeed(v float64) {
	c.SpeedSignal.Emit(c.ctx, v)
}

func (c *Controller) emitGuided(active bool) {
	c.GuidedActiveSignal.Emit(c.ctx, active)
}

// cancelTasks 取消起飞延迟与到达推近任务
func (c *Controller) cancelTasks() {
	if c.startTask != 0 {
		c.sched.CancelTask(c.startTask)
		c.startTask = 0
	}
	if c.zoomInTask != 0 {
		c.sched.CancelTask(c.zoomInTask)
		c.zoomInTask = 0
	}
}
