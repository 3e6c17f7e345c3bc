package motion

import (
	"log"
	"math"

	"github.com/gonewx/anchorflight/pkg/anim"
	"github.com/gonewx/anchorflight/pkg/curve"
	"github.com/gonewx/anchorflight/pkg/utils"
	"github.com/gonewx/anchorflight/pkg/vmath"
)

// arrivalParam 曲线参数超过该值时直接使用终点朝向，避免末端切线抖动
const arrivalParam = 0.999

// TransitOptions 单次航行的选项
type TransitOptions struct {
	// Duration 航行时长（秒），<= 0 时使用配置的默认时长
	Duration float64
	// Delay 起飞前等待时间（秒）
	Delay float64
	// TravelRadius 航行中镜头拉远的半径，<= 0 时使用配置的默认值
	TravelRadius float64
	// SkipArrivalZoom 到达时不推近镜头（由界面自行控制最终构图）
	SkipArrivalZoom bool
	// SkipArrivalHide 到达时不隐藏飞行器
	SkipArrivalHide bool
	// OnComplete 航行结束回调；无论航行是否被取代都会调用
	OnComplete func()
}

// BeginTransit 开始一次从 start 到 end 的航行
//
// 立即使之前的航行失效（编号加一），移除滑行钩子和上一次航行的延迟任务。
// 有起飞延迟时，到期后再次核对编号，期间若有新航行或取消则不再起飞。
//
// 返回:
//   - uint64: 本次航行编号
func (c *Controller) BeginTransit(start, end curve.Anchor, opts TransitOptions) uint64 {
	c.sessionID++
	id := c.sessionID

	if c.transiting {
		c.metrics.add(c.ctx, c.metrics.superseded)
	}
	c.metrics.add(c.ctx, c.metrics.started)

	entrySpeed := c.entrySpeed()
	c.stopDrag()
	c.cancelTasks()
	c.transiting = true

	if opts.Duration <= 0 {
		opts.Duration = c.cfg.Duration
	}

	// 延迟起飞时滑行已停止，起步速度在起飞那一刻重新读取
	if opts.Delay > 0 {
		c.startTask = c.sched.After(opts.Delay, "transit.start", func() {
			c.startTask = 0
			c.executeTransit(id, start, end, opts, c.entrySpeed())
		})
		return id
	}

	c.executeTransit(id, start, end, opts, entrySpeed)
	return id
}

// executeTransit 构建航线并开始播放
func (c *Controller) executeTransit(id uint64, start, end curve.Anchor, opts TransitOptions, entrySpeed float64) {
	if id != c.sessionID {
		return
	}

	if !validAnchor(start) || !validAnchor(end) {
		log.Printf("[TransitPlayer] 航行 #%d 的锚点无效（%q → %q），不移动", id, start.Name, end.Name)
		c.transiting = false
		if opts.OnComplete != nil {
			opts.OnComplete()
		}
		return
	}

	SetVisibility(c.craft.Meshes(), c.emitter, true)

	_, path := curve.Build(start, end, c.cfg.SampleCount)
	c.path = path
	c.destination = end

	duration := opts.Duration
	peakSpeed := path.Length() / duration * c.cfg.PeakSpeedFactor
	ratio := 0.0
	if entrySpeed > c.cfg.MinBlendSpeed && peakSpeed > 0 {
		ratio = math.Min(entrySpeed/peakSpeed, 1)
	}

	c.startTracker(id)

	fps := c.cfg.FPS
	totalFrames := fps * duration
	c.animator.Begin(c.craft, c.buildCraftTracks(path, end, ratio, totalFrames), 0, totalFrames, fps, func() {
		c.completeTransit(id, opts)
	})
	// 被打断动画的完成回调里可能已经开始了新的航行
	if id != c.sessionID {
		return
	}

	log.Printf("[TransitPlayer] 航行 #%d: %q → %q，长度 %.2f，时长 %.2fs，起步速度比 %.2f",
		id, start.Name, end.Name, path.Length(), duration, ratio)

	if c.camera != nil {
		c.syncCamera(id, end, duration, opts)
	}
}

// buildCraftTracks 生成位置与朝向关键帧
//
// 帧时间线性分布，曲线参数按 EaseTransit 采样：
// 起步时延续当前速度，到达时平滑减速。
func (c *Controller) buildCraftTracks(path *curve.SampledCurve, end curve.Anchor, ratio, totalFrames float64) []anim.Track {
	n := c.cfg.KeyframeCount
	position := &anim.Vec3Track{Path: PropPosition, Keys: make([]anim.Key[vmath.Vec3], 0, n+1)}
	rotation := &anim.QuatTrack{Path: PropRotation, Keys: make([]anim.Key[vmath.Quat], 0, n+1)}

	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		frame := t * totalFrames
		param := utils.EaseTransit(t, ratio)

		position.Keys = append(position.Keys, anim.Key[vmath.Vec3]{Frame: frame, Value: path.At(param)})
		rotation.Keys = append(rotation.Keys, anim.Key[vmath.Quat]{
			Frame: frame,
			Value: OrientationAt(path, end, param, c.cfg.RotationBlendExponent),
		})
	}

	return []anim.Track{position, rotation}
}

// OrientationAt 计算曲线参数 param 处的飞行器朝向
//
// 先取沿切线方向的朝向，再按 param^exponent 向终点朝向球面插值，
// 使飞行器在航程末段才转向最终朝向。
func OrientationAt(path *curve.SampledCurve, end curve.Anchor, param, exponent float64) vmath.Quat {
	tangent := end.Forward
	if param < arrivalParam {
		tangent = path.TangentAt(param)
	}
	look := vmath.QuatLookRotation(tangent, vmath.Up)
	return vmath.QuatSlerpShortest(look, end.Orientation, math.Pow(vmath.Clamp(param, 0, 1), exponent))
}

// completeTransit 航行动画结束（播放完成或被停止）
//
// 仅当航行仍是当前航行时清理速度追踪；
// 仅当仍是当前航行、未要求保留显示、且仍处于引导模式时隐藏飞行器。
// OnComplete 总会被调用。
func (c *Controller) completeTransit(id uint64, opts TransitOptions) {
	current := id == c.sessionID

	if current {
		c.stopTracker()
		c.resetSample()
		c.transiting = false
		c.path = nil
		c.emitGuided(false)
		c.emitSpeed(0)
		c.metrics.add(c.ctx, c.metrics.completed)
		log.Printf("[TransitPlayer] 航行 #%d 到达 %q", id, c.destination.Name)
	}

	if current && !opts.SkipArrivalHide && c.guidedActive() {
		SetVisibility(c.craft.Meshes(), c.emitter, false)
	}

	if opts.OnComplete != nil {
		opts.OnComplete()
	}
}

// validAnchor 锚点数据是否可用于构建航线
func validAnchor(a curve.Anchor) bool {
	return vmath.IsFinite(a.Position) && vmath.IsFinite(a.Forward) && vmath.IsFiniteQuat(a.Orientation)
}
