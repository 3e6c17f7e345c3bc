package motion

import (
	"math"

	"github.com/gonewx/anchorflight/pkg/anim"
	"github.com/gonewx/anchorflight/pkg/curve"
	"github.com/gonewx/anchorflight/pkg/vmath"
)

// TargetAngles 根据目的地朝向计算镜头的目标水平角与俯仰角
//
// 镜头位于飞行器朝向的后方：
//
//	alpha = atan2(-f.x, -f.z) - π/2
//	beta  = clamp(π/2 - asin(f.y), margin, π - margin)
//
// 其中 f 为朝向四元数旋转后的 +Z 方向，俯仰角随飞行器的俯仰变化。
func TargetAngles(orientation vmath.Quat, betaMargin float64) (alpha, beta float64) {
	f := vmath.Forward(orientation)
	alpha = math.Atan2(-f[0], -f[2]) - math.Pi/2
	pitch := math.Asin(vmath.Clamp(f[1], -1, 1))
	beta = vmath.Clamp(math.Pi/2-pitch, betaMargin, math.Pi-betaMargin)
	return alpha, beta
}

// ShortestAlpha 返回与 to 等价、且距离 from 最近的角度
func ShortestAlpha(from, to float64) float64 {
	return from + vmath.NormalizeAngle(to-from)
}

// syncCamera 播放镜头的三段动画
//  1. 角度：整个航程内缓入缓出转到目标角度
//  2. 拉远：立即开始，在 D×ZoomPhaseRatio 内拉远到航行半径
//  3. 推近：在 D - D×ZoomPhaseRatio 时开始，推近到半径 0（可跳过）
func (c *Controller) syncCamera(id uint64, end curve.Anchor, duration float64, opts TransitOptions) {
	cam := c.camera
	fps := c.cfg.FPS
	totalFrames := fps * duration

	startAlpha, startBeta := cam.Alpha(), cam.Beta()
	endAlpha, endBeta := TargetAngles(end.Orientation, c.cfg.BetaMargin)
	endAlpha = ShortestAlpha(startAlpha, endAlpha)

	angleEasing := c.cfg.Easing(c.cfg.AngleEasing)
	c.animator.Begin(cam, []anim.Track{
		anim.NewFloatTrack(PropAlpha, startAlpha, endAlpha, totalFrames, angleEasing),
		anim.NewFloatTrack(PropBeta, startBeta, endBeta, totalFrames, angleEasing),
	}, 0, totalFrames, fps, nil)

	zoomDuration := duration * c.cfg.ZoomPhaseRatio
	travelRadius := opts.TravelRadius
	if travelRadius <= 0 {
		travelRadius = c.cfg.DefaultTravelRadius
	}
	c.zoomOut(travelRadius, zoomDuration)

	if opts.SkipArrivalZoom {
		return
	}
	delay := math.Max(0, duration-zoomDuration)
	c.zoomInTask = c.sched.After(delay, "camera.zoomIn", func() {
		c.zoomInTask = 0
		if id != c.sessionID {
			return
		}
		c.zoomIn(zoomDuration)
	})
}

// zoomOut 从当前半径拉远到 radius，半径上下限同步变化，防止用户缩放与过渡冲突
func (c *Controller) zoomOut(radius, duration float64) {
	cam := c.camera
	current := cam.Radius()

	cam.SetFloat(PropLowerRadiusLimit, 0)
	cam.SetFloat(PropUpperRadiusLimit, radius)

	frames := c.cfg.FPS * duration
	easing := c.cfg.Easing(c.cfg.ZoomOutEasing)
	c.animator.BeginDirect(cam, []anim.Track{
		anim.NewFloatTrack(PropRadius, current, radius, frames, easing),
		anim.NewFloatTrack(PropLowerRadiusLimit, current, radius, frames, easing),
		anim.NewFloatTrack(PropUpperRadiusLimit, current, radius, frames, easing),
	}, 0, frames, c.cfg.FPS, nil)
}

// zoomIn 推近到半径 0
// 起始值在触发时重新读取：航程很短时拉远可能尚未结束
func (c *Controller) zoomIn(duration float64) {
	cam := c.camera
	current := cam.Radius()
	lower, ok := cam.LowerRadiusLimit()
	if !ok {
		lower = current
	}
	upper, ok := cam.UpperRadiusLimit()
	if !ok {
		upper = current
	}

	cam.SetFloat(PropLowerRadiusLimit, 0)
	cam.SetFloat(PropUpperRadiusLimit, current)

	frames := c.cfg.FPS * duration
	easing := c.cfg.Easing(c.cfg.ZoomInEasing)
	c.animator.BeginDirect(cam, []anim.Track{
		anim.NewFloatTrack(PropRadius, current, 0, frames, easing),
		anim.NewFloatTrack(PropLowerRadiusLimit, lower, 0, frames, easing),
		anim.NewFloatTrack(PropUpperRadiusLimit, upper, 0, frames, easing),
	}, 0, frames, c.cfg.FPS, nil)
}
