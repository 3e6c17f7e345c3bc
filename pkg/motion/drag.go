package motion

import (
	"log"
	"math"

	"github.com/gonewx/anchorflight/pkg/scheduler"
	"github.com/gonewx/anchorflight/pkg/vmath"
)

// CancelTransit 取消当前航行
//
// 编号加一使全部在途回调失效，停止飞行器与镜头动画。
// 取消时速度超过 DragStartSpeed 则沿当前速度方向滑行，
// 速度按 e^(-friction·dt) 衰减，低于 DragStopSpeed 时停止。
// 飞行器保持可见，由调用方决定何时隐藏。
func (c *Controller) CancelTransit() {
	c.sessionID++
	wasTransiting := c.transiting
	c.transiting = false

	c.stopTracker()
	c.stopDrag()
	c.cancelTasks()

	velocity := c.velocity
	speed := c.speed
	c.resetSample()
	c.path = nil

	c.emitGuided(false)
	c.emitSpeed(speed)

	if wasTransiting {
		c.metrics.add(c.ctx, c.metrics.cancelled)
		log.Printf("[TransitPlayer] 航行 #%d 已取消，速度 %.2f", c.sessionID-1, speed)
	}

	// 停止动画会触发完成回调，此时编号已过期，回调只会调用 OnComplete
	c.animator.Stop(c.craft)
	if c.camera != nil {
		c.animator.Stop(c.camera)
	}

	if speed > c.cfg.DragStartSpeed {
		c.startDrag(velocity)
	}
}

// startDrag 安装滑行钩子
func (c *Controller) startDrag(velocity vmath.Vec3) {
	c.stopDrag()
	c.dragVelocity = velocity

	var hid scheduler.HookID
	hid = c.sched.AddHook("motion.drag", func(float64) {
		dt := c.sched.DeltaTime() / 1000
		c.dragVelocity = c.dragVelocity.Mul(math.Exp(-c.cfg.DragFriction * dt))
		c.craft.SetPosition(c.craft.Position().Add(c.dragVelocity.Mul(dt)))

		speed := c.dragVelocity.Len()
		if speed < c.cfg.DragStopSpeed {
			c.sched.RemoveHook(hid)
			if c.dragHook == hid {
				c.dragHook = 0
			}
			c.dragVelocity = vmath.Zero
			c.emitSpeed(0)
			return
		}
		c.emitSpeed(speed)
	})
	c.dragHook = hid
}

// stopDrag 移除滑行钩子，飞行器停在当前位置
func (c *Controller) stopDrag() {
	if c.dragHook != 0 {
		c.sched.RemoveHook(c.dragHook)
		c.dragHook = 0
	}
	c.dragVelocity = vmath.Zero
}
