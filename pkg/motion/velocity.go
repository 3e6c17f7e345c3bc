package motion

import (
	"log"

	"github.com/gonewx/anchorflight/pkg/scheduler"
	"github.com/gonewx/anchorflight/pkg/vmath"
)

// startTracker 为航行 id 安装速度追踪钩子
//
// 钩子每帧对飞行器位置求差分：velocity = (cur - prev) / dt。
// 发现 id 过期时自行移除，并上报速度 0 与引导结束。
func (c *Controller) startTracker(id uint64) {
	c.stopTracker()

	c.lastPos = c.craft.Position()
	c.hasLastPos = true
	c.emitGuided(true)

	var hid scheduler.HookID
	hid = c.sched.AddHook("motion.velocityTracker", func(float64) {
		if id != c.sessionID {
			c.sched.RemoveHook(hid)
			if c.trackerHook == hid {
				c.trackerHook = 0
			}
			c.emitGuided(false)
			c.emitSpeed(0)
			return
		}
		c.sampleVelocity()
	})
	c.trackerHook = hid
}

// sampleVelocity 采样一帧速度
func (c *Controller) sampleVelocity() {
	cur := c.craft.Position()
	if c.hasLastPos {
		dt := c.sched.DeltaTime() / 1000
		if dt > 0 {
			c.velocity = cur.Sub(c.lastPos).Mul(1 / dt)
			c.speed = c.velocity.Len()
			c.emitSpeed(c.speed)

			speed := c.speed
			c.speedLog.Do(func() {
				log.Printf("[VelocityTracker] 航行 #%d 速度 %.2f", c.sessionID, speed)
			})
		}
	}
	c.lastPos = cur
	c.hasLastPos = true
}

// stopTracker 移除速度追踪钩子
func (c *Controller) stopTracker() {
	if c.trackerHook != 0 {
		c.sched.RemoveHook(c.trackerHook)
		c.trackerHook = 0
	}
}

// resetSample 清空速度采样
func (c *Controller) resetSample() {
	c.velocity = vmath.Zero
	c.speed = 0
	c.hasLastPos = false
}
