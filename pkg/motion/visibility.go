package motion

// SetVisibility 同时切换飞行器部件的可见性与尾焰发射
//
// 这是切换飞行器可见性的唯一入口：调用返回后
// emitter.IsStarted() 必定等于 visible。emitter 可以为 nil。
func SetVisibility(meshes []Mesh, emitter Emitter, visible bool) {
	for _, m := range meshes {
		if m != nil {
			m.SetVisible(visible)
		}
	}

	if emitter == nil {
		return
	}
	if visible {
		emitter.Start()
	} else if emitter.IsStarted() {
		emitter.Stop()
	}
}

// SetCraftVisible 切换受控飞行器的可见性与尾焰
func (c *Controller) SetCraftVisible(visible bool) {
	SetVisibility(c.craft.Meshes(), c.emitter, visible)
}
