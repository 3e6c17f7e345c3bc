package app

import (
	"fmt"
	"log"

	"github.com/gonewx/anchorflight/pkg/anim"
	"github.com/gonewx/anchorflight/pkg/audio"
	"github.com/gonewx/anchorflight/pkg/config"
	"github.com/gonewx/anchorflight/pkg/curve"
	"github.com/gonewx/anchorflight/pkg/ecs"
	"github.com/gonewx/anchorflight/pkg/entities"
	"github.com/gonewx/anchorflight/pkg/game"
	"github.com/gonewx/anchorflight/pkg/motion"
	"github.com/gonewx/anchorflight/pkg/scheduler"
	"github.com/gonewx/anchorflight/pkg/systems"
)

// WorldOptions 构建场景所需的依赖
type WorldOptions struct {
	// TPS 每秒逻辑帧数
	TPS     int
	Anchors *config.AnchorConfig
	// Motion 运动参数，nil 时使用默认值
	Motion *config.MotionConfig
	// Nav 导航状态，nil 时使用仅内存的状态
	Nav *game.NavStateManager
	// Engine 引擎声，可为 nil
	Engine *audio.EngineSound
}

// World 无窗口的场景：实体、调度器、运动控制器及其协作者
//
// App 负责输入和绘制，World 负责全部逻辑，可以脱离窗口单独驱动。
type World struct {
	EntityManager *ecs.EntityManager
	Scheduler     *scheduler.FrameScheduler
	Player        *anim.Player
	Controller    *motion.Controller
	Craft         *entities.CraftHandle
	Camera        *entities.CameraHandle
	Nav           *game.NavStateManager
	Engine        *audio.EngineSound

	anchors  *config.AnchorConfig
	arrivals int
}

// NewWorld 构建场景
//
// 飞行器放在上次记录的锚点（记录无效时为配置的初始锚点），
// 镜头贴近飞行器并朝向锚点方向。引导模式下飞行器初始隐藏。
//
// 每帧钩子顺序：关键帧播放 → 尾焰 → 镜头 → 引擎声，
// 航行中的速度追踪与滑行钩子在此之后注册，读取的是本帧动画写入后的位置。
//
// 参数:
//   - opts: 场景依赖
//
// 返回:
//   - *World: 场景
//   - error: 锚点配置缺失或实体创建失败
func NewWorld(opts WorldOptions) (*World, error) {
	if opts.Anchors == nil {
		return nil, fmt.Errorf("anchor config is required")
	}
	if opts.Motion == nil {
		opts.Motion = config.DefaultMotionConfig()
	}
	if opts.Nav == nil {
		opts.Nav = game.NewNavStateManager(nil)
	}

	w := &World{
		EntityManager: ecs.NewEntityManager(),
		Scheduler:     scheduler.NewFrameScheduler(opts.TPS),
		Player:        anim.NewPlayer(),
		Nav:           opts.Nav,
		Engine:        opts.Engine,
		anchors:       opts.Anchors,
	}

	startDef, ok := opts.Anchors.Find(opts.Nav.CurrentAnchor())
	if !ok {
		startDef = opts.Anchors.StartAnchor()
	}
	start := startDef.Anchor()
	opts.Nav.SetCurrentAnchor(start.Name)

	craftID, err := entities.NewCraftEntity(w.EntityManager, start.Position, start.Orientation, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create craft: %w", err)
	}
	if w.Craft, err = entities.NewCraftHandle(w.EntityManager, craftID); err != nil {
		return nil, err
	}

	alpha, beta := motion.TargetAngles(start.Orientation, opts.Motion.BetaMargin)
	cameraID, err := entities.NewOrbitCameraEntity(w.EntityManager, craftID, alpha, beta, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create camera: %w", err)
	}
	if w.Camera, err = entities.NewCameraHandle(w.EntityManager, cameraID); err != nil {
		return nil, err
	}

	w.Player.Attach(w.Scheduler)

	exhaust := systems.NewExhaustSystem(w.EntityManager)
	orbit := systems.NewOrbitCameraSystem(w.EntityManager)
	w.Scheduler.AddHook("systems.exhaust", exhaust.Update)
	w.Scheduler.AddHook("systems.orbitCamera", orbit.Update)

	w.Controller = motion.NewController(w.Scheduler, w.Player, w.Craft,
		w.Craft.EmitterOption(),
		motion.WithCamera(w.Camera),
		motion.WithModeProvider(opts.Nav),
		motion.WithConfig(opts.Motion),
	)

	if w.Engine != nil {
		w.Engine.Attach(w.Controller.SpeedSignal, w.Controller.GuidedActiveSignal)
		w.Scheduler.AddHook("audio.engine", w.Engine.Update)
	}

	w.Controller.SetCraftVisible(!opts.Nav.GuidedActive())
	orbit.Update(0)

	log.Printf("[World] Scene ready at anchor %q (mode=%s, %d anchors)",
		start.Name, opts.Nav.Mode(), len(opts.Anchors.Anchors))
	return w, nil
}

// Tick 推进一帧，dt <= 0 时使用标称帧长
func (w *World) Tick(dt float64) {
	w.Scheduler.Tick(dt)
	w.EntityManager.RemoveMarkedEntities()
}

// AnchorNames 按配置顺序返回锚点名称
func (w *World) AnchorNames() []string {
	return w.anchors.Names()
}

// Anchors 返回全部锚点
func (w *World) Anchors() []curve.Anchor {
	out := make([]curve.Anchor, len(w.anchors.Anchors))
	for i, def := range w.anchors.Anchors {
		out[i] = def.Anchor()
	}
	return out
}

// Arrivals 返回已结束的航行次数（含被取代的航行）
func (w *World) Arrivals() int {
	return w.arrivals
}

// TravelTo 前往指定锚点
//
// 自由模式下会先切回引导模式。航行从飞行器当前位姿出发，
// 中途改道时延续当前速度。
//
// 参数:
//   - name: 锚点名称
//
// 返回:
//   - bool: 锚点存在并已开始航行
func (w *World) TravelTo(name string) bool {
	def, ok := w.anchors.Find(name)
	if !ok {
		log.Printf("[World] Unknown anchor %q", name)
		return false
	}

	if w.Nav.SetMode(game.ModeGuided) {
		log.Printf("[World] Switched to guided mode for transit")
	}

	start := w.Controller.CurrentAnchor("current")
	end := def.Anchor()
	w.Nav.SetCurrentAnchor(end.Name)

	id := w.Controller.BeginTransit(start, end, motion.TransitOptions{
		Duration:        def.Duration,
		TravelRadius:    def.TravelRadius,
		SkipArrivalZoom: def.SkipArrivalZoom,
		SkipArrivalHide: def.SkipArrivalHide,
		OnComplete: func() {
			w.arrivals++
		},
	})
	log.Printf("[World] Transit #%d -> %q", id, end.Name)
	return true
}

// TravelToIndex 前往第 index 个锚点（从 0 开始）
func (w *World) TravelToIndex(index int) bool {
	if index < 0 || index >= len(w.anchors.Anchors) {
		return false
	}
	return w.TravelTo(w.anchors.Anchors[index].Name)
}

// ToggleMode 切换导航模式
//
// 切到自由模式时取消航行（飞行器按当前速度滑行停下）并显示飞行器；
// 切回引导模式且不在航行中时隐藏飞行器。
//
// 返回:
//   - game.NavigationMode: 切换后的模式
func (w *World) ToggleMode() game.NavigationMode {
	mode := w.Nav.ToggleMode()
	switch mode {
	case game.ModeFree:
		w.Controller.CancelTransit()
		w.Controller.SetCraftVisible(true)
	case game.ModeGuided:
		if !w.Controller.IsTransiting() {
			w.Controller.SetCraftVisible(false)
		}
	}
	return mode
}
