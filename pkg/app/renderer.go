package app

import (
	"fmt"
	"image/color"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/anchorflight/pkg/systems"
	"github.com/gonewx/anchorflight/pkg/utils"
	"github.com/gonewx/anchorflight/pkg/vmath"
)

// 渲染参数
const (
	fieldOfView = math.Pi / 3
	gridExtent  = 100.0
	gridStep    = 20.0
	// pathStride 绘制航线时每隔几个采样点取一个
	pathStride = 4
	// pickRadius 点击锚点的拾取半径（像素）
	pickRadius = 24.0
)

var (
	backgroundColor = color.RGBA{R: 16, G: 20, B: 32, A: 255}
	gridColor       = color.RGBA{R: 40, G: 48, B: 70, A: 255}
	pathColor       = color.RGBA{R: 90, G: 170, B: 255, A: 255}
	anchorColor     = color.RGBA{R: 255, G: 210, B: 90, A: 255}
	craftColor      = color.RGBA{R: 235, G: 235, B: 245, A: 255}
	exhaustColor    = color.RGBA{R: 255, G: 130, B: 60, A: 255}
)

// Renderer 透过追踪镜头把场景投影到屏幕
type Renderer struct {
	world         *World
	width, height int
}

// NewRenderer 创建渲染器
func NewRenderer(world *World, width, height int) *Renderer {
	return &Renderer{world: world, width: width, height: height}
}

// Project 把世界坐标投影到屏幕坐标
//
// 返回:
//   - x, y: 屏幕坐标（像素）
//   - ok: 点在镜头前方
func (r *Renderer) Project(viewProj mgl64.Mat4, p vmath.Vec3) (x, y float32, ok bool) {
	clip := viewProj.Mul4x1(p.Vec4(1))
	if clip.W() <= 1e-6 {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	x = float32((ndc.X() + 1) / 2 * float64(r.width))
	y = float32((1 - ndc.Y()) / 2 * float64(r.height))
	return x, y, true
}

// ViewProjection 当前镜头的观察投影矩阵
func (r *Renderer) ViewProjection() mgl64.Mat4 {
	aspect := float64(r.width) / float64(r.height)
	return systems.ViewProjection(r.world.Camera.Component(), fieldOfView, aspect)
}

// AnchorAt 返回屏幕坐标附近的锚点名称
func (r *Renderer) AnchorAt(x, y int) (string, bool) {
	vp := r.ViewProjection()
	anchors := r.world.Anchors()

	points := make([][2]float64, 0, len(anchors))
	names := make([]string, 0, len(anchors))
	for _, a := range anchors {
		sx, sy, ok := r.Project(vp, a.Position)
		if !ok {
			continue
		}
		points = append(points, [2]float64{float64(sx), float64(sy)})
		names = append(names, a.Name)
	}

	i := utils.PickNearest(points, float64(x), float64(y), pickRadius)
	if i < 0 {
		return "", false
	}
	return names[i], true
}

// Draw 绘制一帧
func (r *Renderer) Draw(screen *ebiten.Image, showPath bool) {
	screen.Fill(backgroundColor)
	vp := r.ViewProjection()

	r.drawGrid(screen, vp)
	if showPath {
		r.drawPath(screen, vp)
	}
	r.drawAnchors(screen, vp)
	r.drawCraft(screen, vp)
	r.drawHUD(screen)
}

func (r *Renderer) line(screen *ebiten.Image, vp mgl64.Mat4, a, b vmath.Vec3, width float32, clr color.Color) {
	x0, y0, ok0 := r.Project(vp, a)
	x1, y1, ok1 := r.Project(vp, b)
	if !ok0 || !ok1 {
		return
	}
	vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, true)
}

func (r *Renderer) dot(screen *ebiten.Image, vp mgl64.Mat4, p vmath.Vec3, size float32, clr color.Color) (float32, float32, bool) {
	x, y, ok := r.Project(vp, p)
	if !ok {
		return 0, 0, false
	}
	vector.DrawFilledRect(screen, x-size/2, y-size/2, size, size, clr, true)
	return x, y, true
}

func (r *Renderer) drawGrid(screen *ebiten.Image, vp mgl64.Mat4) {
	for v := -gridExtent; v <= gridExtent; v += gridStep {
		r.line(screen, vp, vmath.Vec3{v, 0, -gridExtent}, vmath.Vec3{v, 0, gridExtent}, 1, gridColor)
		r.line(screen, vp, vmath.Vec3{-gridExtent, 0, v}, vmath.Vec3{gridExtent, 0, v}, 1, gridColor)
	}
}

func (r *Renderer) drawPath(screen *ebiten.Image, vp mgl64.Mat4) {
	path := r.world.Controller.Path()
	if path == nil || !r.world.Controller.IsTransiting() {
		return
	}
	points := path.Points()
	for i := pathStride; i < len(points); i += pathStride {
		r.line(screen, vp, points[i-pathStride], points[i], 2, pathColor)
	}
}

func (r *Renderer) drawAnchors(screen *ebiten.Image, vp mgl64.Mat4) {
	for i, a := range r.world.Anchors() {
		x, y, ok := r.dot(screen, vp, a.Position, 8, anchorColor)
		if !ok {
			continue
		}
		r.line(screen, vp, a.Position, a.Position.Add(a.Forward.Mul(3)), 1, anchorColor)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d %s", i+1, a.Name), int(x)+6, int(y)-6)
	}
}

func (r *Renderer) drawCraft(screen *ebiten.Image, vp mgl64.Mat4) {
	craft := r.world.Craft
	for _, p := range craft.Emitter().Particles {
		r.dot(screen, vp, p.Position, 3, exhaustColor)
	}
	if !craft.Visible() {
		return
	}

	pos := craft.Position()
	nose := pos.Add(vmath.Forward(craft.Rotation()).Mul(2))
	r.line(screen, vp, pos, nose, 3, craftColor)
	r.dot(screen, vp, pos, 10, craftColor)
}

func (r *Renderer) drawHUD(screen *ebiten.Image) {
	w := r.world
	ctrl := w.Controller

	status := "docked"
	switch {
	case ctrl.IsTransiting():
		status = "transit to " + ctrl.Destination().Name
	case ctrl.IsDragging():
		status = "drifting"
	}

	pos := w.Craft.Position()
	hud := fmt.Sprintf(
		"mode: %s   anchor: %s   %s\n"+
			"speed: %s u/s   pos: (%s, %s, %s)\n"+
			"%s transit   frame %s   arrivals %s\n"+
			"camera: radius %s\n"+
			"[1-%d] travel  [F] free/guided  [P] path  [M] engine  [Esc] quit",
		w.Nav.Mode(), w.Nav.CurrentAnchor(), status,
		humanize.CommafWithDigits(ctrl.CurrentSpeed(), 2),
		humanize.CommafWithDigits(pos.X(), 1), humanize.CommafWithDigits(pos.Y(), 1), humanize.CommafWithDigits(pos.Z(), 1),
		humanize.Ordinal(int(ctrl.SessionID())), humanize.Comma(int64(w.Scheduler.Frame())), humanize.Comma(int64(w.Arrivals())),
		humanize.CommafWithDigits(w.Camera.Radius(), 1),
		min(len(w.AnchorNames()), len(digitKeys)),
	)
	ebitenutil.DebugPrintAt(screen, hud, 8, 8)
}
