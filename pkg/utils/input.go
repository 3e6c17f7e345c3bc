// Package utils 提供通用工具函数
package utils

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置，触摸优先
func IsJustTouchedOrClicked() (bool, int, int) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// PickNearest 在屏幕点中选出离 (x, y) 最近的一个
//
// 参数:
//   - points: 候选点（屏幕坐标）
//   - x, y: 指针位置
//   - radius: 最大拾取距离（像素）
//
// 返回:
//   - int: 命中点的下标，没有点落在 radius 内时返回 -1
func PickNearest(points [][2]float64, x, y, radius float64) int {
	best := -1
	bestDist := radius
	for i, p := range points {
		d := math.Hypot(p[0]-x, p[1]-y)
		if d <= bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
