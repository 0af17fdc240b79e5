// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsPointerJustPressed 检查是否刚刚按下指针（触摸或鼠标）
// 返回是否按下以及按下位置
func IsPointerJustPressed() (bool, int, int) {
	// 检查触摸按下
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	// 检查鼠标按下
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// GetPointerPosition 获取当前指针位置（触摸或鼠标）
// 优先返回触摸位置，如果没有触摸则返回鼠标位置
func GetPointerPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}

// WheelScrollDelta 返回本帧鼠标滚轮/触控板产生的页面滚动量（像素，向下为正）
//
// 参数：
//   - pixelsPerNotch: 滚轮每格对应的像素数
func WheelScrollDelta(pixelsPerNotch float64) float64 {
	_, dy := ebiten.Wheel()
	// ebiten 中向下滚动为负值
	return -dy * pixelsPerNotch
}

// KeyScrollDelta 返回本帧方向键/翻页键产生的滚动量（像素，向下为正）
//
// 参数：
//   - step: 按住方向键时每帧滚动的像素数
//   - page: 翻页键一次滚动的像素数
func KeyScrollDelta(step, page float64) float64 {
	delta := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		delta += step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		delta -= step
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		delta += page
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		delta -= page
	}
	return delta
}

// ============================================================================
// 拖拽滚动 - 移动端用手指拖动页面
// ============================================================================

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateStarted 拖拽开始（刚按下）
	DragStateStarted
	// DragStateDragging 拖拽中（按住移动）
	DragStateDragging
	// DragStateEnded 拖拽结束（释放）
	DragStateEnded
)

// DragInfo 拖拽信息
type DragInfo struct {
	// State 当前拖拽状态
	State DragState
	// StartY 拖拽起始Y（屏幕坐标）
	StartY int
	// LastY 上一帧的Y
	LastY int
	// CurrentY 当前Y
	CurrentY int
	// TouchID 当前跟踪的触摸ID
	TouchID ebiten.TouchID
}

// DragScroller 把单指触摸拖动转换为页面滚动量
//
// 只跟踪触摸输入：桌面端用滚轮和键盘滚动，鼠标左键保留给点击。
type DragScroller struct {
	info DragInfo
}

// NewDragScroller 创建拖拽滚动跟踪器
func NewDragScroller() *DragScroller {
	return &DragScroller{info: DragInfo{TouchID: -1}}
}

// Update 读取本帧触摸状态并返回滚动量（像素，向下为正）
// 手指向上拖动时页面向下滚动
func (d *DragScroller) Update() float64 {
	touchIDs := ebiten.AppendTouchIDs(nil)

	switch d.info.State {
	case DragStateNone:
		justPressed := inpututil.AppendJustPressedTouchIDs(nil)
		if len(justPressed) == 0 {
			return 0
		}
		_, y := ebiten.TouchPosition(justPressed[0])
		d.info = DragInfo{
			State:    DragStateStarted,
			StartY:   y,
			LastY:    y,
			CurrentY: y,
			TouchID:  justPressed[0],
		}
		return 0

	case DragStateStarted, DragStateDragging:
		if !containsTouch(touchIDs, d.info.TouchID) {
			d.info.State = DragStateEnded
			return 0
		}
		_, y := ebiten.TouchPosition(d.info.TouchID)
		return d.Move(y)

	case DragStateEnded:
		// 结束状态只持续一帧
		d.Reset()
	}
	return 0
}

// Move 记录新的触摸Y坐标，返回与上一帧相比的滚动量
func (d *DragScroller) Move(y int) float64 {
	d.info.State = DragStateDragging
	d.info.LastY = d.info.CurrentY
	d.info.CurrentY = y
	return float64(d.info.LastY - d.info.CurrentY)
}

// Reset 重置拖拽状态
func (d *DragScroller) Reset() {
	d.info = DragInfo{State: DragStateNone, TouchID: -1}
}

// GetInfo 获取完整拖拽信息
func (d *DragScroller) GetInfo() DragInfo {
	return d.info
}

// IsDragging 是否正在拖拽
func (d *DragScroller) IsDragging() bool {
	return d.info.State == DragStateDragging
}

// GetDragDistance 获取从起点到当前位置的总拖动距离
func (d *DragScroller) GetDragDistance() int {
	return d.info.CurrentY - d.info.StartY
}

func containsTouch(ids []ebiten.TouchID, id ebiten.TouchID) bool {
	for _, t := range ids {
		if t == id {
			return true
		}
	}
	return false
}
