package scenes

import (
	"github.com/decker502/garage/pkg/config"
	"github.com/decker502/garage/pkg/utils"
)

// PageScrollPixels 翻页键一次滚动的像素数
const PageScrollPixels = config.GameWindowHeight - config.DashboardHeight

// pageScroll 页面滚动位置（相当于浏览器的 scrollTop）
type pageScroll struct {
	y             float64
	contentHeight float64
	drag          *utils.DragScroller
}

func newPageScroll(contentHeight float64) *pageScroll {
	return &pageScroll{
		contentHeight: contentHeight,
		drag:          utils.NewDragScroller(),
	}
}

// Y 当前滚动位置
func (p *pageScroll) Y() float64 {
	return p.y
}

// Max 最大滚动位置
func (p *pageScroll) Max() float64 {
	return config.MaxScroll(p.contentHeight)
}

// ScrollBy 滚动 delta 像素（夹在 [0, Max]），返回位置是否改变
func (p *pageScroll) ScrollBy(delta float64) bool {
	if delta == 0 {
		return false
	}
	next := p.y + delta
	if next < 0 {
		next = 0
	}
	if limit := p.Max(); next > limit {
		next = limit
	}
	if next == p.y {
		return false
	}
	p.y = next
	return true
}

// PollInput 读取滚轮、键盘和触摸拖拽，返回本帧滚动量
func (p *pageScroll) PollInput() float64 {
	delta := utils.WheelScrollDelta(config.WheelScrollPixels)
	delta += utils.KeyScrollDelta(config.KeyScrollPixels, PageScrollPixels)
	if utils.IsMobile() {
		delta += p.drag.Update()
	}
	return delta
}
