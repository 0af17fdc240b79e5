package config

// 布局配置常量
// 本文件定义了窗口尺寸、仪表盘各仪表位置以及车库页面的列表布局
// 所有坐标均为逻辑屏幕坐标（Layout 返回的尺寸），与窗口缩放无关

// Window Configuration (窗口配置)
const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 960

	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 640
)

// Dashboard Configuration (仪表盘布局)
const (
	// DashboardHeight 仪表盘面板高度
	DashboardHeight = 170.0

	// DashboardY 仪表盘完全升起后的顶部Y坐标
	DashboardY = GameWindowHeight - DashboardHeight

	// DashboardHiddenY 仪表盘隐藏时的顶部Y坐标（屏幕外）
	DashboardHiddenY = GameWindowHeight + 10.0

	// SpeedometerCenterX / SpeedometerCenterY 车速表表盘中心（相对仪表盘顶部）
	SpeedometerCenterX = GameWindowWidth / 2.0
	SpeedometerCenterY = 85.0

	// SpeedometerRadius 车速表半径
	SpeedometerRadius = 68.0

	// NeedleLength 指针长度
	NeedleLength = 58.0

	// HornCenterX 喇叭按钮中心X
	HornCenterX = SpeedometerCenterX - 150.0

	// HazardCenterX 双闪按钮中心X
	HazardCenterX = SpeedometerCenterX + 150.0

	// HeadlightCenterX 大灯旋钮中心X
	HeadlightCenterX = SpeedometerCenterX + 270.0

	// ButtonCenterY 圆形按钮中心Y（相对仪表盘顶部）
	ButtonCenterY = 80.0

	// ButtonRadius 圆形按钮半径
	ButtonRadius = 38.0

	// KnobRadius 大灯旋钮半径
	KnobRadius = 30.0

	// LabelOffsetY 仪表标签相对按钮中心的Y偏移
	LabelOffsetY = 58.0
)

// Start Button Configuration (启动按钮布局)
const (
	StartButtonWidth  = 200.0
	StartButtonHeight = 56.0
	StartButtonX      = (GameWindowWidth - StartButtonWidth) / 2
	StartButtonY      = GameWindowHeight - StartButtonHeight - 40.0
)

// Hazard Overlay Configuration (双闪遮罩布局)
const (
	// HazardLampWidth 屏幕左右两侧闪烁灯条宽度
	HazardLampWidth = 36.0
)

// Garage Page Configuration (车库页面布局)
const (
	// PageMarginX 页面左右边距
	PageMarginX = 48.0

	// PageHeaderHeight 页面标题栏高度
	PageHeaderHeight = 72.0

	// ThumbnailColumns 每行缩略图数量
	ThumbnailColumns = 3

	// ThumbnailHeight 缩略图高度
	ThumbnailHeight = 180.0

	// ThumbnailGap 缩略图间距
	ThumbnailGap = 24.0

	// WheelScrollPixels 鼠标滚轮每格滚动的像素数
	WheelScrollPixels = 60.0

	// KeyScrollPixels 方向键每帧滚动的像素数
	KeyScrollPixels = 12.0
)

// ThumbnailWidth 返回缩略图宽度
func ThumbnailWidth() float64 {
	usable := GameWindowWidth - 2*PageMarginX - float64(ThumbnailColumns-1)*ThumbnailGap
	return usable / float64(ThumbnailColumns)
}

// ThumbnailRect 返回第 index 个缩略图在页面坐标（未滚动）中的矩形
//
// 参数：
//   - index: 缩略图序号（从 0 开始）
//
// 返回：
//   - x, y, w, h: 页面坐标中的矩形
func ThumbnailRect(index int) (x, y, w, h float64) {
	col := index % ThumbnailColumns
	row := index / ThumbnailColumns
	w = ThumbnailWidth()
	h = ThumbnailHeight
	x = PageMarginX + float64(col)*(w+ThumbnailGap)
	y = PageHeaderHeight + float64(row)*(h+ThumbnailGap)
	return x, y, w, h
}

// PageContentHeight 返回 count 个缩略图的页面总高度（含仪表盘留白）
func PageContentHeight(count int) float64 {
	rows := (count + ThumbnailColumns - 1) / ThumbnailColumns
	return PageHeaderHeight + float64(rows)*(ThumbnailHeight+ThumbnailGap) + DashboardHeight
}

// MaxScroll 返回页面可滚动的最大偏移
func MaxScroll(contentHeight float64) float64 {
	limit := contentHeight - GameWindowHeight
	if limit < 0 {
		return 0
	}
	return limit
}
