package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a page of the garage site (the catalog or a car detail page).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Leaver 是一个可选接口，场景被切换掉时调用
//
// 页面切换相当于浏览器卸载页面：场景应在此取消挂起的帧回调、停止提示音。
type Leaver interface {
	OnLeave()
}

// Titled 是一个可选接口，场景提供窗口标题
type Titled interface {
	Title() string
}
