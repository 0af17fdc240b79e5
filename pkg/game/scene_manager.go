package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// Route 页面路由：空字符串表示车库目录页，否则为车辆ID
type Route string

// RouteGarage 车库目录页
const RouteGarage Route = ""

// SceneFactory 场景工厂函数类型
// 用于按路由创建页面场景，避免 game 与 scenes 包之间的循环依赖
type SceneFactory func(route Route) Scene

// SceneManager manages which page is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	currentRoute Route
	sceneFactory SceneFactory // 场景工厂函数，用于创建新场景
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or Navigate to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// The previous scene is notified through Leaver if it implements it.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if leaver, ok := sm.currentScene.(Leaver); ok && sm.currentScene != scene {
		leaver.OnLeave()
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，如果没有活动场景则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentRoute 返回当前页面路由
func (sm *SceneManager) CurrentRoute() Route {
	return sm.currentRoute
}

// Navigate 导航到指定路由（每次导航都创建新的场景，相当于重新加载页面）
func (sm *SceneManager) Navigate(route Route) {
	log.Printf("[SceneManager] Navigate: %q", route)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] Error: SceneFactory not set")
		return
	}

	newScene := sm.sceneFactory(route)
	if newScene == nil {
		log.Printf("[SceneManager] Error: no scene for route %q", route)
		return
	}
	sm.SwitchTo(newScene)
	sm.currentRoute = route
}

// Leave notifies the current scene that it is going away (window closing).
func (sm *SceneManager) Leave() {
	if leaver, ok := sm.currentScene.(Leaver); ok {
		leaver.OnLeave()
	}
}

// Update updates the currently active scene.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
