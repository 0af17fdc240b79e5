// Package app 提供车库应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"path"

	"github.com/decker502/garage/internal/site"
	"github.com/decker502/garage/pkg/config"
	"github.com/decker502/garage/pkg/game"
	"github.com/decker502/garage/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 默认资源路径
const (
	ResourceConfigPath = "assets/config/resources.yaml"
	PanelConfigPath    = "assets/config/panel.yaml"
	DefaultCatalogPath = "data/cars.json"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// CatalogPath 车辆目录文件（.json/.yaml），为空时使用资源配置中的路径
	CatalogPath string
	// PanelConfigPath 仪表盘参数文件，为空时使用内置的 assets/config/panel.yaml
	PanelConfigPath string
	// SessionID 会话ID，相同ID的进程共享“引擎已启动”状态；为空时每次启动都是新会话
	SessionID string
}

// App 是车库应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settingsManager          *game.SettingsManager
	audioManager             *game.AudioManager
	session                  *game.SessionStore
	keepSession              bool // 显式指定的会话在退出后保留
	verbose                  bool
	title                    string
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化车库应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	audioContext := audio.NewContext(48000)
	resourceManager := game.NewResourceManager(audioContext)

	if err := resourceManager.LoadResourceConfig(ResourceConfigPath); err != nil {
		return nil, fmt.Errorf("资源配置加载失败: %w", err)
	}

	panelConfig, err := loadPanelConfig(resourceManager, cfg.PanelConfigPath)
	if err != nil {
		return nil, fmt.Errorf("仪表盘配置加载失败: %w", err)
	}

	catalog, err := loadCatalog(resourceManager, cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("车辆目录加载失败: %w", err)
	}
	log.Printf("[App] Catalog loaded: %d cars", catalog.Len())

	// 持久化：设置与会话共用同一个 gdata 存储，打开失败时降级为内存模式
	storage := game.OpenStorage(game.AppName)
	settingsManager := game.NewSettingsManager(storage)
	session := game.NewSessionStore(storage, cfg.SessionID)
	log.Printf("[App] Session %s", session.SessionID())

	audioManager := game.NewAudioManager(resourceManager, settingsManager)
	audioManager.Preload([]string{game.CueEngineStart, game.CueHorn, game.CueHornFunny, game.CueBlinker})
	log.Printf("[App] AudioManager initialized")

	renderer := scenes.NewPanelRenderer(resourceManager)

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(route game.Route) game.Scene {
		// 每个页面一个仪表盘：重新读取会话标记、重新计算环境光
		overlay, err := scenes.NewPanelOverlay(scenes.PanelDeps{
			Config:   panelConfig,
			Audio:    audioManager,
			Session:  session,
			Renderer: renderer,
		})
		if err != nil {
			log.Printf("[App] Error: %v", err)
			return nil
		}
		if route == game.RouteGarage {
			return scenes.NewGarageScene(resourceManager, sceneManager, catalog, overlay)
		}
		return scenes.NewDetailScene(resourceManager, sceneManager, catalog, string(route), overlay)
	})
	sceneManager.Navigate(game.RouteGarage)

	if settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	a := &App{
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
		audioManager:    audioManager,
		session:         session,
		keepSession:     cfg.SessionID != "",
		verbose:         cfg.Verbose,
	}
	a.syncTitle()
	return a, nil
}

// loadPanelConfig 读取仪表盘参数，文件缺失时使用默认值
func loadPanelConfig(rm *game.ResourceManager, configPath string) (*config.PanelConfig, error) {
	explicit := configPath != ""
	if !explicit {
		configPath = PanelConfigPath
	}

	data, err := rm.ReadFile(configPath)
	if err != nil {
		if explicit {
			return nil, err
		}
		log.Printf("[Config] %v, using defaults", err)
		return config.DefaultPanelConfig(), nil
	}
	panelConfig, err := config.ParsePanelConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	log.Printf("[Config] Panel config loaded from %s", configPath)
	return panelConfig, nil
}

// loadCatalog 读取车辆目录：命令行路径 > 资源配置中的路径 > data/cars.json
func loadCatalog(rm *game.ResourceManager, catalogPath string) (*site.Catalog, error) {
	if catalogPath == "" && rm.Config() != nil {
		catalogPath = rm.Config().Catalog.Path
	}
	if catalogPath == "" {
		catalogPath = DefaultCatalogPath
	}

	data, err := rm.ReadFile(catalogPath)
	if err != nil {
		return nil, err
	}
	return site.ParseCatalog(data, path.Ext(catalogPath))
}

// syncTitle 窗口标题跟随当前页面
func (a *App) syncTitle() {
	titled, ok := a.sceneManager.GetCurrentScene().(game.Titled)
	if !ok {
		return
	}
	if title := titled.Title(); title != a.title {
		a.title = title
		ebiten.SetWindowTitle(title)
	}
}

// Update 更新应用逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 需要 main 中调用 ebiten.SetWindowClosingHandled(true)
	if ebiten.IsWindowBeingClosed() {
		a.Close()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	// M 切换静音（静音时提示音以 0 音量继续播放，双闪时钟不受影响）
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.toggleMute()
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	a.syncTitle()
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		a.settingsManager.SetFullscreen(false)
	} else {
		ebiten.SetFullscreen(true)
		a.settingsManager.SetFullscreen(true)
	}
	a.saveSettings()
}

func (a *App) toggleMute() {
	muted := !a.audioManager.IsMuted()
	a.audioManager.SetMuted(muted) // 同时写入 settingsManager
	log.Printf("[App] Muted: %v", muted)
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// Draw 绘制当前页面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Close 窗口关闭时调用：停止当前页面的双闪循环并结束会话
func (a *App) Close() {
	a.sceneManager.Leave()
	if !a.keepSession {
		if err := a.session.End(); err != nil {
			log.Printf("[App] Warning: failed to end session: %v", err)
		}
	}
	log.Printf("[App] Closed")
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
