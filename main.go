package main

import (
	"errors"
	"flag"
	"log"

	"github.com/decker502/garage/pkg/app"
	"github.com/decker502/garage/pkg/config"
	"github.com/decker502/garage/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose     = flag.Bool("verbose", false, "显示详细日志")
	catalogPath = flag.String("catalog", "", "车辆目录文件（.json/.yaml），默认使用内置 data/cars.json")
	panelConfig = flag.String("config", "", "仪表盘参数文件（YAML），默认使用内置 assets/config/panel.yaml")
	sessionID   = flag.String("session", "", "会话ID，相同ID的多次启动共享引擎启动状态")
)

func main() {
	flag.Parse()

	// assetsFS 和 dataFS 在 embed.go 中声明
	embedded.Init(assetsFS, dataFS)

	garage, err := app.NewApp(app.Config{
		Verbose:         *verbose,
		CatalogPath:     *catalogPath,
		PanelConfigPath: *panelConfig,
		SessionID:       *sessionID,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(garage); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
