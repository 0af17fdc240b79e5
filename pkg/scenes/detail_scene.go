package scenes

import (
	"image/color"
	"log"
	"strconv"
	"strings"

	"github.com/decker502/garage/internal/site"
	"github.com/decker502/garage/pkg/config"
	"github.com/decker502/garage/pkg/game"
	"github.com/decker502/garage/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Detail page layout
const (
	detailHeroHeight  = 360.0
	detailPageHeight  = config.GameWindowHeight * 2
	detailBackWidth   = 160.0
	detailNameOffsetY = 24.0
)

// fallbackCarColor is used when a catalog colour cannot be parsed.
var fallbackCarColor = color.RGBA{R: 120, G: 120, B: 130, A: 255}

// namedCarColors covers the colour names used in the catalog.
var namedCarColors = map[string]color.RGBA{
	"black":  {R: 20, G: 20, B: 20, A: 255},
	"white":  {R: 240, G: 240, B: 240, A: 255},
	"red":    {R: 200, G: 30, B: 30, A: 255},
	"blue":   {R: 30, G: 70, B: 200, A: 255},
	"green":  {R: 30, G: 150, B: 60, A: 255},
	"yellow": {R: 240, G: 200, B: 30, A: 255},
	"orange": {R: 240, G: 120, B: 20, A: 255},
	"purple": {R: 120, G: 40, B: 160, A: 255},
	"silver": {R: 190, G: 190, B: 200, A: 255},
	"gray":   {R: 128, G: 128, B: 128, A: 255},
	"grey":   {R: 128, G: 128, B: 128, A: 255},
}

// DetailTitle returns the window title of a car page.
func DetailTitle(name string) string {
	return name + " | " + SiteTitle
}

// ParseCarColor parses a catalog colour: a name ("red") or hex ("#c81e1e", "#c11").
func ParseCarColor(s string) color.RGBA {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedCarColors[s]; ok {
		return c
	}
	if !strings.HasPrefix(s, "#") {
		return fallbackCarColor
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return fallbackCarColor
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return fallbackCarColor
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// DetailScene is a single car page. Unknown IDs render a "not found" page.
type DetailScene struct {
	resourceManager *game.ResourceManager
	sceneManager    *game.SceneManager
	overlay         *PanelOverlay
	scroll          *pageScroll

	car   site.Car
	found bool
	image *ebiten.Image

	titleFont *text.GoTextFace
	bodyFont  *text.GoTextFace
}

// NewDetailScene creates the page for carID. rm may be nil (headless).
func NewDetailScene(rm *game.ResourceManager, sm *game.SceneManager, catalog *site.Catalog, carID string, overlay *PanelOverlay) *DetailScene {
	scene := &DetailScene{
		resourceManager: rm,
		sceneManager:    sm,
		overlay:         overlay,
		scroll:          newPageScroll(detailPageHeight),
	}
	if catalog != nil {
		scene.car, scene.found = catalog.Find(carID)
	}
	if !scene.found {
		log.Printf("[DetailScene] Unknown car %q", carID)
	}

	if rm != nil {
		var err error
		if scene.titleFont, err = rm.DefaultFont(32); err != nil {
			log.Printf("[DetailScene] Failed to load title font: %v", err)
		}
		if scene.bodyFont, err = rm.DefaultFont(16); err != nil {
			log.Printf("[DetailScene] Failed to load body font: %v", err)
		}
		if scene.found && scene.car.Image != "" {
			if scene.image, err = rm.LoadImage(scene.car.Image); err != nil {
				log.Printf("[DetailScene] Image unavailable for %s: %v", carID, err)
			}
		}
	}
	return scene
}

// Title implements game.Titled.
func (s *DetailScene) Title() string {
	if !s.found {
		return DetailTitle("Not found")
	}
	return DetailTitle(s.car.Name)
}

// Car returns the car shown and whether it exists in the catalog.
func (s *DetailScene) Car() (site.Car, bool) {
	return s.car, s.found
}

// Scroll moves the page by delta pixels and reports the new position to the panel.
func (s *DetailScene) Scroll(delta float64) {
	if s.scroll.ScrollBy(delta) && s.overlay != nil {
		s.overlay.OnScroll(s.scroll.Y())
	}
}

// Back returns to the catalog.
func (s *DetailScene) Back() {
	s.sceneManager.Navigate(game.RouteGarage)
}

// HandleClick routes a click: the panel first, then the back link in the header.
func (s *DetailScene) HandleClick(x, y float64) {
	if s.overlay != nil && s.overlay.HandleClick(x, y) {
		return
	}
	if x <= config.PageMarginX+detailBackWidth && y <= config.PageHeaderHeight-12 {
		s.Back()
	}
}

// Update handles input, then advances the panel.
func (s *DetailScene) Update(deltaTime float64) {
	s.Scroll(s.scroll.PollInput())

	if s.overlay != nil {
		s.overlay.HandleKeys()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		s.Back()
		return
	}
	if pressed, x, y := utils.IsPointerJustPressed(); pressed {
		s.HandleClick(float64(x), float64(y))
	}

	if s.overlay != nil {
		s.overlay.Update(deltaTime)
	}
}

// Draw renders the hero image, the car name and colour swatch, then the panel.
func (s *DetailScene) Draw(screen *ebiten.Image) {
	screen.Fill(pageBackgroundColor)
	top := config.PageHeaderHeight - s.scroll.Y()

	if s.found {
		heroW := config.GameWindowWidth - 2*config.PageMarginX
		drawThumbnail(screen, s.image, s.car, config.PageMarginX, top, heroW, detailHeroHeight, s.bodyFont)

		nameY := top + detailHeroHeight + detailNameOffsetY
		drawText(screen, s.titleFont, s.car.Name, config.PageMarginX, nameY, headerColor, text.AlignStart)

		swatchY := nameY + 52
		vector.DrawFilledRect(screen, config.PageMarginX, float32(swatchY), 28, 28, ParseCarColor(s.car.Color), true)
		drawText(screen, s.bodyFont, s.car.Color, config.PageMarginX+40, swatchY+4, headerColor, text.AlignStart)
	} else {
		drawText(screen, s.titleFont, "Car not found", config.GameWindowWidth/2, top+120, headerColor, text.AlignCenter)
	}

	vector.DrawFilledRect(screen, 0, 0, config.GameWindowWidth, config.PageHeaderHeight-12, headerColor, false)
	drawText(screen, s.bodyFont, "< "+SiteTitle, config.PageMarginX, 22, headerTextColor, text.AlignStart)

	if s.overlay != nil {
		s.overlay.Draw(screen)
	}
}

// OnLeave implements game.Leaver.
func (s *DetailScene) OnLeave() {
	if s.overlay != nil {
		s.overlay.Close()
	}
}
