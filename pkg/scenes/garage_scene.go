package scenes

import (
	"image/color"
	"log"

	"github.com/decker502/garage/internal/site"
	"github.com/decker502/garage/pkg/config"
	"github.com/decker502/garage/pkg/game"
	"github.com/decker502/garage/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// SiteTitle is the garage name shown in headers and window titles.
const SiteTitle = "Mateo's Garage"

var (
	pageBackgroundColor = color.RGBA{R: 236, G: 232, B: 224, A: 255}
	headerColor         = color.RGBA{R: 30, G: 30, B: 34, A: 255}
	headerTextColor     = color.RGBA{R: 245, G: 245, B: 245, A: 255}
	thumbnailFrameColor = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	thumbnailTextColor  = color.RGBA{R: 250, G: 250, B: 250, A: 255}
)

// GarageScene is the catalog index page: a scrollable grid of car thumbnails
// with the instrument panel overlaid on top.
type GarageScene struct {
	resourceManager *game.ResourceManager
	sceneManager    *game.SceneManager
	catalog         *site.Catalog
	overlay         *PanelOverlay
	scroll          *pageScroll

	thumbnails map[string]*ebiten.Image // car ID -> image (missing when the image failed to load)
	titleFont  *text.GoTextFace
	labelFont  *text.GoTextFace
}

// NewGarageScene creates the catalog page.
// rm may be nil (headless); thumbnails then fall back to the car colour.
func NewGarageScene(rm *game.ResourceManager, sm *game.SceneManager, catalog *site.Catalog, overlay *PanelOverlay) *GarageScene {
	if catalog == nil {
		catalog = &site.Catalog{}
	}
	scene := &GarageScene{
		resourceManager: rm,
		sceneManager:    sm,
		catalog:         catalog,
		overlay:         overlay,
		scroll:          newPageScroll(config.PageContentHeight(catalog.Len())),
		thumbnails:      make(map[string]*ebiten.Image),
	}

	if rm != nil {
		scene.loadResources()
	}
	log.Printf("[GarageScene] Showing %d cars", catalog.Len())
	return scene
}

func (s *GarageScene) loadResources() {
	var err error
	if s.titleFont, err = s.resourceManager.DefaultFont(28); err != nil {
		log.Printf("[GarageScene] Failed to load title font: %v", err)
	}
	if s.labelFont, err = s.resourceManager.DefaultFont(15); err != nil {
		log.Printf("[GarageScene] Failed to load label font: %v", err)
	}

	for _, car := range s.catalog.Cars {
		if car.Image == "" {
			continue
		}
		img, err := s.resourceManager.LoadImage(car.Image)
		if err != nil {
			log.Printf("[GarageScene] Thumbnail unavailable for %s: %v", car.ID, err)
			continue
		}
		s.thumbnails[car.ID] = img
	}
}

// Title implements game.Titled.
func (s *GarageScene) Title() string {
	return SiteTitle
}

// ThumbnailAt returns the index of the thumbnail under the page-space point, or -1.
func ThumbnailAt(x, pageY float64, count int) int {
	for i := 0; i < count; i++ {
		tx, ty, tw, th := config.ThumbnailRect(i)
		if x >= tx && x <= tx+tw && pageY >= ty && pageY <= ty+th {
			return i
		}
	}
	return -1
}

// Scroll moves the page by delta pixels and reports the new position to the panel.
func (s *GarageScene) Scroll(delta float64) {
	if s.scroll.ScrollBy(delta) && s.overlay != nil {
		s.overlay.OnScroll(s.scroll.Y())
	}
}

// HandleClick routes a click: the panel first, then the thumbnails.
func (s *GarageScene) HandleClick(x, y float64) {
	if s.overlay != nil && s.overlay.HandleClick(x, y) {
		return
	}
	if i := ThumbnailAt(x, y+s.scroll.Y(), s.catalog.Len()); i >= 0 {
		car := s.catalog.Cars[i]
		log.Printf("[GarageScene] Opening %s", car.ID)
		s.sceneManager.Navigate(game.Route(car.ID))
	}
}

// Update handles input, then advances the panel.
func (s *GarageScene) Update(deltaTime float64) {
	s.Scroll(s.scroll.PollInput())

	if s.overlay != nil {
		s.overlay.HandleKeys()
	}
	if pressed, x, y := utils.IsPointerJustPressed(); pressed {
		s.HandleClick(float64(x), float64(y))
	}

	if s.overlay != nil {
		s.overlay.Update(deltaTime)
	}
}

// Draw renders the header, the thumbnail grid and the panel overlay.
func (s *GarageScene) Draw(screen *ebiten.Image) {
	screen.Fill(pageBackgroundColor)
	scrollY := s.scroll.Y()

	for i, car := range s.catalog.Cars {
		x, y, w, h := config.ThumbnailRect(i)
		y -= scrollY
		if y+h < 0 || y > config.GameWindowHeight {
			continue
		}
		drawThumbnail(screen, s.thumbnails[car.ID], car, x, y, w, h, s.labelFont)
	}

	// Header stays pinned to the top.
	vector.DrawFilledRect(screen, 0, 0, config.GameWindowWidth, config.PageHeaderHeight-12, headerColor, false)
	drawText(screen, s.titleFont, SiteTitle, config.PageMarginX, 18, headerTextColor, text.AlignStart)

	if s.overlay != nil {
		s.overlay.Draw(screen)
	}
}

// OnLeave implements game.Leaver.
func (s *GarageScene) OnLeave() {
	if s.overlay != nil {
		s.overlay.Close()
	}
}

// drawThumbnail draws the car image scaled to cover the rect, or a colour block with the name.
func drawThumbnail(screen, img *ebiten.Image, car site.Car, x, y, w, h float64, face *text.GoTextFace) {
	if img != nil {
		bounds := img.Bounds()
		sx := w / float64(bounds.Dx())
		sy := h / float64(bounds.Dy())
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(sx, sy)
		op.GeoM.Translate(x, y)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, op)
	} else {
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), ParseCarColor(car.Color), false)
		drawText(screen, face, car.Name, x+w/2, y+h/2-9, thumbnailTextColor, text.AlignCenter)
	}
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, thumbnailFrameColor, false)
}

func drawText(screen *ebiten.Image, face *text.GoTextFace, s string, x, y float64, c color.Color, align text.Align) {
	if face == nil || s == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = align
	text.Draw(screen, s, face, op)
}
