package scenes

import (
	"github.com/decker502/garage/pkg/game"
)

// Scene is a type alias for game.Scene.
// Every page implements Scene, game.Leaver (to stop the panel on navigation)
// and game.Titled (window title).
type Scene = game.Scene

var (
	_ Scene       = (*GarageScene)(nil)
	_ game.Leaver = (*GarageScene)(nil)
	_ game.Titled = (*GarageScene)(nil)
	_ Scene       = (*DetailScene)(nil)
	_ game.Leaver = (*DetailScene)(nil)
	_ game.Titled = (*DetailScene)(nil)
)
