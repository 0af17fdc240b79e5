package game

// ResourceConfig represents the top-level resource configuration loaded from YAML.
// It defines the structure of assets/config/resources.yaml.
//
// Structure:
//
//	version: "1.0"
//	base_path: assets
//	cues:
//	  - id: SOUND_BLINKER
//	    path: sounds/blinker.mp3
//	    loop: true
type ResourceConfig struct {
	Version  string          `yaml:"version"`   // Configuration file version
	BasePath string          `yaml:"base_path"` // Base path for all resources (e.g., "assets")
	Cues     []CueResource   `yaml:"cues"`      // Named audio cues used by the instrument panel
	Catalog  CatalogResource `yaml:"catalog"`   // Location of the car catalog shown on the garage pages
}

// CueResource represents a single named audio cue.
//
// Fields:
//   - ID: Unique identifier for the cue (e.g., "SOUND_HORN")
//   - Path: Relative path from base_path to the audio file (.mp3 or .ogg)
//   - Loop: Whether the cue is wrapped in an infinite loop (only the hazard blinker)
//
// Example:
//   - id: SOUND_HORN
//     path: sounds/horn.mp3
type CueResource struct {
	ID   string `yaml:"id"`             // Resource ID (unique identifier)
	Path string `yaml:"path"`           // Relative file path from base_path
	Loop bool   `yaml:"loop,omitempty"` // Loop flag
}

// CatalogResource points at the catalog data file.
type CatalogResource struct {
	Path string `yaml:"path"` // e.g. "data/cars.json"
}

// Cue IDs used by the instrument panel.
const (
	CueEngineStart = "SOUND_ENGINE_START"
	CueHorn        = "SOUND_HORN"
	CueHornFunny   = "SOUND_HORN_FUNNY"
	CueBlinker     = "SOUND_BLINKER"
)
