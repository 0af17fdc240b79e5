package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/decker502/garage/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
	"gopkg.in/yaml.v3"
)

// ResourceManager is responsible for centralized management of panel resources.
// It provides loading and caching for car thumbnails, audio cues and font faces,
// ensuring that resources are loaded only once and reused across page navigations.
//
// Resources are read from the embedded filesystem when it has been initialized
// and contains the path, and from disk otherwise.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. All loading happens on the game loop goroutine.
//
// Usage:
//
//	audioContext := audio.NewContext(48000)
//	rm := NewResourceManager(audioContext)
//	if err := rm.LoadResourceConfig("assets/config/resources.yaml"); err != nil {
//	    log.Printf("Failed to load resource config: %v", err)
//	}
//	cue, err := rm.LoadCueByID(CueHorn)
type ResourceManager struct {
	imageCache    map[string]*ebiten.Image    // Cache for loaded images: path -> Image
	audioCache    map[string]*audio.Player    // Cache for loaded audio players: path -> Player
	audioContext  *audio.Context              // Global audio context for audio decoding (may be nil)
	fontFaceCache map[string]*text.GoTextFace // Cache for Ebitengine v2 text faces
	defaultSource *text.GoTextFaceSource      // Lazily parsed Go Regular font

	// YAML resource configuration
	config   *ResourceConfig        // Parsed YAML configuration
	cueIndex map[string]CueResource // Cue ID -> resolved cue (path joined with base_path)
}

// NewResourceManager creates and initializes a new ResourceManager instance.
// The audioContext parameter is required for audio decoding and playback; when it
// is nil every audio load fails and the panel runs silently.
//
// Parameters:
//   - audioContext: The global audio context used for decoding and playing audio files.
//
// Returns:
//   - A pointer to a newly initialized ResourceManager with empty caches.
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		imageCache:    make(map[string]*ebiten.Image),
		audioCache:    make(map[string]*audio.Player),
		audioContext:  audioContext,
		fontFaceCache: make(map[string]*text.GoTextFace),
		cueIndex:      make(map[string]CueResource),
	}
}

// readResource reads a resource from the embedded filesystem or from disk.
func readResource(resourcePath string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.Exists(resourcePath) {
		return embedded.ReadFile(resourcePath)
	}
	file, err := os.Open(resourcePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// ReadFile reads a raw resource (e.g. the car catalog) from the embedded
// filesystem or from disk.
func (rm *ResourceManager) ReadFile(resourcePath string) ([]byte, error) {
	data, err := readResource(resourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", resourcePath, err)
	}
	return data, nil
}

// LoadImage loads an image file from the specified path and caches it for future use.
// If the image has already been loaded, it returns the cached version.
// Supported formats: PNG and JPEG.
//
// Parameters:
//   - path: The file path to the image resource (e.g., "assets/images/red-roadster.png").
//
// Returns:
//   - A pointer to the loaded ebiten.Image.
//   - An error if the file cannot be read or decoded.
func (rm *ResourceManager) LoadImage(imagePath string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[imagePath]; exists {
		return cachedImage, nil
	}

	data, err := readResource(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", imagePath, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", imagePath, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[imagePath] = ebitenImg
	return ebitenImg, nil
}

// GetImage retrieves a previously loaded image from the cache, or nil.
func (rm *ResourceManager) GetImage(imagePath string) *ebiten.Image {
	return rm.imageCache[imagePath]
}

// decodeAudio decodes an in-memory MP3 or OGG Vorbis file.
func decodeAudio(audioPath string, data []byte) (interface {
	io.ReadSeeker
	Length() int64
}, error) {
	reader := bytes.NewReader(data)

	switch ext := strings.ToLower(filepath.Ext(audioPath)); ext {
	case ".mp3":
		stream, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", audioPath, err)
		}
		return stream, nil
	case ".ogg":
		stream, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", audioPath, err)
		}
		return stream, nil
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg)", ext)
	}
}

// loadPlayer reads, decodes and wraps an audio file in a player.
// When loop is true the stream is wrapped in an infinite loop, so the player's
// position keeps growing past the clip length.
func (rm *ResourceManager) loadPlayer(audioPath string, loop bool) (*audio.Player, error) {
	if cachedPlayer, exists := rm.audioCache[audioPath]; exists {
		return cachedPlayer, nil
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("audio context not available for %s", audioPath)
	}

	data, err := readResource(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file %s: %w", audioPath, err)
	}

	stream, err := decodeAudio(audioPath, data)
	if err != nil {
		return nil, err
	}

	var source io.Reader = stream
	if loop {
		source = audio.NewInfiniteLoop(stream, stream.Length())
	}

	player, err := rm.audioContext.NewPlayer(source)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", audioPath, err)
	}

	rm.audioCache[audioPath] = player
	return player, nil
}

// LoadAudio loads an audio file wrapped in an infinite loop (the hazard blinker tick).
// Supported formats: MP3 (.mp3) and OGG Vorbis (.ogg).
func (rm *ResourceManager) LoadAudio(audioPath string) (*audio.Player, error) {
	return rm.loadPlayer(audioPath, true)
}

// LoadSoundEffect loads a one-shot sound effect (engine start, horn).
// Supported formats: MP3 (.mp3) and OGG Vorbis (.ogg).
func (rm *ResourceManager) LoadSoundEffect(audioPath string) (*audio.Player, error) {
	return rm.loadPlayer(audioPath, false)
}

// GetAudioPlayer retrieves a previously loaded audio player from the cache, or nil.
func (rm *ResourceManager) GetAudioPlayer(audioPath string) *audio.Player {
	return rm.audioCache[audioPath]
}

// LoadFont loads a TrueType/OpenType font from the specified path and creates a text face with the given size.
// The font face is cached with a key combining path and size.
//
// Parameters:
//   - path: The file path to the font resource (e.g., "assets/fonts/dashboard.ttf").
//   - size: The font size in pixels.
//
// Returns:
//   - A pointer to the text.GoTextFace ready for rendering.
//   - An error if the file cannot be read or parsed.
func (rm *ResourceManager) LoadFont(fontPath string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", fontPath, size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	fontData, err := readResource(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file %s: %w", fontPath, err)
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", fontPath, err)
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// DefaultFont returns a Go Regular face of the given size.
// The panel uses it for labels when no font is configured.
func (rm *ResourceManager) DefaultFont(size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("goregular:%.1f", size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	if rm.defaultSource == nil {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return nil, fmt.Errorf("failed to create default font source: %w", err)
		}
		rm.defaultSource = source
	}

	face := &text.GoTextFace{
		Source:    rm.defaultSource,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// LoadResourceConfig loads the resource configuration from a YAML file.
// It should be called once during startup, before loading cues by ID.
//
// Parameters:
//   - configPath: Path to the YAML configuration file (e.g., "assets/config/resources.yaml")
//
// Returns:
//   - An error if the file cannot be read or parsed
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := readResource(configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}
	return rm.ParseResourceConfig(data)
}

// ParseResourceConfig parses YAML resource configuration data and builds the cue index.
func (rm *ResourceManager) ParseResourceConfig(data []byte) error {
	var config ResourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse resource config: %w", err)
	}

	seen := make(map[string]bool, len(config.Cues))
	for _, cue := range config.Cues {
		if cue.ID == "" {
			return fmt.Errorf("cue with path %q has no id", cue.Path)
		}
		if seen[cue.ID] {
			return fmt.Errorf("duplicate cue id %s", cue.ID)
		}
		seen[cue.ID] = true
	}

	rm.config = &config
	rm.buildCueIndex()
	return nil
}

// Config returns the parsed resource configuration, or nil before LoadResourceConfig.
func (rm *ResourceManager) Config() *ResourceConfig {
	return rm.config
}

// buildCueIndex constructs a mapping from cue IDs to cues with full paths.
//
//	SOUND_HORN -> assets/sounds/horn.mp3
func (rm *ResourceManager) buildCueIndex() {
	rm.cueIndex = make(map[string]CueResource)
	if rm.config == nil {
		return
	}

	for _, cue := range rm.config.Cues {
		resolved := cue
		resolved.Path = buildFullPath(rm.config.BasePath, cue.Path)
		if path.Ext(resolved.Path) == "" {
			resolved.Path += ".mp3" // Default to MP3 for cues
		}
		rm.cueIndex[cue.ID] = resolved
	}
}

// CuePath returns the resolved file path of a cue ID.
func (rm *ResourceManager) CuePath(cueID string) (string, bool) {
	cue, exists := rm.cueIndex[cueID]
	return cue.Path, exists
}

// LoadCueByID loads an audio cue using its ID from the resource configuration.
// Looping cues are wrapped in an infinite loop.
func (rm *ResourceManager) LoadCueByID(cueID string) (AudioCue, error) {
	if rm.config == nil {
		return nil, fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}

	cue, exists := rm.cueIndex[cueID]
	if !exists {
		return nil, fmt.Errorf("cue ID not found: %s", cueID)
	}

	player, err := rm.loadPlayer(cue.Path, cue.Loop)
	if err != nil {
		return nil, err
	}
	return player, nil
}

// buildFullPath joins the base path and a relative path with forward slashes,
// which is what the embedded filesystem expects.
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" {
		return filepath.ToSlash(relativePath)
	}
	return path.Join(filepath.ToSlash(basePath), filepath.ToSlash(relativePath))
}
