package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Global audio context shared by all tests
// Ebitengine only allows one audio context to be created
var testAudioContext *audio.Context

// TestMain sets up the shared audio context before running tests
func TestMain(m *testing.M) {
	testAudioContext = audio.NewContext(48000)
	os.Exit(m.Run())
}

// TestNewResourceManager tests the creation of a new ResourceManager instance.
func TestNewResourceManager(t *testing.T) {
	rm := NewResourceManager(testAudioContext)

	if rm == nil {
		t.Fatal("NewResourceManager returned nil")
	}
	if rm.imageCache == nil || rm.audioCache == nil || rm.fontFaceCache == nil {
		t.Error("caches not initialized")
	}
	if rm.audioContext != testAudioContext {
		t.Error("audioContext not set correctly")
	}
}

// TestLoadSoundEffect_FileNotFound tests error handling for missing audio files.
func TestLoadSoundEffect_FileNotFound(t *testing.T) {
	rm := NewResourceManager(testAudioContext)

	_, err := rm.LoadSoundEffect(filepath.Join(t.TempDir(), "missing.mp3"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to open audio file") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestLoadAudio_UnsupportedFormat tests that only mp3 and ogg are accepted.
func TestLoadAudio_UnsupportedFormat(t *testing.T) {
	rm := NewResourceManager(testAudioContext)

	path := filepath.Join(t.TempDir(), "blinker.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	_, err := rm.LoadAudio(path)
	if err == nil || !strings.Contains(err.Error(), "unsupported audio format") {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}

// TestLoadAudio_Corrupted tests that undecodable data is reported.
func TestLoadAudio_Corrupted(t *testing.T) {
	rm := NewResourceManager(testAudioContext)

	path := filepath.Join(t.TempDir(), "horn.ogg")
	if err := os.WriteFile(path, []byte("not really vorbis"), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	if _, err := rm.LoadSoundEffect(path); err == nil {
		t.Error("expected decode error")
	}
	if rm.GetAudioPlayer(path) != nil {
		t.Error("failed load must not be cached")
	}
}

// TestLoadAudio_NoContext tests that a nil audio context degrades to an error.
func TestLoadAudio_NoContext(t *testing.T) {
	rm := NewResourceManager(nil)

	_, err := rm.LoadSoundEffect("assets/sounds/horn.mp3")
	if err == nil || !strings.Contains(err.Error(), "audio context not available") {
		t.Errorf("expected missing context error, got %v", err)
	}
}

// TestLoadCueByID_Errors tests cue lookup failures.
func TestLoadCueByID_Errors(t *testing.T) {
	rm := NewResourceManager(testAudioContext)

	if _, err := rm.LoadCueByID(CueHorn); err == nil || !strings.Contains(err.Error(), "resource config not loaded") {
		t.Errorf("expected config error, got %v", err)
	}

	if err := rm.ParseResourceConfig([]byte("cues:\n  - id: SOUND_HORN\n    path: nowhere/horn.mp3\n")); err != nil {
		t.Fatalf("ParseResourceConfig: %v", err)
	}

	if _, err := rm.LoadCueByID("SOUND_UNKNOWN"); err == nil || !strings.Contains(err.Error(), "cue ID not found") {
		t.Errorf("expected unknown cue error, got %v", err)
	}
	if _, err := rm.LoadCueByID(CueHorn); err == nil {
		t.Error("expected error for missing cue file")
	}
}

// TestLoadImage_FileNotFound tests error handling for missing images.
func TestLoadImage_FileNotFound(t *testing.T) {
	rm := NewResourceManager(nil)

	if _, err := rm.LoadImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing image")
	}
	if rm.GetImage("missing.png") != nil {
		t.Error("GetImage should return nil for unknown path")
	}
}

// TestDefaultFont tests that the built-in font is parsed once and cached per size.
func TestDefaultFont(t *testing.T) {
	rm := NewResourceManager(nil)

	face, err := rm.DefaultFont(14)
	if err != nil {
		t.Fatalf("DefaultFont failed: %v", err)
	}
	if face.Size != 14 {
		t.Errorf("face size = %v, want 14", face.Size)
	}

	again, _ := rm.DefaultFont(14)
	if again != face {
		t.Error("expected cached face for same size")
	}

	bigger, _ := rm.DefaultFont(20)
	if bigger == face || bigger.Source != face.Source {
		t.Error("different sizes should share the source but not the face")
	}
}

// TestLoadFont_FileNotFound tests error handling for missing font files.
func TestLoadFont_FileNotFound(t *testing.T) {
	rm := NewResourceManager(nil)
	if _, err := rm.LoadFont(filepath.Join(t.TempDir(), "missing.ttf"), 12); err == nil {
		t.Error("expected error for missing font")
	}
}
