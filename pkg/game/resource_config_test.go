package game

import (
	"os"
	"strings"
	"testing"
)

// TestLoadResourceConfig tests loading the shipped YAML resource configuration
func TestLoadResourceConfig(t *testing.T) {
	configPath := "../../assets/config/resources.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Skip("Skipping test - resource config file not found:", configPath)
	}

	rm := NewResourceManager(nil)
	if err := rm.LoadResourceConfig(configPath); err != nil {
		t.Fatalf("LoadResourceConfig failed: %v", err)
	}

	if rm.Config() == nil {
		t.Fatal("Config is nil after loading")
	}

	// Every cue the panel uses must be declared
	for _, id := range []string{CueEngineStart, CueHorn, CueHornFunny, CueBlinker} {
		if _, ok := rm.CuePath(id); !ok {
			t.Errorf("cue %s missing from resources.yaml", id)
		}
	}

	// Only the blinker loops
	for _, cue := range rm.Config().Cues {
		if cue.Loop != (cue.ID == CueBlinker) {
			t.Errorf("cue %s: loop=%v", cue.ID, cue.Loop)
		}
	}
}

// TestParseResourceConfig tests cue index construction and validation
func TestParseResourceConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     string
		wantPaths   map[string]string
	}{
		{
			name: "paths joined with base path",
			yamlContent: `
version: "1.0"
base_path: assets
cues:
  - id: SOUND_HORN
    path: sounds/horn.mp3
  - id: SOUND_BLINKER
    path: /sounds/blinker.ogg
    loop: true
  - id: SOUND_ENGINE_START
    path: sounds/engine
`,
			wantPaths: map[string]string{
				"SOUND_HORN":         "assets/sounds/horn.mp3",
				"SOUND_BLINKER":      "assets/sounds/blinker.ogg",
				"SOUND_ENGINE_START": "assets/sounds/engine.mp3",
			},
		},
		{
			name: "duplicate id",
			yamlContent: `
cues:
  - id: SOUND_HORN
    path: a.mp3
  - id: SOUND_HORN
    path: b.mp3
`,
			wantErr: "duplicate cue id",
		},
		{
			name: "missing id",
			yamlContent: `
cues:
  - path: a.mp3
`,
			wantErr: "has no id",
		},
		{
			name:        "malformed",
			yamlContent: "cues: [",
			wantErr:     "failed to parse resource config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rm := NewResourceManager(nil)
			err := rm.ParseResourceConfig([]byte(tt.yamlContent))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for id, want := range tt.wantPaths {
				got, ok := rm.CuePath(id)
				if !ok || got != want {
					t.Errorf("CuePath(%s) = %q, %v; want %q", id, got, ok, want)
				}
			}
		})
	}
}

// TestBuildFullPath tests the buildFullPath helper function
func TestBuildFullPath(t *testing.T) {
	tests := []struct {
		basePath     string
		relativePath string
		expected     string
	}{
		{"assets", "sounds/horn.mp3", "assets/sounds/horn.mp3"},
		{"assets", "/sounds/horn.mp3", "assets/sounds/horn.mp3"},
		{"", "sounds/horn.mp3", "sounds/horn.mp3"},
		{"assets", "sounds/blinker", "assets/sounds/blinker"},
	}

	for _, test := range tests {
		result := buildFullPath(test.basePath, test.relativePath)
		if result != test.expected {
			t.Errorf("buildFullPath(%q, %q) = %q, expected %q",
				test.basePath, test.relativePath, result, test.expected)
		}
	}
}
