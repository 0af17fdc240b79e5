package utils

import (
	"math"
	"testing"
)

func TestEaseOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"中点", 0.5, 0.875},
		{"终点", 1.0, 1.0},
		{"越界下限", -0.5, 0.0},
		{"越界上限", 2.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseOutCubic(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseOutCubic(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestEaseInQuad(t *testing.T) {
	if got := EaseInQuad(0.5); math.Abs(got-0.25) > 0.001 {
		t.Errorf("EaseInQuad(0.5) = %v, 期望 0.25", got)
	}
	if got := EaseInQuad(3); got != 1 {
		t.Errorf("EaseInQuad(3) = %v, 期望 1", got)
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(650, 470, 0.5); got != 560 {
		t.Errorf("Lerp(650, 470, 0.5) = %v, 期望 560", got)
	}
	if got := Lerp(-120, 120, 0); got != -120 {
		t.Errorf("Lerp(-120, 120, 0) = %v, 期望 -120", got)
	}
}
