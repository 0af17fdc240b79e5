package game

import "testing"

func TestMemorySinkRecordsState(t *testing.T) {
	s := NewMemorySink(ElementNeedle, ElementScrim, ElementDashboard, ElementHornButton)

	s.SetRotation(ElementNeedle, 42)
	if got := s.Rotation(ElementNeedle); got != 42 {
		t.Errorf("Rotation = %v, want 42", got)
	}

	if _, set := s.Opacity(ElementScrim); set {
		t.Error("opacity should start unset")
	}
	s.SetOpacity(ElementScrim, 0.4)
	if v, set := s.Opacity(ElementScrim); !set || v != 0.4 {
		t.Errorf("Opacity = %v,%v, want 0.4,true", v, set)
	}
	s.ClearOpacity(ElementScrim)
	if got := s.OpacityOr(ElementScrim, 1); got != 1 {
		t.Errorf("OpacityOr after clear = %v, want default 1", got)
	}

	s.ToggleClass(ElementDashboard, ClassShaking, true)
	if !s.HasClass(ElementDashboard, ClassShaking) {
		t.Error("class not set")
	}
	s.ToggleClass(ElementDashboard, ClassShaking, false)
	if s.HasClass(ElementDashboard, ClassShaking) {
		t.Error("class not removed")
	}

	if s.Scale(ElementHornButton) != 1 {
		t.Error("default scale should be 1")
	}
	s.SetScale(ElementHornButton, 0.9)
	s.ResetScale(ElementHornButton)
	if s.Scale(ElementHornButton) != 1 {
		t.Error("ResetScale should restore 1")
	}
}

func TestMemorySinkUnregisteredIsNoop(t *testing.T) {
	s := NewMemorySink()

	s.SetRotation(ElementNeedle, 10)
	s.SetOpacity(ElementScrim, 0.5)
	s.ToggleClass(ElementPage, ClassHighBeam, true)

	if s.Registered(ElementNeedle) {
		t.Error("element should not be registered")
	}
	if s.Rotation(ElementNeedle) != 0 || s.HasClass(ElementPage, ClassHighBeam) {
		t.Error("unregistered element kept state")
	}
}

func TestSinkOrNop(t *testing.T) {
	if _, ok := SinkOrNop(nil).(NopSink); !ok {
		t.Error("nil sink should become NopSink")
	}
	s := NewMemorySink()
	if SinkOrNop(s) != VisualSink(s) {
		t.Error("non-nil sink should be returned unchanged")
	}
}
