package game

// Element identifies a visual element of the instrument panel.
type Element string

// Panel elements.
const (
	ElementPage            Element = "page"
	ElementStartButton     Element = "start-engine-btn"
	ElementDashboard       Element = "dashboard"
	ElementNeedle          Element = "speed-needle"
	ElementHornButton      Element = "horn-btn"
	ElementHazardSwitch    Element = "hazard-switch"
	ElementHazardIcon      Element = "hazard-icon"
	ElementHazardOverlay   Element = "hazard-overlay"
	ElementHazardLampLeft  Element = "hazard-light-left"
	ElementHazardLampRight Element = "hazard-light-right"
	ElementScrim           Element = "night-scrim"
	ElementHeadlightKnob   Element = "headlight-knob"
)

// PanelElements lists every element the panel renderer knows how to draw.
var PanelElements = []Element{
	ElementPage,
	ElementStartButton,
	ElementDashboard,
	ElementNeedle,
	ElementHornButton,
	ElementHazardSwitch,
	ElementHazardIcon,
	ElementHazardOverlay,
	ElementHazardLampLeft,
	ElementHazardLampRight,
	ElementScrim,
	ElementHeadlightKnob,
}

// Visual classes toggled on elements.
const (
	ClassActive         = "active"
	ClassHidden         = "hidden"
	ClassRemoved        = "removed"
	ClassChecked        = "aria-checked"
	ClassShaking        = "shaking"
	ClassShakingViolent = "shaking-violent"
	ClassMotionBlur     = "motion-blur"
	ClassIlluminated    = "illuminated"
	ClassRevealMask     = "reveal-mask"
	ClassScrimDisabled  = "scrim-disabled"
	ClassHighBeam       = "high-beam"
)

// VisualSink receives rotation, opacity, scale and class updates from the
// panel systems. The systems only write to it; they never read back.
type VisualSink interface {
	SetRotation(el Element, degrees float64)
	SetScale(el Element, scale float64)
	ResetScale(el Element)
	SetOpacity(el Element, opacity float64)
	ClearOpacity(el Element)
	ToggleClass(el Element, class string, on bool)
}

// NopSink discards every update. Used when no renderer is attached.
type NopSink struct{}

func (NopSink) SetRotation(Element, float64)      {}
func (NopSink) SetScale(Element, float64)         {}
func (NopSink) ResetScale(Element)                {}
func (NopSink) SetOpacity(Element, float64)       {}
func (NopSink) ClearOpacity(Element)              {}
func (NopSink) ToggleClass(Element, string, bool) {}

// SinkOrNop returns sink, or a NopSink when sink is nil.
func SinkOrNop(sink VisualSink) VisualSink {
	if sink == nil {
		return NopSink{}
	}
	return sink
}

// ElementState is the retained visual state of one element.
type ElementState struct {
	Rotation   float64
	Scale      float64
	Opacity    float64
	OpacitySet bool
	Classes    map[string]bool
}

// MemorySink keeps the latest visual state of each registered element so a
// renderer can draw it later. Updates to unregistered elements are no-ops.
type MemorySink struct {
	elements map[Element]*ElementState
}

// NewMemorySink creates a sink with the given elements registered.
func NewMemorySink(elements ...Element) *MemorySink {
	s := &MemorySink{elements: make(map[Element]*ElementState)}
	s.Register(elements...)
	return s
}

// Register adds elements to the sink. Already registered elements keep their state.
func (s *MemorySink) Register(elements ...Element) {
	for _, el := range elements {
		if _, ok := s.elements[el]; ok {
			continue
		}
		s.elements[el] = &ElementState{Scale: 1, Classes: make(map[string]bool)}
	}
}

// Registered reports whether el is known to the sink.
func (s *MemorySink) Registered(el Element) bool {
	_, ok := s.elements[el]
	return ok
}

func (s *MemorySink) SetRotation(el Element, degrees float64) {
	if st, ok := s.elements[el]; ok {
		st.Rotation = degrees
	}
}

func (s *MemorySink) SetScale(el Element, scale float64) {
	if st, ok := s.elements[el]; ok {
		st.Scale = scale
	}
}

func (s *MemorySink) ResetScale(el Element) {
	s.SetScale(el, 1)
}

func (s *MemorySink) SetOpacity(el Element, opacity float64) {
	if st, ok := s.elements[el]; ok {
		st.Opacity = opacity
		st.OpacitySet = true
	}
}

func (s *MemorySink) ClearOpacity(el Element) {
	if st, ok := s.elements[el]; ok {
		st.Opacity = 0
		st.OpacitySet = false
	}
}

func (s *MemorySink) ToggleClass(el Element, class string, on bool) {
	st, ok := s.elements[el]
	if !ok {
		return
	}
	if on {
		st.Classes[class] = true
	} else {
		delete(st.Classes, class)
	}
}

// Rotation returns the last rotation written to el (0 if unknown).
func (s *MemorySink) Rotation(el Element) float64 {
	if st, ok := s.elements[el]; ok {
		return st.Rotation
	}
	return 0
}

// Scale returns the scale of el (1 if unknown).
func (s *MemorySink) Scale(el Element) float64 {
	if st, ok := s.elements[el]; ok {
		return st.Scale
	}
	return 1
}

// Opacity returns the opacity override of el and whether one is set.
func (s *MemorySink) Opacity(el Element) (float64, bool) {
	if st, ok := s.elements[el]; ok {
		return st.Opacity, st.OpacitySet
	}
	return 0, false
}

// OpacityOr returns the opacity override of el, or def when unset.
func (s *MemorySink) OpacityOr(el Element, def float64) float64 {
	if v, ok := s.Opacity(el); ok {
		return v
	}
	return def
}

// HasClass reports whether class is set on el.
func (s *MemorySink) HasClass(el Element, class string) bool {
	if st, ok := s.elements[el]; ok {
		return st.Classes[class]
	}
	return false
}
