package shell

// ToTopThreshold is the scroll offset past which the control is shown.
const ToTopThreshold = 600

// ToTop is the floating "back to top" control.
type ToTop struct {
	Threshold float64
	visible   bool
}

// NewToTop returns a hidden control using ToTopThreshold.
func NewToTop() *ToTop {
	return &ToTop{Threshold: ToTopThreshold}
}

// Scroll updates visibility for scrollY and reports whether it changed.
func (t *ToTop) Scroll(scrollY float64) bool {
	if t == nil {
		return false
	}
	v := scrollY > t.Threshold
	changed := v != t.visible
	t.visible = v
	return changed
}

// Visible reports whether the control is shown.
func (t *ToTop) Visible() bool {
	return t != nil && t.visible
}

// Activate returns the scroll destination of the control.
func (t *ToTop) Activate() ScrollIntent {
	if t == nil {
		return ScrollIntent{}
	}
	return ScrollIntent{Handled: true, Top: 0}
}
