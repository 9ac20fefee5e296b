package shell

// Menu icons.
const (
	IconClosed = "☰"
	IconOpen   = "✕"
)

// ClickTarget classifies where a pointer click landed.
type ClickTarget int

const (
	TargetOutside ClickTarget = iota
	TargetMenu
	TargetToggle
)

// Menu is the mobile navigation menu. The zero value is a closed menu.
type Menu struct {
	open    bool
	hasIcon bool
}

// NewMenu creates a closed menu. hasIcon reports whether the toggle carries
// an icon element whose glyph follows the state.
func NewMenu(hasIcon bool) *Menu {
	return &Menu{hasIcon: hasIcon}
}

// Open reports whether the menu is open.
func (m *Menu) Open() bool {
	return m != nil && m.open
}

// Toggle flips the menu state.
func (m *Menu) Toggle() bool {
	if m == nil {
		return false
	}
	return m.set(!m.open)
}

// LinkActivated closes the menu after a navigation link was followed.
func (m *Menu) LinkActivated() bool {
	return m.close()
}

// Click handles a document-level click. Clicks inside the menu or on the
// toggle are left to their own handlers.
func (m *Menu) Click(target ClickTarget) bool {
	if target != TargetOutside {
		return false
	}
	return m.close()
}

// Key handles a key press; Escape closes the menu.
func (m *Menu) Key(key string) bool {
	if key != "Escape" && key != "Esc" {
		return false
	}
	return m.close()
}

// AriaExpanded is the value for the toggle's aria-expanded attribute.
func (m *Menu) AriaExpanded() string {
	if m.Open() {
		return "true"
	}
	return "false"
}

// Icon returns the toggle glyph, or "" when the toggle has no icon.
func (m *Menu) Icon() string {
	if m == nil || !m.hasIcon {
		return ""
	}
	if m.open {
		return IconOpen
	}
	return IconClosed
}

func (m *Menu) close() bool {
	if m == nil {
		return false
	}
	return m.set(false)
}

// set reports whether the state changed.
func (m *Menu) set(open bool) bool {
	changed := m.open != open
	m.open = open
	return changed
}
