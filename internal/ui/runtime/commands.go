package runtime

import "portfolio_site/internal/ui/contact"

// Command is a render or state mutation the host must apply.
type Command interface {
	command()
}

// RequestFrame asks the host to deliver a Frame on the next animation frame.
type RequestFrame struct{}

// SetActive marks the nav link for ID as the only active one.
type SetActive struct {
	ID string
}

// SetMenu reflects the menu state on the menu, the toggle and its icon.
type SetMenu struct {
	Open         bool
	AriaExpanded string
	Icon         string
}

// ScrollTo smooth-scrolls the viewport.
type ScrollTo struct {
	Top float64
}

// Reveal marks an element permanently visible.
type Reveal struct {
	ID string
}

// ShowToTop toggles the floating "to top" control.
type ShowToTop struct {
	Visible bool
}

// SetFieldErrors replaces the contents of every error slot.
type SetFieldErrors struct {
	Errors contact.FieldErrors
}

// SetNote replaces the form notice.
type SetNote struct {
	Note string
}

// ResetForm clears every form field.
type ResetForm struct{}

func (RequestFrame) command()   {}
func (SetActive) command()      {}
func (SetMenu) command()        {}
func (ScrollTo) command()       {}
func (Reveal) command()         {}
func (ShowToTop) command()      {}
func (SetFieldErrors) command() {}
func (SetNote) command()        {}
func (ResetForm) command()      {}
