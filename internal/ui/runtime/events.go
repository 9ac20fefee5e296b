package runtime

import (
	"portfolio_site/internal/ui/contact"
	"portfolio_site/internal/ui/shell"
	"portfolio_site/internal/ui/tracker"
)

// Event is an input delivered to the loop.
type Event interface {
	event()
}

// Scrolled reports a new scroll offset.
type Scrolled struct {
	ScrollY float64
}

// Resized reports a viewport resize.
type Resized struct{}

// Frame is an animation frame, carrying geometry measured at frame time.
type Frame struct {
	Sections []tracker.Section
	Viewport tracker.Viewport
}

// ToggleClicked is an activation of the menu toggle.
type ToggleClicked struct{}

// LinkClicked is an activation of a same-page link. ElementTops maps element
// ids to their tops relative to the viewport.
type LinkClicked struct {
	Href         string
	NavLink      bool
	ElementTops  map[string]float64
	ScrollY      float64
	HeaderHeight float64
}

// DocumentClicked is a click anywhere in the document.
type DocumentClicked struct {
	Target shell.ClickTarget
}

// KeyPressed is a key press at document level.
type KeyPressed struct {
	Key string
}

// Intersected reports an intersection ratio of a reveal element.
type Intersected struct {
	ID    string
	Ratio float64
}

// ToTopClicked is an activation of the floating "to top" control.
type ToTopClicked struct{}

// Submitted is a contact form submit.
type Submitted struct {
	Draft   contact.Draft
	PageURL string
}

type submitDone struct {
	outcome contact.Outcome
}

func (Scrolled) event()        {}
func (Resized) event()         {}
func (Frame) event()           {}
func (ToggleClicked) event()   {}
func (LinkClicked) event()     {}
func (DocumentClicked) event() {}
func (KeyPressed) event()      {}
func (Intersected) event()     {}
func (ToTopClicked) event()    {}
func (Submitted) event()       {}
func (submitDone) event()      {}
