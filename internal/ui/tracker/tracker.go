package tracker

import "math"

// Default tracker constants.
const (
	DefaultGap             = 20
	DefaultBuffer          = 80
	DefaultTopThreshold    = 10
	DefaultBottomThreshold = 10
)

// DefaultSectionIDs are the sections of the home page, in document order.
var DefaultSectionIDs = []string{"about", "skills", "projects", "research", "contact"}

// Config holds the geometry constants used by Select.
type Config struct {
	Gap             float64 `json:"gap"`
	Buffer          float64 `json:"buffer"`
	TopThreshold    float64 `json:"topThreshold"`
	BottomThreshold float64 `json:"bottomThreshold"`
}

// DefaultConfig returns the constants used by the site.
func DefaultConfig() Config {
	return Config{
		Gap:             DefaultGap,
		Buffer:          DefaultBuffer,
		TopThreshold:    DefaultTopThreshold,
		BottomThreshold: DefaultBottomThreshold,
	}
}

// Section is a rendered page section. Top is relative to the viewport.
type Section struct {
	ID  string
	Top float64
}

// Viewport describes the scroll state of the document.
type Viewport struct {
	ScrollY        float64
	InnerHeight    float64
	DocumentHeight float64
	HeaderHeight   float64 // 0 when there is no sticky header
}

// Select returns the id of the current section.
//
// ids is the fixed ordered list of section identifiers; sections holds the
// ones actually present in the document, in the same order.
func Select(cfg Config, ids []string, sections []Section, vp Viewport) string {
	if len(ids) == 0 && len(sections) == 0 {
		return ""
	}

	current := ""
	if len(sections) > 0 {
		current = sections[0].ID
	} else {
		current = ids[0]
	}

	offset := vp.HeaderHeight + cfg.Gap
	best := math.Inf(1)
	for _, sec := range sections {
		distance := math.Abs(sec.Top - offset)
		// Only sections that already reached the activation band are eligible.
		if sec.Top <= offset+cfg.Buffer && distance < best {
			best = distance
			current = sec.ID
		}
	}

	first, last := current, current
	if len(ids) > 0 {
		first, last = ids[0], ids[len(ids)-1]
	}
	if vp.ScrollY < cfg.TopThreshold {
		current = first
	}
	if vp.InnerHeight+vp.ScrollY >= vp.DocumentHeight-cfg.BottomThreshold {
		current = last
	}
	return current
}
