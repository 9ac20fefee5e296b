package shell

import "strings"

const (
	// ScrollGap is the space kept between the sticky header and a scroll target.
	ScrollGap = 10
	// TopAlias is the fragment that always scrolls to the top of the page.
	TopAlias = "#top"
)

// Lookup resolves a fragment id to the element's top relative to the viewport.
type Lookup func(id string) (top float64, ok bool)

// ScrollIntent is the result of resolving a same-page link.
type ScrollIntent struct {
	// Handled is false when the link should keep its default behaviour.
	Handled bool
	Top     float64
}

// ResolveScroll computes where a same-page link should smooth-scroll to.
func ResolveScroll(href string, lookup Lookup, scrollY, headerHeight float64) ScrollIntent {
	if !strings.HasPrefix(href, "#") || href == "#" {
		return ScrollIntent{}
	}
	if href == TopAlias {
		return ScrollIntent{Handled: true, Top: 0}
	}
	if lookup == nil {
		return ScrollIntent{}
	}
	top, ok := lookup(strings.TrimPrefix(href, "#"))
	if !ok {
		return ScrollIntent{}
	}
	return ScrollIntent{Handled: true, Top: top + scrollY - headerHeight - ScrollGap}
}
