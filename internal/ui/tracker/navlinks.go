package tracker

import "strings"

// NavLink is a navigation anchor bound to one section through its fragment.
type NavLink struct {
	Href   string
	Active bool
}

// Target returns the section id the link points at.
func (l NavLink) Target() string {
	return strings.TrimPrefix(l.Href, "#")
}

// NavLinks is the ordered set of navigation links on a page.
type NavLinks []*NavLink

// NewNavLinks builds links for the given fragments (e.g. "#about").
func NewNavLinks(hrefs ...string) NavLinks {
	links := make(NavLinks, 0, len(hrefs))
	for _, h := range hrefs {
		links = append(links, &NavLink{Href: h})
	}
	return links
}

// Apply marks exactly the links targeting id as active.
func (ls NavLinks) Apply(id string) {
	want := "#" + id
	for _, l := range ls {
		l.Active = l.Href == want
	}
}

// Active returns the hrefs currently flagged active.
func (ls NavLinks) Active() []string {
	var out []string
	for _, l := range ls {
		if l.Active {
			out = append(out, l.Href)
		}
	}
	return out
}
