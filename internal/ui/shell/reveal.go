package shell

// RevealThreshold is the visible fraction at which an element is revealed.
const RevealThreshold = 0.15

// Reveal tracks reveal-on-scroll elements. Once revealed an element is no
// longer observed and stays visible.
type Reveal struct {
	observed map[string]bool
	visible  map[string]bool
}

// NewReveal observes the given element ids.
func NewReveal(ids ...string) *Reveal {
	r := &Reveal{observed: map[string]bool{}, visible: map[string]bool{}}
	for _, id := range ids {
		r.Observe(id)
	}
	return r
}

// Observe starts watching id unless it was already revealed.
func (r *Reveal) Observe(id string) {
	if r == nil || r.visible[id] {
		return
	}
	if r.observed == nil {
		r.observed = map[string]bool{}
		r.visible = map[string]bool{}
	}
	r.observed[id] = true
}

// Intersect records an intersection ratio for id and reports whether the
// element has just become visible.
func (r *Reveal) Intersect(id string, ratio float64) bool {
	if r == nil || !r.observed[id] || ratio < RevealThreshold {
		return false
	}
	delete(r.observed, id)
	r.visible[id] = true
	return true
}

// Visible reports whether id has been revealed.
func (r *Reveal) Visible(id string) bool {
	return r != nil && r.visible[id]
}

// Observed reports whether id is still being watched.
func (r *Reveal) Observed(id string) bool {
	return r != nil && r.observed[id]
}
