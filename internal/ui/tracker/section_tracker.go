package tracker

// Tracker owns the navigation links of a page and the frame guard used to
// coalesce recomputation.
type Tracker struct {
	cfg       Config
	ids       []string
	links     NavLinks
	coalescer Coalescer
	current   string
}

// New creates a tracker over ids. links may be nil when the page has no nav.
func New(cfg Config, ids []string, links NavLinks) *Tracker {
	return &Tracker{cfg: cfg, ids: append([]string(nil), ids...), links: links}
}

// Update recomputes the current section and applies it to the links.
func (t *Tracker) Update(sections []Section, vp Viewport) string {
	t.current = Select(t.cfg, t.ids, sections, vp)
	t.links.Apply(t.current)
	return t.current
}

// Schedule coalesces an update into the next frame. measure is called when
// the frame runs so geometry is read at that time, not at request time.
func (t *Tracker) Schedule(schedule Scheduler, measure func() ([]Section, Viewport)) bool {
	return t.coalescer.Request(schedule, func() {
		t.Update(measure())
	})
}

// Pending reports whether a coalesced update is waiting for its frame.
func (t *Tracker) Pending() bool { return t.coalescer.Pending() }

// Current returns the last selected section id.
func (t *Tracker) Current() string { return t.current }

// Links returns the tracked navigation links.
func (t *Tracker) Links() NavLinks { return t.links }

// IDs returns the section ids in document order.
func (t *Tracker) IDs() []string { return append([]string(nil), t.ids...) }

// Config returns the geometry constants.
func (t *Tracker) Config() Config { return t.cfg }
