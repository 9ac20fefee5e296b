package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionsAt(tops ...float64) []Section {
	out := make([]Section, 0, len(tops))
	for i, top := range tops {
		out = append(out, Section{ID: DefaultSectionIDs[i], Top: top})
	}
	return out
}

func midPage(header float64) Viewport {
	return Viewport{ScrollY: 500, InnerHeight: 800, DocumentHeight: 5000, HeaderHeight: header}
}

func TestSelect(t *testing.T) {
	cfg := Config{Gap: 20, Buffer: 100, TopThreshold: 10, BottomThreshold: 10}

	tests := []struct {
		name     string
		sections []Section
		vp       Viewport
		expected string
	}{
		{
			name:     "only sections inside the activation band are eligible",
			sections: sectionsAt(50, 400, 900, 1500, 2200),
			vp:       midPage(80),
			expected: "about",
		},
		{
			name:     "closest eligible section wins",
			sections: sectionsAt(-900, -300, 90, 600, 1200),
			vp:       midPage(80),
			expected: "projects",
		},
		{
			name:     "section below the band does not steal focus",
			sections: sectionsAt(-900, -20, 210, 600, 1200),
			vp:       midPage(80),
			expected: "skills",
		},
		{
			name:     "nothing eligible falls back to the first section",
			sections: sectionsAt(300, 700, 900, 1500, 2200),
			vp:       midPage(0),
			expected: "about",
		},
		{
			name:     "top override",
			sections: sectionsAt(-2000, -1000, 100, 600, 1200),
			vp:       Viewport{ScrollY: 9, InnerHeight: 800, DocumentHeight: 5000},
			expected: "about",
		},
		{
			name:     "bottom override",
			sections: sectionsAt(-3000, -2000, -1000, 120, 700),
			vp:       Viewport{ScrollY: 4190, InnerHeight: 800, DocumentHeight: 5000},
			expected: "contact",
		},
		{
			name:     "bottom override wins over top override on short pages",
			sections: sectionsAt(0, 100, 200, 300, 400),
			vp:       Viewport{ScrollY: 0, InnerHeight: 800, DocumentHeight: 600},
			expected: "contact",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(cfg, DefaultSectionIDs, tt.sections, tt.vp)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSelectMissingSections(t *testing.T) {
	got := Select(DefaultConfig(), DefaultSectionIDs, nil, midPage(0))
	assert.Equal(t, "about", got)

	got = Select(DefaultConfig(), nil, nil, midPage(0))
	assert.Equal(t, "", got)
}

func TestTrackerKeepsOneActiveLink(t *testing.T) {
	links := NewNavLinks("#about", "#skills", "#projects", "#research", "#contact")
	tr := New(DefaultConfig(), DefaultSectionIDs, links)

	for scrollY := 0.0; scrollY <= 4200; scrollY += 37 {
		secs := make([]Section, 0, len(DefaultSectionIDs))
		for i, id := range DefaultSectionIDs {
			secs = append(secs, Section{ID: id, Top: float64(i)*900 - scrollY})
		}
		tr.Update(secs, Viewport{ScrollY: scrollY, InnerHeight: 800, DocumentHeight: 5000, HeaderHeight: 64})
		require.Len(t, links.Active(), 1, "scrollY=%v", scrollY)
		assert.Equal(t, "#"+tr.Current(), links.Active()[0])
	}
}

func TestCoalescerCollapsesBurst(t *testing.T) {
	var frames []func()
	schedule := func(fn func()) { frames = append(frames, fn) }

	links := NewNavLinks("#about", "#skills")
	tr := New(DefaultConfig(), []string{"about", "skills"}, links)
	measured := 0
	measure := func() ([]Section, Viewport) {
		measured++
		return []Section{{ID: "about", Top: -500}, {ID: "skills", Top: 30}},
			Viewport{ScrollY: 600, InnerHeight: 500, DocumentHeight: 3000}
	}

	assert.True(t, tr.Schedule(schedule, measure))
	assert.False(t, tr.Schedule(schedule, measure))
	assert.False(t, tr.Schedule(schedule, measure))
	require.Len(t, frames, 1)
	assert.True(t, tr.Pending())

	frames[0]()
	assert.Equal(t, 1, measured)
	assert.False(t, tr.Pending())
	assert.Equal(t, []string{"#skills"}, links.Active())

	assert.True(t, tr.Schedule(schedule, measure))
	assert.Len(t, frames, 2)
}
