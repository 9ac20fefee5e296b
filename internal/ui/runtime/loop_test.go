package runtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"portfolio_site/internal/ui/contact"
	"portfolio_site/internal/ui/shell"
	"portfolio_site/internal/ui/tracker"
)

type stubSubmitter struct {
	outcome contact.Outcome
	release chan struct{}
}

func (s *stubSubmitter) Submit(ctx context.Context, _ string, _ contact.Draft) contact.Outcome {
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return contact.Outcome{Kind: contact.OutcomeNetworkError, Note: contact.NoteNetwork, Err: ctx.Err()}
		}
	}
	return s.outcome
}

type harness struct {
	t      *testing.T
	loop   *Loop
	ctx    context.Context
	cancel context.CancelFunc
	done   chan error
}

func start(t *testing.T, opts Options) *harness {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	h := &harness{t: t, loop: New(opts), ctx: ctx, cancel: cancel, done: make(chan error, 1)}
	go func() { h.done <- h.loop.Run(ctx) }()
	return h
}

func (h *harness) send(ev Event) {
	h.t.Helper()
	require.NoError(h.t, h.loop.Dispatch(h.ctx, ev))
}

func (h *harness) next() Command {
	h.t.Helper()
	select {
	case cmd := <-h.loop.Commands():
		return cmd
	case <-time.After(2 * time.Second):
		h.t.Fatal("timed out waiting for a command")
		return nil
	}
}

func (h *harness) stop() {
	h.t.Helper()
	h.cancel()
	for range h.loop.Commands() {
	}
	assert.ErrorIs(h.t, <-h.done, context.Canceled)
}

func pageGeometry(scrollY float64) Frame {
	secs := make([]tracker.Section, 0, len(tracker.DefaultSectionIDs))
	for i, id := range tracker.DefaultSectionIDs {
		secs = append(secs, tracker.Section{ID: id, Top: float64(i)*1000 - scrollY})
	}
	return Frame{
		Sections: secs,
		Viewport: tracker.Viewport{ScrollY: scrollY, InnerHeight: 800, DocumentHeight: 5200, HeaderHeight: 60},
	}
}

func TestLoopTrackerCoalescesPerFrame(t *testing.T) {
	defer goleak.VerifyNone(t)

	links := tracker.NewNavLinks("#about", "#skills", "#projects", "#research", "#contact")
	h := start(t, Options{
		Tracker: tracker.New(tracker.DefaultConfig(), tracker.DefaultSectionIDs, links),
		ToTop:   shell.NewToTop(),
	})
	defer h.stop()

	// eager pass at startup
	assert.Equal(t, RequestFrame{}, h.next())

	h.send(Scrolled{ScrollY: 700})
	assert.Equal(t, ShowToTop{Visible: true}, h.next())
	h.send(Scrolled{ScrollY: 900})
	h.send(Resized{})
	h.send(Scrolled{ScrollY: 1010})

	h.send(pageGeometry(1010))
	assert.Equal(t, SetActive{ID: "skills"}, h.next())
	assert.Equal(t, []string{"#skills"}, links.Active())

	// a frame nobody asked for does nothing
	h.send(pageGeometry(2000))
	h.send(Scrolled{ScrollY: 0})
	assert.Equal(t, ShowToTop{Visible: false}, h.next())
	assert.Equal(t, RequestFrame{}, h.next())

	h.send(pageGeometry(0))
	assert.Equal(t, SetActive{ID: "about"}, h.next())
}

func TestLoopMenuAndScroll(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := start(t, Options{
		Menu:   shell.NewMenu(true),
		Reveal: shell.NewReveal("card-1"),
		ToTop:  shell.NewToTop(),
	})
	defer h.stop()

	h.send(ToggleClicked{})
	assert.Equal(t, SetMenu{Open: true, AriaExpanded: "true", Icon: shell.IconOpen}, h.next())

	h.send(DocumentClicked{Target: shell.TargetMenu})
	h.send(LinkClicked{
		Href:         "#projects",
		NavLink:      true,
		ElementTops:  map[string]float64{"projects": 300},
		ScrollY:      1000,
		HeaderHeight: 64,
	})
	assert.Equal(t, SetMenu{Open: false, AriaExpanded: "false", Icon: shell.IconClosed}, h.next())
	assert.Equal(t, ScrollTo{Top: 300 + 1000 - 64 - shell.ScrollGap}, h.next())

	h.send(LinkClicked{Href: "#missing", ElementTops: map[string]float64{}})
	h.send(KeyPressed{Key: "Escape"})
	h.send(Intersected{ID: "card-1", Ratio: 0.5})
	assert.Equal(t, Reveal{ID: "card-1"}, h.next())

	h.send(Intersected{ID: "card-1", Ratio: 0.9})
	h.send(LinkClicked{Href: "#top"})
	assert.Equal(t, ScrollTo{Top: 0}, h.next())

	h.send(ToggleClicked{})
	assert.Equal(t, SetMenu{Open: true, AriaExpanded: "true", Icon: shell.IconOpen}, h.next())
	h.send(DocumentClicked{Target: shell.TargetOutside})
	assert.Equal(t, SetMenu{Open: false, AriaExpanded: "false", Icon: shell.IconClosed}, h.next())

	h.send(ToTopClicked{})
	assert.Equal(t, ScrollTo{Top: 0}, h.next())
}

func TestLoopSubmit(t *testing.T) {
	defer goleak.VerifyNone(t)

	sub := &stubSubmitter{
		outcome: contact.Outcome{Kind: contact.OutcomeSuccess, Note: contact.NoteSuccess},
		release: make(chan struct{}),
	}
	form := &contact.Form{}
	h := start(t, Options{Form: form, Submitter: sub, Endpoint: "https://forms.example/f/1"})
	defer h.stop()

	h.send(Submitted{Draft: contact.Draft{Name: "A", Email: "bad", Message: "short"}})
	cmd := h.next()
	require.IsType(t, SetFieldErrors{}, cmd)
	assert.Len(t, cmd.(SetFieldErrors).Errors, 3)
	assert.Equal(t, SetNote{}, h.next())

	good := contact.Draft{Name: "Alice", Email: "a@b.co", Message: "1234567890"}
	h.send(Submitted{Draft: good, PageURL: "https://me.dev/"})
	assert.Equal(t, SetFieldErrors{Errors: contact.FieldErrors{}}, h.next())
	assert.Equal(t, SetNote{Note: contact.NoteSending}, h.next())

	// overlapping submit is dropped
	h.send(Submitted{Draft: good, PageURL: "https://me.dev/"})
	close(sub.release)

	assert.Equal(t, SetNote{Note: contact.NoteSuccess}, h.next())
	assert.Equal(t, ResetForm{}, h.next())
	assert.True(t, form.Draft.Empty())
}

func TestLoopStopsWithSubmissionInFlight(t *testing.T) {
	defer goleak.VerifyNone(t)

	sub := &stubSubmitter{release: make(chan struct{})}
	h := start(t, Options{Form: &contact.Form{}, Submitter: sub, Endpoint: "https://forms.example/f/1"})

	h.send(Submitted{Draft: contact.Draft{Name: "Alice", Email: "a@b.co", Message: "1234567890"}})
	h.next()
	h.next()
	h.stop()
}
