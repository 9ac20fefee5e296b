package runtime

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"portfolio_site/internal/ui/contact"
	"portfolio_site/internal/ui/shell"
	"portfolio_site/internal/ui/tracker"
)

// Options wires the page elements into a Loop. A nil field means the element
// is absent from the page and the related events are ignored.
type Options struct {
	Tracker   *tracker.Tracker
	Menu      *shell.Menu
	Reveal    *shell.Reveal
	ToTop     *shell.ToTop
	Form      *contact.Form
	Submitter contact.Submitter
	// Endpoint is the form action.
	Endpoint string
	Logger   *zap.Logger
}

// Loop is the page event loop.
type Loop struct {
	opts     Options
	logger   *zap.Logger
	events   chan Event
	commands chan Command

	frame    func()
	geometry Frame
}

// New creates a loop. Call Run to start it.
func New(opts Options) *Loop {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{
		opts:     opts,
		logger:   logger,
		events:   make(chan Event, 16),
		commands: make(chan Command, 16),
	}
}

// Commands returns the stream of commands. It is closed when Run returns.
func (l *Loop) Commands() <-chan Command {
	return l.commands
}

// Dispatch delivers ev to the loop.
func (l *Loop) Dispatch(ctx context.Context, ev Event) error {
	select {
	case l.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes events until ctx is cancelled. The initial highlight is
// requested before any event is read.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.commands)

	var inflight errgroup.Group
	defer inflight.Wait()

	if err := l.scheduleTracker(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-l.events:
			if err := l.handle(ctx, &inflight, ev); err != nil {
				return err
			}
		}
	}
}

func (l *Loop) handle(ctx context.Context, inflight *errgroup.Group, ev Event) error {
	switch e := ev.(type) {
	case Scrolled:
		if l.opts.ToTop.Scroll(e.ScrollY) {
			if err := l.emit(ctx, ShowToTop{Visible: l.opts.ToTop.Visible()}); err != nil {
				return err
			}
		}
		return l.scheduleTracker(ctx)

	case Resized:
		return l.scheduleTracker(ctx)

	case Frame:
		l.geometry = e
		if fn := l.frame; fn != nil {
			l.frame = nil
			fn()
			return l.emit(ctx, SetActive{ID: l.opts.Tracker.Current()})
		}
		return nil

	case ToggleClicked:
		if l.opts.Menu == nil {
			return nil
		}
		l.opts.Menu.Toggle()
		return l.emitMenu(ctx)

	case LinkClicked:
		if e.NavLink && l.opts.Menu.LinkActivated() {
			if err := l.emitMenu(ctx); err != nil {
				return err
			}
		}
		lookup := func(id string) (float64, bool) {
			top, ok := e.ElementTops[id]
			return top, ok
		}
		intent := shell.ResolveScroll(e.Href, lookup, e.ScrollY, e.HeaderHeight)
		if !intent.Handled {
			return nil
		}
		return l.emit(ctx, ScrollTo{Top: intent.Top})

	case DocumentClicked:
		if l.opts.Menu.Click(e.Target) {
			return l.emitMenu(ctx)
		}
		return nil

	case KeyPressed:
		if l.opts.Menu.Key(e.Key) {
			return l.emitMenu(ctx)
		}
		return nil

	case Intersected:
		if l.opts.Reveal.Intersect(e.ID, e.Ratio) {
			return l.emit(ctx, Reveal{ID: e.ID})
		}
		return nil

	case ToTopClicked:
		if intent := l.opts.ToTop.Activate(); intent.Handled {
			return l.emit(ctx, ScrollTo{Top: intent.Top})
		}
		return nil

	case Submitted:
		return l.submit(ctx, inflight, e)

	case submitDone:
		l.opts.Form.Finish(e.outcome)
		if err := l.emit(ctx, SetNote{Note: l.opts.Form.Note}); err != nil {
			return err
		}
		if e.outcome.Kind == contact.OutcomeSuccess {
			return l.emit(ctx, ResetForm{})
		}
		return nil
	}

	l.logger.Debug("ignoring unknown event", zap.Any("event", ev))
	return nil
}

func (l *Loop) submit(ctx context.Context, inflight *errgroup.Group, e Submitted) error {
	form := l.opts.Form
	if form == nil {
		return nil
	}
	if form.InFlight() {
		l.logger.Info("submit ignored", zap.Error(contact.ErrSubmitInFlight))
		return nil
	}

	form.Draft = e.Draft
	step, err := form.Begin(l.opts.Endpoint, e.PageURL)
	if err != nil {
		return err
	}
	if err := l.emit(ctx, SetFieldErrors{Errors: form.Errors}); err != nil {
		return err
	}
	if err := l.emit(ctx, SetNote{Note: form.Note}); err != nil {
		return err
	}
	if !step.Send {
		return nil
	}

	submitter := l.opts.Submitter
	if submitter == nil {
		submitter = contact.NewClient(nil)
	}
	endpoint := step.Endpoint
	inflight.Go(func() error {
		outcome := submitter.Submit(ctx, endpoint, step.Draft)
		if outcome.Err != nil {
			l.logger.Warn("contact submission failed", zap.String("kind", string(outcome.Kind)), zap.Error(outcome.Err))
		}
		err := l.Dispatch(ctx, submitDone{outcome: outcome})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	return nil
}

// scheduleTracker coalesces a tracker pass into the next Frame.
func (l *Loop) scheduleTracker(ctx context.Context) error {
	if l.opts.Tracker == nil {
		return nil
	}
	scheduled := l.opts.Tracker.Schedule(
		func(fn func()) { l.frame = fn },
		func() ([]tracker.Section, tracker.Viewport) { return l.geometry.Sections, l.geometry.Viewport },
	)
	if !scheduled {
		return nil
	}
	return l.emit(ctx, RequestFrame{})
}

func (l *Loop) emitMenu(ctx context.Context) error {
	m := l.opts.Menu
	return l.emit(ctx, SetMenu{Open: m.Open(), AriaExpanded: m.AriaExpanded(), Icon: m.Icon()})
}

func (l *Loop) emit(ctx context.Context, cmd Command) error {
	select {
	case l.commands <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
