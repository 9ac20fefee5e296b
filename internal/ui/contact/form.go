package contact

import (
	"context"
	"errors"
)

// ErrSubmitInFlight is returned when a submit starts while another one has
// not finished yet.
var ErrSubmitInFlight = errors.New("contact: submission already in flight")

// Submitter delivers a validated draft.
type Submitter interface {
	Submit(ctx context.Context, endpoint string, d Draft) Outcome
}

// Form is the contact form state on a page.
type Form struct {
	Draft  Draft
	Errors FieldErrors
	Note   string

	inFlight bool
}

// Step tells the caller what to do after Begin.
type Step struct {
	// Send is true when the draft must be delivered and Finish called.
	Send bool
	// Endpoint is the form action resolved against the page URL.
	Endpoint string
	Draft    Draft
	Outcome  Outcome
}

// InFlight reports whether a submission is waiting for its result.
func (f *Form) InFlight() bool { return f.inFlight }

// Begin validates the draft and decides whether it should be sent. Errors
// and the notice are reset at the start of every pass.
func (f *Form) Begin(endpoint, pageURL string) (Step, error) {
	if f.inFlight {
		return Step{}, ErrSubmitInFlight
	}
	f.Errors = FieldErrors{}
	f.Note = ""

	if errs := Validate(f.Draft); !errs.OK() {
		f.Errors = errs
		return Step{Outcome: Outcome{Kind: OutcomeInvalid, Errors: errs}}, nil
	}
	if !EndpointConfigured(endpoint, pageURL) {
		f.Note = NoteNotConfigured
		return Step{Outcome: Outcome{Kind: OutcomeNotConfigured, Note: NoteNotConfigured}}, nil
	}

	f.inFlight = true
	f.Note = NoteSending
	return Step{Send: true, Endpoint: ResolveEndpoint(endpoint, pageURL), Draft: f.Draft.Trimmed()}, nil
}

// Finish applies the result of a send started by Begin. A successful send
// clears the fields; anything else leaves them for correction.
func (f *Form) Finish(o Outcome) {
	f.inFlight = false
	f.Note = o.Note
	if o.Kind == OutcomeSuccess {
		f.Draft = Draft{}
	}
}

// Submit runs Begin, the send and Finish in one call.
func (f *Form) Submit(ctx context.Context, s Submitter, endpoint, pageURL string) (Outcome, error) {
	step, err := f.Begin(endpoint, pageURL)
	if err != nil {
		return Outcome{}, err
	}
	if !step.Send {
		return step.Outcome, nil
	}
	o := s.Submit(ctx, step.Endpoint, step.Draft)
	f.Finish(o)
	return o, nil
}
