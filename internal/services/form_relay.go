package services

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"portfolio_site/internal/ui/contact"
)

// FormRelay forwards validated contact drafts to the hosted form service.
type FormRelay struct {
	endpoint string
	client   *contact.Client
	log      *zap.Logger
}

// NewFormRelay creates a relay to endpoint. httpClient may be nil.
func NewFormRelay(endpoint string, httpClient *http.Client, log *zap.Logger) *FormRelay {
	return &FormRelay{
		endpoint: endpoint,
		client:   contact.NewClient(httpClient),
		log:      log,
	}
}

// Enabled reports whether there is somewhere to forward to.
func (r *FormRelay) Enabled() bool {
	return r != nil && contact.EndpointConfigured(r.endpoint, "")
}

// Relay delivers d and returns the outcome to show the visitor.
func (r *FormRelay) Relay(ctx context.Context, d contact.Draft) contact.Outcome {
	if !r.Enabled() {
		return contact.Outcome{Kind: contact.OutcomeNotConfigured, Note: contact.NoteNotConfigured}
	}

	id := uuid.NewString()
	outcome := r.client.Submit(ctx, r.endpoint, d.Trimmed())
	fields := []zap.Field{
		zap.String("submission_id", id),
		zap.String("outcome", string(outcome.Kind)),
		zap.Int("status", outcome.Status),
	}
	if outcome.Err != nil {
		r.log.Warn("contact relay failed", append(fields, zap.Error(outcome.Err))...)
	} else {
		r.log.Info("contact message relayed", fields...)
	}
	return outcome
}
