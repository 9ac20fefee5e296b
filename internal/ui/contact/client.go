package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Notices shown under the form.
const (
	NoteSending       = "Sending..."
	NoteSuccess       = "✅ Message sent successfully!"
	NoteFailure       = "❌ Something went wrong. Please try again."
	NoteNetwork       = "❌ Network error. Please try again."
	NoteNotConfigured = "ℹ️ The contact form is not connected yet. Add a form endpoint to start receiving messages."
)

// OutcomeKind classifies how a submission ended.
type OutcomeKind string

const (
	OutcomeSuccess       OutcomeKind = "success"
	OutcomeRejected      OutcomeKind = "rejected"
	OutcomeNetworkError  OutcomeKind = "network_error"
	OutcomeNotConfigured OutcomeKind = "not_configured"
	OutcomeInvalid       OutcomeKind = "invalid"
)

// Outcome is the user-facing result of a submit.
type Outcome struct {
	Kind   OutcomeKind
	Note   string
	Status int
	Errors FieldErrors
	Err    error
}

// ErrorPayload is the JSON body a form service returns on rejection.
type ErrorPayload struct {
	Errors []ErrorItem `json:"errors"`
}

// ErrorItem is one entry of ErrorPayload.
type ErrorItem struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Client posts drafts to a hosted form service.
type Client struct {
	http *http.Client
}

// NewClient creates a client. A nil httpClient gets a default with a timeout.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{http: httpClient}
}

// Submit sends d to endpoint as multipart/form-data. The draft is assumed
// to be validated already.
func (c *Client) Submit(ctx context.Context, endpoint string, d Draft) Outcome {
	body, contentType, err := encode(d)
	if err != nil {
		return Outcome{Kind: OutcomeNetworkError, Note: NoteNetwork, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return Outcome{Kind: OutcomeNetworkError, Note: NoteNetwork, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Outcome{Kind: OutcomeNetworkError, Note: NoteNetwork, Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return Outcome{Kind: OutcomeSuccess, Note: NoteSuccess, Status: resp.StatusCode}
	}

	note := NoteFailure
	var payload ErrorPayload
	if data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); err == nil {
		if json.Unmarshal(data, &payload) == nil && len(payload.Errors) > 0 && payload.Errors[0].Message != "" {
			note = payload.Errors[0].Message
		}
	}
	return Outcome{
		Kind:   OutcomeRejected,
		Note:   note,
		Status: resp.StatusCode,
		Err:    fmt.Errorf("form service responded with status %d", resp.StatusCode),
	}
}

func encode(d Draft) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := [][2]string{
		{FieldName, d.Name},
		{FieldEmail, d.Email},
		{FieldMessage, d.Message},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("failed to encode %s: %w", f[0], err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish form body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
