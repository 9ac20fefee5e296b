package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio_site/internal/services"
	"portfolio_site/internal/ui/contact"
)

// ContactResponse is the JSON body of /contact. Errors has the same shape as
// the hosted form service so the browser script handles both alike.
type ContactResponse struct {
	OK      bool                `json:"ok"`
	Message string              `json:"message,omitempty"`
	Errors  []contact.ErrorItem `json:"errors,omitempty"`
}

// ContactHandler validates contact messages and relays them to the form service
type ContactHandler struct {
	relay *services.FormRelay
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(relay *services.FormRelay) *ContactHandler {
	return &ContactHandler{relay: relay}
}

// Submit handles a contact form post
func (h *ContactHandler) Submit(c echo.Context) error {
	draft := contact.Draft{
		Name:    c.FormValue(contact.FieldName),
		Email:   c.FormValue(contact.FieldEmail),
		Message: c.FormValue(contact.FieldMessage),
	}

	if errs := contact.Validate(draft); !errs.OK() {
		resp := ContactResponse{}
		for _, field := range []string{contact.FieldName, contact.FieldEmail, contact.FieldMessage} {
			if msg, ok := errs[field]; ok {
				resp.Errors = append(resp.Errors, contact.ErrorItem{Field: field, Message: msg})
			}
		}
		return c.JSON(http.StatusUnprocessableEntity, resp)
	}

	outcome := h.relay.Relay(c.Request().Context(), draft)
	switch outcome.Kind {
	case contact.OutcomeSuccess:
		return c.JSON(http.StatusOK, ContactResponse{OK: true, Message: outcome.Note})
	case contact.OutcomeNotConfigured:
		return c.JSON(http.StatusServiceUnavailable, ContactResponse{
			Errors: []contact.ErrorItem{{Message: outcome.Note}},
		})
	default:
		return c.JSON(http.StatusBadGateway, ContactResponse{
			Errors: []contact.ErrorItem{{Message: outcome.Note}},
		})
	}
}
