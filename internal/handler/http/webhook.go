package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/broker-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/broker-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/webhook"
)

const maxWebhookBody = 1 << 20

type WebhookHandler interface {
	Identity(w http.ResponseWriter, r *http.Request)
}

type webhookHandlerImpl struct {
	identityService auth.IdentityService
	verifier        *webhook.Verifier
}

func NewWebhookHandler(identityService auth.IdentityService, verifier *webhook.Verifier) WebhookHandler {
	return &webhookHandlerImpl{identityService: identityService, verifier: verifier}
}

// Identity receives Clerk user lifecycle events delivered through Svix.
func (h *webhookHandlerImpl) Identity(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		response.BadRequest(w, "Failed to read request body", nil)
		return
	}

	if err := h.verifier.Verify(body, r.Header); err != nil {
		slog.WarnContext(r.Context(), "Rejected identity webhook", "svix_id", r.Header.Get(webhook.HeaderID), "error", err)
		response.HandleError(w, auth.ErrInvalidSignature)
		return
	}

	var event auth.IdentityEvent
	if err := json.Unmarshal(body, &event); err != nil {
		response.HandleError(w, auth.ErrMalformedEventBody)
		return
	}
	event.ID = r.Header.Get(webhook.HeaderID)

	result, err := h.identityService.HandleEvent(r.Context(), event)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to handle identity event", "event_id", event.ID, "type", event.Type, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
