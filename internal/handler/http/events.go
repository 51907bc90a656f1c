package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/broker-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/broker-payroll-go/internal/pkg/sse"
)

const keepaliveInterval = 30 * time.Second

type EventHandler interface {
	// Token issues a short-lived token for the EventSource query string.
	Token(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type eventHandlerImpl struct {
	hub        *sse.Hub
	jwtService jwt.Service
}

func NewEventHandler(hub *sse.Hub, jwtService jwt.Service) EventHandler {
	return &eventHandlerImpl{hub: hub, jwtService: jwtService}
}

type sseTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

func (h *eventHandlerImpl) Token(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(claims)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to generate SSE token", "error", err)
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, sseTokenResponse{Token: token, ExpiresIn: expiresIn})
}

// Stream serves the admin topic. EventSource cannot send headers, so the token
// arrives as a query parameter.
func (h *eventHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	claims, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !claims.IsAdmin() {
		response.Forbidden(w, "Admin role required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(sse.TopicAdmins)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"employee_id\":%q}\n\n", claims.EmployeeID)
	flusher.Flush()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.WarnContext(r.Context(), "Dropping unencodable SSE event", "event", event.Event, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
