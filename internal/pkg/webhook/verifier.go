package webhook

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	svix "github.com/svix/svix-webhooks/go"
)

// Svix delivery headers. HeaderID doubles as the idempotency key for an event.
const (
	HeaderID        = "svix-id"
	HeaderTimestamp = "svix-timestamp"
	HeaderSignature = "svix-signature"
)

// ErrNotConfigured is returned by Verify when no signing secret is set.
var ErrNotConfigured = errors.New("webhook signing secret not configured")

// Verifier checks Svix-signed deliveries, including the timestamp tolerance.
type Verifier struct {
	wh *svix.Webhook
}

// NewVerifier takes the endpoint secret ("whsec_..."). An empty secret yields a
// verifier that rejects every delivery.
func NewVerifier(secret string) (*Verifier, error) {
	if secret == "" {
		return &Verifier{}, nil
	}
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook signing secret: %w", err)
	}
	return &Verifier{wh: wh}, nil
}

func (v *Verifier) Enabled() bool {
	return v.wh != nil
}

func (v *Verifier) Verify(payload []byte, headers http.Header) error {
	if v.wh == nil {
		return ErrNotConfigured
	}
	return v.wh.Verify(payload, headers)
}

// SignedHeaders builds the headers a sender would attach to payload.
func (v *Verifier) SignedHeaders(msgID string, at time.Time, payload []byte) (http.Header, error) {
	if v.wh == nil {
		return nil, ErrNotConfigured
	}
	signature, err := v.wh.Sign(msgID, at, payload)
	if err != nil {
		return nil, fmt.Errorf("sign webhook payload: %w", err)
	}
	h := http.Header{}
	h.Set(HeaderID, msgID)
	h.Set(HeaderTimestamp, strconv.FormatInt(at.Unix(), 10))
	h.Set(HeaderSignature, signature)
	return h, nil
}
