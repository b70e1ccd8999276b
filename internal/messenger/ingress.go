package messenger

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// ErrNotPageEnvelope marks a webhook body that is not a page-subscription
// envelope. The boundary responds 404 so the platform stops retrying.
var ErrNotPageEnvelope = errors.New("not a page subscription envelope")

// EventSink receives unwrapped events for routing. Implementations must not
// block the webhook acknowledgment on reply delivery.
type EventSink interface {
	HandleEvent(ctx context.Context, ev Event)
}

// WebhookHandler serves the platform's verification handshake and event
// deliveries.
type WebhookHandler struct {
	verifyToken string
	sink        EventSink
	log         *zap.Logger
}

// NewWebhookHandler creates a handler that checks hub.verify_token against
// verifyToken and hands unwrapped events to sink.
func NewWebhookHandler(verifyToken string, sink EventSink, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		verifyToken: verifyToken,
		sink:        sink,
		log:         log,
	}
}

// Verify handles the subscription handshake (GET /webhook). The platform
// sends hub.mode, hub.verify_token and hub.challenge; on a match the raw
// challenge is echoed back.
func (h *WebhookHandler) Verify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := q.Get("hub.mode")
	token := q.Get("hub.verify_token")
	challenge := q.Get("hub.challenge")

	if mode == "" || token == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if mode != "subscribe" || token != h.verifyToken {
		h.log.Warn("webhook verification rejected", zap.String("mode", mode))
		w.WriteHeader(http.StatusForbidden)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(challenge))
}

// Receive handles event deliveries (POST /webhook). Events are processed
// sequentially in array order; the 200 acknowledgment does not wait for
// reply delivery.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	events, err := UnwrapEvents(body)
	if err != nil {
		h.log.Debug("unrecognized webhook envelope", zap.Error(err))
		w.WriteHeader(http.StatusNotFound)
		return
	}

	for _, ev := range events {
		h.sink.HandleEvent(r.Context(), ev)
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("EVENT_RECEIVED"))
}

// UnwrapEvents parses a webhook body and flattens it into events. Only
// page-subscription envelopes are accepted; anything else (including
// malformed JSON) returns ErrNotPageEnvelope. Each batched entry
// contributes its first messaging event only — a known simplification
// carried over from the original bridge.
func UnwrapEvents(body []byte) ([]Event, error) {
	var env webhookEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, ErrNotPageEnvelope
	}
	if env.Object != "page" {
		return nil, ErrNotPageEnvelope
	}

	events := make([]Event, 0, len(env.Entry))
	for _, entry := range env.Entry {
		if len(entry.Messaging) == 0 {
			continue
		}
		raw := entry.Messaging[0]

		switch {
		case raw.Message != nil:
			events = append(events, Event{
				SenderID: raw.Sender.ID,
				Kind:     KindMessage,
				Text:     raw.Message.Text,
			})
		case raw.Postback != nil:
			events = append(events, Event{
				SenderID: raw.Sender.ID,
				Kind:     KindPostback,
				Postback: raw.Postback.Payload,
			})
		}
	}

	return events, nil
}
