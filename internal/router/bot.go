package router

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/weberbot/weber/internal/messenger"
)

// routeTimeout bounds one event's external lookups. The original bridge
// had no timeout at all; a slow provider call must only ever delay its own
// reply.
const routeTimeout = 15 * time.Second

// Dispatcher accepts replies for asynchronous delivery.
type Dispatcher interface {
	Enqueue(recipientID string, payload messenger.Payload) bool
}

// Bot wires the webhook ingress to the router and the dispatch pool. It
// satisfies messenger.EventSink: each event is routed off the request
// goroutine so the platform acknowledgment never waits on a lookup.
type Bot struct {
	router     *Router
	dispatcher Dispatcher
	log        *zap.Logger
}

// NewBot creates the event sink.
func NewBot(rt *Router, d Dispatcher, log *zap.Logger) *Bot {
	return &Bot{router: rt, dispatcher: d, log: log}
}

// HandleEvent routes one event in the background and enqueues the reply.
// Lookup failures are logged and swallowed; the chat user simply sees no
// reply, per the webhook-path failure policy.
func (b *Bot) HandleEvent(_ context.Context, ev messenger.Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), routeTimeout)
		defer cancel()

		payload, err := b.router.Route(ctx, ev)
		if err != nil {
			b.log.Warn("lookup failed, dropping reply",
				zap.String("sender", ev.SenderID),
				zap.String("kind", string(ev.Kind)),
				zap.Error(err))
			return
		}
		if payload == nil {
			return
		}

		if !b.dispatcher.Enqueue(ev.SenderID, *payload) {
			b.log.Warn("dispatch queue full, dropping reply",
				zap.String("sender", ev.SenderID))
		}
	}()
}
