package messenger

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the webhook endpoints on the given router.
func RegisterRoutes(r chi.Router, h *WebhookHandler) {
	r.Get("/webhook", h.Verify)
	r.Post("/webhook", h.Receive)
}
