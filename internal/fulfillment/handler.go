// Package fulfillment serves the synchronous query endpoint: pre-parsed
// intent and parameters in, a spoken answer out. Unlike the webhook path
// it answers in the HTTP response instead of dispatching through the Send
// API.
package fulfillment

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/weberbot/weber/internal/router"
)

type queryRequest struct {
	Result struct {
		Action     string            `json:"action"`
		Parameters map[string]string `json:"parameters"`
	} `json:"result"`
}

type queryResponse struct {
	Speech      string `json:"speech"`
	DisplayText string `json:"displayText"`
	Source      string `json:"source"`
}

type queryError struct {
	Status struct {
		Code      int    `json:"code"`
		ErrorType string `json:"errorType"`
	} `json:"status"`
}

// Handler answers fulfillment queries through the shared router table.
type Handler struct {
	router *router.Router
	log    *zap.Logger
}

// NewHandler creates the fulfillment handler.
func NewHandler(rt *router.Router, log *zap.Logger) *Handler {
	return &Handler{router: rt, log: log}
}

// Query handles POST /ai.
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "I could not understand the request.")
		return
	}

	speech, source, err := h.router.Query(r.Context(), req.Result.Action, req.Result.Parameters)
	if err != nil {
		h.log.Warn("fulfillment lookup failed",
			zap.String("action", req.Result.Action),
			zap.Error(err))

		msg := "I failed to answer that."
		var le *router.LookupError
		if errors.As(err, &le) {
			msg = le.Message
		}
		h.writeError(w, msg)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(queryResponse{
		Speech:      speech,
		DisplayText: speech,
		Source:      source,
	})
}

func (h *Handler) writeError(w http.ResponseWriter, errorType string) {
	var body queryError
	body.Status.Code = http.StatusBadRequest
	body.Status.ErrorType = errorType

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(body)
}

// RegisterRoutes mounts the fulfillment endpoint on the given router.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/ai", h.Query)
}
