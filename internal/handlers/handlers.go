package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crdc-tools/studylink/internal/mapping"
	"github.com/crdc-tools/studylink/internal/registry"
)

// Pipeline is the reconciliation run behind the mappings endpoint.
type Pipeline interface {
	Run(ctx context.Context) ([]mapping.StudyMapping, error)
}

type Handler struct {
	pipeline Pipeline
}

func New(pipeline Pipeline) *Handler {
	return &Handler{
		pipeline: pipeline,
	}
}

// HandleMappings runs a full reconciliation pass per request. Nothing
// is cached between requests.
func (h *Handler) HandleMappings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	mappings, err := h.pipeline.Run(r.Context())
	if err != nil {
		if errors.Is(err, registry.ErrBackendUnreachable) {
			h.writeError(w, "Registry backend unreachable", http.StatusBadGateway)
			return
		}
		h.writeError(w, "Mapping run failed", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, mappings)
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}
