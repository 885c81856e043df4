package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/capitalize-ai/health-assistant/internal/content"
	"github.com/capitalize-ai/health-assistant/internal/engine"
	"github.com/capitalize-ai/health-assistant/internal/middleware"
	"github.com/capitalize-ai/health-assistant/internal/model"
	"github.com/capitalize-ai/health-assistant/pkg/logger"
)

// ContentHandler serves the static catalogs and direct engine calls.
type ContentHandler struct {
	responder engine.Responder
	logger    *logger.Logger
}

// NewContentHandler creates a content handler.
func NewContentHandler(responder engine.Responder, log *logger.Logger) *ContentHandler {
	return &ContentHandler{responder: responder, logger: log}
}

// CategoryTreatment pairs a category with its presentation treatment.
type CategoryTreatment struct {
	Category  string          `json:"category"`
	Treatment model.Treatment `json:"treatment"`
}

// Suggestions handles GET /api/v1/content/suggestions
func (h *ContentHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, content.Suggestions())
}

// Prevention handles GET /api/v1/content/prevention
func (h *ContentHandler) Prevention(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, content.Prevention())
}

// Welcome handles GET /api/v1/content/welcome
func (h *ContentHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, content.Welcome())
}

// Languages handles GET /api/v1/content/languages
func (h *ContentHandler) Languages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, content.Languages())
}

// Navigation handles GET /api/v1/content/navigation
func (h *ContentHandler) Navigation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, content.Navigation())
}

// Categories handles GET /api/v1/content/categories
func (h *ContentHandler) Categories(w http.ResponseWriter, r *http.Request) {
	table := model.Treatments()
	out := make([]CategoryTreatment, 0, len(table))
	for _, c := range model.AllCategories() {
		out = append(out, CategoryTreatment{Category: string(c), Treatment: table[c]})
	}
	writeJSON(w, http.StatusOK, out)
}

// Respond handles POST /api/v1/respond, a stateless call into the engine.
func (h *ContentHandler) Respond(w http.ResponseWriter, r *http.Request) {
	var req model.RespondRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}
	if err := middleware.ValidateUtterance(req.Utterance); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_utterance", err.Error())
		return
	}

	resp, err := h.responder.Respond(r.Context(), req.Utterance)
	if err != nil {
		requestLogger(h.logger, r).Warn("responder failed", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, errorCodeFor(err), "the assistant could not answer")
		return
	}

	writeJSON(w, http.StatusOK, &model.RespondResponse{
		Body:      resp.Body,
		Category:  resp.Category,
		Treatment: model.TreatmentFor(resp.Category),
	})
}

func errorCodeFor(err error) string {
	switch {
	case errors.Is(err, engine.ErrTimeout):
		return "timeout"
	case errors.Is(err, engine.ErrUnavailable):
		return "unavailable"
	default:
		return "responder_error"
	}
}
