package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/capitalize-ai/health-assistant/internal/middleware"
	"github.com/capitalize-ai/health-assistant/internal/model"
	"github.com/capitalize-ai/health-assistant/internal/service"
	"github.com/capitalize-ai/health-assistant/pkg/logger"
)

// MessageHandler handles conversation entry endpoints.
type MessageHandler struct {
	messageService      *service.MessageService
	conversationService *service.ConversationService
	logger              *logger.Logger
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(
	msgSvc *service.MessageService,
	convSvc *service.ConversationService,
	log *logger.Logger,
) *MessageHandler {
	return &MessageHandler{
		messageService:      msgSvc,
		conversationService: convSvc,
		logger:              log,
	}
}

// List handles GET /api/v1/conversations/:id/messages
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conversationID := chi.URLParam(r, "id")

	if err := middleware.ValidateConversationID(conversationID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", err.Error())
		return
	}

	afterSequence := uint64(0)
	limit := 50

	if seq := r.URL.Query().Get("after_sequence"); seq != "" {
		if parsed, err := strconv.ParseUint(seq, 10, 64); err == nil {
			afterSequence = parsed
		}
	}

	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	resp, err := h.conversationService.Entries(ctx, middleware.GetUserID(ctx), conversationID, afterSequence, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Send handles POST /api/v1/conversations/:id/messages
//
// By default the user entry is returned with 202 Accepted and the bot reply
// arrives later (poll, SSE or WebSocket). With ?wait=true the handler blocks
// through the typing delay and returns both entries with 201 Created.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conversationID := chi.URLParam(r, "id")

	if err := middleware.ValidateConversationID(conversationID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", err.Error())
		return
	}

	var req model.SubmitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid request body")
		return
	}

	if err := middleware.ValidateSubmission(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_submission", err.Error())
		return
	}

	turn, err := h.messageService.Submit(ctx, middleware.GetUserID(ctx), conversationID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	wait, _ := strconv.ParseBool(r.URL.Query().Get("wait"))
	if !wait {
		w.Header().Set("Location", "/api/v1/conversations/"+conversationID+"/messages?after_sequence="+
			strconv.FormatUint(turn.UserEntry.Sequence, 10))
		writeJSON(w, http.StatusAccepted, &model.SubmitResponse{UserEntry: turn.UserEntry})
		return
	}

	reply, err := turn.Wait(ctx)
	if err != nil {
		if ctx.Err() != nil {
			requestLogger(h.logger, r).WithConversation(conversationID).Debug("client left before reply")
			return
		}
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, &model.SubmitResponse{
		UserEntry: turn.UserEntry,
		BotEntry:  reply,
	})
}
