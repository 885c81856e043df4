package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/capitalize-ai/health-assistant/internal/events"
	"github.com/capitalize-ai/health-assistant/internal/middleware"
	"github.com/capitalize-ai/health-assistant/internal/model"
	"github.com/capitalize-ai/health-assistant/internal/service"
	"github.com/capitalize-ai/health-assistant/pkg/logger"
	"github.com/capitalize-ai/health-assistant/pkg/metrics"
)

// DefaultHeartbeat is the interval between SSE heartbeats.
const DefaultHeartbeat = 30 * time.Second

// StreamHandler handles SSE streaming endpoints.
type StreamHandler struct {
	messageService      *service.MessageService
	conversationService *service.ConversationService
	broker              *events.Broker
	heartbeat           time.Duration
	logger              *logger.Logger
}

// NewStreamHandler creates a new stream handler.
func NewStreamHandler(
	msgSvc *service.MessageService,
	convSvc *service.ConversationService,
	broker *events.Broker,
	heartbeat time.Duration,
	log *logger.Logger,
) *StreamHandler {
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	return &StreamHandler{
		messageService:      msgSvc,
		conversationService: convSvc,
		broker:              broker,
		heartbeat:           heartbeat,
		logger:              log,
	}
}

// Stream handles GET /api/v1/conversations/:id/stream
// Replays the log after ?after_sequence=N, then forwards live events.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	conversationID := chi.URLParam(r, "id")

	if err := middleware.ValidateConversationID(conversationID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", err.Error())
		return
	}

	if _, err := h.conversationService.Get(ctx, userID, conversationID); err != nil {
		writeServiceError(w, err)
		return
	}

	var afterSequence uint64
	if seqStr := r.URL.Query().Get("after_sequence"); seqStr != "" {
		if seq, err := strconv.ParseUint(seqStr, 10, 64); err == nil {
			afterSequence = seq
		}
	}

	flusher, ok := startSSE(w)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming_unsupported", "streaming not supported")
		return
	}

	metrics.IncrementSubscribers("sse")
	defer metrics.DecrementSubscribers("sse")

	// Subscribe before replaying so nothing falls between the two.
	sub := h.broker.Subscribe(conversationID)
	defer sub.Close()

	sendSSEEvent(w, flusher, "connected", map[string]string{
		"conversation_id": conversationID,
	})

	lastSequence := afterSequence
	var replayed int
	for {
		page, err := h.conversationService.Entries(ctx, userID, conversationID, lastSequence, 100)
		if err != nil {
			sendSSEEvent(w, flusher, "error", &model.ErrorEvent{Code: "replay_error", Message: err.Error()})
			return
		}
		for _, entry := range page.Entries {
			sendSSEEvent(w, flusher, "message", entry)
			lastSequence = entry.Sequence
			replayed++
		}
		if !page.HasMore {
			break
		}
	}

	sendSSEEvent(w, flusher, "replay_complete", &model.ReplayCompleteEvent{
		LastSequence: lastSequence,
		EntryCount:   replayed,
	})

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			requestLogger(h.logger, r).WithConversation(conversationID).Debug("SSE client disconnected")
			return

		case ev, ok := <-sub.Events():
			if !ok {
				sendSSEEvent(w, flusher, "closed", map[string]string{"conversation_id": conversationID})
				return
			}
			switch ev.Type {
			case model.EventTypeEntry:
				if ev.Entry.Sequence <= lastSequence {
					continue
				}
				lastSequence = ev.Entry.Sequence
				sendSSEEvent(w, flusher, "message", ev.Entry)
			case model.EventTypeTyping:
				sendSSEEvent(w, flusher, "typing", ev.Typing)
			case model.EventTypeError:
				sendSSEEvent(w, flusher, "error", ev.Error)
			}

		case <-heartbeat.C:
			sendSSEEvent(w, flusher, "heartbeat", &model.HeartbeatEvent{
				Timestamp: time.Now().UTC(),
			})
		}
	}
}

// StreamWithMessage handles POST /api/v1/conversations/:id/stream
// It submits the message and streams the turn: user_message, typing,
// message_complete, done.
func (h *StreamHandler) StreamWithMessage(w http.ResponseWriter, r *http.Request) {
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

	if _, ok := w.(http.Flusher); !ok {
		writeError(w, http.StatusInternalServerError, "streaming_unsupported", "streaming not supported")
		return
	}

	sub := h.broker.Subscribe(conversationID)
	defer sub.Close()

	turn, err := h.messageService.Submit(ctx, middleware.GetUserID(ctx), conversationID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	flusher, _ := startSSE(w)

	metrics.IncrementSubscribers("sse")
	defer metrics.DecrementSubscribers("sse")

	sendSSEEvent(w, flusher, "user_message", turn.UserEntry)

	forward := func(ev model.Event) {
		switch ev.Type {
		case model.EventTypeTyping:
			sendSSEEvent(w, flusher, "typing", ev.Typing)
		case model.EventTypeError:
			sendSSEEvent(w, flusher, "error", ev.Error)
		}
	}

	live := sub.Events()
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-live:
			if !ok {
				// Dropped or conversation deleted; the turn result still arrives below.
				live = nil
				continue
			}
			forward(ev)

		case <-turn.Done():
			drain(live, forward)

			reply, err := turn.Wait(context.WithoutCancel(ctx))
			if err != nil {
				_, code := errorStatus(err)
				sendSSEEvent(w, flusher, "error", &model.ErrorEvent{Code: code, Message: err.Error()})
				return
			}

			sendSSEEvent(w, flusher, "message_complete", reply)
			sendSSEEvent(w, flusher, "done", map[string]bool{"success": true})
			return
		}
	}
}

// drain forwards events already buffered on ch without blocking.
func drain(ch <-chan model.Event, forward func(model.Event)) {
	if ch == nil {
		return
	}
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return
			}
			forward(ev)
		default:
			return
		}
	}
}

func startSSE(w http.ResponseWriter) (http.Flusher, bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, false
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return flusher, true
}

func sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return err
	}
	flusher.Flush()

	return nil
}
