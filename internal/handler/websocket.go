package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/capitalize-ai/health-assistant/internal/events"
	"github.com/capitalize-ai/health-assistant/internal/middleware"
	"github.com/capitalize-ai/health-assistant/internal/model"
	"github.com/capitalize-ai/health-assistant/internal/service"
	"github.com/capitalize-ai/health-assistant/pkg/logger"
	"github.com/capitalize-ai/health-assistant/pkg/metrics"
)

const (
	wsWriteWait      = 10 * time.Second
	wsPongWait       = 60 * time.Second
	wsPingPeriod     = (wsPongWait * 9) / 10
	wsMaxMessageSize = 64 * 1024
)

// InboundMessage is a frame sent by a WebSocket client.
type InboundMessage struct {
	Type        string             `json:"type"`
	Text        string             `json:"text"`
	Attachments []model.Attachment `json:"attachments,omitempty"`
}

// WebSocketHandler serves the chat page over a WebSocket.
type WebSocketHandler struct {
	messageService      *service.MessageService
	conversationService *service.ConversationService
	broker              *events.Broker
	upgrader            websocket.Upgrader
	logger              *logger.Logger
}

// NewWebSocketHandler creates a WebSocket handler.
func NewWebSocketHandler(
	msgSvc *service.MessageService,
	convSvc *service.ConversationService,
	broker *events.Broker,
	log *logger.Logger,
) *WebSocketHandler {
	return &WebSocketHandler{
		messageService:      msgSvc,
		conversationService: convSvc,
		broker:              broker,
		upgrader: websocket.Upgrader{
			// Origins are enforced by the CORS layer.
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: log,
	}
}

// Serve handles GET /api/v1/conversations/:id/ws
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
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

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		requestLogger(h.logger, r).Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	metrics.IncrementSubscribers("websocket")
	defer metrics.DecrementSubscribers("websocket")

	log := requestLogger(h.logger, r).WithConversation(conversationID)
	sub := h.broker.Subscribe(conversationID)
	defer sub.Close()

	// Rejections from the read loop go to the single writer below.
	replies := make(chan model.Event, 8)
	readDone := make(chan struct{})

	go func() {
		defer close(readDone)
		conn.SetReadLimit(wsMaxMessageSize)
		conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})

		for {
			var msg InboundMessage
			if err := conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Warn("websocket read failed", zap.Error(err))
				}
				return
			}

			if ev, ok := h.handleInbound(r, userID, conversationID, &msg); !ok {
				select {
				case replies <- ev:
				default:
				}
			}
		}
	}()

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-readDone:
			return

		case <-ctx.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(wsWriteWait))
			return

		case ev, ok := <-sub.Events():
			if !ok {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "conversation closed"),
					time.Now().Add(wsWriteWait))
				return
			}
			if err := writeFrame(conn, ev); err != nil {
				return
			}

		case ev := <-replies:
			if err := writeFrame(conn, ev); err != nil {
				return
			}

		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		}
	}
}

// handleInbound processes one client frame. It returns false with an error
// event when the frame was rejected.
func (h *WebSocketHandler) handleInbound(r *http.Request, userID, conversationID string, msg *InboundMessage) (model.Event, bool) {
	reject := func(code, message string) (model.Event, bool) {
		return model.Event{
			Type:           model.EventTypeError,
			ConversationID: conversationID,
			Error:          &model.ErrorEvent{Code: code, Message: message},
			Timestamp:      time.Now().UTC(),
		}, false
	}

	if msg.Type != "submit" {
		return reject("unknown_type", "unsupported message type")
	}

	req := &model.SubmitRequest{Text: msg.Text, Attachments: msg.Attachments}
	if err := middleware.ValidateSubmission(req); err != nil {
		return reject("invalid_submission", err.Error())
	}

	// Entries and typing updates reach the client through the subscription.
	if _, err := h.messageService.Submit(r.Context(), userID, conversationID, req); err != nil {
		_, code := errorStatus(err)
		return reject(code, err.Error())
	}
	return model.Event{}, true
}

func writeFrame(conn *websocket.Conn, ev model.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}
