package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/capitalize-ai/health-assistant/internal/engine"
	"github.com/capitalize-ai/health-assistant/internal/events"
	"github.com/capitalize-ai/health-assistant/internal/model"
	"github.com/capitalize-ai/health-assistant/pkg/logger"
	"github.com/capitalize-ai/health-assistant/pkg/metrics"
)

const journalTimeout = 5 * time.Second

// MessageService runs chat turns: it logs the user entry, waits out the
// typing delay, and logs exactly one bot entry per user entry.
type MessageService struct {
	conversations *ConversationService
	responder     engine.Responder
	broker        *events.Broker
	journal       events.Journal
	typingDelay   time.Duration
	logger        *logger.Logger
	tracer        trace.Tracer
	now           func() time.Time

	baseCtx  context.Context
	shutdown context.CancelFunc

	// mu orders wg.Add against Shutdown's Wait.
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewMessageService creates a new message service. A nil journal disables mirroring.
func NewMessageService(
	conversations *ConversationService,
	responder engine.Responder,
	broker *events.Broker,
	journal events.Journal,
	typingDelay time.Duration,
	log *logger.Logger,
) *MessageService {
	if journal == nil {
		journal = events.NopJournal{}
	}
	baseCtx, cancel := context.WithCancel(context.Background())
	return &MessageService{
		conversations: conversations,
		responder:     responder,
		broker:        broker,
		journal:       journal,
		typingDelay:   typingDelay,
		logger:        log,
		tracer:        otel.Tracer("github.com/capitalize-ai/health-assistant/internal/service"),
		now:           time.Now,
		baseCtx:       baseCtx,
		shutdown:      cancel,
	}
}

// Submit appends the user's entry and schedules the bot reply. Empty
// submissions and submissions during a pending turn are rejected before
// anything is appended.
func (s *MessageService) Submit(ctx context.Context, userID, conversationID string, req *model.SubmitRequest) (*Turn, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" && len(req.Attachments) == 0 {
		metrics.TurnsRejectedTotal.WithLabelValues("empty").Inc()
		return nil, ErrEmptySubmission
	}
	if !s.acquire() {
		metrics.TurnsRejectedTotal.WithLabelValues("shutdown").Inc()
		return nil, ErrShuttingDown
	}
	started := false
	defer func() {
		if !started {
			s.wg.Done()
		}
	}()

	attachments := make([]model.Attachment, len(req.Attachments))
	copy(attachments, req.Attachments)

	entry := model.Entry{
		ID:             uuid.Must(uuid.NewV7()).String(),
		ConversationID: conversationID,
		Sender:         model.SenderUser,
		Body:           text,
		Category:       model.CategoryNeutral,
		Timestamp:      s.now().UTC(),
		Attachments:    attachments,
	}

	turnCtx, cancel := context.WithCancelCause(s.baseCtx)
	turnCtx = trace.ContextWithSpanContext(turnCtx, trace.SpanContextFromContext(ctx))
	turn := newTurn(cancel)

	appended, err := s.conversations.startTurn(userID, conversationID, entry, turn, func(e model.Entry) {
		s.publishEntry(&e)
		s.publishTyping(conversationID, true)
	})
	if err != nil {
		cancel(err)
		if errors.Is(err, ErrTurnInProgress) {
			metrics.TurnsRejectedTotal.WithLabelValues("in_progress").Inc()
		}
		return nil, err
	}
	turn.UserEntry = &appended

	s.record(ctx, &appended)
	metrics.TurnsInFlight.Inc()

	started = true
	go s.run(turnCtx, turn, text)

	return turn, nil
}

func (s *MessageService) run(ctx context.Context, turn *Turn, text string) {
	defer s.wg.Done()
	defer metrics.TurnsInFlight.Dec()

	conversationID := turn.UserEntry.ConversationID
	log := s.logger.WithConversation(conversationID)
	start := time.Now()

	ctx, span := s.tracer.Start(ctx, "service.turn", trace.WithAttributes(
		attribute.String("conversation.id", conversationID),
	))
	defer span.End()

	timer := time.NewTimer(s.typingDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		if errors.Is(context.Cause(ctx), ErrNotFound) {
			s.conversations.abandonTurn(conversationID, turn)
			metrics.RecordTurn("cancelled", time.Since(start).Seconds())
			log.Info("turn cancelled", zap.String("user_entry_id", turn.UserEntry.ID))
			turn.complete(nil, ErrNotFound)
			return
		}
		// Shutting down: reply now so the log keeps its user/bot pairing.
	}

	replyCtx := context.WithoutCancel(ctx)
	resp, err := s.responder.Respond(replyCtx, text)
	if err != nil || resp == nil || resp.Body == "" {
		log.Warn("responder failed, using fallback reply", zap.Error(err))
		s.broker.Publish(model.Event{
			Type:           model.EventTypeError,
			ConversationID: conversationID,
			Error:          &model.ErrorEvent{Code: errorCode(err), Message: "the assistant could not answer"},
			Timestamp:      s.now().UTC(),
		})
		resp = &model.EngineResponse{Body: engine.UnavailableBody, Category: model.CategoryNeutral}
	}

	entry := model.Entry{
		ID:             uuid.Must(uuid.NewV7()).String(),
		ConversationID: conversationID,
		Sender:         model.SenderBot,
		Body:           resp.Body,
		Category:       resp.Category,
		Timestamp:      s.now().UTC(),
		Attachments:    []model.Attachment{},
	}

	appended, err := s.conversations.finishTurn(conversationID, entry, turn, func(e model.Entry) {
		s.publishEntry(&e)
		s.publishTyping(conversationID, false)
	})
	if err != nil {
		// Deleted between the responder call and the append.
		metrics.RecordTurn("cancelled", time.Since(start).Seconds())
		turn.complete(nil, err)
		return
	}

	s.record(replyCtx, &appended)

	span.SetAttributes(attribute.String("reply.category", string(appended.Category)))
	metrics.RecordTurn("replied", time.Since(start).Seconds())
	log.Debug("turn complete",
		zap.Uint64("sequence", appended.Sequence),
		zap.String("category", string(appended.Category)),
	)

	turn.complete(&appended, nil)
}

// acquire registers a turn goroutine unless the service is shutting down.
func (s *MessageService) acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.wg.Add(1)
	return true
}

// Shutdown flushes in-flight turns and waits for them to finish or ctx to end.
func (s *MessageService) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.shutdown()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *MessageService) record(ctx context.Context, entry *model.Entry) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
	defer cancel()

	if err := s.journal.Record(ctx, entry); err != nil {
		s.logger.Warn("failed to journal entry",
			zap.String("conversation_id", entry.ConversationID),
			zap.String("entry_id", entry.ID),
			zap.Error(err),
		)
	}
}

func (s *MessageService) publishEntry(entry *model.Entry) {
	s.broker.Publish(model.Event{
		Type:           model.EventTypeEntry,
		ConversationID: entry.ConversationID,
		Entry:          entry,
		Timestamp:      entry.Timestamp,
	})
}

func (s *MessageService) publishTyping(conversationID string, active bool) {
	s.broker.Publish(model.Event{
		Type:           model.EventTypeTyping,
		ConversationID: conversationID,
		Typing:         &model.TypingEvent{Active: active},
		Timestamp:      s.now().UTC(),
	})
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, engine.ErrTimeout):
		return "timeout"
	case errors.Is(err, engine.ErrUnavailable):
		return "unavailable"
	default:
		return "responder_error"
	}
}
