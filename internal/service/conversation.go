// Package service provides business logic for the health assistant.
package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/capitalize-ai/health-assistant/internal/events"
	"github.com/capitalize-ai/health-assistant/internal/model"
	"github.com/capitalize-ai/health-assistant/pkg/logger"
	"github.com/capitalize-ai/health-assistant/pkg/metrics"
)

// conversation is the in-memory record behind a model.Conversation.
type conversation struct {
	info    model.Conversation
	entries []model.Entry
	turn    *Turn
}

// ConversationService owns conversations and their append-only logs.
// The log lives for the lifetime of the process.
type ConversationService struct {
	broker          *events.Broker
	logger          *logger.Logger
	defaultLanguage string
	now             func() time.Time

	conversations map[string]*conversation
	mu            sync.RWMutex
}

// NewConversationService creates a new conversation service.
func NewConversationService(broker *events.Broker, defaultLanguage string, log *logger.Logger) *ConversationService {
	if defaultLanguage == "" {
		defaultLanguage = "en"
	}
	return &ConversationService{
		broker:          broker,
		logger:          log,
		defaultLanguage: defaultLanguage,
		now:             time.Now,
		conversations:   make(map[string]*conversation),
	}
}

// Create creates a new conversation.
func (s *ConversationService) Create(ctx context.Context, userID string, req *model.CreateConversationRequest) (*model.Conversation, error) {
	now := s.now()

	lang := req.Language
	if lang == "" {
		lang = s.defaultLanguage
	}

	c := &conversation{
		info: model.Conversation{
			ID:        uuid.Must(uuid.NewV7()).String(),
			UserID:    userID,
			Title:     req.Title,
			Language:  lang,
			CreatedAt: now,
			UpdatedAt: now,
			State:     model.TurnIdle,
		},
	}

	s.mu.Lock()
	s.conversations[c.info.ID] = c
	s.mu.Unlock()

	metrics.ConversationsTotal.Inc()
	s.logger.Info("conversation created",
		zap.String("conversation_id", c.info.ID),
		zap.String("user_id", userID),
		zap.String("language", lang),
	)

	info := c.info
	return &info, nil
}

// Get retrieves a conversation by ID.
func (s *ConversationService) Get(ctx context.Context, userID, conversationID string) (*model.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := s.lookupLocked(userID, conversationID)
	if err != nil {
		return nil, err
	}

	info := c.info
	return &info, nil
}

// List retrieves conversations for a user, oldest first.
func (s *ConversationService) List(ctx context.Context, userID string, limit, offset int) (*model.ListConversationsResponse, error) {
	s.mu.RLock()
	convs := make([]model.Conversation, 0, len(s.conversations))
	for _, c := range s.conversations {
		if c.info.UserID == userID {
			convs = append(convs, c.info)
		}
	}
	s.mu.RUnlock()

	sort.Slice(convs, func(i, j int) bool {
		if convs[i].CreatedAt.Equal(convs[j].CreatedAt) {
			return convs[i].ID < convs[j].ID
		}
		return convs[i].CreatedAt.Before(convs[j].CreatedAt)
	})

	total := len(convs)
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return &model.ListConversationsResponse{
		Conversations: convs[start:end],
		Total:         total,
		HasMore:       end < total,
	}, nil
}

// Update changes a conversation's title or language.
func (s *ConversationService) Update(ctx context.Context, userID, conversationID string, req *model.UpdateConversationRequest) (*model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.lookupLocked(userID, conversationID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		c.info.Title = req.Title
	}
	if req.Language != "" {
		c.info.Language = req.Language
	}
	c.info.UpdatedAt = s.now()

	info := c.info
	return &info, nil
}

// Delete removes a conversation and its log. An in-flight turn is cancelled
// and its bot entry is never appended.
func (s *ConversationService) Delete(ctx context.Context, userID, conversationID string) error {
	s.mu.Lock()
	c, err := s.lookupLocked(userID, conversationID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	delete(s.conversations, conversationID)
	turn := c.turn
	s.mu.Unlock()

	if turn != nil {
		turn.cancel(ErrNotFound)
	}
	s.broker.CloseConversation(conversationID)

	s.logger.Info("conversation deleted",
		zap.String("conversation_id", conversationID),
		zap.Int("entries", len(c.entries)),
	)
	return nil
}

// Entries returns log entries with a sequence greater than afterSequence.
func (s *ConversationService) Entries(ctx context.Context, userID, conversationID string, afterSequence uint64, limit int) (*model.ListEntriesResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := s.lookupLocked(userID, conversationID)
	if err != nil {
		return nil, err
	}

	// Sequences are dense and start at 1, so entry N lives at index N-1.
	start := int(min(afterSequence, uint64(len(c.entries))))
	end := min(start+limit, len(c.entries))

	out := make([]model.Entry, end-start)
	copy(out, c.entries[start:end])

	resp := &model.ListEntriesResponse{
		Entries: out,
		HasMore: end < len(c.entries),
		State:   c.info.State,
	}
	if len(out) > 0 {
		resp.LastSequence = out[len(out)-1].Sequence
	} else {
		resp.LastSequence = afterSequence
	}
	return resp, nil
}

func (s *ConversationService) lookupLocked(userID, conversationID string) (*conversation, error) {
	c, ok := s.conversations[conversationID]
	if !ok || c.info.UserID != userID {
		return nil, ErrNotFound
	}
	return c, nil
}

// appendLocked assigns the next sequence and appends entry to the log.
func (s *ConversationService) appendLocked(c *conversation, entry model.Entry) model.Entry {
	entry.Sequence = uint64(len(c.entries)) + 1
	c.entries = append(c.entries, entry)

	last := entry
	c.info.LastEntry = &last
	c.info.EntryCount = len(c.entries)
	c.info.UpdatedAt = entry.Timestamp

	metrics.EntriesTotal.WithLabelValues(string(entry.Sender)).Inc()
	return entry
}

// startTurn appends the user entry and marks the conversation as awaiting a
// reply. It fails without appending if a turn is already in flight.
// announce runs under the store lock so live events follow log order.
func (s *ConversationService) startTurn(userID, conversationID string, entry model.Entry, turn *Turn, announce func(model.Entry)) (model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.lookupLocked(userID, conversationID)
	if err != nil {
		return model.Entry{}, err
	}
	if c.turn != nil {
		return model.Entry{}, ErrTurnInProgress
	}

	appended := s.appendLocked(c, entry)
	c.turn = turn
	c.info.State = model.TurnAwaitingResponse
	announce(appended)
	return appended, nil
}

// finishTurn appends the bot entry and returns the conversation to idle.
// announce runs under the store lock, before another turn can start.
func (s *ConversationService) finishTurn(conversationID string, entry model.Entry, turn *Turn, announce func(model.Entry)) (model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.conversations[conversationID]
	if !ok || c.turn != turn {
		return model.Entry{}, ErrNotFound
	}

	appended := s.appendLocked(c, entry)
	c.turn = nil
	c.info.State = model.TurnIdle
	announce(appended)
	return appended, nil
}

// abandonTurn returns the conversation to idle without a bot entry.
func (s *ConversationService) abandonTurn(conversationID string, turn *Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.conversations[conversationID]; ok && c.turn == turn {
		c.turn = nil
		c.info.State = model.TurnIdle
	}
}
