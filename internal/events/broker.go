// Package events fans conversation events out to live subscribers.
package events

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/capitalize-ai/health-assistant/internal/model"
	"github.com/capitalize-ai/health-assistant/pkg/logger"
)

// DefaultBuffer is the per-subscriber channel capacity.
const DefaultBuffer = 64

// Subscription receives events for one conversation until closed.
type Subscription struct {
	ConversationID string

	ch     chan model.Event
	broker *Broker
	closed bool // guarded by broker.mu
}

// Events returns the receive channel. It is closed when the subscription ends.
func (s *Subscription) Events() <-chan model.Event {
	return s.ch
}

// Close unsubscribes. It is safe to call more than once.
func (s *Subscription) Close() {
	s.broker.remove(s)
}

// Broker manages per-conversation subscribers.
type Broker struct {
	mu     sync.Mutex
	subs   map[string]map[*Subscription]struct{}
	buffer int
	logger *logger.Logger
}

// NewBroker creates a broker. A non-positive buffer uses DefaultBuffer.
func NewBroker(buffer int, log *logger.Logger) *Broker {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Broker{
		subs:   make(map[string]map[*Subscription]struct{}),
		buffer: buffer,
		logger: log,
	}
}

// Subscribe registers a new subscriber for conversationID.
func (b *Broker) Subscribe(conversationID string) *Subscription {
	sub := &Subscription{
		ConversationID: conversationID,
		ch:             make(chan model.Event, b.buffer),
		broker:         b,
	}

	b.mu.Lock()
	if b.subs[conversationID] == nil {
		b.subs[conversationID] = make(map[*Subscription]struct{})
	}
	b.subs[conversationID][sub] = struct{}{}
	b.mu.Unlock()

	return sub
}

// Publish delivers ev to every subscriber of its conversation without
// blocking. Subscribers whose buffer is full are dropped.
func (b *Broker) Publish(ev model.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for sub := range b.subs[ev.ConversationID] {
		select {
		case sub.ch <- ev:
		default:
			b.logger.Warn("dropping slow subscriber",
				zap.String("conversation_id", ev.ConversationID),
				zap.String("event", string(ev.Type)),
			)
			b.closeLocked(sub)
		}
	}
}

// CloseConversation ends every subscription of conversationID.
func (b *Broker) CloseConversation(conversationID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for sub := range b.subs[conversationID] {
		b.closeLocked(sub)
	}
}

// Count returns the number of subscribers of conversationID.
func (b *Broker) Count(conversationID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[conversationID])
}

func (b *Broker) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closeLocked(sub)
}

func (b *Broker) closeLocked(sub *Subscription) {
	if sub.closed {
		return
	}
	sub.closed = true
	close(sub.ch)

	set := b.subs[sub.ConversationID]
	delete(set, sub)
	if len(set) == 0 {
		delete(b.subs, sub.ConversationID)
	}
}

// Journal mirrors appended entries to durable storage.
type Journal interface {
	Record(ctx context.Context, entry *model.Entry) error
}

// NopJournal discards entries.
type NopJournal struct{}

// Record implements Journal.
func (NopJournal) Record(context.Context, *model.Entry) error { return nil }
