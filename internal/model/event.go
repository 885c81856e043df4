package model

import (
	"time"
)

// EventType represents the type of a live conversation event.
type EventType string

const (
	EventTypeEntry     EventType = "entry"
	EventTypeTyping    EventType = "typing"
	EventTypeError     EventType = "error"
	EventTypeHeartbeat EventType = "heartbeat"
)

// Event is pushed to live subscribers of a conversation.
type Event struct {
	Type           EventType    `json:"type"`
	ConversationID string       `json:"conversation_id"`
	Entry          *Entry       `json:"entry,omitempty"`
	Typing         *TypingEvent `json:"typing,omitempty"`
	Error          *ErrorEvent  `json:"error,omitempty"`
	Timestamp      time.Time    `json:"timestamp"`
}

// TypingEvent reports the bot typing indicator.
type TypingEvent struct {
	Active bool `json:"active"`
}

// ErrorEvent represents an error event.
type ErrorEvent struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HeartbeatEvent represents a heartbeat event.
type HeartbeatEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

// ReplayCompleteEvent marks the end of history replay on a stream.
type ReplayCompleteEvent struct {
	LastSequence uint64 `json:"last_sequence"`
	EntryCount   int    `json:"entry_count"`
}
