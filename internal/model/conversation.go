package model

import (
	"time"
)

// TurnState is the per-conversation turn state.
type TurnState string

const (
	TurnIdle             TurnState = "idle"
	TurnAwaitingResponse TurnState = "awaiting_response"
)

// Conversation represents a chat session.
type Conversation struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	Language   string    `json:"language"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	EntryCount int       `json:"entry_count"`
	State      TurnState `json:"state"`
	LastEntry  *Entry    `json:"last_entry,omitempty"`
}

// CreateConversationRequest is the request to create a new conversation.
type CreateConversationRequest struct {
	Title    string `json:"title"`
	Language string `json:"language,omitempty"`
}

// UpdateConversationRequest is the request to update a conversation.
type UpdateConversationRequest struct {
	Title    string `json:"title,omitempty"`
	Language string `json:"language,omitempty"`
}

// ListConversationsResponse is the response for listing conversations.
type ListConversationsResponse struct {
	Conversations []Conversation `json:"conversations"`
	Total         int            `json:"total"`
	HasMore       bool           `json:"has_more"`
}
