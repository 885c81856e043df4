package model

import (
	"time"
)

// Sender identifies who produced a conversation entry.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Attachment is file metadata passed through to the log. Contents are never read.
type Attachment struct {
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	Kind      string `json:"kind,omitempty"`
	MediaType string `json:"media_type,omitempty"`
}

// Entry is one logged turn in a conversation. Entries are never mutated after creation.
type Entry struct {
	ID             string       `json:"id"`
	ConversationID string       `json:"conversation_id"`
	Sender         Sender       `json:"sender"`
	Body           string       `json:"body"`
	Category       Category     `json:"category"`
	Timestamp      time.Time    `json:"timestamp"`
	Attachments    []Attachment `json:"attachments"`
	Sequence       uint64       `json:"sequence"`
}

// SubmitRequest is a user submission.
type SubmitRequest struct {
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// SubmitResponse is returned after a submission is accepted.
type SubmitResponse struct {
	UserEntry *Entry `json:"user_entry"`
	BotEntry  *Entry `json:"bot_entry,omitempty"`
}

// ListEntriesResponse is the response for listing entries.
type ListEntriesResponse struct {
	Entries      []Entry   `json:"entries"`
	HasMore      bool      `json:"has_more"`
	LastSequence uint64    `json:"last_sequence"`
	State        TurnState `json:"state"`
}

// RespondRequest is a direct, stateless call into the response engine.
type RespondRequest struct {
	Utterance string `json:"utterance"`
}

// RespondResponse wraps an engine response with its presentation treatment.
type RespondResponse struct {
	Body      string    `json:"body"`
	Category  Category  `json:"category"`
	Treatment Treatment `json:"treatment"`
}
