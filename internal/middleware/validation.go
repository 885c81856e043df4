package middleware

import (
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/capitalize-ai/health-assistant/internal/content"
	"github.com/capitalize-ai/health-assistant/internal/model"
)

const (
	maxTextLength   = 10000
	maxTitleLength  = 256
	maxAttachments  = 10
	maxFileNameSize = 255
)

// ValidateSubmission validates a chat submission. Emptiness is checked by
// the message service, after trimming.
func ValidateSubmission(req *model.SubmitRequest) error {
	if len(req.Text) > maxTextLength {
		return errors.New("text exceeds maximum length")
	}
	if !utf8.ValidString(req.Text) {
		return errors.New("text must be valid UTF-8")
	}
	if len(req.Attachments) > maxAttachments {
		return errors.New("too many attachments")
	}
	for _, a := range req.Attachments {
		if a.Name == "" || len(a.Name) > maxFileNameSize {
			return errors.New("attachment name is missing or too long")
		}
		if a.Size < 0 {
			return errors.New("attachment size must not be negative")
		}
	}
	return nil
}

// ValidateUtterance validates text sent straight to the engine.
func ValidateUtterance(utterance string) error {
	if len(utterance) > maxTextLength {
		return errors.New("utterance exceeds maximum length")
	}
	if !utf8.ValidString(utterance) {
		return errors.New("utterance must be valid UTF-8")
	}
	return nil
}

// ValidateConversationID validates a conversation ID.
func ValidateConversationID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New("invalid conversation ID format")
	}
	return nil
}

// ValidateTitle validates a conversation title.
func ValidateTitle(title string) error {
	if len(title) > maxTitleLength {
		return errors.New("title exceeds maximum length")
	}
	if !utf8.ValidString(title) {
		return errors.New("title must be valid UTF-8")
	}
	return nil
}

// ValidateLanguage validates an optional language code.
func ValidateLanguage(code string) error {
	if code != "" && !content.IsSupportedLanguage(code) {
		return errors.New("unsupported language")
	}
	return nil
}
