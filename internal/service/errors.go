package service

import "errors"

var (
	// ErrNotFound is returned for unknown, foreign or deleted conversations.
	ErrNotFound = errors.New("conversation not found")
	// ErrEmptySubmission is returned when a submission has no text and no attachments.
	ErrEmptySubmission = errors.New("submission has no text and no attachments")
	// ErrTurnInProgress is returned when a conversation is still awaiting a bot reply.
	ErrTurnInProgress = errors.New("a reply is already being prepared for this conversation")
	// ErrShuttingDown is returned for submissions after Shutdown was called.
	ErrShuttingDown = errors.New("service is shutting down")
)
