package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/capitalize-ai/health-assistant/internal/model"
	"github.com/capitalize-ai/health-assistant/pkg/metrics"
)

const (
	// StreamName is the name of the conversation journal stream.
	StreamName = "HEALTHAI_CONVERSATIONS"

	// SubjectPrefix is the prefix for all journal subjects.
	SubjectPrefix = "healthai"
)

// Journal mirrors conversation entries into a JetStream stream.
type Journal struct {
	client *Client
	maxAge time.Duration
}

// NewJournal creates a journal backed by client. Entries older than maxAge
// are discarded by the stream; zero keeps the default of seven days.
func NewJournal(client *Client, maxAge time.Duration) *Journal {
	if maxAge <= 0 {
		maxAge = 7 * 24 * time.Hour
	}
	return &Journal{client: client, maxAge: maxAge}
}

// EnsureStream creates the journal stream if it does not exist.
func (j *Journal) EnsureStream(ctx context.Context) error {
	js := j.client.JetStream()

	if _, err := js.Stream(ctx, StreamName); err == nil {
		return nil
	}

	_, err := js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{SubjectPrefix + ".>"},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      j.maxAge,
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		Compression: jetstream.S2Compression,
		Description: "Health assistant conversation entries",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	return nil
}

// EntrySubject returns the subject an entry is published on.
func EntrySubject(conversationID string, sender model.Sender) string {
	return fmt.Sprintf("%s.%s.entry.%s", SubjectPrefix, conversationID, sender)
}

// Record publishes entry to JetStream.
func (j *Journal) Record(ctx context.Context, entry *model.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		metrics.JournalPublishTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	_, err = j.client.JetStream().Publish(ctx, EntrySubject(entry.ConversationID, entry.Sender), data,
		jetstream.WithMsgID(entry.ID),
	)
	if err != nil {
		metrics.JournalPublishTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to publish entry: %w", err)
	}

	metrics.JournalPublishTotal.WithLabelValues("ok").Inc()
	return nil
}
