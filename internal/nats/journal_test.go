package nats

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	natstest "github.com/nats-io/nats-server/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitalize-ai/health-assistant/internal/model"
	"github.com/capitalize-ai/health-assistant/pkg/logger"
)

func TestEntrySubject(t *testing.T) {
	assert.Equal(t, "healthai.c1.entry.user", EntrySubject("c1", model.SenderUser))
	assert.Equal(t, "healthai.c1.entry.bot", EntrySubject("c1", model.SenderBot))
}

func TestNewJournalDefaultsMaxAge(t *testing.T) {
	j := NewJournal(nil, 0)
	assert.Equal(t, 7*24*time.Hour, j.maxAge)
	assert.Equal(t, time.Hour, NewJournal(nil, time.Hour).maxAge)
}

func TestNilClientIsNotConnected(t *testing.T) {
	var c *Client
	assert.False(t, c.IsConnected())
	c.Close()
}

func TestConnectOptionsTLS(t *testing.T) {
	log := logger.NewNop()

	opts, err := connectOptions(Config{Token: "secret"}, log)
	require.NoError(t, err)
	assert.NotEmpty(t, opts)

	dir := t.TempDir()
	ca := filepath.Join(dir, "ca.pem")
	require.NoError(t, os.WriteFile(ca, []byte("not a certificate"), 0o600))
	_, err = connectOptions(Config{CAFile: ca, CertFile: "c.pem", KeyFile: "k.pem"}, log)
	assert.ErrorContains(t, err, "no PEM certificates")
}

func runJetStream(t *testing.T) *server.Server {
	t.Helper()
	opts := natstest.DefaultTestOptions
	opts.Port = -1
	opts.JetStream = true
	opts.StoreDir = t.TempDir()
	srv := natstest.RunServer(&opts)
	t.Cleanup(srv.Shutdown)
	return srv
}

func TestJournalRecordsEntries(t *testing.T) {
	srv := runJetStream(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := Connect(ctx, Config{URL: srv.ClientURL()}, logger.NewNop())
	require.NoError(t, err)
	defer client.Close()
	require.True(t, client.IsConnected())

	j := NewJournal(client, time.Hour)
	require.NoError(t, j.EnsureStream(ctx))
	// A second call finds the existing stream.
	require.NoError(t, j.EnsureStream(ctx))

	user := &model.Entry{ID: "e1", ConversationID: "c1", Sender: model.SenderUser, Body: "malaria", Sequence: 1}
	bot := &model.Entry{ID: "e2", ConversationID: "c1", Sender: model.SenderBot, Body: "## Malaria Symptoms", Category: model.CategoryWarning, Sequence: 2}

	require.NoError(t, j.Record(ctx, user))
	// Same entry ID is deduplicated by the stream.
	require.NoError(t, j.Record(ctx, user))
	require.NoError(t, j.Record(ctx, bot))

	stream, err := client.JetStream().Stream(ctx, StreamName)
	require.NoError(t, err)
	info, err := stream.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), info.State.Msgs)
	assert.Equal(t, time.Hour, info.Config.MaxAge)

	msg, err := stream.GetLastMsgForSubject(ctx, EntrySubject("c1", model.SenderBot))
	require.NoError(t, err)
	var got model.Entry
	require.NoError(t, json.Unmarshal(msg.Data, &got))
	assert.Equal(t, "e2", got.ID)
	assert.Equal(t, model.CategoryWarning, got.Category)
	assert.Equal(t, uint64(2), got.Sequence)
}
