package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capitalize-ai/health-assistant/internal/config"
	"github.com/capitalize-ai/health-assistant/internal/engine"
	"github.com/capitalize-ai/health-assistant/internal/events"
	"github.com/capitalize-ai/health-assistant/internal/handler"
	"github.com/capitalize-ai/health-assistant/internal/model"
	"github.com/capitalize-ai/health-assistant/internal/service"
	"github.com/capitalize-ai/health-assistant/pkg/logger"
)

func TestGracefulShutdownWithOpenStream(t *testing.T) {
	log := logger.NewNop()
	broker := events.NewBroker(16, log)
	responder := engine.New()
	convs := service.NewConversationService(broker, "en", log)
	msgs := service.NewMessageService(convs, responder, broker, nil, time.Hour, log)

	router := handler.NewRouter(handler.RouterConfig{
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		AllowedOrigins:    []string{"http://*"},
	}, handler.Handlers{
		Health:        handler.NewHealthHandler(nil),
		Conversations: handler.NewConversationHandler(convs, log),
		Messages:      handler.NewMessageHandler(msgs, convs, log),
		Stream:        handler.NewStreamHandler(msgs, convs, broker, time.Hour, log),
		WebSocket:     handler.NewWebSocketHandler(msgs, convs, broker, log),
		Content:       handler.NewContentHandler(responder, log),
	}, log)

	cfg := config.Defaults()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	server := newServer(ln.Addr().String(), router, &cfg)
	go func() { _ = server.Serve(ln) }()
	base := "http://" + ln.Addr().String()

	resp, err := http.Post(base+"/api/v1/conversations", "application/json", strings.NewReader(`{"title":"trip"}`))
	require.NoError(t, err)
	var conv model.Conversation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&conv))
	resp.Body.Close()

	// The typing delay is an hour, so the reply is still pending at shutdown.
	body, _ := json.Marshal(model.SubmitRequest{Text: "malaria"})
	resp, err = http.Post(base+"/api/v1/conversations/"+conv.ID+"/messages", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	resp.Body.Close()

	stream, err := http.Get(base + "/api/v1/conversations/" + conv.ID + "/stream")
	require.NoError(t, err)
	defer stream.Body.Close()
	require.Equal(t, http.StatusOK, stream.StatusCode)

	start := time.Now()
	gracefulShutdown(server, msgs, 5*time.Second, log)
	assert.Less(t, time.Since(start), 2*time.Second)

	entries, err := convs.Entries(context.Background(), "anonymous", conv.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, entries.Entries, 2)
	assert.Equal(t, model.SenderBot, entries.Entries[1].Sender)
	assert.Equal(t, model.TurnIdle, entries.State)

	// The open stream carried the flushed reply before it ended.
	var sawReply bool
	scanner := bufio.NewScanner(stream.Body)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), "## Malaria Symptoms") {
			sawReply = true
		}
	}
	assert.True(t, sawReply)
}
