package service

import (
	"context"

	"github.com/capitalize-ai/health-assistant/internal/model"
)

// Turn is one user submission and its pending bot reply.
type Turn struct {
	// UserEntry is the entry appended at submission time.
	UserEntry *model.Entry

	cancel context.CancelCauseFunc
	done   chan struct{}
	reply  *model.Entry
	err    error
}

func newTurn(cancel context.CancelCauseFunc) *Turn {
	return &Turn{
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Done is closed once the turn has finished, with or without a reply.
func (t *Turn) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the bot entry is appended, the turn is cancelled, or ctx ends.
func (t *Turn) Wait(ctx context.Context) (*model.Entry, error) {
	select {
	case <-t.done:
		return t.reply, t.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (t *Turn) complete(reply *model.Entry, err error) {
	t.reply = reply
	t.err = err
	close(t.done)
}
