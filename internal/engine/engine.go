// Package engine maps user utterances to canned health responses.
package engine

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/capitalize-ai/health-assistant/internal/model"
	"github.com/capitalize-ai/health-assistant/pkg/metrics"
)

var (
	// ErrTimeout is returned by responders that gave up waiting on a backend.
	ErrTimeout = errors.New("responder timed out")
	// ErrUnavailable is returned by responders whose backend cannot be reached.
	ErrUnavailable = errors.New("responder unavailable")
)

// Responder is the interface the conversation layer calls for a bot reply.
type Responder interface {
	// Respond produces the reply for a single user utterance.
	Respond(ctx context.Context, utterance string) (*model.EngineResponse, error)
}

// ResponderFunc adapts a function to the Responder interface.
type ResponderFunc func(ctx context.Context, utterance string) (*model.EngineResponse, error)

// Respond calls f.
func (f ResponderFunc) Respond(ctx context.Context, utterance string) (*model.EngineResponse, error) {
	return f(ctx, utterance)
}

type rule struct {
	name     string
	triggers []string
	category model.Category
	body     string
}

// Checked in order; the first rule with a matching trigger wins.
var rules = []rule{
	{name: "malaria", triggers: []string{"malaria"}, category: model.CategoryWarning, body: malariaBody},
	{name: "vaccination", triggers: []string{"vaccination", "vaccine"}, category: model.CategoryInfo, body: vaccinationBody},
	{name: "prevention", triggers: []string{"prevention", "prevent"}, category: model.CategorySuccess, body: preventionBody},
}

// Classify returns the canned response for utterance. It is total over all
// strings and has no side effects.
func Classify(utterance string) model.EngineResponse {
	resp, _ := classify(utterance)
	return resp
}

func classify(utterance string) (model.EngineResponse, string) {
	text := strings.ToLower(utterance)
	for _, r := range rules {
		for _, trigger := range r.triggers {
			if strings.Contains(text, trigger) {
				return model.EngineResponse{Body: r.body, Category: r.category}, r.name
			}
		}
	}
	return model.EngineResponse{Body: FallbackBody, Category: model.CategoryNeutral}, "fallback"
}

// StaticEngine is the keyword-matching Responder.
type StaticEngine struct {
	tracer trace.Tracer
}

// New creates a static engine.
func New() *StaticEngine {
	return &StaticEngine{
		tracer: otel.Tracer("github.com/capitalize-ai/health-assistant/internal/engine"),
	}
}

// Respond implements Responder. It never returns an error.
func (e *StaticEngine) Respond(ctx context.Context, utterance string) (*model.EngineResponse, error) {
	_, span := e.tracer.Start(ctx, "engine.Respond")
	defer span.End()

	resp, matched := classify(utterance)
	span.SetAttributes(
		attribute.String("engine.rule", matched),
		attribute.String("engine.category", string(resp.Category)),
		attribute.Int("engine.utterance_length", len(utterance)),
	)
	metrics.EngineResponsesTotal.WithLabelValues(string(resp.Category)).Inc()

	return &resp, nil
}
