package llm

import (
	"context"
	"log/slog"
	"time"
)

// Event records one upstream call for later inspection.
type Event struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventSink persists upstream call events. The store implements it.
type EventSink interface {
	AppendLLMEvent(ctx context.Context, ev Event) error
}

type purposeKey struct{}

// WithPurpose labels the context so event records say what the call was
// for ("chat", "practice", "assessment").
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

func purposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok {
		return v
	}
	return "unknown"
}

type eventLogProvider struct {
	inner    Provider
	provider string
	sink     EventSink
}

// WithEventLog wraps a Provider so every call is recorded to the sink
// under the given provider name ("gemini", "anthropic", ...). Recording
// failures are logged and never fail the call itself.
func WithEventLog(p Provider, provider string, sink EventSink) Provider {
	return &eventLogProvider{inner: p, provider: provider, sink: sink}
}

func (l *eventLogProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	ev := Event{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   purposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	if sinkErr := l.sink.AppendLLMEvent(ctx, ev); sinkErr != nil {
		slog.Warn("failed to record llm event", "error", sinkErr)
	}

	return resp, err
}

func (l *eventLogProvider) ModelID() string {
	return l.inner.ModelID()
}
