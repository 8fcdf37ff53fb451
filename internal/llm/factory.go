package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// NewProvider builds the configured provider wrapped with event logging
// and retry middleware: caller → retry → event log → base.
//
// A provider whose API key is missing does not fail construction; it is
// replaced with a stub that fails every Generate call with ErrUnavailable.
// The server stays up and the mentor endpoints report the upstream as
// unavailable, which is the behavior the HTTP surface promises.
func NewProvider(ctx context.Context, cfg Config, sink EventSink) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		slog.Warn("llm provider not configured, upstream calls will fail",
			"provider", cfg.Provider, "error", err)
		base = &unconfiguredProvider{provider: cfg.Provider, err: err}
	}

	var p Provider = base
	if sink != nil {
		p = WithEventLog(p, cfg.Provider, sink)
	}
	p = WithRetry(p, cfg.Retry)
	if cfg.Timeout > 0 {
		p = &timeoutProvider{inner: p, timeout: cfg.Timeout}
	}

	return p, nil
}

// timeoutProvider bounds a whole Generate call, retries included.
type timeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *timeoutProvider) ModelID() string {
	return t.inner.ModelID()
}

// unconfiguredProvider stands in for a provider that could not be built,
// typically because its API key is absent.
type unconfiguredProvider struct {
	provider string
	err      error
}

func (u *unconfiguredProvider) Generate(context.Context, Request) (*Response, error) {
	return nil, &ErrUnavailable{Err: fmt.Errorf("%s provider not configured: %w", u.provider, u.err)}
}

func (u *unconfiguredProvider) ModelID() string {
	return u.provider + " (unconfigured)"
}
