// Package mentor is the gateway between structured pedagogical requests
// and the upstream generative-AI service: it builds the persona prompt,
// dispatches one upstream call per operation, and validates the chat
// output against the response contract.
package mentor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cedarpro/cybermentor/internal/contract"
	"github.com/cedarpro/cybermentor/internal/llm"
)

const defaultQuestionCount = 5

// InvalidRequestError wraps a request-side contract violation. The
// upstream is never called when this is returned.
type InvalidRequestError struct {
	Err error
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid mentor request: %v", e.Err)
}

func (e *InvalidRequestError) Unwrap() error { return e.Err }

// ContractViolationError means the model's output did not match the
// schema it was asked to produce.
type ContractViolationError struct {
	Err error
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("upstream violated response contract: %v", e.Err)
}

func (e *ContractViolationError) Unwrap() error { return e.Err }

// Config tunes generation.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the gateway generation defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   8192,
		Temperature: 0.7,
	}
}

// Service is the stateless mentor gateway. It holds no per-call state;
// any number of calls may be in flight concurrently.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a gateway backed by the given provider. The provider
// is injected so tests can substitute a mock.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Chat validates the raw request, asks the mentor persona for a
// schema-constrained reply, and validates the reply before returning it.
func (s *Service) Chat(ctx context.Context, raw json.RawMessage) (*contract.MentorResponse, error) {
	req, err := contract.ValidateMentorRequest(raw)
	if err != nil {
		return nil, &InvalidRequestError{Err: err}
	}

	ctx = llm.WithPurpose(ctx, "chat")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      chatSystemPrompt(req),
		Prompt:      req.Message,
		Schema:      ResponseSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		var bad *llm.ErrBadOutput
		if errors.As(err, &bad) {
			return nil, &ContractViolationError{Err: err}
		}
		return nil, err
	}

	// Unparseable model output degrades to an empty object, which then
	// fails contract validation with the missing fields named.
	content := resp.Content
	if !json.Valid(content) {
		content = json.RawMessage("{}")
	}

	validated, err := contract.ValidateMentorResponse(content)
	if err != nil {
		return nil, &ContractViolationError{Err: err}
	}
	return validated, nil
}

// GeneratePractice returns a practice scenario as raw JSON. The shape is
// requested in prompt prose only and the output is passed through without
// schema enforcement; callers must tolerate missing or malformed fields.
func (s *Service) GeneratePractice(ctx context.Context, params contract.PracticeParams) (json.RawMessage, error) {
	ctx = llm.WithPurpose(ctx, "practice")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      practiceSystemPrompt(params),
		Prompt:      practiceUserPrompt(params),
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, err
	}

	return rawJSON(resp.Content)
}

// GenerateAssessment returns assessment questions as a raw JSON array.
// QuestionCount defaults to 5. The output is not schema-enforced; the one
// normalization applied is unwrapping a {"questions": [...]} envelope so
// callers always see the canonical bare-array shape.
func (s *Service) GenerateAssessment(ctx context.Context, params contract.AssessmentParams) (json.RawMessage, error) {
	if params.QuestionCount <= 0 {
		params.QuestionCount = defaultQuestionCount
	}

	ctx = llm.WithPurpose(ctx, "assessment")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      assessmentSystemPrompt(params),
		Prompt:      assessmentUserPrompt(params),
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, err
	}

	content, err := rawJSON(resp.Content)
	if err != nil {
		return nil, err
	}
	return unwrapQuestions(content), nil
}

// rawJSON passes model output through as JSON. Empty output becomes an
// empty object; output that is not JSON at all is an error.
func rawJSON(content json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(trimmed) {
		return nil, &ContractViolationError{Err: fmt.Errorf("model output is not JSON")}
	}
	return trimmed, nil
}

// unwrapQuestions lifts a {"questions": [...]} envelope to the bare array.
func unwrapQuestions(content json.RawMessage) json.RawMessage {
	var envelope struct {
		Questions json.RawMessage `json:"questions"`
	}
	if err := json.Unmarshal(content, &envelope); err != nil {
		return content
	}
	if len(envelope.Questions) > 0 && bytes.HasPrefix(bytes.TrimSpace(envelope.Questions), []byte("[")) {
		return envelope.Questions
	}
	return content
}
