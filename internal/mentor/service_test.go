package mentor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/cedarpro/cybermentor/internal/contract"
	"github.com/cedarpro/cybermentor/internal/llm"
)

func validMentorJSON() json.RawMessage {
	return json.RawMessage(`{
		"summary": "OSINT overview",
		"response": "Open-source intelligence gathering means...",
		"confidence": "High",
		"methodology": ["define scope", "collect", "analyze"],
		"hints": ["start with passive sources"]
	}`)
}

func TestChat_ValidRequest(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validMentorJSON()})
	svc := NewService(mock, DefaultConfig())

	resp, err := svc.Chat(context.Background(), json.RawMessage(`{"message": "What is OSINT?"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Summary != "OSINT overview" {
		t.Errorf("summary = %q", resp.Summary)
	}
	if resp.Confidence != contract.ConfidenceHigh {
		t.Errorf("confidence = %q", resp.Confidence)
	}
	if len(resp.Methodology) != 3 {
		t.Errorf("methodology = %v", resp.Methodology)
	}

	calls := mock.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 upstream call, got %d", len(calls))
	}
	if calls[0].Prompt != "What is OSINT?" {
		t.Errorf("prompt = %q", calls[0].Prompt)
	}
	if calls[0].Schema == nil {
		t.Error("chat must request structured output")
	}
	if !strings.Contains(calls[0].System, "Jit Banerjee") {
		t.Error("system prompt must carry the mentor persona")
	}
}

func TestChat_DefaultsInterpolatedIntoPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validMentorJSON()})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Chat(context.Background(), json.RawMessage(`{"message": "hi"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	system := mock.Calls()[0].System
	if !strings.Contains(system, "Job role context: General Cybersecurity") {
		t.Error("missing default job role")
	}
	if !strings.Contains(system, "Additional context: None provided") {
		t.Error("missing default context")
	}
}

func TestChat_RoleAndContextInterpolated(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validMentorJSON()})
	svc := NewService(mock, DefaultConfig())

	raw := json.RawMessage(`{"message": "hi", "jobRole": "SOC Analyst", "context": "triage practice"}`)
	if _, err := svc.Chat(context.Background(), raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	system := mock.Calls()[0].System
	if !strings.Contains(system, "Job role context: SOC Analyst") {
		t.Error("job role not interpolated")
	}
	if !strings.Contains(system, "Additional context: triage practice") {
		t.Error("context not interpolated")
	}
}

func TestChat_InvalidRequestSkipsUpstream(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty body", `{}`},
		{"empty message", `{"message": ""}`},
		{"oversized message", `{"message": "` + strings.Repeat("x", 1001) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: validMentorJSON()})
			svc := NewService(mock, DefaultConfig())

			_, err := svc.Chat(context.Background(), json.RawMessage(tt.raw))
			var invalid *InvalidRequestError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidRequestError, got %v", err)
			}
			if mock.CallCount() != 0 {
				t.Errorf("upstream called %d times, want 0", mock.CallCount())
			}
		})
	}
}

func TestChat_UnparseableOutputBecomesContractViolation(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`sorry, no JSON here`)})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Chat(context.Background(), json.RawMessage(`{"message": "hi"}`))
	var violation *ContractViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("expected ContractViolationError, got %v", err)
	}
	// The empty-object fallback means the missing required fields are named.
	var ve *contract.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected wrapped ValidationError, got %v", err)
	}
}

func TestChat_SchemaViolatingOutput(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"summary": "s", "response": "r", "confidence": "Certain"}`),
	})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Chat(context.Background(), json.RawMessage(`{"message": "hi"}`))
	var violation *ContractViolationError
	if !errors.As(err, &violation) {
		t.Fatalf("expected ContractViolationError, got %v", err)
	}
}

func TestChat_UpstreamUnavailablePassesThrough(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrUnavailable{}})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Chat(context.Background(), json.RawMessage(`{"message": "hi"}`))
	var unavailable *llm.ErrUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestGeneratePractice_PassThrough(t *testing.T) {
	scenario := `{"scenario": "Phishing triage", "objectives": ["spot the lure"], "steps": ["open headers"], "hints": [], "expectedOutcome": "report filed", "safetyNotes": ["lab only"]}`
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(scenario)})
	svc := NewService(mock, DefaultConfig())

	out, err := svc.GeneratePractice(context.Background(), contract.PracticeParams{
		JobRole: "soc-analyst", Difficulty: "beginner", Topic: "phishing",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != scenario {
		t.Errorf("output altered: %s", out)
	}

	req := mock.Calls()[0]
	if req.Schema != nil {
		t.Error("practice generation must not request structured output")
	}
	if !strings.Contains(req.System, "beginner") || !strings.Contains(req.System, "phishing") {
		t.Errorf("params not interpolated: %s", req.System)
	}
}

func TestGeneratePractice_MalformedFieldsPassThrough(t *testing.T) {
	// Missing fields and wrong types are the caller's problem by design.
	mangled := `{"scenario": 42}`
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(mangled)})
	svc := NewService(mock, DefaultConfig())

	out, err := svc.GeneratePractice(context.Background(), contract.PracticeParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != mangled {
		t.Errorf("output altered: %s", out)
	}
}

func TestGenerateAssessment_BareArray(t *testing.T) {
	questions := `[{"question": "What is a SIEM?", "options": ["a", "b"], "correctAnswer": "a", "explanation": "...", "difficulty": "easy", "points": 10}]`
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(questions)})
	svc := NewService(mock, DefaultConfig())

	out, err := svc.GenerateAssessment(context.Background(), contract.AssessmentParams{
		JobRole: "soc-analyst", Topic: "SIEM",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != questions {
		t.Errorf("output altered: %s", out)
	}
}

func TestGenerateAssessment_UnwrapsQuestionsEnvelope(t *testing.T) {
	wrapped := `{"questions": [{"question": "q1"}, {"question": "q2"}]}`
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(wrapped)})
	svc := NewService(mock, DefaultConfig())

	out, err := svc.GenerateAssessment(context.Background(), contract.AssessmentParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var arr []map[string]any
	if err := json.Unmarshal(out, &arr); err != nil {
		t.Fatalf("expected bare array, got %s: %v", out, err)
	}
	if len(arr) != 2 {
		t.Errorf("expected 2 questions, got %d", len(arr))
	}
}

func TestGenerateAssessment_DefaultQuestionCount(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`[]`)})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.GenerateAssessment(context.Background(), contract.AssessmentParams{
		JobRole: "pentester", Topic: "recon",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := mock.Calls()[0]
	if !strings.Contains(req.System, "Generate 5 questions") {
		t.Errorf("default question count missing from prompt: %s", req.System)
	}
	if !strings.Contains(req.Prompt, "Generate 5 assessment questions") {
		t.Errorf("default question count missing from user prompt: %s", req.Prompt)
	}
}
