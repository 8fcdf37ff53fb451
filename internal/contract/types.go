// Package contract defines the request/response shapes crossing the
// client/gateway boundary and enforces them with JSON Schema.
package contract

// Confidence is the mentor's self-reported confidence level.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// MentorRequest is a single question submitted to the mentor.
// Message is required, non-empty, and at most 1000 characters.
type MentorRequest struct {
	Message   string `json:"message"`
	JobRole   string `json:"jobRole,omitempty"`
	Context   string `json:"context,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

// MentorResponse is the structured mentor reply. Summary, Response and
// Confidence are always present; everything else is optional.
type MentorResponse struct {
	Summary           string     `json:"summary"`
	Response          string     `json:"response"`
	Methodology       []string   `json:"methodology,omitempty"`
	Examples          []string   `json:"examples,omitempty"`
	PracticeTask      string     `json:"practiceTask,omitempty"`
	Hints             []string   `json:"hints,omitempty"`
	Confidence        Confidence `json:"confidence"`
	KPIs              []string   `json:"kpis,omitempty"`
	FollowUpQuestions []string   `json:"followUpQuestions,omitempty"`
}

// PracticeParams selects what kind of practice scenario to generate.
type PracticeParams struct {
	JobRole    string `json:"jobRole"`
	Difficulty string `json:"difficulty"`
	Topic      string `json:"topic"`
}

// AssessmentParams selects what assessment questions to generate.
// QuestionCount defaults to 5 when zero.
type AssessmentParams struct {
	JobRole       string `json:"jobRole"`
	Topic         string `json:"topic"`
	QuestionCount int    `json:"questionCount,omitempty"`
}
