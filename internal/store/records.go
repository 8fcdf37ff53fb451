package store

import "time"

// ChatMessage is one transcript entry. Timestamp is assigned on save.
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	JobRole   string    `json:"jobRole,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// AnsweredQuestion is one graded question inside an assessment result.
type AnsweredQuestion struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer,omitempty"`
	Score         int    `json:"score"`
	Feedback      string `json:"feedback,omitempty"`
}

// AssessmentResult is a completed assessment. CompletedAt is assigned on
// save. Results accumulate without bound; the store is local-only.
type AssessmentResult struct {
	JobRole        string             `json:"jobRole"`
	AssessmentType string             `json:"assessmentType"`
	Questions      []AnsweredQuestion `json:"questions"`
	TotalScore     int                `json:"totalScore"`
	CompletedAt    time.Time          `json:"completedAt"`
}

// Activity is one recent-activity feed entry. ID and Timestamp are
// assigned on insert.
type Activity struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Role        string    `json:"role,omitempty"`
	XP          int       `json:"xp"`
	Timestamp   time.Time `json:"timestamp"`
}

// Preferences holds user-facing toggles.
type Preferences struct {
	SelectedRole  string `json:"selectedRole,omitempty"`
	DarkMode      bool   `json:"darkMode"`
	Notifications bool   `json:"notifications"`
}

// PreferencesUpdate carries partial preference changes; nil fields are
// left untouched.
type PreferencesUpdate struct {
	SelectedRole  *string
	DarkMode      *bool
	Notifications *bool
}

// OverallStats aggregates the whole blob at read time.
type OverallStats struct {
	TotalConceptsCompleted int `json:"totalConceptsCompleted"`
	AverageProgress        int `json:"averageProgress"`
	TotalAssessments       int `json:"totalAssessments"`
	TotalChatMessages      int `json:"totalChatMessages"`
	ActiveRoles            int `json:"activeRoles"`
}

// blob is the single JSON document everything persists into, mirroring
// the browser-local layout it replaces: one namespaced key, one object.
type blob struct {
	Progress          map[string]int     `json:"progress"`
	CompletedConcepts []string           `json:"completedConcepts"`
	AssessmentResults []AssessmentResult `json:"assessmentResults"`
	ChatHistory       []ChatMessage      `json:"chatHistory"`
	Activities        []Activity         `json:"activities"`
	UserPreferences   Preferences        `json:"userPreferences"`
}

func defaultBlob() *blob {
	return &blob{
		Progress:          map[string]int{},
		CompletedConcepts: []string{},
		AssessmentResults: []AssessmentResult{},
		ChatHistory:       []ChatMessage{},
		Activities:        []Activity{},
		UserPreferences: Preferences{
			DarkMode:      true,
			Notifications: true,
		},
	}
}
