package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/cedarpro/cybermentor/internal/llm"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestProgress_Clamping(t *testing.T) {
	tests := []struct {
		value int
		want  int
	}{
		{150, 100},
		{-10, 0},
		{0, 0},
		{100, 100},
		{42, 42},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("value=%d", tt.value), func(t *testing.T) {
			s := openTestStore(t)
			s.UpdateProgress("soc-analyst", tt.value)
			if got := s.GetProgress("soc-analyst"); got != tt.want {
				t.Errorf("GetProgress = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestProgress_AbsentRoleIsZero(t *testing.T) {
	s := openTestStore(t)
	if got := s.GetProgress("never-seen"); got != 0 {
		t.Errorf("GetProgress = %d, want 0", got)
	}
}

func TestConceptCompletion_Idempotent(t *testing.T) {
	s := openTestStore(t)

	if s.IsConceptComplete("osint-basics") {
		t.Fatal("concept should start incomplete")
	}

	s.MarkConceptComplete("osint-basics")
	s.MarkConceptComplete("osint-basics")
	s.MarkConceptComplete("osint-basics")

	if !s.IsConceptComplete("osint-basics") {
		t.Error("concept should be complete")
	}
	if got := s.Stats().TotalConceptsCompleted; got != 1 {
		t.Errorf("TotalConceptsCompleted = %d, want 1 (no duplicates)", got)
	}
}

func TestChatHistory_BoundedFIFO(t *testing.T) {
	s := openTestStore(t)

	for i := range 105 {
		s.SaveChatMessage(ChatMessage{Role: "user", Content: fmt.Sprintf("msg-%d", i)})
	}

	history := s.ChatHistory()
	require.Len(t, history, 100)
	// The oldest five were evicted; relative order preserved.
	require.Equal(t, "msg-5", history[0].Content)
	require.Equal(t, "msg-104", history[99].Content)
	for _, msg := range history {
		require.False(t, msg.Timestamp.IsZero(), "timestamp must be assigned on save")
	}
}

func TestClearChatHistory(t *testing.T) {
	s := openTestStore(t)
	s.SaveChatMessage(ChatMessage{Role: "user", Content: "hello"})
	s.UpdateProgress("pentester", 30)

	s.ClearChatHistory()

	if len(s.ChatHistory()) != 0 {
		t.Error("chat history should be empty")
	}
	if s.GetProgress("pentester") != 30 {
		t.Error("clearing chat must not touch progress")
	}
}

func TestActivities_BoundedNewestFirst(t *testing.T) {
	s := openTestStore(t)

	for i := range 55 {
		s.AddActivity(Activity{Type: "practice", Title: fmt.Sprintf("act-%d", i), XP: 10})
	}

	all := s.RecentActivities(maxActivities)
	require.Len(t, all, 50)
	require.Equal(t, "act-54", all[0].Title, "most recent activity first")
	require.Equal(t, "act-5", all[49].Title, "oldest surviving activity last")
	require.NotEmpty(t, all[0].ID, "id must be assigned on insert")
}

func TestRecentActivities_DefaultLimit(t *testing.T) {
	s := openTestStore(t)
	for i := range 20 {
		s.AddActivity(Activity{Title: fmt.Sprintf("act-%d", i)})
	}
	if got := len(s.RecentActivities(0)); got != 10 {
		t.Errorf("default limit returned %d entries, want 10", got)
	}
}

func TestAssessmentResults_FilterByRole(t *testing.T) {
	s := openTestStore(t)
	s.SaveAssessmentResult(AssessmentResult{JobRole: "soc-analyst", TotalScore: 80})
	s.SaveAssessmentResult(AssessmentResult{JobRole: "pentester", TotalScore: 90})
	s.SaveAssessmentResult(AssessmentResult{JobRole: "soc-analyst", TotalScore: 70})

	all := s.AssessmentResults("")
	require.Len(t, all, 3)
	for _, r := range all {
		require.False(t, r.CompletedAt.IsZero())
	}

	soc := s.AssessmentResults("soc-analyst")
	require.Len(t, soc, 2)

	require.Empty(t, s.AssessmentResults("cloud-security"))
}

func TestStats(t *testing.T) {
	s := openTestStore(t)

	stats := s.Stats()
	if stats.AverageProgress != 0 || stats.ActiveRoles != 0 {
		t.Errorf("empty store stats = %+v, want zeroed", stats)
	}

	s.UpdateProgress("soc-analyst", 50)
	s.UpdateProgress("pentester", 75)
	s.MarkConceptComplete("c1")
	s.SaveChatMessage(ChatMessage{Content: "hi"})
	s.SaveAssessmentResult(AssessmentResult{JobRole: "soc-analyst"})

	stats = s.Stats()
	require.Equal(t, OverallStats{
		TotalConceptsCompleted: 1,
		AverageProgress:        63, // round(62.5)
		TotalAssessments:       1,
		TotalChatMessages:      1,
		ActiveRoles:            2,
	}, stats)
}

func TestClearAllData_IdempotentReset(t *testing.T) {
	s := openTestStore(t)
	s.UpdateProgress("soc-analyst", 80)
	s.MarkConceptComplete("c1")
	s.SaveChatMessage(ChatMessage{Content: "hi"})

	s.ClearAllData()
	s.ClearAllData() // repeated clears are fine

	if got := s.GetProgress("soc-analyst"); got != 0 {
		t.Errorf("GetProgress after clear = %d, want 0", got)
	}
	stats := s.Stats()
	require.Equal(t, OverallStats{}, stats)

	prefs := s.Preferences()
	require.True(t, prefs.DarkMode, "defaults restored after clear")
}

func TestPreferences_PartialUpdate(t *testing.T) {
	s := openTestStore(t)

	prefs := s.Preferences()
	require.True(t, prefs.DarkMode)
	require.True(t, prefs.Notifications)

	role := "soc-analyst"
	dark := false
	s.UpdatePreferences(PreferencesUpdate{SelectedRole: &role, DarkMode: &dark})

	prefs = s.Preferences()
	require.Equal(t, "soc-analyst", prefs.SelectedRole)
	require.False(t, prefs.DarkMode)
	require.True(t, prefs.Notifications, "untouched field preserved")
}

func TestCorruptedBlobFallsBackToDefaults(t *testing.T) {
	s := openTestStore(t)
	s.UpdateProgress("soc-analyst", 40)

	_, err := s.db.Exec(`UPDATE kv SET value = 'not json {' WHERE key = ?`, rootKey)
	require.NoError(t, err)

	// Corrupted blob reads as a fresh store, never an error.
	if got := s.GetProgress("soc-analyst"); got != 0 {
		t.Errorf("GetProgress on corrupted store = %d, want 0", got)
	}

	// Writes recover the store.
	s.UpdateProgress("soc-analyst", 25)
	if got := s.GetProgress("soc-analyst"); got != 25 {
		t.Errorf("GetProgress after recovery = %d, want 25", got)
	}
}

func TestLLMEvents_AppendAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AppendLLMEvent(ctx, llm.Event{
		Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "chat",
		InputTokens: 100, OutputTokens: 200, LatencyMs: 1234, Success: true,
	}))
	require.NoError(t, s.AppendLLMEvent(ctx, llm.Event{
		Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "practice",
		Success: false, ErrorMessage: "upstream unavailable",
	}))

	events, err := s.ListLLMEvents(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "practice", events[0].Purpose, "newest first")
	require.False(t, events[0].Success)
	require.Equal(t, "gemini", events[0].Provider)
	require.Equal(t, "chat", events[1].Purpose)
	require.True(t, events[1].Success)
	require.Equal(t, 100, events[1].InputTokens)
}

func TestLLMEvents_PurposeFilterCountsAgainstLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Interleave purposes so chat events outnumber any window that would
	// be cut by limiting before filtering.
	for range 10 {
		require.NoError(t, s.AppendLLMEvent(ctx, llm.Event{
			Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "chat", Success: true,
		}))
		require.NoError(t, s.AppendLLMEvent(ctx, llm.Event{
			Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "practice", Success: true,
		}))
	}

	chat, err := s.ListLLMEvents(ctx, "chat", 8)
	require.NoError(t, err)
	require.Len(t, chat, 8, "limit applies to matching events, not the raw tail")
	for _, e := range chat {
		require.Equal(t, "chat", e.Purpose)
	}

	require.Empty(t, mustList(t, s, "assessment", 5))
}

func mustList(t *testing.T, s *Store, purpose string, limit int) []LLMEvent {
	t.Helper()
	events, err := s.ListLLMEvents(context.Background(), purpose, limit)
	require.NoError(t, err)
	return events
}
