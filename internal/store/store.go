// Package store is the durable key-value state holder for learner
// progress, chat history, assessment results and activity. All learner
// state lives in one JSON blob under one key; every accessor is a full
// read-modify-write of that blob, serialized by a mutex. Concurrent
// processes are last-write-wins, which is accepted for a local-only
// store.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// rootKey namespaces the learner blob, matching the key the web client
// historically used.
const rootKey = "ai-cyber-mentor"

const (
	maxChatHistory = 100
	maxActivities  = 50
)

// Store provides typed access to the learner blob and the LLM event log.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open connects to the SQLite database at path, creating it and its
// schema as needed.
func Open(path string) (*Store, error) {
	if err := EnsureDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path+"?_journal=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS llm_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at    INTEGER NOT NULL,
		provider      TEXT NOT NULL,
		model         TEXT NOT NULL,
		purpose       TEXT NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT ''
	);
	`)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DefaultDBPath returns the per-user database location.
func DefaultDBPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	path := filepath.Join(dir, "cybermentor", "cybermentor.db")
	return path, EnsureDir(path)
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// GetProgress returns the role's progress percentage, 0 when absent.
func (s *Store) GetProgress(roleID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().Progress[roleID]
}

// UpdateProgress stores the role's progress, silently clamped to [0,100].
func (s *Store) UpdateProgress(roleID string, progress int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.read()
	b.Progress[roleID] = min(100, max(0, progress))
	s.write(b)
}

// MarkConceptComplete records the concept as completed. Idempotent.
func (s *Store) MarkConceptComplete(conceptID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.read()
	if slices.Contains(b.CompletedConcepts, conceptID) {
		return
	}
	b.CompletedConcepts = append(b.CompletedConcepts, conceptID)
	s.write(b)
}

// IsConceptComplete reports whether the concept was completed.
func (s *Store) IsConceptComplete(conceptID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.read().CompletedConcepts, conceptID)
}

// SaveAssessmentResult appends a timestamped copy of the result. Growth
// is unbounded.
func (s *Store) SaveAssessmentResult(result AssessmentResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result.CompletedAt = time.Now().UTC()
	b := s.read()
	b.AssessmentResults = append(b.AssessmentResults, result)
	s.write(b)
}

// AssessmentResults returns saved results, filtered by role when roleID
// is non-empty.
func (s *Store) AssessmentResults(roleID string) []AssessmentResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.read().AssessmentResults
	if roleID == "" {
		return all
	}
	var out []AssessmentResult
	for _, r := range all {
		if r.JobRole == roleID {
			out = append(out, r)
		}
	}
	return out
}

// SaveChatMessage appends a timestamped copy of the message, keeping only
// the most recent 100 entries (oldest evicted first).
func (s *Store) SaveChatMessage(msg ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg.Timestamp = time.Now().UTC()
	b := s.read()
	b.ChatHistory = append(b.ChatHistory, msg)
	if n := len(b.ChatHistory); n > maxChatHistory {
		b.ChatHistory = b.ChatHistory[n-maxChatHistory:]
	}
	s.write(b)
}

// ChatHistory returns the transcript, oldest first.
func (s *Store) ChatHistory() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().ChatHistory
}

// ClearChatHistory empties the transcript, leaving everything else.
func (s *Store) ClearChatHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.read()
	b.ChatHistory = []ChatMessage{}
	s.write(b)
}

// AddActivity assigns an id and timestamp and inserts at the head, keeping
// at most 50 entries (oldest dropped from the tail).
func (s *Store) AddActivity(activity Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	activity.ID = uuid.NewString()
	activity.Timestamp = time.Now().UTC()
	b := s.read()
	b.Activities = append([]Activity{activity}, b.Activities...)
	if len(b.Activities) > maxActivities {
		b.Activities = b.Activities[:maxActivities]
	}
	s.write(b)
}

// RecentActivities returns up to limit entries, most recent first.
// A non-positive limit defaults to 10.
func (s *Store) RecentActivities(limit int) []Activity {
	if limit <= 0 {
		limit = 10
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	activities := s.read().Activities
	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities
}

// UpdatePreferences merges the partial update into stored preferences.
func (s *Store) UpdatePreferences(update PreferencesUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.read()
	if update.SelectedRole != nil {
		b.UserPreferences.SelectedRole = *update.SelectedRole
	}
	if update.DarkMode != nil {
		b.UserPreferences.DarkMode = *update.DarkMode
	}
	if update.Notifications != nil {
		b.UserPreferences.Notifications = *update.Notifications
	}
	s.write(b)
}

// Preferences returns the stored preferences.
func (s *Store) Preferences() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().UserPreferences
}

// Stats aggregates the current blob. AverageProgress is the mean of all
// per-role values rounded to the nearest integer, 0 when no role has
// progress yet.
func (s *Store) Stats() OverallStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.read()

	avg := 0
	if len(b.Progress) > 0 {
		total := 0
		for _, p := range b.Progress {
			total += p
		}
		avg = int(math.Round(float64(total) / float64(len(b.Progress))))
	}

	return OverallStats{
		TotalConceptsCompleted: len(b.CompletedConcepts),
		AverageProgress:        avg,
		TotalAssessments:       len(b.AssessmentResults),
		TotalChatMessages:      len(b.ChatHistory),
		ActiveRoles:            len(b.Progress),
	}
}

// ClearAllData removes the whole blob. Idempotent; subsequent reads see
// the default empty shape.
func (s *Store) ClearAllData() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, rootKey); err != nil {
		slog.Error("failed to clear store", "error", err)
	}
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
