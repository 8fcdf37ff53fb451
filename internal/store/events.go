package store

import (
	"context"
	"time"

	"github.com/cedarpro/cybermentor/internal/llm"
)

// LLMEvent is one recorded upstream call.
type LLMEvent struct {
	ID           int64
	CreatedAt    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// AppendLLMEvent records an upstream call. Implements llm.EventSink.
func (s *Store) AppendLLMEvent(ctx context.Context, ev llm.Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO llm_events
			(created_at, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Unix(),
		ev.Provider, ev.Model, ev.Purpose,
		ev.InputTokens, ev.OutputTokens, ev.LatencyMs,
		boolToInt(ev.Success), ev.ErrorMessage,
	)
	return err
}

// ListLLMEvents returns the most recent events, newest first, filtered
// by purpose when non-empty. The filter is part of the query so the
// limit counts matching events. A non-positive limit defaults to 50.
func (s *Store) ListLLMEvents(ctx context.Context, purpose string, limit int) ([]LLMEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, created_at, provider, model, purpose,
		       input_tokens, output_tokens, latency_ms, success, error_message
		FROM llm_events`
	var args []any
	if purpose != "" {
		query += ` WHERE purpose = ?`
		args = append(args, purpose)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []LLMEvent
	for rows.Next() {
		var ev LLMEvent
		var createdAt int64
		var success int
		if err := rows.Scan(&ev.ID, &createdAt, &ev.Provider, &ev.Model, &ev.Purpose,
			&ev.InputTokens, &ev.OutputTokens, &ev.LatencyMs, &success, &ev.ErrorMessage); err != nil {
			return nil, err
		}
		ev.CreatedAt = time.Unix(createdAt, 0).UTC()
		ev.Success = success != 0
		events = append(events, ev)
	}
	return events, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
