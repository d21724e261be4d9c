package chatlog

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLite(filepath.Join(t.TempDir(), "turns.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRecordAndRecent(t *testing.T) {
	r := newTestRecorder(t)
	ctx := context.Background()

	base := time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)
	turns := []Turn{
		{SessionID: "s1", Question: "weather in Austin", Intent: "Weather", Confidence: 0.95, ReplyKind: "tell", ReplyText: "Sunny", At: base},
		{SessionID: "s1", Question: "and tomorrow", Intent: "Weather", Confidence: 0.90, ReplyKind: "tell", ReplyText: "Cloudy", At: base.Add(time.Minute)},
		{SessionID: "s2", Question: "weather", Intent: "Weather", Confidence: 0.80, ReplyKind: "ask", ReplyText: "Which city are you interested in?", At: base.Add(2 * time.Minute)},
	}
	for _, turn := range turns {
		if err := r.Record(ctx, turn); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := r.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d", len(got))
	}
	// Oldest first.
	if got[0].Question != "weather in Austin" || got[2].Question != "weather" {
		t.Errorf("order wrong: %q, %q", got[0].Question, got[2].Question)
	}
	if got[2].ReplyKind != "ask" || got[2].Confidence != 0.80 {
		t.Errorf("turn = %+v", got[2])
	}
	if !got[0].At.Equal(base) {
		t.Errorf("at = %v, want %v", got[0].At, base)
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	r := newTestRecorder(t)
	ctx := context.Background()

	base := time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		turn := Turn{
			SessionID: "s1",
			Question:  "q",
			ReplyKind: "tell",
			ReplyText: "a",
			At:        base.Add(time.Duration(i) * time.Minute),
		}
		if err := r.Record(ctx, turn); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := r.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	// The newest two, still oldest first.
	if !got[0].At.Before(got[1].At) {
		t.Errorf("order wrong: %v, %v", got[0].At, got[1].At)
	}
	if !got[1].At.Equal(base.Add(4 * time.Minute)) {
		t.Errorf("newest = %v", got[1].At)
	}
}

func TestNilRecorderIsNoOp(t *testing.T) {
	var r *SQLiteRecorder

	if err := r.Record(context.Background(), Turn{Question: "q"}); err != nil {
		t.Errorf("Record on nil: %v", err)
	}
	turns, err := r.Recent(context.Background(), 10)
	if err != nil || turns != nil {
		t.Errorf("Recent on nil = %v, %v", turns, err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil: %v", err)
	}
}
