package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() err = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndRecent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	events := []ParseEvent{
		{Endpoint: "parse_trader_text", InputText: "vwap close", Structured: "VWAP Market Close [16:00]", Algo: "vwap", Confidence: 0.95, LLMPath: false, CreatedAt: base},
		{Endpoint: "parse_order", InputText: "buy 100 aapl", Structured: "AAPL", Confidence: 0, LLMPath: true, CreatedAt: base.Add(time.Minute)},
		{Endpoint: "autocomplete", InputText: "vwap", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, e := range events {
		if err := s.SaveParseEvent(ctx, e); err != nil {
			t.Fatalf("SaveParseEvent() err = %v", err)
		}
	}

	got, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() err = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len(Recent()) = %d, want 3", len(got))
	}

	// Newest first.
	if got[0].Endpoint != "autocomplete" || got[2].Endpoint != "parse_trader_text" {
		t.Errorf("order = [%s %s %s], want newest first", got[0].Endpoint, got[1].Endpoint, got[2].Endpoint)
	}

	first := got[2]
	if first.ID == 0 {
		t.Error("ID not assigned")
	}
	if first.Structured != "VWAP Market Close [16:00]" || first.Algo != "vwap" {
		t.Errorf("round trip lost fields: %+v", first)
	}
	if first.Confidence != 0.95 || first.LLMPath {
		t.Errorf("round trip lost confidence/path: %+v", first)
	}
}

func TestRecentLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		e := ParseEvent{
			Endpoint:  "parse_trader_text",
			InputText: "twap",
			CreatedAt: time.Date(2026, 8, 1, 10, i, 0, 0, time.UTC),
		}
		if err := s.SaveParseEvent(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("len(Recent(2)) = %d, want 2", len(got))
	}
}

func TestSaveFillsMissingTimestamp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveParseEvent(ctx, ParseEvent{Endpoint: "parse_order", InputText: "x"}); err != nil {
		t.Fatal(err)
	}

	got, err := s.Recent(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].CreatedAt.IsZero() {
		t.Errorf("CreatedAt not defaulted: %+v", got)
	}
}

func TestRecentOnEmptyStore(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent() err = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Recent() = %v, want none", got)
	}
}
