package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"watwallet/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "watwallet.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddGetDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	id, err := s.Add(ctx, "expenses", map[string]any{
		"user":   "u1",
		"amount": int64(4550),
		"date":   time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	doc, err := s.Get(ctx, "expenses", id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if doc.Fields["user"] != "u1" {
		t.Fatalf("unexpected doc: %+v", doc.Fields)
	}
	// Numbers come back as float64 through the JSON body.
	if doc.Fields["amount"].(float64) != 4550 {
		t.Fatalf("unexpected amount: %v", doc.Fields["amount"])
	}

	if err := s.Delete(ctx, "expenses", id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "expenses", id); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, "expenses", id); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
}

func TestQueryByFields(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Add(ctx, "season_jobs", map[string]any{"user": "u1", "deleted": false})
	s.Add(ctx, "season_jobs", map[string]any{"user": "u1", "deleted": true})
	s.Add(ctx, "season_jobs", map[string]any{"user": "u2", "deleted": false})

	docs, err := s.Query(ctx, "season_jobs",
		store.Where("user", store.OpEq, "u1").Where("deleted", store.OpEq, false))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 live entry for u1, got %d", len(docs))
	}
}

func TestQueryLimit(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	for i := 0; i < 3; i++ {
		s.Add(ctx, "employers", map[string]any{"name": "Resort"})
	}
	docs, err := s.Query(ctx, "employers", store.Query{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(docs))
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	id, _ := s.Add(ctx, "jobs", map[string]any{"position": "server", "deleted": false})
	if err := s.Update(ctx, "jobs", id, map[string]any{"deleted": true}); err != nil {
		t.Fatalf("update: %v", err)
	}

	doc, _ := s.Get(ctx, "jobs", id)
	if doc.Fields["deleted"] != true || doc.Fields["position"] != "server" {
		t.Fatalf("merge lost fields: %+v", doc.Fields)
	}

	if err := s.Update(ctx, "jobs", "missing", map[string]any{"deleted": true}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetReplacesDocument(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Set(ctx, "users", "u1", map[string]any{"name": "Ada", "phone": "1"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "users", "u1", map[string]any{"name": "Ada"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	doc, _ := s.Get(ctx, "users", "u1")
	if _, ok := doc.Fields["phone"]; ok {
		t.Fatal("Set should replace the whole document")
	}
}

func TestTimestampsSurviveRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	want := time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)
	id, _ := s.Add(ctx, "incomes", map[string]any{"date": want})

	doc, err := s.Get(ctx, "incomes", id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got, err := time.Parse(time.RFC3339, doc.Fields["date"].(string))
	if err != nil {
		t.Fatalf("stored date is not RFC 3339: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
