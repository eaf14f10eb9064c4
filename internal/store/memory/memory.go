// Package memory provides an in-memory document store, used as the dev
// backend and as the test double for the service layer.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"watwallet/internal/store"
)

type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]map[string]any
}

func New() *Store {
	return &Store{collections: make(map[string]map[string]map[string]any)}
}

func (s *Store) Get(_ context.Context, collection, id string) (store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fields, ok := s.collections[collection][id]
	if !ok {
		return store.Document{}, fmt.Errorf("%s/%s: %w", collection, id, store.ErrNotFound)
	}
	return store.Document{ID: id, Fields: clone(fields)}, nil
}

func (s *Store) Query(_ context.Context, collection string, q store.Query) ([]store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []store.Document
	for id, fields := range s.collections[collection] {
		if matches(fields, q.Clauses) {
			docs = append(docs, store.Document{ID: id, Fields: clone(fields)})
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	if q.Limit > 0 && len(docs) > q.Limit {
		docs = docs[:q.Limit]
	}
	return docs, nil
}

func (s *Store) Add(_ context.Context, collection string, fields map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.ensure(collection)[id] = clone(fields)
	return id, nil
}

func (s *Store) Set(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensure(collection)[id] = clone(fields)
	return nil
}

func (s *Store) Update(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.collections[collection][id]
	if !ok {
		return fmt.Errorf("%s/%s: %w", collection, id, store.ErrNotFound)
	}
	for k, v := range fields {
		existing[k] = v
	}
	return nil
}

func (s *Store) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections[collection], id)
	return nil
}

func (s *Store) Close() error { return nil }

func (s *Store) ensure(collection string) map[string]map[string]any {
	col, ok := s.collections[collection]
	if !ok {
		col = make(map[string]map[string]any)
		s.collections[collection] = col
	}
	return col
}

func clone(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

func matches(fields map[string]any, clauses []store.Clause) bool {
	for _, c := range clauses {
		v, ok := fields[c.Field]
		if !ok {
			return false
		}
		if !compare(v, c.Op, c.Value) {
			return false
		}
	}
	return true
}

func compare(have any, op store.Op, want any) bool {
	// Timestamps order chronologically, numbers numerically, everything
	// else only supports equality.
	if ht, ok := have.(time.Time); ok {
		wt, ok := want.(time.Time)
		if !ok {
			return false
		}
		switch op {
		case store.OpEq:
			return ht.Equal(wt)
		case store.OpLt:
			return ht.Before(wt)
		case store.OpLe:
			return ht.Before(wt) || ht.Equal(wt)
		case store.OpGt:
			return ht.After(wt)
		case store.OpGe:
			return ht.After(wt) || ht.Equal(wt)
		}
		return false
	}

	if hn, ok := toFloat(have); ok {
		wn, ok := toFloat(want)
		if !ok {
			return false
		}
		switch op {
		case store.OpEq:
			return hn == wn
		case store.OpLt:
			return hn < wn
		case store.OpLe:
			return hn <= wn
		case store.OpGt:
			return hn > wn
		case store.OpGe:
			return hn >= wn
		}
		return false
	}

	if hs, ok := have.(string); ok {
		ws, ok := want.(string)
		if !ok {
			return false
		}
		switch op {
		case store.OpEq:
			return hs == ws
		case store.OpLt:
			return hs < ws
		case store.OpLe:
			return hs <= ws
		case store.OpGt:
			return hs > ws
		case store.OpGe:
			return hs >= ws
		}
		return false
	}

	return op == store.OpEq && have == want
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
