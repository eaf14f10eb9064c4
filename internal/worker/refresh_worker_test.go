package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"watwallet/internal/amqp"
	"watwallet/internal/cache"
	"watwallet/internal/core"
)

type stubLedger struct {
	ledgers map[string]core.TotalLedger
	err     error
	calls   int
}

func (s *stubLedger) GetLedger(_ context.Context, userID string) (core.TotalLedger, error) {
	s.calls++
	if s.err != nil {
		return core.TotalLedger{}, s.err
	}
	return s.ledgers[userID], nil
}

func TestHandleEventWarmsCache(t *testing.T) {
	ledger := core.TotalLedger{
		Earnings: core.Money{Cents: 12000},
		Entries:  []core.LedgerEntry{{ID: "i1", Kind: core.EntryIncome}},
	}
	reader := &stubLedger{ledgers: map[string]core.TotalLedger{"u1": ledger}}
	w := NewRefreshWorker(reader, cache.NewLRU[core.TotalLedger](8, time.Minute))

	ev := amqp.NewTransactionEvent(amqp.KindIncome, amqp.ActionCreated, "i1", "u1")
	if err := w.HandleEvent(context.Background(), ev); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	got, ok := w.Cached("u1")
	if !ok {
		t.Fatal("ledger not cached")
	}
	if got.Earnings.Cents != 12000 || len(got.Entries) != 1 {
		t.Errorf("cached = %+v", got)
	}
}

func TestHandleEventDropsAnonymousEvent(t *testing.T) {
	reader := &stubLedger{}
	w := NewRefreshWorker(reader, cache.NewLRU[core.TotalLedger](8, 0))

	ev := amqp.NewTransactionEvent(amqp.KindExpense, amqp.ActionDeleted, "e1", "")
	if err := w.HandleEvent(context.Background(), ev); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	if reader.calls != 0 {
		t.Errorf("GetLedger called %d times, want 0", reader.calls)
	}
}

func TestHandleEventPropagatesReadFailure(t *testing.T) {
	readErr := errors.New("store down")
	w := NewRefreshWorker(&stubLedger{err: readErr}, cache.NewLRU[core.TotalLedger](8, 0))

	ev := amqp.NewTransactionEvent(amqp.KindIncome, amqp.ActionUpdated, "i1", "u1")
	err := w.HandleEvent(context.Background(), ev)
	if !errors.Is(err, readErr) {
		t.Fatalf("err = %v, want wrapped read failure", err)
	}
	if _, ok := w.Cached("u1"); ok {
		t.Error("failed refresh should not populate the cache")
	}
}
