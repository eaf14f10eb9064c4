// Package worker contains the ledger refresh consumer: it listens for
// transaction mutation events and recomputes the affected user's ledger
// into a warm cache so the next read is served precomputed.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"watwallet/internal/amqp"
	"watwallet/internal/cache"
	"watwallet/internal/core"
	"watwallet/internal/log"
)

// LedgerReader is the read side the worker refreshes from.
type LedgerReader interface {
	GetLedger(ctx context.Context, userID string) (core.TotalLedger, error)
}

// RefreshWorker recomputes a user's ledger whenever one of their
// transactions changes. Recomputation is keyed only by the event's user id,
// so duplicate deliveries are harmless.
type RefreshWorker struct {
	ledger LedgerReader
	cache  cache.Cache[core.TotalLedger]
}

func NewRefreshWorker(ledger LedgerReader, c cache.Cache[core.TotalLedger]) *RefreshWorker {
	return &RefreshWorker{ledger: ledger, cache: c}
}

// HandleEvent refreshes the cached ledger for the event's user. Events
// without a user id are dropped; there is nothing to refresh.
func (w *RefreshWorker) HandleEvent(ctx context.Context, ev *amqp.TransactionEvent) error {
	if ev.UserID == "" {
		slog.WarnContext(ctx, "Dropping transaction event without user id",
			log.FieldComponent, log.ComponentWorker,
			"kind", ev.Kind,
			"action", ev.Action,
			log.FieldEntryID, ev.ID)
		return nil
	}

	ledger, err := w.ledger.GetLedger(ctx, ev.UserID)
	if err != nil {
		return fmt.Errorf("refresh ledger for user %s: %w", ev.UserID, err)
	}
	w.cache.Set(ev.UserID, ledger)

	slog.InfoContext(ctx, "Refreshed ledger cache",
		log.FieldComponent, log.ComponentWorker,
		log.FieldUserID, ev.UserID,
		"entries", len(ledger.Entries),
		"unresolved", ledger.Unresolved)
	return nil
}

// Cached returns the warmed ledger for a user, if present.
func (w *RefreshWorker) Cached(userID string) (core.TotalLedger, bool) {
	return w.cache.Get(userID)
}
