// Package services orchestrates the domain operations over the document
// store: ledger aggregation, transaction mutations and the job/season
// relationship layer.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"watwallet/internal/core"
	"watwallet/internal/log"
	"watwallet/internal/store"
)

// LedgerService aggregates a user's incomes and expenses into one sorted
// transaction list with computed totals.
type LedgerService struct {
	store store.Store
}

func NewLedgerService(st store.Store) *LedgerService {
	return &LedgerService{store: st}
}

// GetLedger fetches both transaction collections concurrently and merges
// them. The fetch is all or nothing: if either read fails, no partial
// result is returned.
//
// Totals are computed from the full decoded snapshot. Incomes whose job
// reference cannot be resolved are dropped from the entry list but stay in
// the earnings total; TotalLedger.Unresolved counts every dropped entry so
// the divergence is visible to callers.
//
// Entries are sorted by date descending; entries with equal dates order by
// id ascending, which makes the result deterministic.
func (s *LedgerService) GetLedger(ctx context.Context, userID string) (core.TotalLedger, error) {
	if userID == "" {
		return core.TotalLedger{}, core.ErrUserRequired
	}

	var incomeDocs, expenseDocs []store.Document

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		docs, err := s.store.Query(gctx, store.CollectionIncomes, store.Where("user", store.OpEq, userID))
		if err != nil {
			return fmt.Errorf("fetch incomes: %w", err)
		}
		incomeDocs = docs
		return nil
	})
	g.Go(func() error {
		docs, err := s.store.Query(gctx, store.CollectionExpenses, store.Where("user", store.OpEq, userID))
		if err != nil {
			return fmt.Errorf("fetch expenses: %w", err)
		}
		expenseDocs = docs
		return nil
	})
	if err := g.Wait(); err != nil {
		return core.TotalLedger{}, fmt.Errorf("%w: %w", core.ErrDataUnavailable, err)
	}

	ledger := core.TotalLedger{}

	var incomes []core.Income
	for _, doc := range incomeDocs {
		income, err := store.DecodeIncome(doc)
		if err != nil {
			slog.WarnContext(ctx, "Skipping malformed income record",
				log.FieldComponent, log.ComponentLedger,
				log.FieldEntryID, doc.ID,
				log.FieldError, err)
			ledger.Unresolved++
			continue
		}
		incomes = append(incomes, income)
		ledger.Earnings = ledger.Earnings.Add(income.BaseEarned).Add(income.TipsEarned)
	}

	var expenses []core.Expense
	for _, doc := range expenseDocs {
		expense, err := store.DecodeExpense(doc)
		if err != nil {
			slog.WarnContext(ctx, "Skipping malformed expense record",
				log.FieldComponent, log.ComponentLedger,
				log.FieldEntryID, doc.ID,
				log.FieldError, err)
			ledger.Unresolved++
			continue
		}
		expenses = append(expenses, expense)
		ledger.Expenses = ledger.Expenses.Add(expense.Amount)
	}

	positions := make(map[string]string)
	for _, income := range incomes {
		position, err := s.jobPosition(ctx, positions, income.JobID)
		if err != nil {
			// Orphaned income: kept in the earnings total above, dropped
			// from the visible list.
			slog.WarnContext(ctx, "Dropping income with unresolvable job",
				log.FieldComponent, log.ComponentLedger,
				log.FieldEntryID, income.ID,
				log.FieldJobID, income.JobID,
				log.FieldError, err)
			ledger.Unresolved++
			continue
		}
		ledger.Entries = append(ledger.Entries, core.LedgerEntry{
			ID:          income.ID,
			Kind:        core.EntryIncome,
			Amount:      income.BaseEarned.Add(income.TipsEarned),
			Date:        income.Date,
			Description: "Salary from " + position,
		})
	}

	for _, expense := range expenses {
		description := expense.Description
		if description == "" {
			description = "No Description"
		}
		ledger.Entries = append(ledger.Entries, core.LedgerEntry{
			ID:          expense.ID,
			Kind:        core.EntryExpense,
			Amount:      expense.Amount,
			Date:        expense.Date,
			Description: description,
		})
	}

	sort.Slice(ledger.Entries, func(i, j int) bool {
		a, b := ledger.Entries[i], ledger.Entries[j]
		if !a.Date.Equal(b.Date.Time) {
			return a.Date.After(b.Date.Time)
		}
		return a.ID < b.ID
	})

	return ledger, nil
}

func (s *LedgerService) jobPosition(ctx context.Context, cache map[string]string, jobID string) (string, error) {
	if position, ok := cache[jobID]; ok {
		return position, nil
	}
	doc, err := s.store.Get(ctx, store.CollectionJobs, jobID)
	if err != nil {
		return "", err
	}
	job, err := store.DecodeJob(doc)
	if err != nil {
		return "", err
	}
	cache[jobID] = job.Position
	return job.Position, nil
}
