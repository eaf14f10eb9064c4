package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"watwallet/internal/amqp"
	"watwallet/internal/core"
	"watwallet/internal/log"
	"watwallet/internal/store"
)

// EventPublisher is the outbound contract for transaction mutation events.
// A nil publisher disables eventing.
type EventPublisher interface {
	PublishTransactionEvent(ctx context.Context, ev *amqp.TransactionEvent) error
}

// TransactionService creates, replaces and deletes income and expense
// records. Updates are full-field replaces with last-writer-wins semantics;
// deletes are idempotent.
type TransactionService struct {
	store  store.Store
	events EventPublisher
}

func NewTransactionService(st store.Store, events EventPublisher) *TransactionService {
	return &TransactionService{store: st, events: events}
}

// AddIncome validates the record, checks that the referenced job exists and
// inserts it. The job check is eager so a dangling reference fails the
// write instead of silently persisting.
func (s *TransactionService) AddIncome(ctx context.Context, income core.Income) (string, error) {
	if err := income.Validate(); err != nil {
		return "", err
	}
	if err := s.checkJobExists(ctx, income.JobID); err != nil {
		return "", err
	}

	id, err := s.store.Add(ctx, store.CollectionIncomes, store.EncodeIncome(income))
	if err != nil {
		return "", fmt.Errorf("%w: add income: %w", core.ErrDataUnavailable, err)
	}

	s.publish(ctx, amqp.NewTransactionEvent(amqp.KindIncome, amqp.ActionCreated, id, income.UserID))
	return id, nil
}

func (s *TransactionService) AddExpense(ctx context.Context, expense core.Expense) (string, error) {
	if err := expense.Validate(); err != nil {
		return "", err
	}

	id, err := s.store.Add(ctx, store.CollectionExpenses, store.EncodeExpense(expense))
	if err != nil {
		return "", fmt.Errorf("%w: add expense: %w", core.ErrDataUnavailable, err)
	}

	s.publish(ctx, amqp.NewTransactionEvent(amqp.KindExpense, amqp.ActionCreated, id, expense.UserID))
	return id, nil
}

// GetIncome returns nil without error when the record does not exist.
func (s *TransactionService) GetIncome(ctx context.Context, id string) (*core.Income, error) {
	doc, err := s.store.Get(ctx, store.CollectionIncomes, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get income: %w", core.ErrDataUnavailable, err)
	}
	income, err := store.DecodeIncome(doc)
	if err != nil {
		return nil, err
	}
	return &income, nil
}

func (s *TransactionService) GetExpense(ctx context.Context, id string) (*core.Expense, error) {
	doc, err := s.store.Get(ctx, store.CollectionExpenses, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get expense: %w", core.ErrDataUnavailable, err)
	}
	expense, err := store.DecodeExpense(doc)
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// UpdateIncome replaces every stored field of the record. There is no
// concurrency check: the last writer wins.
func (s *TransactionService) UpdateIncome(ctx context.Context, id string, income core.Income) error {
	if err := income.Validate(); err != nil {
		return err
	}
	if err := s.checkJobExists(ctx, income.JobID); err != nil {
		return err
	}

	if err := s.store.Update(ctx, store.CollectionIncomes, id, store.EncodeIncome(income)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: update income: %w", core.ErrDataUnavailable, err)
	}

	s.publish(ctx, amqp.NewTransactionEvent(amqp.KindIncome, amqp.ActionUpdated, id, income.UserID))
	return nil
}

func (s *TransactionService) UpdateExpense(ctx context.Context, id string, expense core.Expense) error {
	if err := expense.Validate(); err != nil {
		return err
	}

	if err := s.store.Update(ctx, store.CollectionExpenses, id, store.EncodeExpense(expense)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: update expense: %w", core.ErrDataUnavailable, err)
	}

	s.publish(ctx, amqp.NewTransactionEvent(amqp.KindExpense, amqp.ActionUpdated, id, expense.UserID))
	return nil
}

// DeleteIncome hard-deletes the record. Deleting an id that does not exist
// is a no-op.
func (s *TransactionService) DeleteIncome(ctx context.Context, id string) error {
	return s.deleteTransaction(ctx, store.CollectionIncomes, amqp.KindIncome, id)
}

func (s *TransactionService) DeleteExpense(ctx context.Context, id string) error {
	return s.deleteTransaction(ctx, store.CollectionExpenses, amqp.KindExpense, id)
}

func (s *TransactionService) deleteTransaction(ctx context.Context, collection, kind, id string) error {
	// Read first so the event can carry the owning user. A missing record
	// means there is nothing to delete and nothing to announce.
	doc, err := s.store.Get(ctx, collection, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: get %s: %w", core.ErrDataUnavailable, collection, err)
	}

	userID, _ := doc.Fields["user"].(string)

	if err := s.store.Delete(ctx, collection, id); err != nil {
		return fmt.Errorf("%w: delete %s: %w", core.ErrDataUnavailable, collection, err)
	}

	s.publish(ctx, amqp.NewTransactionEvent(kind, amqp.ActionDeleted, id, userID))
	return nil
}

func (s *TransactionService) checkJobExists(ctx context.Context, jobID string) error {
	_, err := s.store.Get(ctx, store.CollectionJobs, jobID)
	if errors.Is(err, store.ErrNotFound) {
		return core.ErrUnknownJob
	}
	if err != nil {
		return fmt.Errorf("%w: check job: %w", core.ErrDataUnavailable, err)
	}
	return nil
}

// publish sends the event if a publisher is configured. Publish failures
// are logged, not returned: the mutation already succeeded.
func (s *TransactionService) publish(ctx context.Context, ev *amqp.TransactionEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishTransactionEvent(ctx, ev); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			log.FieldComponent, log.ComponentTransaction,
			"kind", ev.Kind,
			"action", ev.Action,
			log.FieldEntryID, ev.ID,
			log.FieldError, err)
	}
}
