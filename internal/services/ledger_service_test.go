package services

import (
	"context"
	"errors"
	"testing"

	"watwallet/internal/core"
	"watwallet/internal/store"
	"watwallet/internal/store/memory"
)

func seedJob(t *testing.T, st store.Store, position string) string {
	t.Helper()
	id, err := st.Add(context.Background(), store.CollectionJobs, store.EncodeJob(core.Job{
		EmployerID: "emp-1",
		Position:   position,
		Season:     2026,
		StartDate:  core.NewDate(2026, 5, 1),
		EndDate:    core.NewDate(2026, 9, 30),
		Active:     true,
	}))
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return id
}

func seedIncome(t *testing.T, st store.Store, userID, jobID string, base, tips int64, date core.Date) string {
	t.Helper()
	id, err := st.Add(context.Background(), store.CollectionIncomes, store.EncodeIncome(core.Income{
		UserID:      userID,
		JobID:       jobID,
		Season:      2026,
		BaseEarned:  core.Money{Cents: base},
		TipsEarned:  core.Money{Cents: tips},
		HoursWorked: 8,
		Date:        date,
	}))
	if err != nil {
		t.Fatalf("seed income: %v", err)
	}
	return id
}

func seedExpense(t *testing.T, st store.Store, userID string, amount int64, tag, description string, date core.Date) string {
	t.Helper()
	id, err := st.Add(context.Background(), store.CollectionExpenses, store.EncodeExpense(core.Expense{
		UserID:      userID,
		Season:      2026,
		Amount:      core.Money{Cents: amount},
		Tag:         tag,
		Description: description,
		Date:        date,
	}))
	if err != nil {
		t.Fatalf("seed expense: %v", err)
	}
	return id
}

func TestGetLedgerTotalsAndOrder(t *testing.T) {
	st := memory.New()
	svc := NewLedgerService(st)
	ctx := context.Background()

	jobID := seedJob(t, st, "Lifeguard")
	incomeID := seedIncome(t, st, "u1", jobID, 10000, 2000, core.NewDate(2026, 6, 1))
	expenseID := seedExpense(t, st, "u1", 4550, "food", "groceries", core.NewDate(2026, 6, 2))

	ledger, err := svc.GetLedger(ctx, "u1")
	if err != nil {
		t.Fatalf("GetLedger: %v", err)
	}

	if got := ledger.Earnings.String(); got != "120.00" {
		t.Errorf("earnings = %s, want 120.00", got)
	}
	if got := ledger.Expenses.String(); got != "45.50" {
		t.Errorf("expenses = %s, want 45.50", got)
	}
	if ledger.Unresolved != 0 {
		t.Errorf("unresolved = %d, want 0", ledger.Unresolved)
	}
	if len(ledger.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(ledger.Entries))
	}

	// Newest first: the expense on June 2 precedes the income on June 1.
	if ledger.Entries[0].ID != expenseID || ledger.Entries[0].Kind != core.EntryExpense {
		t.Errorf("first entry = %+v, want expense %s", ledger.Entries[0], expenseID)
	}
	if ledger.Entries[1].ID != incomeID || ledger.Entries[1].Kind != core.EntryIncome {
		t.Errorf("second entry = %+v, want income %s", ledger.Entries[1], incomeID)
	}
	if got := ledger.Entries[1].Description; got != "Salary from Lifeguard" {
		t.Errorf("income description = %q", got)
	}
}

func TestGetLedgerDefaultsExpenseDescription(t *testing.T) {
	st := memory.New()
	svc := NewLedgerService(st)

	seedExpense(t, st, "u1", 500, "misc", "", core.NewDate(2026, 7, 1))

	ledger, err := svc.GetLedger(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetLedger: %v", err)
	}
	if got := ledger.Entries[0].Description; got != "No Description" {
		t.Errorf("description = %q, want No Description", got)
	}
}

func TestGetLedgerTieBreaksEqualDatesByID(t *testing.T) {
	st := memory.New()
	svc := NewLedgerService(st)

	date := core.NewDate(2026, 6, 15)
	a := seedExpense(t, st, "u1", 100, "a", "first", date)
	b := seedExpense(t, st, "u1", 200, "b", "second", date)
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}

	for i := 0; i < 5; i++ {
		ledger, err := svc.GetLedger(context.Background(), "u1")
		if err != nil {
			t.Fatalf("GetLedger: %v", err)
		}
		if ledger.Entries[0].ID != lo || ledger.Entries[1].ID != hi {
			t.Fatalf("order = [%s %s], want [%s %s]", ledger.Entries[0].ID, ledger.Entries[1].ID, lo, hi)
		}
	}
}

func TestGetLedgerOrphanedIncomeKeptInTotals(t *testing.T) {
	st := memory.New()
	svc := NewLedgerService(st)

	jobID := seedJob(t, st, "Bartender")
	seedIncome(t, st, "u1", jobID, 5000, 0, core.NewDate(2026, 6, 1))
	seedIncome(t, st, "u1", "job-gone", 3000, 0, core.NewDate(2026, 6, 2))

	ledger, err := svc.GetLedger(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetLedger: %v", err)
	}

	// The orphan stays in the total but not in the list.
	if got := ledger.Earnings.String(); got != "80.00" {
		t.Errorf("earnings = %s, want 80.00", got)
	}
	if len(ledger.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(ledger.Entries))
	}
	if ledger.Unresolved != 1 {
		t.Errorf("unresolved = %d, want 1", ledger.Unresolved)
	}
}

func TestGetLedgerSkipsMalformedRecords(t *testing.T) {
	st := memory.New()
	svc := NewLedgerService(st)
	ctx := context.Background()

	seedExpense(t, st, "u1", 1000, "food", "lunch", core.NewDate(2026, 6, 1))
	// Missing the amount field entirely.
	if _, err := st.Add(ctx, store.CollectionExpenses, map[string]any{
		"user": "u1", "season": int64(2026), "tag": "broken",
		"description": "", "date": core.NewDate(2026, 6, 3).Time,
	}); err != nil {
		t.Fatalf("seed malformed: %v", err)
	}

	ledger, err := svc.GetLedger(ctx, "u1")
	if err != nil {
		t.Fatalf("GetLedger: %v", err)
	}
	if got := ledger.Expenses.String(); got != "10.00" {
		t.Errorf("expenses = %s, want 10.00", got)
	}
	if len(ledger.Entries) != 1 {
		t.Errorf("entries = %d, want 1", len(ledger.Entries))
	}
	if ledger.Unresolved != 1 {
		t.Errorf("unresolved = %d, want 1", ledger.Unresolved)
	}
}

func TestGetLedgerFailsWhenStoreUnavailable(t *testing.T) {
	svc := NewLedgerService(&failingStore{})

	_, err := svc.GetLedger(context.Background(), "u1")
	if !errors.Is(err, core.ErrDataUnavailable) {
		t.Fatalf("err = %v, want ErrDataUnavailable", err)
	}
}

func TestGetLedgerRequiresUser(t *testing.T) {
	svc := NewLedgerService(memory.New())

	_, err := svc.GetLedger(context.Background(), "")
	if !errors.Is(err, core.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

// failingStore errors on every operation.
type failingStore struct{}

var errStoreDown = errors.New("store down")

func (f *failingStore) Get(context.Context, string, string) (store.Document, error) {
	return store.Document{}, errStoreDown
}

func (f *failingStore) Query(context.Context, string, store.Query) ([]store.Document, error) {
	return nil, errStoreDown
}

func (f *failingStore) Add(context.Context, string, map[string]any) (string, error) {
	return "", errStoreDown
}

func (f *failingStore) Set(context.Context, string, string, map[string]any) error {
	return errStoreDown
}

func (f *failingStore) Update(context.Context, string, string, map[string]any) error {
	return errStoreDown
}

func (f *failingStore) Delete(context.Context, string, string) error { return errStoreDown }

func (f *failingStore) Close() error { return nil }
