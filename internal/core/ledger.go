package core

// EntryKind tags a ledger entry as coming from the incomes or the expenses
// collection.
type EntryKind string

const (
	EntryIncome  EntryKind = "income"
	EntryExpense EntryKind = "expense"
)

// LedgerEntry is one row of the merged transaction list, with the fields of
// both variants unified for display.
type LedgerEntry struct {
	ID          string
	Kind        EntryKind
	Amount      Money
	Date        Date
	Description string
}

// TotalLedger is the derived, never persisted, view of a user's finances.
//
// Totals are computed from the raw snapshot of both collections. Incomes
// whose job reference cannot be resolved are dropped from Entries but still
// counted in Earnings; Unresolved reports how many entries were dropped so
// callers can surface the divergence instead of hiding it.
type TotalLedger struct {
	Earnings   Money
	Expenses   Money
	Entries    []LedgerEntry
	Unresolved int
}
