// Package store defines the document-store boundary: a small get/query/add/
// update/delete contract over schemaless collections, plus the typed
// encode/decode layer that is the single place documents are (de)serialized.
package store

import (
	"context"
	"errors"
)

// Collection names of the persisted layout.
const (
	CollectionUsers      = "users"
	CollectionEmployers  = "employers"
	CollectionSeasons    = "seasons"
	CollectionJobs       = "jobs"
	CollectionSeasonJobs = "season_jobs"
	CollectionIncomes    = "incomes"
	CollectionExpenses   = "expenses"
)

// ErrNotFound is returned by Get and Update when the document does not
// exist. Delete of a missing document is not an error.
var ErrNotFound = errors.New("document not found")

// Document is a raw stored document: an id plus schemaless fields.
type Document struct {
	ID     string
	Fields map[string]any
}

// Op is a comparison operator in a query clause.
type Op string

const (
	OpEq Op = "=="
	OpLt Op = "<"
	OpLe Op = "<="
	OpGt Op = ">"
	OpGe Op = ">="
)

// Clause is a single field comparison.
type Clause struct {
	Field string
	Op    Op
	Value any
}

// Query is a conjunction of clauses with an optional result limit.
// Backends must return documents in a deterministic order (by id).
type Query struct {
	Clauses []Clause
	Limit   int
}

// Where starts a query with one clause.
func Where(field string, op Op, value any) Query {
	return Query{Clauses: []Clause{{Field: field, Op: op, Value: value}}}
}

// Where appends a clause to the query.
func (q Query) Where(field string, op Op, value any) Query {
	q.Clauses = append(q.Clauses, Clause{Field: field, Op: op, Value: value})
	return q
}

// WithLimit caps the number of returned documents.
func (q Query) WithLimit(n int) Query {
	q.Limit = n
	return q
}

// Store is the capability the core consumes from the remote document
// database. Writes are single-document; there are no multi-document
// transactions behind this interface.
type Store interface {
	// Get fetches one document. Returns ErrNotFound if absent.
	Get(ctx context.Context, collection, id string) (Document, error)

	// Query returns all documents matching every clause, ordered by id.
	Query(ctx context.Context, collection string, q Query) ([]Document, error)

	// Add stores a new document under a generated id and returns the id.
	Add(ctx context.Context, collection string, fields map[string]any) (string, error)

	// Set creates or fully replaces the document with the given id.
	Set(ctx context.Context, collection, id string, fields map[string]any) error

	// Update merges fields into an existing document.
	// Returns ErrNotFound if the document does not exist.
	Update(ctx context.Context, collection, id string, fields map[string]any) error

	// Delete removes a document. Deleting a missing id is a no-op.
	Delete(ctx context.Context, collection, id string) error

	// Close releases any resources held by the store.
	Close() error
}
