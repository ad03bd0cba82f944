// Package state persists calculation history using SQLite.
package state

import "time"

// Calculation is one stored history entry: the equation as typed and
// the formatted result it produced.
type Calculation struct {
	ID         string    `json:"id"`
	Expression string    `json:"expression"`
	Result     string    `json:"result"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store is the persistence interface for calculation history.
type Store interface {
	// Open opens the store at path. Use ":memory:" for an in-memory store.
	Open(path string) error
	// Close releases the underlying database.
	Close() error
	// Migrate brings the schema up to date.
	Migrate() error
	// RecordCalculation stores a successful calculation.
	RecordCalculation(expression, result string) (*Calculation, error)
	// ListCalculations returns the most recent entries, newest first.
	// A limit of 0 means no limit.
	ListCalculations(limit int) ([]*Calculation, error)
	// ClearHistory removes all entries.
	ClearHistory() error
}
