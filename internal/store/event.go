package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/rsarkar/bayestutor/ent"
)

// eventRepo implements EventRepo backed by ent and the global sequence
// counter.
type eventRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

// sequenceCounter hands out one monotonic sequence across every event
// table. Events of different types live in separate ent-managed tables,
// and per-table auto-increment IDs say nothing about the order of a
// lesson relative to an answer. A single counter restores that: the log
// stays totally ordered across types, snapshots can name the exact
// position they were taken at, and replay after a snapshot is a plain
// "sequence > N" query against each table.
//
// The counter lives in its own SQLite row rather than in ent because ent
// has no notion of a database-level atomic counter. The UPDATE ...
// RETURNING statement is what makes concurrent increments safe; the
// mutex only serializes callers inside this process.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter ensures the counter row exists and returns a counter
// positioned at the next unused value.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS global_sequence (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			next_val INTEGER NOT NULL DEFAULT 1
		)`,
		`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("init sequence counter: %w", err)
		}
	}
	return &sequenceCounter{db: db}, nil
}

// Next claims and returns the next sequence number.
func (c *sequenceCounter) Next(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int64
	err := c.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("advance sequence: %w", err)
	}
	return n, nil
}
