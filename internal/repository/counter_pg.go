package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SequenceRepository interface {
	EnsureSchema(ctx context.Context) error
	Reserve(ctx context.Context) (int64, error)
}

// PGCounter keeps the booking number sequence in a single-row table so that
// several back-office instances share it.
type PGCounter struct {
	db *pgxpool.Pool
}

func NewPGCounter(db *pgxpool.Pool) *PGCounter {
	return &PGCounter{db: db}
}

func (r *PGCounter) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `CREATE TABLE IF NOT EXISTS booking_sequence (
		id   SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
		next BIGINT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create booking_sequence: %w", err)
	}
	return nil
}

func (r *PGCounter) Reserve(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `INSERT INTO booking_sequence (id, next) VALUES (1, 1)
		ON CONFLICT (id) DO UPDATE SET next = booking_sequence.next + 1
		RETURNING next - 1`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("reserve booking number: %w", err)
	}
	return n, nil
}

var _ SequenceRepository = (*PGCounter)(nil)
