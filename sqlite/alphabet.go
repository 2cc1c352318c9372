package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/lingua"
)

// Compile-time interface verification.
var _ lingua.AlphabetService = (*AlphabetService)(nil)

// AlphabetService implements lingua.AlphabetService using SQLite.
type AlphabetService struct {
	db *DB
}

// NewAlphabetService creates a new AlphabetService.
func NewAlphabetService(db *DB) *AlphabetService {
	return &AlphabetService{db: db}
}

// UpsertAlphabet creates the alphabet or updates its URL, restoring it
// if it was soft-deleted.
func (s *AlphabetService) UpsertAlphabet(ctx context.Context, alphabet *lingua.Alphabet) error {
	if err := alphabet.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO alphabets (letter, url, deleted, created_at, updated_at)
		VALUES (?, ?, 0, ?, ?)
		ON CONFLICT (letter) DO UPDATE SET
			url = excluded.url,
			deleted = 0,
			updated_at = excluded.updated_at
	`, alphabet.Letter, alphabet.URL, now, now)
	if err != nil {
		return err
	}

	alphabet.Deleted = false
	return nil
}

// FindAlphabets retrieves alphabets matching the filter in discovery order.
func (s *AlphabetService) FindAlphabets(ctx context.Context, filter lingua.AlphabetFilter) ([]*lingua.Alphabet, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT letter, url, deleted FROM alphabets WHERE 1=1")

	if filter.Letter != nil {
		query.WriteString(" AND letter = ?")
		args = append(args, *filter.Letter)
	}
	if !filter.IncludeDeleted {
		query.WriteString(" AND deleted = 0")
	}

	query.WriteString(" ORDER BY rowid")

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alphabets []*lingua.Alphabet
	for rows.Next() {
		var a lingua.Alphabet
		if err := rows.Scan(&a.Letter, &a.URL, &a.Deleted); err != nil {
			return nil, err
		}
		alphabets = append(alphabets, &a)
	}

	return alphabets, rows.Err()
}

// SoftDeleteAlphabets marks every active alphabet and its words deleted.
func (s *AlphabetService) SoftDeleteAlphabets(ctx context.Context) (int, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)

	if _, err := tx.ExecContext(ctx, `
		UPDATE words SET deleted = 1, updated_at = ?
		WHERE deleted = 0 AND alphabet IN (SELECT letter FROM alphabets WHERE deleted = 0)
	`, now); err != nil {
		return 0, err
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE alphabets SET deleted = 1, updated_at = ? WHERE deleted = 0
	`, now)
	if err != nil {
		return 0, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int(n), nil
}
