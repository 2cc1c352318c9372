package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/lingua"
)

// Compile-time interface verification.
var _ lingua.AlphabetService = (*AlphabetService)(nil)

// AlphabetService implements lingua.AlphabetService using PostgreSQL.
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

	_, err := s.db.db.ExecContext(ctx, `
		INSERT INTO alphabets (letter, url)
		VALUES ($1, $2)
		ON CONFLICT (letter) DO UPDATE SET
			url = EXCLUDED.url,
			deleted = FALSE,
			updated_at = now()
	`, alphabet.Letter, alphabet.URL)
	if err != nil {
		return fmt.Errorf("failed to upsert alphabet: %w", err)
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
		query.WriteString(" AND NOT deleted")
	}

	query.WriteString(" ORDER BY seq")

	var alphabets []*lingua.Alphabet
	if err := s.db.db.SelectContext(ctx, &alphabets, s.db.db.Rebind(query.String()), args...); err != nil {
		return nil, err
	}
	return alphabets, nil
}

// SoftDeleteAlphabets marks every active alphabet and its words deleted.
func (s *AlphabetService) SoftDeleteAlphabets(ctx context.Context) (int, error) {
	tx, err := s.db.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		UPDATE words SET deleted = TRUE, updated_at = now()
		WHERE NOT deleted AND alphabet IN (SELECT letter FROM alphabets WHERE NOT deleted)
	`); err != nil {
		return 0, err
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE alphabets SET deleted = TRUE, updated_at = now() WHERE NOT deleted
	`)
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
