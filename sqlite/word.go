package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/lingua"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ lingua.WordService = (*WordService)(nil)

const wordColumns = "id, alphabet, text, url, definitions, needs_review, deleted, created_at, updated_at"

// WordService implements lingua.WordService using SQLite.
type WordService struct {
	db *DB
}

// NewWordService creates a new WordService.
func NewWordService(db *DB) *WordService {
	return &WordService{db: db}
}

// AddLink records a word URL under an alphabet. Re-adding a known pair
// returns the existing ID and restores the word if it was soft-deleted.
func (s *WordService) AddLink(ctx context.Context, alphabet, url string) (string, error) {
	word := &lingua.Word{
		Alphabet: alphabet,
		URL:      url,
		Text:     lingua.WordText(url),
	}
	if err := word.Validate(); err != nil {
		return "", err
	}

	now := time.Now().UTC().Format(time.RFC3339)

	var id string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO words (id, alphabet, text, url, definitions, needs_review, deleted, created_at, updated_at)
		VALUES (?, ?, ?, ?, '[]', 0, 0, ?, ?)
		ON CONFLICT (alphabet, url) DO UPDATE SET deleted = 0
		RETURNING id
	`, uuid.New().String(), word.Alphabet, word.Text, word.URL, now, now).Scan(&id)
	if err != nil {
		return "", err
	}

	return id, nil
}

// FindWordByID retrieves a word by ID.
func (s *WordService) FindWordByID(ctx context.Context, id string) (*lingua.Word, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+wordColumns+" FROM words WHERE id = ?", id)

	word, err := scanWord(row)
	if err == sql.ErrNoRows {
		return nil, lingua.Errorf(lingua.ENOTFOUND, "word not found")
	}
	if err != nil {
		return nil, err
	}
	return word, nil
}

// FindWords retrieves words matching the filter in insertion order.
func (s *WordService) FindWords(ctx context.Context, filter lingua.WordFilter) ([]*lingua.Word, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + wordColumns + " FROM words WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Alphabet != nil {
		query.WriteString(" AND alphabet = ?")
		args = append(args, *filter.Alphabet)
	}
	if filter.NeedsReview != nil {
		query.WriteString(" AND needs_review = ?")
		args = append(args, boolToInt(*filter.NeedsReview))
	}
	if filter.MissingDefinitions {
		query.WriteString(" AND definitions = '[]'")
	}
	if !filter.IncludeDeleted {
		query.WriteString(" AND deleted = 0")
	}

	query.WriteString(" ORDER BY rowid")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []*lingua.Word
	for rows.Next() {
		word, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, word)
	}

	return words, rows.Err()
}

// UpdateWord updates an existing word.
func (s *WordService) UpdateWord(ctx context.Context, id string, upd lingua.WordUpdate) (*lingua.Word, error) {
	word, err := s.FindWordByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Text != nil {
		word.Text = *upd.Text
	}
	if upd.Definitions != nil {
		word.Definitions = *upd.Definitions
	}
	if upd.NeedsReview != nil {
		word.NeedsReview = *upd.NeedsReview
	}

	if err := word.Validate(); err != nil {
		return nil, err
	}

	defs, err := encodeDefinitions(word.Definitions)
	if err != nil {
		return nil, err
	}

	word.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE words
		SET text = ?, definitions = ?, needs_review = ?, updated_at = ?
		WHERE id = ?
	`, word.Text, defs, boolToInt(word.NeedsReview), word.UpdatedAt.Format(time.RFC3339), id)
	if err != nil {
		return nil, err
	}

	return word, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWord(row scanner) (*lingua.Word, error) {
	var word lingua.Word
	var defs, createdAt, updatedAt string

	if err := row.Scan(&word.ID, &word.Alphabet, &word.Text, &word.URL, &defs,
		&word.NeedsReview, &word.Deleted, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if word.Definitions, err = decodeDefinitions(defs); err != nil {
		return nil, err
	}
	if word.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if word.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &word, nil
}
