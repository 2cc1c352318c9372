package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/lingua"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Compile-time interface verification.
var _ lingua.WordService = (*WordService)(nil)

const wordColumns = "id, alphabet, text, url, definitions, needs_review, deleted, created_at, updated_at"

// wordRow is the database representation of a word.
type wordRow struct {
	ID          string         `db:"id"`
	Alphabet    string         `db:"alphabet"`
	Text        string         `db:"text"`
	URL         string         `db:"url"`
	Definitions pq.StringArray `db:"definitions"`
	NeedsReview bool           `db:"needs_review"`
	Deleted     bool           `db:"deleted"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r *wordRow) word() *lingua.Word {
	defs := []string(r.Definitions)
	if defs == nil {
		defs = []string{}
	}
	return &lingua.Word{
		ID:          r.ID,
		Alphabet:    r.Alphabet,
		Text:        r.Text,
		URL:         r.URL,
		Definitions: defs,
		NeedsReview: r.NeedsReview,
		Deleted:     r.Deleted,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

// WordService implements lingua.WordService using PostgreSQL.
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

	var id string
	err := s.db.db.QueryRowContext(ctx, `
		INSERT INTO words (id, alphabet, text, url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (alphabet, url) DO UPDATE SET deleted = FALSE
		RETURNING id
	`, uuid.New().String(), word.Alphabet, word.Text, word.URL).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to add link: %w", err)
	}

	return id, nil
}

// FindWordByID retrieves a word by ID.
func (s *WordService) FindWordByID(ctx context.Context, id string) (*lingua.Word, error) {
	var row wordRow
	err := s.db.db.GetContext(ctx, &row, "SELECT "+wordColumns+" FROM words WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, lingua.Errorf(lingua.ENOTFOUND, "word not found")
	}
	if err != nil {
		return nil, err
	}
	return row.word(), nil
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
		args = append(args, *filter.NeedsReview)
	}
	if filter.MissingDefinitions {
		query.WriteString(" AND cardinality(definitions) = 0")
	}
	if !filter.IncludeDeleted {
		query.WriteString(" AND NOT deleted")
	}

	query.WriteString(" ORDER BY seq")
	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	var rows []wordRow
	if err := s.db.db.SelectContext(ctx, &rows, s.db.db.Rebind(query.String()), args...); err != nil {
		return nil, err
	}

	words := make([]*lingua.Word, 0, len(rows))
	for i := range rows {
		words = append(words, rows[i].word())
	}
	return words, nil
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
	if word.Definitions == nil {
		word.Definitions = []string{}
	}

	if err := word.Validate(); err != nil {
		return nil, err
	}

	err = s.db.db.QueryRowContext(ctx, `
		UPDATE words
		SET text = $1, definitions = $2, needs_review = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at
	`, word.Text, pq.Array(word.Definitions), word.NeedsReview, id).Scan(&word.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update word: %w", err)
	}
	word.UpdatedAt = word.UpdatedAt.UTC()

	return word, nil
}
