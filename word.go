package lingua

import (
	"context"
	"strings"
	"time"
)

// Word is a dictionary entry discovered in a letter section.
type Word struct {
	ID          string    `json:"id"`
	Alphabet    string    `json:"alphabet"`
	Text        string    `json:"text"`
	URL         string    `json:"url"`
	Definitions []string  `json:"definitions"`
	NeedsReview bool      `json:"needsReview"`
	Deleted     bool      `json:"deleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate returns an error if the word contains invalid fields.
func (w *Word) Validate() error {
	if w.Alphabet == "" {
		return Errorf(EINVALID, "word alphabet required")
	}
	if w.URL == "" {
		return Errorf(EINVALID, "word URL required")
	}
	if w.Text == "" {
		return Errorf(EINVALID, "word text required")
	}
	return nil
}

// WordStore is the append-only view of the word table used by crawls.
type WordStore interface {
	// AddLink records a word URL under an alphabet and returns its ID.
	// Calling it again with the same pair returns the existing ID.
	AddLink(ctx context.Context, alphabet, url string) (string, error)
}

// WordService represents a service for managing words.
type WordService interface {
	WordStore

	// FindWordByID retrieves a word by ID.
	// Returns ENOTFOUND if the word does not exist.
	FindWordByID(ctx context.Context, id string) (*Word, error)

	// FindWords retrieves words matching the filter, oldest first.
	FindWords(ctx context.Context, filter WordFilter) ([]*Word, error)

	// UpdateWord updates an existing word.
	// Returns ENOTFOUND if the word does not exist.
	UpdateWord(ctx context.Context, id string, upd WordUpdate) (*Word, error)
}

// WordFilter represents a filter for FindWords.
// Soft-deleted words are excluded unless IncludeDeleted is set.
type WordFilter struct {
	ID          *string `json:"id"`
	Alphabet    *string `json:"alphabet"`
	NeedsReview *bool   `json:"needsReview"`

	// MissingDefinitions limits results to words with no definitions.
	MissingDefinitions bool `json:"missingDefinitions"`
	IncludeDeleted     bool `json:"includeDeleted"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// WordUpdate represents fields that can be updated on a word.
type WordUpdate struct {
	Text        *string   `json:"text"`
	Definitions *[]string `json:"definitions"`
	NeedsReview *bool     `json:"needsReview"`
}

// WordText derives the display text of a word from its entry URL.
// Underscores in the title segment become spaces.
func WordText(rawURL string) string {
	return strings.ReplaceAll(GroupingKey(rawURL), "_", " ")
}
