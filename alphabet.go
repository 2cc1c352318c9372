package lingua

import "context"

// MinAlphabets is the number of letter sections a complete index holds
// at least. Fewer recorded alphabets means discovery never finished.
const MinAlphabets = 50

// Alphabet is a letter section of the dictionary index.
type Alphabet struct {
	Letter  string `json:"letter"`
	URL     string `json:"url"`
	Deleted bool   `json:"deleted"`
}

// Validate returns an error if the alphabet contains invalid fields.
func (a *Alphabet) Validate() error {
	if a.Letter == "" {
		return Errorf(EINVALID, "alphabet letter required")
	}
	if a.URL == "" {
		return Errorf(EINVALID, "alphabet URL required")
	}
	return nil
}

// AlphabetService represents a service for managing letter sections.
type AlphabetService interface {
	// UpsertAlphabet creates the alphabet or updates its URL.
	// Upserting a soft-deleted alphabet restores it.
	UpsertAlphabet(ctx context.Context, alphabet *Alphabet) error

	// FindAlphabets retrieves alphabets matching the filter in discovery order.
	FindAlphabets(ctx context.Context, filter AlphabetFilter) ([]*Alphabet, error)

	// SoftDeleteAlphabets marks every active alphabet and its words deleted.
	// Returns the number of alphabets affected.
	SoftDeleteAlphabets(ctx context.Context) (int, error)
}

// AlphabetFilter represents a filter for FindAlphabets.
type AlphabetFilter struct {
	Letter         *string `json:"letter"`
	IncludeDeleted bool    `json:"includeDeleted"`
}
