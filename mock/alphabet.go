package mock

import (
	"context"

	"github.com/fwojciec/lingua"
)

var _ lingua.AlphabetService = (*AlphabetService)(nil)

// AlphabetService is a mock implementation of lingua.AlphabetService.
type AlphabetService struct {
	UpsertAlphabetFn      func(ctx context.Context, alphabet *lingua.Alphabet) error
	FindAlphabetsFn       func(ctx context.Context, filter lingua.AlphabetFilter) ([]*lingua.Alphabet, error)
	SoftDeleteAlphabetsFn func(ctx context.Context) (int, error)
}

func (s *AlphabetService) UpsertAlphabet(ctx context.Context, alphabet *lingua.Alphabet) error {
	return s.UpsertAlphabetFn(ctx, alphabet)
}

func (s *AlphabetService) FindAlphabets(ctx context.Context, filter lingua.AlphabetFilter) ([]*lingua.Alphabet, error) {
	return s.FindAlphabetsFn(ctx, filter)
}

func (s *AlphabetService) SoftDeleteAlphabets(ctx context.Context) (int, error) {
	return s.SoftDeleteAlphabetsFn(ctx)
}
