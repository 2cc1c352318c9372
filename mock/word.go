package mock

import (
	"context"

	"github.com/fwojciec/lingua"
)

var (
	_ lingua.WordStore   = (*WordStore)(nil)
	_ lingua.WordService = (*WordService)(nil)
)

// WordStore is a mock implementation of lingua.WordStore.
type WordStore struct {
	AddLinkFn func(ctx context.Context, alphabet, url string) (string, error)
}

func (s *WordStore) AddLink(ctx context.Context, alphabet, url string) (string, error) {
	return s.AddLinkFn(ctx, alphabet, url)
}

// WordService is a mock implementation of lingua.WordService.
type WordService struct {
	AddLinkFn      func(ctx context.Context, alphabet, url string) (string, error)
	FindWordByIDFn func(ctx context.Context, id string) (*lingua.Word, error)
	FindWordsFn    func(ctx context.Context, filter lingua.WordFilter) ([]*lingua.Word, error)
	UpdateWordFn   func(ctx context.Context, id string, upd lingua.WordUpdate) (*lingua.Word, error)
}

func (s *WordService) AddLink(ctx context.Context, alphabet, url string) (string, error) {
	return s.AddLinkFn(ctx, alphabet, url)
}

func (s *WordService) FindWordByID(ctx context.Context, id string) (*lingua.Word, error) {
	return s.FindWordByIDFn(ctx, id)
}

func (s *WordService) FindWords(ctx context.Context, filter lingua.WordFilter) ([]*lingua.Word, error) {
	return s.FindWordsFn(ctx, filter)
}

func (s *WordService) UpdateWord(ctx context.Context, id string, upd lingua.WordUpdate) (*lingua.Word, error) {
	return s.UpdateWordFn(ctx, id, upd)
}
