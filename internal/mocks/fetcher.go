package mocks

import (
	"context"
	"errors"
)

var ErrFetchRefused = errors.New("fetch refused")

// Fetcher serves preview loads from memory.
type Fetcher struct {
	NumPages int
	FailURLs map[string]struct{}

	Fetched []string
}

func (f *Fetcher) Fetch(ctx context.Context, url string) error {
	f.Fetched = append(f.Fetched, url)

	if _, ok := f.FailURLs[url]; ok {
		return ErrFetchRefused
	}
	return nil
}

func (f *Fetcher) FetchPDF(ctx context.Context, url string) (int, error) {
	if err := f.Fetch(ctx, url); err != nil {
		return 0, err
	}

	if f.NumPages == 0 {
		return 1, nil
	}
	return f.NumPages, nil
}
