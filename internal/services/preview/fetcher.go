package preview

import (
	"context"
	"regexp"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

var (
	ErrFetchFailed = errors.New("fetch failed")
)

// Fetcher retrieves preview assets. PDF fetches additionally resolve the
// document's page count.
type Fetcher interface {
	Fetch(ctx context.Context, url string) error
	FetchPDF(ctx context.Context, url string) (int, error)
}

// Matches page objects without the parent /Pages node. A heuristic, but
// enough for well-formed documents.
var pdfPageRe = regexp.MustCompile(`/Type\s*/Page[^s]`)

type restyFetcher struct {
	client *resty.Client
}

func NewFetcher() Fetcher {
	return &restyFetcher{
		client: resty.New().SetTimeout(time.Second * 30),
	}
}

func (f *restyFetcher) Fetch(ctx context.Context, url string) error {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return errors.Wrap(ErrFetchFailed, err.Error())
	}
	if resp.IsError() {
		return errors.Wrapf(ErrFetchFailed, "status %d", resp.StatusCode())
	}
	return nil
}

func (f *restyFetcher) FetchPDF(ctx context.Context, url string) (int, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return 0, errors.Wrap(ErrFetchFailed, err.Error())
	}
	if resp.IsError() {
		return 0, errors.Wrapf(ErrFetchFailed, "status %d", resp.StatusCode())
	}

	numPages := len(pdfPageRe.FindAll(resp.Body(), -1))
	if numPages == 0 {
		return 0, errors.Wrap(ErrFetchFailed, "no pages found")
	}
	return numPages, nil
}
