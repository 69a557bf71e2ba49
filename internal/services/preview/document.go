package preview

import (
	"context"
	"fmt"
	"net/url"
)

// DocumentStrategy embeds office documents through an external viewer.
type DocumentStrategy struct {
	fetcher   Fetcher
	url       string
	viewerURL string
}

func newDocumentStrategy(fetcher Fetcher, fileURL string) *DocumentStrategy {
	return &DocumentStrategy{
		fetcher:   fetcher,
		url:       fileURL,
		viewerURL: fmt.Sprintf("https://docs.google.com/viewer?url=%s&embedded=true", url.QueryEscape(fileURL)),
	}
}

func (d *DocumentStrategy) Kind() Kind {
	return KindDocument
}

func (d *DocumentStrategy) Load(ctx context.Context) error {
	return d.fetcher.Fetch(ctx, d.viewerURL)
}

func (d *DocumentStrategy) ViewerURL() string {
	return d.viewerURL
}

func (d *DocumentStrategy) Render() View {
	return View{
		Kind:      KindDocument,
		URL:       d.url,
		ViewerURL: d.viewerURL,
	}
}
