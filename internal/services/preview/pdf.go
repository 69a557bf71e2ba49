package preview

import (
	"context"
	"math"
	"sync"
)

const (
	PDFMinZoom = 0.5
	PDFMaxZoom = 3.0

	zoomStep = 0.1
)

// PDFStrategy renders one page at a time with clamped page and zoom state.
type PDFStrategy struct {
	fetcher Fetcher
	url     string

	locker   sync.Mutex
	numPages int
	page     int
	zoom     float64
	search   string
}

func newPDFStrategy(fetcher Fetcher, url string) *PDFStrategy {
	return &PDFStrategy{
		fetcher: fetcher,
		url:     url,
	}
}

func (p *PDFStrategy) Kind() Kind {
	return KindPDF
}

func (p *PDFStrategy) Load(ctx context.Context) error {
	numPages, err := p.fetcher.FetchPDF(ctx, p.url)
	if err != nil {
		return err
	}

	p.locker.Lock()
	defer p.locker.Unlock()
	p.numPages = numPages
	p.page = 1
	p.zoom = 1.0
	return nil
}

func (p *PDFStrategy) NumPages() int {
	p.locker.Lock()
	defer p.locker.Unlock()
	return p.numPages
}

func (p *PDFStrategy) Page() int {
	p.locker.Lock()
	defer p.locker.Unlock()
	return p.page
}

// NextPage is a no-op at the last page.
func (p *PDFStrategy) NextPage() {
	p.locker.Lock()
	defer p.locker.Unlock()
	if p.page < p.numPages {
		p.page++
	}
}

// PrevPage is a no-op at page 1.
func (p *PDFStrategy) PrevPage() {
	p.locker.Lock()
	defer p.locker.Unlock()
	if p.page > 1 {
		p.page--
	}
}

func (p *PDFStrategy) ZoomIn() {
	p.locker.Lock()
	defer p.locker.Unlock()
	p.zoom = clampZoom(p.zoom+zoomStep, PDFMinZoom, PDFMaxZoom)
}

func (p *PDFStrategy) ZoomOut() {
	p.locker.Lock()
	defer p.locker.Unlock()
	p.zoom = clampZoom(p.zoom-zoomStep, PDFMinZoom, PDFMaxZoom)
}

func (p *PDFStrategy) Zoom() float64 {
	p.locker.Lock()
	defer p.locker.Unlock()
	return p.zoom
}

func (p *PDFStrategy) SetSearch(term string) {
	p.locker.Lock()
	defer p.locker.Unlock()
	p.search = term
}

func (p *PDFStrategy) Render() View {
	p.locker.Lock()
	defer p.locker.Unlock()

	return View{
		Kind:        KindPDF,
		URL:         p.url,
		Page:        p.page,
		NumPages:    p.numPages,
		Zoom:        p.zoom,
		CanPrevPage: p.page > 1,
		CanNextPage: p.page < p.numPages,
		Search:      p.search,
	}
}

// clampZoom keeps zoom on the 10% grid so repeated steps land exactly on
// the boundaries.
func clampZoom(zoom, min, max float64) float64 {
	zoom = math.Round(zoom*10) / 10
	if zoom < min {
		return min
	}
	if zoom > max {
		return max
	}
	return zoom
}
