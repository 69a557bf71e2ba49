package preview

import (
	"context"
	"sync"
)

const (
	ImageMinZoom = 0.1
	ImageMaxZoom = 5.0
)

type ImageStrategy struct {
	fetcher Fetcher
	url     string

	locker sync.Mutex
	zoom   float64
}

func newImageStrategy(fetcher Fetcher, url string) *ImageStrategy {
	return &ImageStrategy{
		fetcher: fetcher,
		url:     url,
	}
}

func (i *ImageStrategy) Kind() Kind {
	return KindImage
}

func (i *ImageStrategy) Load(ctx context.Context) error {
	if err := i.fetcher.Fetch(ctx, i.url); err != nil {
		return err
	}

	i.locker.Lock()
	defer i.locker.Unlock()
	i.zoom = 1.0
	return nil
}

func (i *ImageStrategy) ZoomIn() {
	i.locker.Lock()
	defer i.locker.Unlock()
	i.zoom = clampZoom(i.zoom+zoomStep, ImageMinZoom, ImageMaxZoom)
}

func (i *ImageStrategy) ZoomOut() {
	i.locker.Lock()
	defer i.locker.Unlock()
	i.zoom = clampZoom(i.zoom-zoomStep, ImageMinZoom, ImageMaxZoom)
}

func (i *ImageStrategy) ResetZoom() {
	i.locker.Lock()
	defer i.locker.Unlock()
	i.zoom = 1.0
}

func (i *ImageStrategy) Zoom() float64 {
	i.locker.Lock()
	defer i.locker.Unlock()
	return i.zoom
}

func (i *ImageStrategy) Render() View {
	i.locker.Lock()
	defer i.locker.Unlock()

	return View{
		Kind: KindImage,
		URL:  i.url,
		Zoom: i.zoom,
	}
}
