package preview

import (
	"context"
	"sync"
)

type VideoStrategy struct {
	fetcher Fetcher
	url     string

	locker     sync.Mutex
	fullscreen bool
}

func newVideoStrategy(fetcher Fetcher, url string) *VideoStrategy {
	return &VideoStrategy{
		fetcher: fetcher,
		url:     url,
	}
}

func (v *VideoStrategy) Kind() Kind {
	return KindVideo
}

func (v *VideoStrategy) Load(ctx context.Context) error {
	return v.fetcher.Fetch(ctx, v.url)
}

func (v *VideoStrategy) ToggleFullscreen() {
	v.locker.Lock()
	defer v.locker.Unlock()
	v.fullscreen = !v.fullscreen
}

func (v *VideoStrategy) Render() View {
	v.locker.Lock()
	defer v.locker.Unlock()

	return View{
		Kind:       KindVideo,
		URL:        v.url,
		Fullscreen: v.fullscreen,
	}
}
