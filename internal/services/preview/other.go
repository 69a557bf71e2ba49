package preview

import "context"

// OtherStrategy never attempts a load; it immediately offers a download.
type OtherStrategy struct {
	url string
}

func newOtherStrategy(url string) *OtherStrategy {
	return &OtherStrategy{url: url}
}

func (o *OtherStrategy) Kind() Kind {
	return KindOther
}

func (o *OtherStrategy) Load(ctx context.Context) error {
	return nil
}

func (o *OtherStrategy) Render() View {
	return View{
		Kind:        KindOther,
		URL:         o.url,
		DownloadURL: o.url,
	}
}
