package preview

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/apper-canvas/dropzone-mesh-link/internal/services/repository"
)

type Kind string

const (
	KindPDF      Kind = "pdf"
	KindVideo    Kind = "video"
	KindImage    Kind = "image"
	KindDocument Kind = "document"
	KindOther    Kind = "other"
)

var (
	ErrNoFile = errors.New("no file")
)

var documentMarkers = []string{"word", "doc", "excel", "sheet", "powerpoint", "presentation"}

// Classify picks the preview strategy for a declared media type. The order
// is load-bearing: the document match is coarse, so pdf is checked first.
func Classify(mediaType string) Kind {
	t := strings.ToLower(mediaType)

	switch {
	case strings.Contains(t, "pdf"):
		return KindPDF
	case strings.HasPrefix(t, "video/"):
		return KindVideo
	case strings.HasPrefix(t, "image/"):
		return KindImage
	}

	for _, marker := range documentMarkers {
		if strings.Contains(t, marker) {
			return KindDocument
		}
	}
	return KindOther
}

// View is a pure description of what the preview surface should display.
type View struct {
	Kind        Kind    `json:"kind"`
	Name        string  `json:"name,omitempty"`
	URL         string  `json:"url,omitempty"`
	Failed      bool    `json:"failed,omitempty"`
	Error       string  `json:"error,omitempty"`
	DownloadURL string  `json:"downloadUrl,omitempty"`
	Page        int     `json:"page,omitempty"`
	NumPages    int     `json:"numPages,omitempty"`
	Zoom        float64 `json:"zoom,omitempty"`
	CanPrevPage bool    `json:"canPrevPage,omitempty"`
	CanNextPage bool    `json:"canNextPage,omitempty"`
	Search      string  `json:"search,omitempty"`
	Fullscreen  bool    `json:"fullscreen,omitempty"`
	ViewerURL   string  `json:"viewerUrl,omitempty"`
}

// Strategy is one format's preview behavior: a single load, then pure
// rendering over local state.
type Strategy interface {
	Kind() Kind
	Load(ctx context.Context) error
	Render() View
}

// Dispatcher selects exactly one strategy per file and scopes the keyboard
// bindings to the resulting session.
type Dispatcher interface {
	Open(ctx context.Context, file *repository.FileRecord) (*Session, error)
}

func New(fetcher Fetcher, keymap *Keymap, log *zap.SugaredLogger) Dispatcher {
	return &dispatcher{
		fetcher: fetcher,
		keymap:  keymap,
		log:     log,
	}
}

type dispatcher struct {
	fetcher Fetcher
	keymap  *Keymap
	log     *zap.SugaredLogger
}

func (d *dispatcher) Open(ctx context.Context, file *repository.FileRecord) (*Session, error) {
	if file == nil {
		return nil, ErrNoFile
	}

	var strategy Strategy
	switch Classify(file.Type) {
	case KindPDF:
		strategy = newPDFStrategy(d.fetcher, file.URL)
	case KindVideo:
		strategy = newVideoStrategy(d.fetcher, file.URL)
	case KindImage:
		strategy = newImageStrategy(d.fetcher, file.URL)
	case KindDocument:
		strategy = newDocumentStrategy(d.fetcher, file.URL)
	default:
		strategy = newOtherStrategy(file.URL)
	}

	session := &Session{
		file:     file,
		strategy: strategy,
		keymap:   d.keymap,
	}

	if err := strategy.Load(ctx); err != nil {
		session.loadErr = err
		d.log.With("err", err, "file", file.Name).Warn("preview load failed")
	}

	session.bindKeys()

	return session, nil
}
