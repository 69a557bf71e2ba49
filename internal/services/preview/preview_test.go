package preview_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/apper-canvas/dropzone-mesh-link/internal/mocks"
	"github.com/apper-canvas/dropzone-mesh-link/internal/services/preview"
	"github.com/apper-canvas/dropzone-mesh-link/internal/services/repository"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		mediaType string
		expected  preview.Kind
	}{
		{"application/pdf", preview.KindPDF},
		{"application/x-pdf", preview.KindPDF},
		{"video/mp4", preview.KindVideo},
		{"video/x-matroska", preview.KindVideo},
		{"image/png", preview.KindImage},
		{"image/jpeg", preview.KindImage},
		{"application/msword", preview.KindDocument},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", preview.KindDocument},
		{"application/vnd.ms-excel", preview.KindDocument},
		{"application/vnd.ms-powerpoint", preview.KindDocument},
		{"application/vnd.oasis.opendocument.presentation", preview.KindDocument},
		{"application/zip", preview.KindOther},
		{"text/plain", preview.KindOther},
		{"", preview.KindOther},
	}

	for _, c := range cases {
		require.Equal(t, c.expected, preview.Classify(c.mediaType), c.mediaType)
	}
}

func newDispatcher(fetcher preview.Fetcher) (preview.Dispatcher, *preview.Keymap) {
	keymap := preview.NewKeymap()
	return preview.New(fetcher, keymap, zap.NewNop().Sugar()), keymap
}

func pdfFile() *repository.FileRecord {
	return &repository.FileRecord{
		ID:   "pdf-1",
		Name: "manual.pdf",
		Type: "application/pdf",
		URL:  "https://files.local/manual.pdf",
	}
}

func TestPDFPageNavigation(t *testing.T) {
	ctx := context.Background()
	d, _ := newDispatcher(&mocks.Fetcher{NumPages: 5})

	session, err := d.Open(ctx, pdfFile())
	require.NoError(t, err)
	defer session.Close()

	pdf, ok := session.PDF()
	require.True(t, ok)
	require.Equal(t, 5, pdf.NumPages())
	require.Equal(t, 1, pdf.Page())

	// Decrement at page 1 is a no-op.
	pdf.PrevPage()
	require.Equal(t, 1, pdf.Page())

	for i := 0; i < 4; i++ {
		pdf.NextPage()
	}
	require.Equal(t, 5, pdf.Page())

	// Increment at the last page is a no-op.
	pdf.NextPage()
	require.Equal(t, 5, pdf.Page())

	view := session.View()
	require.True(t, view.CanPrevPage)
	require.False(t, view.CanNextPage)
}

func TestPDFZoomClamps(t *testing.T) {
	ctx := context.Background()
	d, _ := newDispatcher(&mocks.Fetcher{NumPages: 2})

	session, err := d.Open(ctx, pdfFile())
	require.NoError(t, err)
	defer session.Close()

	pdf, _ := session.PDF()
	require.Equal(t, 1.0, pdf.Zoom())

	for i := 0; i < 30; i++ {
		pdf.ZoomOut()
	}
	require.Equal(t, preview.PDFMinZoom, pdf.Zoom())

	for i := 0; i < 50; i++ {
		pdf.ZoomIn()
	}
	require.Equal(t, preview.PDFMaxZoom, pdf.Zoom())
}

func TestImageZoomClamps(t *testing.T) {
	ctx := context.Background()
	d, _ := newDispatcher(&mocks.Fetcher{})

	session, err := d.Open(ctx, &repository.FileRecord{
		ID:   "img-1",
		Name: "photo.png",
		Type: "image/png",
		URL:  "https://files.local/photo.png",
	})
	require.NoError(t, err)
	defer session.Close()

	img, ok := session.Image()
	require.True(t, ok)

	for i := 0; i < 20; i++ {
		img.ZoomOut()
	}
	require.Equal(t, preview.ImageMinZoom, img.Zoom())

	for i := 0; i < 60; i++ {
		img.ZoomIn()
	}
	require.Equal(t, preview.ImageMaxZoom, img.Zoom())

	img.ResetZoom()
	require.Equal(t, 1.0, img.Zoom())
}

func TestLoadFailureFallsBackToDownloadOffer(t *testing.T) {
	ctx := context.Background()
	file := pdfFile()
	d, _ := newDispatcher(&mocks.Fetcher{
		FailURLs: map[string]struct{}{file.URL: {}},
	})

	session, err := d.Open(ctx, file)
	require.NoError(t, err)
	defer session.Close()

	view := session.View()
	require.True(t, view.Failed)
	require.NotEmpty(t, view.Error)
	require.Equal(t, file.URL, view.DownloadURL)
}

func TestOtherStrategyNeverLoads(t *testing.T) {
	ctx := context.Background()
	fetcher := &mocks.Fetcher{}
	d, _ := newDispatcher(fetcher)

	session, err := d.Open(ctx, &repository.FileRecord{
		ID:   "bin-1",
		Name: "data.bin",
		Type: "application/octet-stream",
		URL:  "https://files.local/data.bin",
	})
	require.NoError(t, err)
	defer session.Close()

	require.Empty(t, fetcher.Fetched)

	view := session.View()
	require.Equal(t, preview.KindOther, view.Kind)
	require.Equal(t, "https://files.local/data.bin", view.DownloadURL)
}

func TestDocumentStrategyUsesExternalViewer(t *testing.T) {
	ctx := context.Background()
	fetcher := &mocks.Fetcher{}
	d, _ := newDispatcher(fetcher)

	session, err := d.Open(ctx, &repository.FileRecord{
		ID:   "doc-1",
		Name: "budget.xlsx",
		Type: "application/vnd.ms-excel",
		URL:  "https://files.local/budget.xlsx",
	})
	require.NoError(t, err)
	defer session.Close()

	view := session.View()
	require.Equal(t, preview.KindDocument, view.Kind)
	require.Contains(t, view.ViewerURL, "docs.google.com/viewer")
	require.Len(t, fetcher.Fetched, 1)
	require.Equal(t, view.ViewerURL, fetcher.Fetched[0])
}

func TestKeyboardBindingsAreScopedToSession(t *testing.T) {
	ctx := context.Background()
	d, keymap := newDispatcher(&mocks.Fetcher{NumPages: 3})

	session, err := d.Open(ctx, pdfFile())
	require.NoError(t, err)

	require.True(t, keymap.Bound(preview.KeyEscape))
	require.True(t, keymap.Bound(preview.KeyArrowLeft))
	require.True(t, keymap.Bound(preview.KeyArrowRight))

	pdf, _ := session.PDF()
	keymap.Press(preview.KeyArrowRight)
	keymap.Press(preview.KeyArrowRight)
	require.Equal(t, 3, pdf.Page())

	keymap.Press(preview.KeyArrowLeft)
	require.Equal(t, 2, pdf.Page())

	keymap.Press(preview.KeyEscape)
	require.True(t, session.Closed())
	require.False(t, keymap.Bound(preview.KeyEscape))
	require.False(t, keymap.Bound(preview.KeyArrowLeft))
	require.False(t, keymap.Bound(preview.KeyArrowRight))

	// Re-closing is a no-op.
	session.Close()
	require.False(t, keymap.Press(preview.KeyArrowRight))
	require.Equal(t, 2, pdf.Page())
}

func TestNonPDFSessionBindsOnlyEscape(t *testing.T) {
	ctx := context.Background()
	d, keymap := newDispatcher(&mocks.Fetcher{})

	session, err := d.Open(ctx, &repository.FileRecord{
		ID:   "vid-1",
		Name: "clip.mp4",
		Type: "video/mp4",
		URL:  "https://files.local/clip.mp4",
	})
	require.NoError(t, err)
	defer session.Close()

	require.True(t, keymap.Bound(preview.KeyEscape))
	require.False(t, keymap.Bound(preview.KeyArrowLeft))
	require.False(t, keymap.Bound(preview.KeyArrowRight))
}
