package preview

import (
	"sync"

	"github.com/apper-canvas/dropzone-mesh-link/internal/services/repository"
)

// Session is one open preview: a strategy plus the keyboard bindings scoped
// to it.
type Session struct {
	file     *repository.FileRecord
	strategy Strategy
	loadErr  error
	keymap   *Keymap

	locker sync.Mutex
	bound  []Key
	closed bool
}

func (s *Session) File() *repository.FileRecord {
	return s.file
}

func (s *Session) Strategy() Strategy {
	return s.strategy
}

func (s *Session) PDF() (*PDFStrategy, bool) {
	pdf, ok := s.strategy.(*PDFStrategy)
	return pdf, ok
}

func (s *Session) Image() (*ImageStrategy, bool) {
	img, ok := s.strategy.(*ImageStrategy)
	return img, ok
}

// View falls back to a download offer whenever the load failed; a preview
// never resolves to a blank pane.
func (s *Session) View() View {
	if s.loadErr != nil {
		return View{
			Kind:        s.strategy.Kind(),
			Name:        s.file.Name,
			Failed:      true,
			Error:       s.loadErr.Error(),
			DownloadURL: s.file.URL,
		}
	}

	view := s.strategy.Render()
	view.Name = s.file.Name
	return view
}

func (s *Session) bindKeys() {
	s.bind(KeyEscape, func() { s.Close() })

	if pdf, ok := s.PDF(); ok && s.loadErr == nil {
		s.bind(KeyArrowLeft, pdf.PrevPage)
		s.bind(KeyArrowRight, pdf.NextPage)
	}
}

func (s *Session) bind(key Key, fn func()) {
	s.locker.Lock()
	defer s.locker.Unlock()

	s.keymap.Bind(key, fn)
	s.bound = append(s.bound, key)
}

// Close releases every key this session bound. Closing twice is a no-op.
func (s *Session) Close() {
	s.locker.Lock()
	defer s.locker.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	for _, key := range s.bound {
		s.keymap.Unbind(key)
	}
	s.bound = nil
}

func (s *Session) Closed() bool {
	s.locker.Lock()
	defer s.locker.Unlock()
	return s.closed
}
