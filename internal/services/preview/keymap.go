package preview

import "sync"

type Key string

const (
	KeyEscape     Key = "escape"
	KeyArrowLeft  Key = "arrow-left"
	KeyArrowRight Key = "arrow-right"
)

// Keymap is the shared keyboard registry. Sessions bind keys while open and
// release them on close; nothing stays bound after the owning session ends.
type Keymap struct {
	locker   sync.Mutex
	bindings map[Key]func()
}

func NewKeymap() *Keymap {
	return &Keymap{
		bindings: make(map[Key]func()),
	}
}

func (k *Keymap) Bind(key Key, fn func()) {
	k.locker.Lock()
	defer k.locker.Unlock()
	k.bindings[key] = fn
}

func (k *Keymap) Unbind(key Key) {
	k.locker.Lock()
	defer k.locker.Unlock()
	delete(k.bindings, key)
}

func (k *Keymap) Bound(key Key) bool {
	k.locker.Lock()
	defer k.locker.Unlock()
	_, ok := k.bindings[key]
	return ok
}

// Press invokes the binding for key, if any, and reports whether one fired.
func (k *Keymap) Press(key Key) bool {
	k.locker.Lock()
	fn, ok := k.bindings[key]
	k.locker.Unlock()

	if !ok {
		return false
	}
	fn()
	return true
}
