package store

import "sync"

// hub fans collection-change signals out to live subscribers. Teardown via
// the returned unsubscribe func; a torn-down subscriber is never called
// again.
type hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[Collection]map[int]func()
}

func newHub() *hub {
	return &hub{subs: make(map[Collection]map[int]func())}
}

func (h *hub) subscribe(col Collection, fn func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[col] == nil {
		h.subs[col] = make(map[int]func())
	}
	id := h.nextID
	h.nextID++
	h.subs[col][id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[col], id)
	}
}

func (h *hub) notify(col Collection) {
	h.mu.Lock()
	fns := make([]func(), 0, len(h.subs[col]))
	for _, fn := range h.subs[col] {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
