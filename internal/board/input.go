package board

// Listener receives pointer events dispatched through an InputHub.
type Listener func(PointerEvent)

// InputHub is the board-wide pointer event source. A drag session
// subscribes while it is active so it sees every move and release no
// matter which element the pointer is over.
type InputHub struct {
	nextID    int
	listeners map[int]Listener
	order     []int
}

// NewInputHub returns an empty hub.
func NewInputHub() *InputHub {
	return &InputHub{listeners: make(map[int]Listener)}
}

// Subscription is a registered listener. Release is idempotent.
type Subscription struct {
	hub *InputHub
	id  int
}

// Acquire registers l and returns its subscription.
func (h *InputHub) Acquire(l Listener) *Subscription {
	h.nextID++
	id := h.nextID
	h.listeners[id] = l
	h.order = append(h.order, id)
	return &Subscription{hub: h, id: id}
}

// Dispatch delivers ev to every listener in subscription order. Listeners
// may release themselves (or others) while being dispatched.
func (h *InputHub) Dispatch(ev PointerEvent) {
	ids := append([]int(nil), h.order...)
	for _, id := range ids {
		if l, ok := h.listeners[id]; ok {
			l(ev)
		}
	}
}

// Len returns the number of live subscriptions.
func (h *InputHub) Len() int { return len(h.listeners) }

// Release unregisters the listener.
func (s *Subscription) Release() {
	if s == nil || s.hub == nil {
		return
	}
	h := s.hub
	s.hub = nil
	delete(h.listeners, s.id)
	for i, id := range h.order {
		if id == s.id {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}
