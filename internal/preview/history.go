package preview

import "github.com/emberlog/ember/core"

// history keeps the most recent events in a fixed-size ring, so a live
// preview never grows without bound.
type history struct {
	ring  []core.Event
	idx   int
	count int
}

func newHistory(capacity int) *history {
	if capacity <= 0 {
		capacity = 1
	}
	return &history{ring: make([]core.Event, capacity)}
}

// append adds one event, evicting the oldest when the ring is full.
func (h *history) append(ev core.Event) {
	h.ring[h.idx] = ev
	h.idx = (h.idx + 1) % len(h.ring)
	if h.count < len(h.ring) {
		h.count++
	}
}

// all returns the retained events, oldest first.
func (h *history) all() []core.Event {
	out := make([]core.Event, h.count)
	if h.count == len(h.ring) {
		for i := 0; i < h.count; i++ {
			out[i] = h.ring[(h.idx+i)%len(h.ring)]
		}
		return out
	}
	copy(out, h.ring[:h.count])
	return out
}
