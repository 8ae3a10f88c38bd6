package dom

import "github.com/jonathan/formfill-agent/internal/types"

// FromHandle recovers the concrete goquery-backed element from a field's
// handle. Returns false for fake handles injected by tests.
func FromHandle(h types.ElementHandle) (*Element, bool) {
	el, ok := h.(*Element)
	return el, ok
}
