package dom

import "sync"

// Event is one notification dispatched after a successful field write, so
// host-page logic (validation, reactive frameworks) can observe the update.
type Event struct {
	Target *Element
	Type   string
}

// EventSink receives the input/change notifications emitted by the fill
// executor. The host-messaging layer forwards them into the page context.
type EventSink interface {
	Dispatch(target *Element, eventType string)
}

// RecordingSink collects dispatched events in memory. It is the default sink
// and the one tests assert against.
type RecordingSink struct {
	mu     sync.Mutex
	events []Event
}

// Dispatch records the event.
func (s *RecordingSink) Dispatch(target *Element, eventType string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, Event{Target: target, Type: eventType})
}

// Events returns a copy of everything dispatched so far.
func (s *RecordingSink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

// DiscardSink drops all notifications.
type DiscardSink struct{}

// Dispatch does nothing.
func (DiscardSink) Dispatch(*Element, string) {}
