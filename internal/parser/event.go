// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package parser

import "fmt"

// EventKind identifies one of the four markup events the builder consumes.
type EventKind int

const (
	// EventStart is an opening tag with children to follow.
	EventStart EventKind = iota
	// EventEmpty is a self-closing tag.
	EventEmpty
	// EventEnd is a closing tag.
	EventEnd
	// EventEOF marks the end of the stream.
	EventEOF
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventEmpty:
		return "empty"
	case EventEnd:
		return "end"
	case EventEOF:
		return "eof"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is a single markup event in document order.
type Event struct {
	Kind  EventKind
	Name  string
	Attrs map[string]string
}

// Attr returns the named attribute and whether it was present.
func (e Event) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// Start builds an EventStart. attrs are name/value pairs.
func Start(name string, attrs ...string) Event {
	return Event{Kind: EventStart, Name: name, Attrs: pairs(attrs)}
}

// Empty builds an EventEmpty. attrs are name/value pairs.
func Empty(name string, attrs ...string) Event {
	return Event{Kind: EventEmpty, Name: name, Attrs: pairs(attrs)}
}

// End builds an EventEnd.
func End(name string) Event {
	return Event{Kind: EventEnd, Name: name}
}

func pairs(kv []string) map[string]string {
	if len(kv) == 0 {
		return nil
	}
	m := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	return m
}

// Source yields events in document order. After the last element it returns
// an EventEOF, and keeps doing so on further calls.
type Source interface {
	Next() (Event, error)
}

// SliceSource replays a fixed list of events.
type SliceSource struct {
	events []Event
	pos    int
}

// NewSliceSource returns a Source over events. A trailing EventEOF is implied.
func NewSliceSource(events ...Event) *SliceSource {
	return &SliceSource{events: events}
}

// Next implements Source.
func (s *SliceSource) Next() (Event, error) {
	if s.pos >= len(s.events) {
		return Event{Kind: EventEOF}, nil
	}
	e := s.events[s.pos]
	s.pos++
	return e, nil
}
