// Package midi provides ordered, timestamped MIDI event buffers for block
// processing. Timestamps are seconds relative to the start of the current
// block.
package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"
)

// Event is a MIDI message with a block-relative timestamp in seconds.
type Event struct {
	Time    float64
	Message gomidi.Message
}

// Buffer is a time-ordered sequence of events. All mutating operations keep
// the sequence sorted by timestamp, with equal timestamps preserving
// insertion order.
type Buffer struct {
	events []Event
}

// NewBuffer returns an empty buffer with storage for capacity events.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{events: make([]Event, 0, capacity)}
}

// Len returns the number of events in the buffer.
func (b *Buffer) Len() int {
	return len(b.events)
}

// Events returns the underlying event slice, ordered by timestamp. The slice
// is valid until the next mutating call.
func (b *Buffer) Events() []Event {
	return b.events
}

// Clear removes all events, keeping the storage.
func (b *Buffer) Clear() {
	b.events = b.events[:0]
}

// Add inserts an event at its timestamp-ordered position.
//
// TODO: Add reallocates once the initial capacity is exceeded; a fixed-size
// event store would make heavy-MIDI blocks fully allocation-free.
func (b *Buffer) Add(e Event) {
	b.events = append(b.events, e)
	// Events arrive nearly sorted, so a backward scan settles immediately in
	// the common case.
	for i := len(b.events) - 1; i > 0 && b.events[i-1].Time > b.events[i].Time; i-- {
		b.events[i-1], b.events[i] = b.events[i], b.events[i-1]
	}
}

// CopyFrom replaces the buffer's contents with the events of source.
func (b *Buffer) CopyFrom(source *Buffer) {
	b.events = append(b.events[:0], source.events...)
}

// MergeFrom inserts all events of source at their timestamp-ordered
// positions.
func (b *Buffer) MergeFrom(source *Buffer) {
	for _, e := range source.events {
		b.Add(e)
	}
}

// MergeFromWithOffset inserts all events of source with their timestamps
// shifted forward by offset seconds.
func (b *Buffer) MergeFromWithOffset(source *Buffer, offset float64) {
	for _, e := range source.events {
		b.Add(Event{Time: e.Time + offset, Message: e.Message})
	}
}

// ShiftTimes adds delta seconds to every timestamp in the buffer.
func (b *Buffer) ShiftTimes(delta float64) {
	for i := range b.events {
		b.events[i].Time += delta
	}
}

// PartitionInto moves every event with a timestamp at or before limit into
// destination and keeps the rest, preserving order on both sides. It returns
// the number of events moved.
func (b *Buffer) PartitionInto(destination *Buffer, limit float64) int {
	kept := b.events[:0]
	moved := 0
	for _, e := range b.events {
		if e.Time <= limit {
			destination.Add(e)
			moved++
		} else {
			kept = append(kept, e)
		}
	}
	b.events = kept
	return moved
}
