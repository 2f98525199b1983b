package graph

import "github.com/thomas-dumonet/tracktion-engine/signal"

// PlayHead supplies read-only transport state to nodes: whether the
// transport is playing and how a reference sample range maps onto the
// timeline.
type PlayHead interface {
	IsPlaying() bool
	Split(reference signal.SampleRange) SplitTimelineRange
}

// SplitTimelineRange is the timeline image of one reference block. Second is
// non-empty only when the block wraps a loop boundary and the span splits in
// two.
type SplitTimelineRange struct {
	First  signal.SampleRange
	Second signal.SampleRange
}

// PlayHeadState is a simple transport: linear playback from a seekable
// position, with optional looping. It implements PlayHead.
type PlayHeadState struct {
	playing bool
	offset  int64
	loop    signal.SampleRange
	looping bool
}

// NewPlayHead returns a playhead in the playing state at timeline position
// zero.
func NewPlayHead() *PlayHeadState {
	return &PlayHeadState{playing: true}
}

// Play starts the transport.
func (p *PlayHeadState) Play() { p.playing = true }

// Stop stops the transport. Nodes keep producing passthrough output while
// stopped.
func (p *PlayHeadState) Stop() { p.playing = false }

// IsPlaying reports whether the transport is playing.
func (p *PlayHeadState) IsPlaying() bool { return p.playing }

// SetPosition aligns the timeline so that the given reference sample maps to
// the given timeline sample.
func (p *PlayHeadState) SetPosition(reference, timeline int64) {
	p.offset = timeline - reference
}

// SetLoop makes playback wrap inside the given timeline range. An empty
// range disables looping.
func (p *PlayHeadState) SetLoop(r signal.SampleRange) {
	p.loop = r
	p.looping = !r.Empty()
}

// Split maps a reference sample range onto the timeline. With looping
// enabled a block crossing the loop end comes back split in two.
func (p *PlayHeadState) Split(reference signal.SampleRange) SplitTimelineRange {
	timeline := signal.Range(reference.Start+p.offset, reference.End+p.offset)
	if !p.looping {
		return SplitTimelineRange{First: timeline}
	}

	length := p.loop.Length()
	rel := (timeline.Start - p.loop.Start) % length
	if rel < 0 {
		rel += length
	}
	start := p.loop.Start + rel
	end := start + timeline.Length()
	if end <= p.loop.End {
		return SplitTimelineRange{First: signal.Range(start, end)}
	}
	return SplitTimelineRange{
		First:  signal.Range(start, p.loop.End),
		Second: signal.Range(p.loop.Start, p.loop.Start+end-p.loop.End),
	}
}
