package graph

import (
	"github.com/thomas-dumonet/tracktion-engine/fade"
	"github.com/thomas-dumonet/tracktion-engine/signal"
)

// FadeInOutNode applies fade-in and fade-out amplitude envelopes to its
// input over fixed timeline ranges. The envelopes are anchored to the
// timeline, not to blocks: a block anywhere inside a fade gets exactly the
// amplitudes a single whole-range application would produce there.
type FadeInOutNode struct {
	Base
	input             Input
	playHead          PlayHead
	fadeIn, fadeOut   signal.TimeRange
	fadeInShape       fade.Shape
	fadeOutShape      fade.Shape
	clearExtraSamples bool

	fadeInRange  signal.SampleRange
	fadeOutRange signal.SampleRange
	ramp         []float64
}

// NewFadeInOut returns a fade node over input. At least one of the two fade
// time ranges must be non-empty. With clearExtraSamples set, samples before
// the fade-in and after the fade-out are cleared to silence instead of
// passing through.
func NewFadeInOut(input Input, playHead PlayHead, fadeIn, fadeOut signal.TimeRange, fadeInShape, fadeOutShape fade.Shape, clearExtraSamples bool) *FadeInOutNode {
	assertf(!(fadeIn.Empty() && fadeOut.Empty()), "fade: both fade ranges empty")
	return &FadeInOutNode{
		input:             input,
		playHead:          playHead,
		fadeIn:            fadeIn,
		fadeOut:           fadeOut,
		fadeInShape:       fadeInShape,
		fadeOutShape:      fadeOutShape,
		clearExtraSamples: clearExtraSamples,
	}
}

// Properties passes the input's properties through.
func (n *FadeInOutNode) Properties() NodeProperties {
	props := n.input.Node().Properties()
	props.NodeID = ""
	return props
}

func (n *FadeInOutNode) Inputs() []Node {
	return []Node{n.input.Node()}
}

func (n *FadeInOutNode) Ready() bool {
	return n.input.Node().HasProcessed()
}

// Prepare converts the configured fade time ranges to sample ranges. They
// never change afterwards.
func (n *FadeInOutNode) Prepare(cfg Config) {
	n.fadeInRange = n.fadeIn.ToSamples(cfg.SampleRate)
	n.fadeOutRange = n.fadeOut.ToSamples(cfg.SampleRate)
	n.ramp = make([]float64, cfg.BlockSize)
}

func (n *FadeInOutNode) Render(pc Context) {
	timeline := n.playHead.Split(pc.Reference).First

	in := n.input.Node().Output()
	assertf(in.Audio.NumChannels() == pc.Output.Audio.NumChannels(),
		"fade: input %d channels, destination %d", in.Audio.NumChannels(), pc.Output.Audio.NumChannels())

	pc.Output.Audio.CopyFrom(in.Audio)
	pc.Output.Midi.CopyFrom(in.Midi)

	if !n.renderingNeeded(timeline) {
		return
	}

	numSamples := pc.Output.Audio.Size()
	assertf(int64(numSamples) == timeline.Length(), "fade: block %d != timeline span %d", numSamples, timeline.Length())

	if timeline.Intersects(n.fadeInRange) && n.fadeInRange.Length() > 0 {
		alpha1 := 0.0
		startSamp := int(n.fadeInRange.Start - timeline.Start)
		if startSamp > 0 {
			if n.clearExtraSamples {
				pc.Output.Audio.ClearRegion(0, startSamp)
			}
		} else {
			alpha1 = float64(timeline.Start-n.fadeInRange.Start) / float64(n.fadeInRange.Length())
			startSamp = 0
		}

		var endSamp int
		var alpha2 float64
		if timeline.End >= n.fadeInRange.End {
			endSamp = int(n.fadeInRange.End - timeline.Start)
			alpha2 = 1.0
		} else {
			endSamp = numSamples
			alpha2 = clamp01(float64(timeline.End-n.fadeInRange.Start) / float64(n.fadeInRange.Length()))
		}

		if endSamp > startSamp {
			fade.Apply(pc.Output.Audio, startSamp, endSamp-startSamp, n.fadeInShape, alpha1, alpha2, n.ramp)
		}
	}

	if timeline.Intersects(n.fadeOutRange) && n.fadeOutRange.Length() > 0 {
		alpha1 := 0.0
		startSamp := int(n.fadeOutRange.Start - timeline.Start)
		if startSamp <= 0 {
			startSamp = 0
			alpha1 = float64(timeline.Start-n.fadeOutRange.Start) / float64(n.fadeOutRange.Length())
		}

		var endSamp int
		var alpha2 float64
		if timeline.End >= n.fadeOutRange.End {
			endSamp = int(n.fadeOutRange.End - timeline.Start)
			alpha2 = 1.0
			if n.clearExtraSamples && endSamp < numSamples {
				pc.Output.Audio.ClearRegion(endSamp, numSamples)
			}
		} else {
			endSamp = numSamples
			alpha2 = clamp01(float64(timeline.End-n.fadeOutRange.Start) / float64(n.fadeOutRange.Length()))
		}

		// The fade-out alphas are the complement: amplitude runs from full
		// towards silence.
		if endSamp > startSamp {
			fade.Apply(pc.Output.Audio, startSamp, endSamp-startSamp, n.fadeOutShape, clamp01(1-alpha1), clamp01(1-alpha2), n.ramp)
		}
	}
}

// renderingNeeded reports whether the block needs anything beyond
// passthrough: the transport is playing and at least one fade range
// intersects the block's timeline span.
func (n *FadeInOutNode) renderingNeeded(timeline signal.SampleRange) bool {
	if !n.playHead.IsPlaying() {
		return false
	}
	return n.fadeInRange.Intersects(timeline) || n.fadeOutRange.Intersects(timeline)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
