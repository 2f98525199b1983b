package graph

import (
	"github.com/thomas-dumonet/tracktion-engine/midi"
)

// pendingEventCapacity is the initial storage of a latency node's delayed
// event queue.
const pendingEventCapacity = 256

// LatencyNode delays its input's audio and MIDI streams by an exact number
// of samples. Audio goes through a pre-filled delay line read by adding into
// the destination, so latency nodes can feed accumulation chains. MIDI
// events wait in a pending queue with timestamps relative to the current
// block and are emitted once their delayed time falls inside a block.
type LatencyNode struct {
	Base
	input Input
	delay int

	sampleRate     float64
	latencySeconds float64
	fifo           *audioFifo
	pending        *midi.Buffer
}

// NewLatency returns a node delaying input by delaySamples.
func NewLatency(input Input, delaySamples int) *LatencyNode {
	assertf(delaySamples >= 0, "latency: negative delay %d", delaySamples)
	return &LatencyNode{input: input, delay: delaySamples}
}

// Properties adds the node's delay to the input's accumulated latency; all
// other properties pass through.
func (n *LatencyNode) Properties() NodeProperties {
	props := n.input.Node().Properties()
	props.Latency += n.delay
	return props
}

func (n *LatencyNode) Inputs() []Node {
	return []Node{n.input.Node()}
}

func (n *LatencyNode) Ready() bool {
	return n.input.Node().HasProcessed()
}

// Prepare sizes the delay line to delay+blockSize+1 samples per channel and
// pre-fills it with delay samples of silence, so the first block reads out
// without underrun.
func (n *LatencyNode) Prepare(cfg Config) {
	n.sampleRate = cfg.SampleRate
	n.latencySeconds = float64(n.delay) / cfg.SampleRate

	n.fifo = newAudioFifo(n.Properties().Channels, n.delay+cfg.BlockSize+1)
	n.fifo.writeSilence(n.delay)
	assertf(n.fifo.numReady() == n.delay, "latency: fifo pre-fill %d != %d", n.fifo.numReady(), n.delay)

	n.pending = midi.NewBuffer(pendingEventCapacity)
}

func (n *LatencyNode) Render(pc Context) {
	in := n.input.Node().Output()
	numSamples := int(pc.Stream.Length())

	if n.fifo.numChannels() > 0 {
		assertf(numSamples == pc.Output.Audio.Size(), "latency: block %d != destination %d", numSamples, pc.Output.Audio.Size())
		n.fifo.write(in.Audio)
		n.fifo.readAdding(pc.Output.Audio)
	}

	// Delay incoming events, emit everything due within this block, then
	// rebase the queue on the next block's start.
	n.pending.MergeFromWithOffset(in.Midi, n.latencySeconds)

	blockSeconds := float64(numSamples) / n.sampleRate
	n.pending.PartitionInto(pc.Output.Midi, blockSeconds)
	n.pending.ShiftTimes(-blockSeconds)

	for _, e := range n.pending.Events() {
		assertf(e.Time >= 0, "latency: negative pending timestamp %v", e.Time)
	}
}
