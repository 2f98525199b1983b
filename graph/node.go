// Package graph implements a pull-based DAG of audio/MIDI processing nodes.
// Each node produces one block of audio samples and timestamped MIDI events
// per call. A Player walks the graph once per block, processing a node only
// after all of its direct inputs have produced output. Rendering is
// sample-accurate across block boundaries: the core nodes apply fades, exact
// sample delays and latency-compensated summing regardless of how the signal
// is chunked into blocks.
package graph

import (
	"fmt"

	"github.com/rs/xid"

	"github.com/thomas-dumonet/tracktion-engine/midi"
	"github.com/thomas-dumonet/tracktion-engine/signal"
)

// Config carries the playback parameters nodes prepare against.
type Config struct {
	SampleRate float64
	BlockSize  int
}

// NodeProperties describes a node's output, composed recursively from its
// direct inputs. Latency is the total accumulated delay in samples from any
// leaf to this node.
type NodeProperties struct {
	HasAudio bool
	HasMidi  bool
	Channels int
	Latency  int
	NodeID   string
}

// Buffers holds one block of produced output.
type Buffers struct {
	Audio signal.Float64
	Midi  *midi.Buffer
}

// Context is passed to Render. Stream is the block-local sample span,
// Reference the transport-wide span the block corresponds to. Output is the
// destination the node writes into.
type Context struct {
	Stream    signal.SampleRange
	Reference signal.SampleRange
	Output    Buffers
}

// Node is a unit in the processing graph.
//
// Properties must be pure and stable once topology is frozen. Inputs are the
// structural edges and must not contain cycles. Prepare is called exactly
// once per node, bottom-up, before any Render; all buffers for the node's
// lifetime are allocated there. Ready is polled by the scheduler and reports
// whether every direct input has produced output for the current block.
// Render writes the node's output into the context's destination buffers and
// must not allocate, lock or block.
//
// Implementations embed Base, which provides Output, HasProcessed and the
// per-block lifecycle driven by the Player.
type Node interface {
	Properties() NodeProperties
	Inputs() []Node
	Prepare(cfg Config)
	Ready() bool
	Render(pc Context)

	Output() Buffers
	HasProcessed() bool
	base() *Base
}

// midiEventCapacity is the initial event storage of a node's output buffer.
const midiEventCapacity = 64

// Base carries a node's output buffers and processed flag. Embed it to
// implement Node.
type Base struct {
	out       Buffers
	processed bool
}

func (b *Base) base() *Base { return b }

// Output returns the node's buffers produced for the current block.
func (b *Base) Output() Buffers { return b.out }

// HasProcessed reports whether the node has produced output for the current
// block.
func (b *Base) HasProcessed() bool { return b.processed }

func (b *Base) allocate(props NodeProperties, cfg Config) {
	b.out.Audio = signal.EmptyFloat64(props.Channels, cfg.BlockSize)
	b.out.Midi = midi.NewBuffer(midiEventCapacity)
}

// begin resets the output for a new block.
func (b *Base) begin() {
	b.out.Audio.Clear()
	b.out.Midi.Clear()
	b.processed = false
}

func (b *Base) markProcessed() { b.processed = true }

// Initialise allocates the node's output buffers from its declared
// properties and calls Prepare. The Player does this for every node in the
// graph; nodes that rewrite their input list during preparation call it
// directly on the nodes they create.
func Initialise(n Node, cfg Config) {
	assertf(cfg.SampleRate > 0 && cfg.BlockSize > 0, "graph: invalid config %+v", cfg)
	n.base().allocate(n.Properties(), cfg)
	n.Prepare(cfg)
}

// Input is a node edge with explicit lifetime intent: a node either
// exclusively owns its input or holds a reference to an externally owned
// one. Ownership never affects processing, only who is responsible for the
// node; latency compensation preserves it when rewrapping inputs.
type Input struct {
	node  Node
	owned bool
}

// Own returns an input edge that owns the node.
func Own(n Node) Input { return Input{node: n, owned: true} }

// Ref returns an input edge referencing an externally owned node.
func Ref(n Node) Input { return Input{node: n} }

// Node returns the wrapped node.
func (in Input) Node() Node { return in.node }

// Owned reports whether the edge owns the node.
func (in Input) Owned() bool { return in.owned }

// NewNodeID returns a fresh opaque node id.
func NewNodeID() string {
	return xid.New().String()
}

// assertf panics on contract violations. The processing contract treats
// these as programming errors, not runtime conditions: failing loudly beats
// silently corrupting buffers.
func assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
