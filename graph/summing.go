package graph

// SummingNode merges any number of input streams into one. During
// preparation it rewrites its input list, wrapping every input whose
// accumulated latency is below the maximum in a LatencyNode, so that all
// merged signals stay phase-aligned.
type SummingNode struct {
	Base
	inputs []Input
}

// NewSumming returns a node summing the given inputs, any mix of owned and
// referenced.
func NewSumming(inputs ...Input) *SummingNode {
	return &SummingNode{inputs: inputs}
}

// Properties composes the inputs: audio and MIDI presence are OR-ed,
// channel count and latency are the maxima. The latency reported is the
// pre-alignment maximum, which alignment makes every input's actual value.
func (n *SummingNode) Properties() NodeProperties {
	var props NodeProperties
	for _, in := range n.inputs {
		p := in.Node().Properties()
		props.HasAudio = props.HasAudio || p.HasAudio
		props.HasMidi = props.HasMidi || p.HasMidi
		if p.Channels > props.Channels {
			props.Channels = p.Channels
		}
		if p.Latency > props.Latency {
			props.Latency = p.Latency
		}
	}
	return props
}

func (n *SummingNode) Inputs() []Node {
	nodes := make([]Node, len(n.inputs))
	for i, in := range n.inputs {
		nodes[i] = in.Node()
	}
	return nodes
}

// Ready requires every input to have produced output.
func (n *SummingNode) Ready() bool {
	for _, in := range n.inputs {
		if !in.Node().HasProcessed() {
			return false
		}
	}
	return true
}

// Prepare performs latency alignment, finalising the graph topology before
// the first Render call.
func (n *SummingNode) Prepare(cfg Config) {
	n.insertLatencyCompensation(cfg)
}

// insertLatencyCompensation builds a new input list in which every input
// reports the same accumulated latency, equal to the pre-alignment maximum.
// Inputs already at the maximum are left untouched; the rest are wrapped in
// owned LatencyNodes that keep the original edge's ownership. The new nodes
// did not exist during the bottom-up pass, so they are initialised here.
func (n *SummingNode) insertLatencyCompensation(cfg Config) {
	maxLatency := n.Properties().Latency
	aligned := make([]Input, 0, len(n.inputs))
	for _, in := range n.inputs {
		delay := maxLatency - in.Node().Properties().Latency
		if delay == 0 {
			aligned = append(aligned, in)
			continue
		}
		compensated := NewLatency(in, delay)
		Initialise(compensated, cfg)
		aligned = append(aligned, Own(compensated))
	}
	n.inputs = aligned

	for _, in := range n.inputs {
		assertf(in.Node().Properties().Latency == maxLatency,
			"summing: input latency %d after alignment, want %d", in.Node().Properties().Latency, maxLatency)
	}
}

// Render adds every input's audio into the destination over the smaller of
// the two channel counts and merges MIDI events time-ordered.
func (n *SummingNode) Render(pc Context) {
	for _, in := range n.inputs {
		out := in.Node().Output()
		pc.Output.Audio.Add(out.Audio)
		pc.Output.Midi.MergeFrom(out.Midi)
	}
}
