package graph

import (
	"github.com/sirupsen/logrus"

	"github.com/thomas-dumonet/tracktion-engine/log"
	"github.com/thomas-dumonet/tracktion-engine/signal"
)

// Player is a synchronous, single-threaded scheduler for a node graph. It
// prepares every node exactly once, bottom-up, and then walks the graph once
// per audio block, processing a node only when polling reports all of its
// direct inputs ready. Nodes never block or wait internally.
type Player struct {
	root Node
	cfg  Config

	nodes     []Node
	reference int64
	prepared  bool
	logger    *logrus.Logger
}

// NewPlayer returns a player for the graph rooted at root.
func NewPlayer(root Node, cfg Config) *Player {
	return &Player{root: root, cfg: cfg, logger: log.GetLogger()}
}

// Prepare initialises all nodes depth-first so that every node is prepared
// after its inputs. Nodes inserted during preparation (latency compensation)
// initialise themselves; the traversal is collected again afterwards so they
// join the per-block walk. Prepare must be called once, before Process.
func (p *Player) Prepare() {
	assertf(!p.prepared, "player: prepared twice")

	visited := map[Node]bool{}
	var prepare func(n Node)
	prepare = func(n Node) {
		if visited[n] {
			return
		}
		visited[n] = true
		for _, in := range n.Inputs() {
			prepare(in)
		}
		Initialise(n, p.cfg)
	}
	prepare(p.root)

	p.nodes = collectNodes(p.root)
	p.prepared = true

	props := p.root.Properties()
	p.logger.WithFields(logrus.Fields{
		"nodes":    len(p.nodes),
		"channels": props.Channels,
		"latency":  signal.DurationOf(p.cfg.SampleRate, int64(props.Latency)),
	}).Debug("graph prepared")
}

// Process runs one block through the graph and returns the root's produced
// buffers, valid until the next call. The reference position advances by one
// block per call.
func (p *Player) Process() Buffers {
	assertf(p.prepared, "player: process before prepare")

	for _, n := range p.nodes {
		n.base().begin()
	}

	stream := signal.RangeWithLength(0, p.cfg.BlockSize)
	ref := signal.RangeWithLength(p.reference, p.cfg.BlockSize)
	p.reference = ref.End

	for !p.root.HasProcessed() {
		progressed := false
		for _, n := range p.nodes {
			if n.HasProcessed() || !n.Ready() {
				continue
			}
			n.Render(Context{Stream: stream, Reference: ref, Output: n.Output()})
			n.base().markProcessed()
			progressed = true
		}
		assertf(progressed, "player: graph stalled, input never became ready")
	}
	return p.root.Output()
}

// Position returns the reference sample position of the next block.
func (p *Player) Position() int64 {
	return p.reference
}

// collectNodes flattens the graph depth-first, inputs before consumers, each
// node once.
func collectNodes(root Node) []Node {
	var nodes []Node
	visited := map[Node]bool{}
	var visit func(n Node)
	visit = func(n Node) {
		if visited[n] {
			return
		}
		visited[n] = true
		for _, in := range n.Inputs() {
			visit(in)
		}
		nodes = append(nodes, n)
	}
	visit(root)
	return nodes
}
