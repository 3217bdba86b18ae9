package engine

import (
	"fmt"

	"github.com/cwbudde/algo-modular/dsp/core"
	"github.com/cwbudde/algo-modular/midi"
)

// Graph owns a set of nodes, the connection table wiring them together,
// and the tick scheduler. A Graph is not safe for concurrent use; run
// mutation, event delivery and Tick from one goroutine.
type Graph struct {
	cfg      core.ProcessorConfig
	registry *Registry

	nodes  map[NodeID]Node
	table  *connectionTable
	sinks  []NodeID // insertion order, drives deterministic scheduling
	nextID NodeID

	queue   []NodeID       // scratch for Tick
	visited map[NodeID]bool // scratch for Tick
}

// New builds an empty graph. The registry may be nil, in which case
// CreateNode always fails and nodes must be added via AddNode.
func New(registry *Registry, opts ...core.ProcessorOption) *Graph {
	return &Graph{
		cfg:      core.ApplyProcessorOptions(opts...),
		registry: registry,
		nodes:    make(map[NodeID]Node),
		table:    newConnectionTable(),
		visited:  make(map[NodeID]bool),
	}
}

// Config returns the graph's processing configuration.
func (g *Graph) Config() core.ProcessorConfig { return g.cfg }

// AddNode inserts a node and returns its identifier. Nodes implementing
// [Sink] become scheduling roots automatically.
func (g *Graph) AddNode(n Node) NodeID {
	id := g.nextID
	g.nextID++
	g.nodes[id] = n
	if _, ok := n.(Sink); ok {
		g.sinks = append(g.sinks, id)
	}
	return id
}

// CreateNode builds a node of the given registered kind and inserts it.
func (g *Graph) CreateNode(kind Kind, params Params) (NodeID, error) {
	if g.registry == nil {
		return 0, fmt.Errorf("%w: %q (no registry)", ErrUnknownKind, kind)
	}
	n, err := g.registry.build(kind, g.cfg, params)
	if err != nil {
		return 0, err
	}
	return g.AddNode(n), nil
}

// Node returns the node stored under id.
func (g *Graph) Node(id NodeID) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// RemoveNode deletes a node together with every connection touching it.
// Removing an unknown identifier is a no-op.
func (g *Graph) RemoveNode(id NodeID) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	g.table.purgeNode(id)
	delete(g.nodes, id)
	for i, sid := range g.sinks {
		if sid == id {
			g.sinks = append(g.sinks[:i], g.sinks[i+1:]...)
			break
		}
	}
}

// Connect wires an output address to an input address. Both ports must
// exist, agree on family, and be free; either endpoint already carrying a
// connection rejects the call with [ErrPortInUse].
func (g *Graph) Connect(source, target Address) error {
	if err := g.checkAddress(source); err != nil {
		return err
	}
	if err := g.checkAddress(target); err != nil {
		return err
	}
	if err := g.table.connect(source, target); err != nil {
		return fmt.Errorf("%w: %v -> %v", err, source, target)
	}
	return nil
}

// Disconnect removes the connection involving addr, if any. Either
// endpoint of a connection may be named; an unconnected address is a
// no-op, so Disconnect is idempotent.
func (g *Graph) Disconnect(addr Address) {
	g.table.disconnect(addr)
}

// Opposite returns the port addr is connected to.
func (g *Graph) Opposite(addr Address) (Address, bool) {
	return g.table.opposite(addr)
}

// InUse reports whether addr participates in a connection.
func (g *Graph) InUse(addr Address) bool {
	return g.table.inUse(addr)
}

// Deliver queues an externally produced note event on a MIDI input,
// typically from a hardware device between ticks.
func (g *Graph) Deliver(target Address, ev midi.Event) error {
	if err := g.checkAddress(target); err != nil {
		return err
	}
	if target.Port.Family != FamilyMidi || target.Port.Direction != DirInput {
		return fmt.Errorf("%w: %v is not a MIDI input", ErrFamilyMismatch, target)
	}
	recv, ok := g.nodes[target.Node].(EventReceiver)
	if !ok {
		panic(fmt.Sprintf("engine: %v declared but node is not an EventReceiver", target))
	}
	recv.PushEvent(target.Port.Index, ev)
	return nil
}

// Tick advances the graph by one block. Scheduling starts from the sinks
// that report ready and floods backward along connections into inputs,
// processing each reached node exactly once. When no sink is ready the
// call returns without processing anything, leaving all node state
// untouched; downstream congestion stalls producers instead of dropping
// their output.
func (g *Graph) Tick() {
	g.queue = g.queue[:0]
	for _, id := range g.sinks {
		s, ok := g.nodes[id].(Sink)
		if !ok {
			panic(fmt.Sprintf("engine: sink list entry %d is not a Sink", int(id)))
		}
		if s.Ready() {
			g.queue = append(g.queue, id)
		}
	}
	if len(g.queue) == 0 {
		return
	}

	clear(g.visited)
	for len(g.queue) > 0 {
		id := g.queue[0]
		g.queue = g.queue[1:]
		if g.visited[id] {
			continue
		}
		g.visited[id] = true

		n, ok := g.nodes[id]
		if !ok {
			panic(fmt.Sprintf("engine: scheduled node %d missing from graph", int(id)))
		}
		n.Process(Env{g: g, id: id})

		for _, p := range n.Ports() {
			if p.Direction != DirInput {
				continue
			}
			if peer, ok := g.table.opposite(p.At(id)); ok {
				g.queue = append(g.queue, peer.Node)
			}
		}
	}
}

// checkAddress verifies that the address names an existing node and one
// of its declared ports.
func (g *Graph) checkAddress(addr Address) error {
	n, ok := g.nodes[addr.Node]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownNode, addr)
	}
	for _, p := range n.Ports() {
		if p == addr.Port {
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrUnknownPort, addr)
}
