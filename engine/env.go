package engine

import (
	"fmt"

	"github.com/cwbudde/algo-modular/dsp/core"
	"github.com/cwbudde/algo-modular/midi"
)

// Env is handed to a node's Process call and routes the node's output to
// whatever its output ports are connected to. Sends on unconnected ports
// are silently discarded.
type Env struct {
	g  *Graph
	id NodeID
}

// Config returns the processing configuration of the owning graph.
func (e Env) Config() core.ProcessorConfig { return e.g.cfg }

// SendBlock delivers one block on the node's audio output with the given
// index. The block is copied into the receiver's input buffer, so the
// caller may reuse it immediately.
func (e Env) SendBlock(index int, block []float64) {
	peer, node, ok := e.resolve(AudioOut(index).At(e.id))
	if !ok {
		return
	}
	recv, ok := node.(AudioReceiver)
	if !ok {
		panic(fmt.Sprintf("engine: %v connected but node is not an AudioReceiver", peer))
	}
	core.CopyInto(recv.AudioIn(peer.Port.Index), block)
}

// SendEvent delivers one note event on the node's MIDI output with the
// given index.
func (e Env) SendEvent(index int, ev midi.Event) {
	peer, node, ok := e.resolve(MidiOut(index).At(e.id))
	if !ok {
		return
	}
	recv, ok := node.(EventReceiver)
	if !ok {
		panic(fmt.Sprintf("engine: %v connected but node is not an EventReceiver", peer))
	}
	recv.PushEvent(peer.Port.Index, ev)
}

// SendGate delivers one gate transition on the node's trigger output with
// the given index.
func (e Env) SendGate(index int, on bool) {
	peer, node, ok := e.resolve(TriggerOut(index).At(e.id))
	if !ok {
		return
	}
	recv, ok := node.(GateReceiver)
	if !ok {
		panic(fmt.Sprintf("engine: %v connected but node is not a GateReceiver", peer))
	}
	recv.SetGate(peer.Port.Index, on)
}

// resolve follows the connection table from one of the sending node's
// output addresses to the peer input and its owning node. A connection
// whose peer node is missing from the graph means the table and the node
// set disagree, which RemoveNode is supposed to make impossible.
func (e Env) resolve(from Address) (Address, Node, bool) {
	peer, ok := e.g.table.opposite(from)
	if !ok {
		return Address{}, nil, false
	}
	node, ok := e.g.nodes[peer.Node]
	if !ok {
		panic(fmt.Sprintf("engine: connection %v -> %v references a removed node", from, peer))
	}
	return peer, node, true
}
