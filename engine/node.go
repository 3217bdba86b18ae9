package engine

import "github.com/cwbudde/algo-modular/midi"

// Node is one processing unit in a graph. A node declares its ports once
// and is asked to produce one block of work per tick via Process.
//
// Nodes receive input through the capability interfaces below: a node
// declaring an audio input must implement [AudioReceiver], a MIDI input
// [EventReceiver], and a trigger input [GateReceiver]. The connection
// table guarantees family agreement, so the scheduler treats a connected
// input without the matching capability as a programming error.
type Node interface {
	// Ports lists every port the node exposes. The result must be stable
	// for the life of the node.
	Ports() []Port

	// Process consumes whatever arrived on the node's inputs since its
	// previous call and emits at most one value per output port through
	// env. It is called at most once per tick.
	Process(env Env)
}

// AudioReceiver is implemented by nodes with audio inputs. AudioIn
// returns the buffer backing the given audio input index; upstream
// output blocks are copied into it before the receiving node runs.
type AudioReceiver interface {
	AudioIn(index int) []float64
}

// EventReceiver is implemented by nodes with MIDI inputs. Events queue
// until the node's next Process call.
type EventReceiver interface {
	PushEvent(index int, ev midi.Event)
}

// GateReceiver is implemented by nodes with trigger inputs. Transitions
// queue until the node's next Process call.
type GateReceiver interface {
	SetGate(index int, on bool)
}

// Sink marks a node as a scheduling root. Each tick starts from the
// ready sinks and walks the graph backward; a node no sink transitively
// depends on is never processed.
type Sink interface {
	Node

	// Ready reports whether the sink can absorb one more block. A sink
	// that is not ready stalls its entire upstream cone for the tick,
	// which is how downstream backpressure propagates.
	Ready() bool
}
