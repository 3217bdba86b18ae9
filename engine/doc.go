// Package engine implements the block-based audio/MIDI processing graph:
// typed node ports, a strict 1:1 connection table, and the per-tick
// scheduler that drives processing backward from the sink nodes.
//
// Execution is single-threaded and cooperative. One call to [Graph.Tick]
// advances every reachable node by exactly one block, and every value
// crosses exactly one connection per tick, so end-to-end latency equals
// the edge-distance between source and sink. Graph mutation (adding and
// removing nodes, connecting and disconnecting ports) and event delivery
// must happen between ticks, never concurrently with one.
//
// Concrete node implementations live in engine/nodes.
package engine
