// Package nodes provides the standard node set for the processing graph:
// sources (Oscillator), processors (Filter, Envelope, Gain, Mixer), the
// polyphonic voice multiplexer (Midiplex), and sinks (Speaker, Scope).
//
// Every node is built against a core.ProcessorConfig and sized for its
// block length at construction. DefaultRegistry exposes the full set by
// kind name for data-driven graph construction.
package nodes
