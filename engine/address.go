package engine

import "fmt"

// NodeID identifies a node inside one graph. Identifiers are assigned by
// [Graph.AddNode] and are never reused within the life of that graph.
type NodeID int

// PortFamily is the payload type a port carries. Connections are only
// valid between ports of the same family.
type PortFamily int

const (
	// FamilyAudio ports carry one block of samples per tick.
	FamilyAudio PortFamily = iota
	// FamilyMidi ports carry zero or more note events per tick.
	FamilyMidi
	// FamilyTrigger ports carry gate on/off transitions.
	FamilyTrigger
	// FamilyData ports carry side-channel values such as analysis results.
	FamilyData
)

// String implements fmt.Stringer.
func (f PortFamily) String() string {
	switch f {
	case FamilyAudio:
		return "audio"
	case FamilyMidi:
		return "midi"
	case FamilyTrigger:
		return "trigger"
	case FamilyData:
		return "data"
	default:
		return fmt.Sprintf("family(%d)", int(f))
	}
}

// PortDirection distinguishes inputs from outputs. Connections always run
// from an output to an input.
type PortDirection int

const (
	// DirInput marks a port that receives values.
	DirInput PortDirection = iota
	// DirOutput marks a port that emits values.
	DirOutput
)

// String implements fmt.Stringer.
func (d PortDirection) String() string {
	if d == DirOutput {
		return "out"
	}
	return "in"
}

// Port describes one port of a node, independent of which node owns it or
// which graph that node lives in. Indices count per family and direction,
// so a node may have both audio input 0 and trigger input 0.
type Port struct {
	Family    PortFamily
	Direction PortDirection
	Index     int
}

// AudioIn returns the audio input port with the given index.
func AudioIn(index int) Port { return Port{FamilyAudio, DirInput, index} }

// AudioOut returns the audio output port with the given index.
func AudioOut(index int) Port { return Port{FamilyAudio, DirOutput, index} }

// MidiIn returns the MIDI input port with the given index.
func MidiIn(index int) Port { return Port{FamilyMidi, DirInput, index} }

// MidiOut returns the MIDI output port with the given index.
func MidiOut(index int) Port { return Port{FamilyMidi, DirOutput, index} }

// TriggerIn returns the trigger input port with the given index.
func TriggerIn(index int) Port { return Port{FamilyTrigger, DirInput, index} }

// TriggerOut returns the trigger output port with the given index.
func TriggerOut(index int) Port { return Port{FamilyTrigger, DirOutput, index} }

// DataOut returns the data output port with the given index.
func DataOut(index int) Port { return Port{FamilyData, DirOutput, index} }

// String implements fmt.Stringer.
func (p Port) String() string {
	return fmt.Sprintf("%s-%s[%d]", p.Family, p.Direction, p.Index)
}

// Address names one port of one node within a graph. It is the key type
// of the connection table.
type Address struct {
	Node NodeID
	Port Port
}

// At binds a port to a node, forming a graph-wide address.
func (p Port) At(id NodeID) Address { return Address{Node: id, Port: p} }

// String implements fmt.Stringer.
func (a Address) String() string {
	return fmt.Sprintf("node(%d).%s", int(a.Node), a.Port)
}
