// Package midi defines the discrete note events consumed by the engine,
// the 12-tone-equal-temperament pitch lookup, and an input-device adapter
// over portmidi.
package midi

import "fmt"

// Message distinguishes the note event types the engine consumes.
type Message int

const (
	NoteOn Message = iota
	NoteOff
)

// String returns the message name for diagnostics.
func (m Message) String() string {
	switch m {
	case NoteOn:
		return "note-on"
	case NoteOff:
		return "note-off"
	default:
		return "unknown"
	}
}

// Event is a discrete note event for a single pitch.
type Event struct {
	Pitch   int
	Message Message
}

// String formats the event for diagnostics.
func (e Event) String() string {
	return fmt.Sprintf("%s(%d)", e.Message, e.Pitch)
}
