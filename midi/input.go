package midi

import (
	"fmt"

	"github.com/rakyll/portmidi"
)

// MIDI status bytes (channel bits masked off).
const (
	statusNoteOn  = 0x90
	statusNoteOff = 0x80
)

const inputBufferSize = 1024

// Input reads note events from a portmidi device. Reads are non-blocking so
// the engine's tick loop can poll between ticks without stalling.
//
// Callers must initialize portmidi (portmidi.Initialize) before opening an
// input and terminate it on shutdown.
type Input struct {
	stream *portmidi.Stream
}

// OpenInput opens the given portmidi input device.
func OpenInput(id portmidi.DeviceID) (*Input, error) {
	stream, err := portmidi.NewInputStream(id, inputBufferSize)
	if err != nil {
		return nil, fmt.Errorf("opening midi input %d: %w", id, err)
	}

	return &Input{stream: stream}, nil
}

// OpenDefaultInput opens the system default input device.
func OpenDefaultInput() (*Input, error) {
	return OpenInput(portmidi.DefaultInputDeviceID())
}

// Poll drains all pending device events and returns the note events among
// them. Non-note messages (control changes, aftertouch) are skipped. A
// NoteOn with velocity zero is normalized to NoteOff, as many keyboards
// encode releases that way.
func (in *Input) Poll() ([]Event, error) {
	raw, err := in.stream.Read(inputBufferSize)
	if err != nil {
		return nil, fmt.Errorf("reading midi input: %w", err)
	}

	var events []Event
	for _, ev := range raw {
		if out, ok := translate(ev.Status, ev.Data1, ev.Data2); ok {
			events = append(events, out)
		}
	}

	return events, nil
}

// translate maps a raw portmidi message to a note event. Returns false for
// message types the engine does not consume.
func translate(status, data1, data2 int64) (Event, bool) {
	switch status & 0xf0 {
	case statusNoteOn:
		msg := NoteOn
		if data2 == 0 {
			msg = NoteOff
		}
		return Event{Pitch: int(data1), Message: msg}, true
	case statusNoteOff:
		return Event{Pitch: int(data1), Message: NoteOff}, true
	default:
		return Event{}, false
	}
}

// Close releases the underlying stream.
func (in *Input) Close() error {
	return in.stream.Close()
}

// Devices returns the names of all available portmidi input devices,
// indexed by device ID.
func Devices() []string {
	count := portmidi.CountDevices()
	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		info := portmidi.Info(portmidi.DeviceID(i))
		if info == nil || !info.IsInputAvailable {
			continue
		}
		names = append(names, fmt.Sprintf("%d: %s (%s)", i, info.Name, info.Interface))
	}
	return names
}
