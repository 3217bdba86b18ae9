package nodes

import (
	"sort"

	"github.com/cwbudde/algo-modular/dsp/core"
	"github.com/cwbudde/algo-modular/engine"
	"github.com/cwbudde/algo-modular/midi"
)

// DefaultVoices is the voice count of a Midiplex created without an
// explicit capacity.
const DefaultVoices = 8

// Midiplex fans a monophonic note stream out over a fixed set of voice
// ports. Each voice i owns a MIDI output i (pitch for the oscillator) and
// a trigger output i (gate for the envelope).
//
// Allocation is lowest-free-index first and never steals: a note-on with
// all voices held is dropped and counted. A note-off releases the voice
// holding that pitch; note-offs for pitches no voice holds are ignored.
type Midiplex struct {
	ports     []engine.Port
	pending   []midi.Event
	available []int       // free voice indices, kept sorted ascending
	held      map[int]int // pitch -> voice index
	dropped   int
}

// NewMidiplex returns a multiplexer with the given number of voices. A
// non-positive count falls back to DefaultVoices.
func NewMidiplex(cfg core.ProcessorConfig, voices int) *Midiplex {
	if voices <= 0 {
		voices = DefaultVoices
	}
	m := &Midiplex{
		ports:     make([]engine.Port, 0, 2*voices+1),
		available: make([]int, voices),
		held:      make(map[int]int, voices),
	}
	m.ports = append(m.ports, engine.MidiIn(0))
	for i := 0; i < voices; i++ {
		m.available[i] = i
		m.ports = append(m.ports, engine.MidiOut(i), engine.TriggerOut(i))
	}
	return m
}

// Ports implements engine.Node.
func (m *Midiplex) Ports() []engine.Port { return m.ports }

// PushEvent implements engine.EventReceiver.
func (m *Midiplex) PushEvent(index int, ev midi.Event) {
	m.pending = append(m.pending, ev)
}

// Voices returns the voice count.
func (m *Midiplex) Voices() int { return (len(m.ports) - 1) / 2 }

// Held returns the number of currently sounding voices.
func (m *Midiplex) Held() int { return len(m.held) }

// Dropped returns the number of note-ons discarded because every voice
// was busy.
func (m *Midiplex) Dropped() int { return m.dropped }

// Process implements engine.Node.
func (m *Midiplex) Process(env engine.Env) {
	for _, ev := range m.pending {
		switch ev.Message {
		case midi.NoteOn:
			m.noteOn(env, ev)
		case midi.NoteOff:
			m.noteOff(env, ev)
		}
	}
	m.pending = m.pending[:0]
}

func (m *Midiplex) noteOn(env engine.Env, ev midi.Event) {
	if _, ok := m.held[ev.Pitch]; ok {
		// Retrigger of a pitch that is already sounding; the holding
		// voice keeps its gate, nothing to do.
		return
	}
	if len(m.available) == 0 {
		m.dropped++
		return
	}
	voice := m.available[0]
	m.available = m.available[1:]
	m.held[ev.Pitch] = voice
	env.SendEvent(voice, ev)
	env.SendGate(voice, true)
}

func (m *Midiplex) noteOff(env engine.Env, ev midi.Event) {
	voice, ok := m.held[ev.Pitch]
	if !ok {
		return
	}
	delete(m.held, ev.Pitch)
	i := sort.SearchInts(m.available, voice)
	m.available = append(m.available, 0)
	copy(m.available[i+1:], m.available[i:])
	m.available[i] = voice
	env.SendEvent(voice, ev)
	env.SendGate(voice, false)
}
