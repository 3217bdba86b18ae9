package nodes

import (
	"github.com/cwbudde/algo-modular/audio"
	"github.com/cwbudde/algo-modular/dsp/core"
	"github.com/cwbudde/algo-modular/engine"
)

// speakerRingBlocks sizes the default output ring in blocks. Small keeps
// latency low, but the ring must hold at least two blocks so the audio
// callback always has one while the graph fills the next.
const speakerRingBlocks = 4

// Speaker is the audio output sink. It feeds a bounded ring drained by
// the playback callback and reports ready only while the ring has room
// for a whole block, which stalls the graph instead of overrunning the
// ring when playback falls behind.
type Speaker struct {
	ring *audio.Ring
	in   []float64
}

// NewSpeaker returns a speaker sink with its own ring sized to
// speakerRingBlocks blocks.
func NewSpeaker(cfg core.ProcessorConfig) *Speaker {
	return NewSpeakerWithRing(cfg, audio.NewRing(speakerRingBlocks*cfg.BlockSize))
}

// NewSpeakerWithRing returns a speaker sink draining into ring.
func NewSpeakerWithRing(cfg core.ProcessorConfig, ring *audio.Ring) *Speaker {
	return &Speaker{
		ring: ring,
		in:   make([]float64, cfg.BlockSize),
	}
}

var speakerPorts = []engine.Port{engine.AudioIn(0)}

// Ports implements engine.Node.
func (s *Speaker) Ports() []engine.Port { return speakerPorts }

// AudioIn implements engine.AudioReceiver.
func (s *Speaker) AudioIn(index int) []float64 { return s.in }

// Ready implements engine.Sink.
func (s *Speaker) Ready() bool { return s.ring.Room() >= len(s.in) }

// Ring returns the ring the playback side should stream from.
func (s *Speaker) Ring() *audio.Ring { return s.ring }

// Process implements engine.Node.
func (s *Speaker) Process(env engine.Env) {
	s.ring.Push(s.in)
}
