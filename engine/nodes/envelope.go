package nodes

import (
	"github.com/cwbudde/algo-modular/dsp/core"
	"github.com/cwbudde/algo-modular/dsp/envelope"
	"github.com/cwbudde/algo-modular/engine"
)

// Envelope shapes its audio input with a linear ADSR. Gate transitions
// arriving on the trigger input are queued and applied, in order, at the
// start of the next Process call.
type Envelope struct {
	env     *envelope.ADSR
	pending []bool
	in      []float64
	out     []float64
}

// NewEnvelope returns an envelope node with the underlying generator's
// default segment times.
func NewEnvelope(cfg core.ProcessorConfig) *Envelope {
	return &Envelope{
		env: envelope.New(cfg.SampleRate),
		in:  make([]float64, cfg.BlockSize),
		out: make([]float64, cfg.BlockSize),
	}
}

var envelopePorts = []engine.Port{
	engine.AudioIn(0),
	engine.TriggerIn(0),
	engine.AudioOut(0),
}

// Ports implements engine.Node.
func (n *Envelope) Ports() []engine.Port { return envelopePorts }

// AudioIn implements engine.AudioReceiver.
func (n *Envelope) AudioIn(index int) []float64 { return n.in }

// SetGate implements engine.GateReceiver.
func (n *Envelope) SetGate(index int, on bool) {
	n.pending = append(n.pending, on)
}

// ADSR exposes the generator for segment-time configuration.
func (n *Envelope) ADSR() *envelope.ADSR { return n.env }

// Active reports whether the envelope is currently producing a non-idle
// stage, before any queued gates are applied.
func (n *Envelope) Active() bool { return n.env.Active() }

// Process implements engine.Node.
func (n *Envelope) Process(env engine.Env) {
	for _, on := range n.pending {
		if on {
			n.env.GateOn()
		} else {
			n.env.GateOff()
		}
	}
	n.pending = n.pending[:0]

	core.CopyInto(n.out, n.in)
	n.env.ProcessMultiply(n.out)
	env.SendBlock(0, n.out)
}
