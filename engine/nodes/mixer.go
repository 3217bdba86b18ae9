package nodes

import (
	"github.com/cwbudde/algo-modular/dsp/core"
	"github.com/cwbudde/algo-modular/engine"
	"github.com/cwbudde/algo-vecmath"
)

// Mixer sums a fixed number of audio inputs into one output block.
// Unconnected inputs stay zero and fall out of the sum.
type Mixer struct {
	ports []engine.Port
	in    [][]float64
	out   []float64
}

// NewMixer returns a mixer with the given number of audio inputs.
func NewMixer(cfg core.ProcessorConfig, inputs int) *Mixer {
	if inputs < 1 {
		inputs = 1
	}
	m := &Mixer{
		ports: make([]engine.Port, 0, inputs+1),
		in:    make([][]float64, inputs),
		out:   make([]float64, cfg.BlockSize),
	}
	for i := 0; i < inputs; i++ {
		m.in[i] = make([]float64, cfg.BlockSize)
		m.ports = append(m.ports, engine.AudioIn(i))
	}
	m.ports = append(m.ports, engine.AudioOut(0))
	return m
}

// Ports implements engine.Node.
func (m *Mixer) Ports() []engine.Port { return m.ports }

// AudioIn implements engine.AudioReceiver.
func (m *Mixer) AudioIn(index int) []float64 { return m.in[index] }

// Process implements engine.Node.
func (m *Mixer) Process(env engine.Env) {
	core.Zero(m.out)
	for _, in := range m.in {
		vecmath.AddBlockInPlace(m.out, in)
	}
	env.SendBlock(0, m.out)
}
