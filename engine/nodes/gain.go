package nodes

import (
	"github.com/cwbudde/algo-modular/dsp/core"
	"github.com/cwbudde/algo-modular/engine"
	"github.com/cwbudde/algo-vecmath"
)

// Gain scales its audio input by a constant factor.
type Gain struct {
	level float64
	in    []float64
	out   []float64
}

// NewGain returns a gain stage with the given linear level.
func NewGain(cfg core.ProcessorConfig, level float64) *Gain {
	return &Gain{
		level: level,
		in:    make([]float64, cfg.BlockSize),
		out:   make([]float64, cfg.BlockSize),
	}
}

var gainPorts = []engine.Port{engine.AudioIn(0), engine.AudioOut(0)}

// Ports implements engine.Node.
func (g *Gain) Ports() []engine.Port { return gainPorts }

// AudioIn implements engine.AudioReceiver.
func (g *Gain) AudioIn(index int) []float64 { return g.in }

// SetLevel sets the linear gain factor.
func (g *Gain) SetLevel(level float64) { g.level = level }

// SetLevelDB sets the gain in decibels.
func (g *Gain) SetLevelDB(db float64) { g.level = core.DBToLinear(db) }

// Level returns the current linear gain factor.
func (g *Gain) Level() float64 { return g.level }

// Process implements engine.Node.
func (g *Gain) Process(env engine.Env) {
	vecmath.ScaleBlock(g.out, g.in, g.level)
	env.SendBlock(0, g.out)
}
