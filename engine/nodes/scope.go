package nodes

import (
	"github.com/cwbudde/algo-modular/dsp/core"
	"github.com/cwbudde/algo-modular/dsp/spectrum"
	"github.com/cwbudde/algo-modular/engine"
)

// Scope is an always-ready analysis sink. It keeps a copy of the most
// recent input block and computes its magnitude spectrum on demand.
type Scope struct {
	analyzer *spectrum.Analyzer
	last     []float64
	ticks    int
}

// NewScope returns a scope sized for the configuration's block length.
func NewScope(cfg core.ProcessorConfig) (*Scope, error) {
	an, err := spectrum.NewAnalyzer(cfg.BlockSize, cfg.SampleRate)
	if err != nil {
		return nil, err
	}
	return &Scope{
		analyzer: an,
		last:     make([]float64, cfg.BlockSize),
	}, nil
}

var scopePorts = []engine.Port{engine.AudioIn(0)}

// Ports implements engine.Node.
func (s *Scope) Ports() []engine.Port { return scopePorts }

// AudioIn implements engine.AudioReceiver.
func (s *Scope) AudioIn(index int) []float64 { return s.last }

// Ready implements engine.Sink. A scope never applies backpressure.
func (s *Scope) Ready() bool { return true }

// Process implements engine.Node. The input buffer doubles as the
// capture buffer, so a tick only has to count.
func (s *Scope) Process(env engine.Env) { s.ticks++ }

// Ticks returns the number of blocks captured so far.
func (s *Scope) Ticks() int { return s.ticks }

// Last returns a copy of the most recent input block.
func (s *Scope) Last() []float64 {
	out := make([]float64, len(s.last))
	core.CopyInto(out, s.last)
	return out
}

// Spectrum returns the magnitude spectrum of the most recent block, one
// value per bin up to Nyquist.
func (s *Scope) Spectrum() ([]float64, error) {
	return s.analyzer.Analyze(s.last)
}

// BinFrequency returns the center frequency of spectrum bin k.
func (s *Scope) BinFrequency(k int) float64 { return s.analyzer.BinFrequency(k) }
