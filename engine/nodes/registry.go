package nodes

import (
	"github.com/cwbudde/algo-modular/dsp/core"
	"github.com/cwbudde/algo-modular/dsp/filter/design"
	"github.com/cwbudde/algo-modular/dsp/signal"
	"github.com/cwbudde/algo-modular/engine"
	"github.com/cwbudde/algo-modular/midi"
)

// Registered kind names.
const (
	KindOscillator engine.Kind = "oscillator"
	KindFilter     engine.Kind = "filter"
	KindEnvelope   engine.Kind = "envelope"
	KindMidiplex   engine.Kind = "midiplex"
	KindMixer      engine.Kind = "mixer"
	KindDelay      engine.Kind = "delay"
	KindGain       engine.Kind = "gain"
	KindSpeaker    engine.Kind = "speaker"
	KindScope      engine.Kind = "scope"
)

// DefaultRegistry returns a registry with every node kind in this
// package. Enum-valued parameters (waveform, filter kind) are passed as
// their numeric constants.
func DefaultRegistry() *engine.Registry {
	reg := engine.NewRegistry()
	reg.MustRegister(KindOscillator, func(cfg core.ProcessorConfig, p engine.Params) (engine.Node, error) {
		wave := signal.Waveform(int(p.Get("wave", float64(signal.WaveSine))))
		freq := p.Get("freq", midi.A4Frequency)
		amp := p.Get("amp", 1)
		return NewOscillator(cfg, wave, freq, amp), nil
	})
	reg.MustRegister(KindFilter, func(cfg core.ProcessorConfig, p engine.Params) (engine.Node, error) {
		kind := design.Kind(int(p.Get("kind", float64(design.KindLowpass))))
		freq := p.Get("freq", 1000)
		q := p.Get("q", design.DefaultQ)
		return NewFilter(cfg, kind, freq, q), nil
	})
	reg.MustRegister(KindEnvelope, func(cfg core.ProcessorConfig, p engine.Params) (engine.Node, error) {
		n := NewEnvelope(cfg)
		adsr := n.ADSR()
		adsr.SetADSR(
			p.Get("attack", 10),
			p.Get("decay", 100),
			p.Get("sustain", 0.7),
			p.Get("release", 300),
		)
		return n, nil
	})
	reg.MustRegister(KindMidiplex, func(cfg core.ProcessorConfig, p engine.Params) (engine.Node, error) {
		return NewMidiplex(cfg, int(p.Get("voices", DefaultVoices))), nil
	})
	reg.MustRegister(KindMixer, func(cfg core.ProcessorConfig, p engine.Params) (engine.Node, error) {
		return NewMixer(cfg, int(p.Get("inputs", 2))), nil
	})
	reg.MustRegister(KindDelay, func(cfg core.ProcessorConfig, p engine.Params) (engine.Node, error) {
		d, err := NewDelay(cfg, p.Get("time", 250), p.Get("feedback", 0.4), p.Get("mix", 0.5))
		if err != nil {
			return nil, err
		}
		return d, nil
	})
	reg.MustRegister(KindGain, func(cfg core.ProcessorConfig, p engine.Params) (engine.Node, error) {
		return NewGain(cfg, p.Get("level", 1)), nil
	})
	reg.MustRegister(KindSpeaker, func(cfg core.ProcessorConfig, p engine.Params) (engine.Node, error) {
		return NewSpeaker(cfg), nil
	})
	reg.MustRegister(KindScope, func(cfg core.ProcessorConfig, p engine.Params) (engine.Node, error) {
		s, err := NewScope(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	})
	return reg
}
