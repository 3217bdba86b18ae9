package nodes

import (
	"github.com/cwbudde/algo-modular/dsp/core"
	"github.com/cwbudde/algo-modular/dsp/delay"
	"github.com/cwbudde/algo-modular/engine"
)

// maxDelaySeconds bounds the delay line allocation.
const maxDelaySeconds = 2.0

// Delay is a feedback echo. The wet tap reads the line with fractional
// interpolation, so the delay time can be swept smoothly.
type Delay struct {
	sampleRate   float64
	line         *delay.Line
	delaySamples float64
	feedback     float64
	mix          float64
	in           []float64
	out          []float64
}

// NewDelay returns an echo with the given delay time in milliseconds,
// feedback amount (0..<1) and wet mix (0..1).
func NewDelay(cfg core.ProcessorConfig, delayMS, feedback, mix float64) (*Delay, error) {
	line, err := delay.New(int(cfg.SampleRate * maxDelaySeconds))
	if err != nil {
		return nil, err
	}
	d := &Delay{
		sampleRate: cfg.SampleRate,
		line:       line,
		feedback:   core.Clamp(feedback, 0, 0.99),
		mix:        core.Clamp(mix, 0, 1),
		in:         make([]float64, cfg.BlockSize),
		out:        make([]float64, cfg.BlockSize),
	}
	d.SetTime(delayMS)
	return d, nil
}

var delayPorts = []engine.Port{engine.AudioIn(0), engine.AudioOut(0)}

// Ports implements engine.Node.
func (d *Delay) Ports() []engine.Port { return delayPorts }

// AudioIn implements engine.AudioReceiver.
func (d *Delay) AudioIn(index int) []float64 { return d.in }

// SetTime sets the delay time in milliseconds, clamped to the line
// capacity. The line contents are kept, so sweeping pitches the tail.
func (d *Delay) SetTime(ms float64) {
	samples := d.sampleRate * ms / 1000
	d.delaySamples = core.Clamp(samples, 1, float64(d.line.Len()-2))
}

// SetFeedback sets the feedback amount.
func (d *Delay) SetFeedback(fb float64) { d.feedback = core.Clamp(fb, 0, 0.99) }

// SetMix sets the wet/dry balance, 0 dry to 1 wet.
func (d *Delay) SetMix(mix float64) { d.mix = core.Clamp(mix, 0, 1) }

// Process implements engine.Node.
func (d *Delay) Process(env engine.Env) {
	for i, x := range d.in {
		wet := d.line.ReadFractional(d.delaySamples)
		d.line.Write(x + d.feedback*wet)
		d.out[i] = (1-d.mix)*x + d.mix*wet
	}
	env.SendBlock(0, d.out)
}
