// Command modsynth runs a polyphonic subtractive synthesizer driven by a
// MIDI keyboard: a voice multiplexer fans notes out to oscillator and
// envelope pairs, the mixed voices pass through a gain stage and a biquad
// filter, and the result streams to the default audio output.
//
// Usage:
//
//	modsynth [flags]
//
// Examples:
//
//	modsynth -list
//	modsynth -wave saw -cutoff 1200
//	modsynth -device 3 -voices 16 -filter highpass
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rakyll/portmidi"

	"github.com/cwbudde/algo-modular/dsp/core"
	"github.com/cwbudde/algo-modular/dsp/filter/design"
	dspsignal "github.com/cwbudde/algo-modular/dsp/signal"
	"github.com/cwbudde/algo-modular/engine"
	"github.com/cwbudde/algo-modular/engine/nodes"
	"github.com/cwbudde/algo-modular/midi"
)

func main() {
	list := flag.Bool("list", false, "list MIDI input devices and exit")
	device := flag.Int("device", -1, "MIDI input device id (-1 uses the system default)")
	wave := flag.String("wave", "saw", "oscillator waveform (sine, triangle, saw, square)")
	filterKind := flag.String("filter", "lowpass", "filter kind (lowpass, highpass, bandpass, notch)")
	cutoff := flag.Float64("cutoff", 2000, "filter cutoff or center frequency in Hz")
	q := flag.Float64("q", design.DefaultQ, "filter quality factor")
	voices := flag.Int("voices", nodes.DefaultVoices, "polyphonic voice count")
	gain := flag.Float64("gain", -12, "output gain in dB")
	attack := flag.Float64("attack", 10, "envelope attack in ms")
	decay := flag.Float64("decay", 100, "envelope decay in ms")
	sustain := flag.Float64("sustain", 0.7, "envelope sustain level (0..1)")
	release := flag.Float64("release", 300, "envelope release in ms")
	sampleRate := flag.Float64("rate", 48000, "sample rate in Hz")
	blockSize := flag.Int("block", 1024, "block size in samples")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: modsynth [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Plays a polyphonic synthesizer from a MIDI keyboard.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  modsynth -list\n")
		fmt.Fprintf(os.Stderr, "  modsynth -wave saw -cutoff 1200\n")
		fmt.Fprintf(os.Stderr, "  modsynth -device 3 -voices 16 -filter highpass\n")
	}
	flag.Parse()

	if err := portmidi.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "error: initializing portmidi: %v\n", err)
		os.Exit(1)
	}
	defer portmidi.Terminate()

	if *list {
		for _, name := range midi.Devices() {
			fmt.Println(name)
		}
		return
	}

	kind, ok := design.ParseKind(*filterKind)
	if !ok {
		fmt.Fprintf(os.Stderr, "error: unknown filter kind %q\n", *filterKind)
		os.Exit(1)
	}

	patch := synthPatch{
		wave:    dspsignal.ParseWaveform(*wave),
		kind:    kind,
		cutoff:  *cutoff,
		q:       *q,
		voices:  *voices,
		gainDB:  *gain,
		attack:  *attack,
		decay:   *decay,
		sustain: *sustain,
		release: *release,
	}
	if err := run(patch, *device, *sampleRate, *blockSize); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// synthPatch bundles the sound parameters of one synth instance.
type synthPatch struct {
	wave    dspsignal.Waveform
	kind    design.Kind
	cutoff  float64
	q       float64
	voices  int
	gainDB  float64
	attack  float64
	decay   float64
	sustain float64
	release float64
}

// buildSynth assembles the voice graph and returns it together with the
// multiplexer's note input and the speaker sink feeding playback.
func buildSynth(cfg core.ProcessorConfig, patch synthPatch) (*engine.Graph, engine.Address, *nodes.Speaker, error) {
	g := engine.New(nil, core.WithSampleRate(cfg.SampleRate), core.WithBlockSize(cfg.BlockSize), core.WithTickRate(cfg.TickRate))

	plexID := g.AddNode(nodes.NewMidiplex(cfg, patch.voices))
	mixID := g.AddNode(nodes.NewMixer(cfg, patch.voices))

	for i := 0; i < patch.voices; i++ {
		osc := nodes.NewOscillator(cfg, patch.wave, midi.A4Frequency, 1)
		env := nodes.NewEnvelope(cfg)
		env.ADSR().SetADSR(patch.attack, patch.decay, patch.sustain, patch.release)
		oscID := g.AddNode(osc)
		envID := g.AddNode(env)

		wires := []struct{ s, t engine.Address }{
			{engine.MidiOut(i).At(plexID), engine.MidiIn(0).At(oscID)},
			{engine.TriggerOut(i).At(plexID), engine.TriggerIn(0).At(envID)},
			{engine.AudioOut(0).At(oscID), engine.AudioIn(0).At(envID)},
			{engine.AudioOut(0).At(envID), engine.AudioIn(i).At(mixID)},
		}
		for _, w := range wires {
			if err := g.Connect(w.s, w.t); err != nil {
				return nil, engine.Address{}, nil, fmt.Errorf("wiring voice %d: %w", i, err)
			}
		}
	}

	gain := nodes.NewGain(cfg, 1)
	gain.SetLevelDB(patch.gainDB)
	gainID := g.AddNode(gain)
	fltID := g.AddNode(nodes.NewFilter(cfg, patch.kind, patch.cutoff, patch.q))
	spk := nodes.NewSpeaker(cfg)
	spkID := g.AddNode(spk)

	wires := []struct{ s, t engine.Address }{
		{engine.AudioOut(0).At(mixID), engine.AudioIn(0).At(gainID)},
		{engine.AudioOut(0).At(gainID), engine.AudioIn(0).At(fltID)},
		{engine.AudioOut(0).At(fltID), engine.AudioIn(0).At(spkID)},
	}
	for _, w := range wires {
		if err := g.Connect(w.s, w.t); err != nil {
			return nil, engine.Address{}, nil, fmt.Errorf("wiring output chain: %w", err)
		}
	}

	return g, engine.MidiIn(0).At(plexID), spk, nil
}

func run(patch synthPatch, device int, sampleRate float64, blockSize int) error {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(sampleRate),
		core.WithBlockSize(blockSize),
	)

	g, noteIn, spk, err := buildSynth(cfg, patch)
	if err != nil {
		return err
	}

	var in *midi.Input
	if device < 0 {
		in, err = midi.OpenDefaultInput()
	} else {
		in, err = midi.OpenInput(portmidi.DeviceID(device))
	}
	if err != nil {
		return err
	}
	defer in.Close()

	sr := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return fmt.Errorf("initializing audio output: %w", err)
	}
	speaker.Play(spk.Ring())

	// Ticking faster than real time is harmless: the speaker ring fills
	// up, the sink reports not ready, and the graph idles until the audio
	// callback drains a block.
	ticker := time.NewTicker(time.Second / time.Duration(cfg.TickRate))
	defer ticker.Stop()
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	fmt.Printf("modsynth: %d voices, %s wave, %s filter at %.0f Hz. Ctrl-C to quit.\n",
		patch.voices, patch.wave, patch.kind, patch.cutoff)

	for {
		select {
		case <-interrupt:
			return nil
		case <-ticker.C:
			events, err := in.Poll()
			if err != nil {
				return err
			}
			for _, ev := range events {
				if err := g.Deliver(noteIn, ev); err != nil {
					return err
				}
			}
			g.Tick()
		}
	}
}
