package design

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-modular/dsp/filter/biquad"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestLowpass_CutoffMinus3dB(t *testing.T) {
	// With Q = 1/sqrt(2) the RBJ lowpass magnitude at f0 equals Q,
	// i.e. -3.01 dB.
	sr := 48000.0
	f0 := sr / 4

	c := Lowpass(f0, DefaultQ, sr)

	got := c.MagnitudeDB(f0, sr)
	want := 20 * math.Log10(DefaultQ)
	if !almostEqual(got, want, 0.01) {
		t.Fatalf("|H(f0)| = %v dB, want %v dB", got, want)
	}

	if dc := c.MagnitudeDB(0, sr); !almostEqual(dc, 0, 1e-9) {
		t.Fatalf("|H(0)| = %v dB, want 0 dB", dc)
	}
}

func TestLowpass_Monotone(t *testing.T) {
	sr := 48000.0
	c := Lowpass(1000, DefaultQ, sr)

	prev := c.Magnitude(10, sr)
	for _, f := range []float64{100, 1000, 4000, 10000, 20000} {
		mag := c.Magnitude(f, sr)
		if mag > prev+1e-9 {
			t.Fatalf("Butterworth lowpass not monotone at %v Hz: %v > %v", f, mag, prev)
		}
		prev = mag
	}
}

func TestHighpass_Response(t *testing.T) {
	sr := 48000.0
	c := Highpass(1000, DefaultQ, sr)

	// DC is an exact zero of the transfer function.
	if db := c.MagnitudeDB(0, sr); db != biquad.FloorDB {
		t.Fatalf("|H(0)| = %v dB, want floor %v", db, biquad.FloorDB)
	}

	// Unity gain toward Nyquist.
	if db := c.MagnitudeDB(sr/2, sr); !almostEqual(db, 0, 1e-6) {
		t.Fatalf("|H(nyquist)| = %v dB, want 0", db)
	}
}

func TestBandpass_UnityPeak(t *testing.T) {
	sr := 48000.0
	f0 := 2000.0
	c := Bandpass(f0, 2, sr)

	if db := c.MagnitudeDB(f0, sr); !almostEqual(db, 0, 1e-6) {
		t.Fatalf("|H(f0)| = %v dB, want 0", db)
	}

	// Well off-center the response must be attenuated.
	if db := c.MagnitudeDB(f0*8, sr); db > -10 {
		t.Fatalf("|H(8*f0)| = %v dB, want < -10", db)
	}
	if db := c.MagnitudeDB(f0/8, sr); db > -10 {
		t.Fatalf("|H(f0/8)| = %v dB, want < -10", db)
	}
}

func TestNotch_RejectsCenter(t *testing.T) {
	sr := 48000.0
	f0 := 3000.0
	c := Notch(f0, 5, sr)

	if db := c.MagnitudeDB(f0, sr); db > -60 {
		t.Fatalf("|H(f0)| = %v dB, want deep notch", db)
	}

	// Unity far from the notch.
	if db := c.MagnitudeDB(100, sr); !almostEqual(db, 0, 0.1) {
		t.Fatalf("|H(100)| = %v dB, want ~0", db)
	}
	if db := c.MagnitudeDB(20000, sr); !almostEqual(db, 0, 0.1) {
		t.Fatalf("|H(20000)| = %v dB, want ~0", db)
	}
}

func TestInvalidParameters(t *testing.T) {
	sr := 48000.0
	zero := biquad.Coefficients{}

	tests := []struct {
		name string
		c    biquad.Coefficients
	}{
		{"zero freq", Lowpass(0, DefaultQ, sr)},
		{"negative freq", Highpass(-100, DefaultQ, sr)},
		{"at nyquist", Bandpass(sr/2, DefaultQ, sr)},
		{"zero sample rate", Notch(1000, DefaultQ, 0)},
		{"nan freq", Lowpass(math.NaN(), DefaultQ, sr)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.c != zero {
				t.Fatalf("got %v, want zero coefficients", tt.c)
			}
		})
	}
}

func TestQFallback(t *testing.T) {
	sr := 48000.0
	def := Lowpass(1000, DefaultQ, sr)

	for _, q := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if got := Lowpass(1000, q, sr); got != def {
			t.Fatalf("Q=%v: got %v, want default-Q design %v", q, got, def)
		}
	}
}

func TestForKind(t *testing.T) {
	sr := 48000.0

	tests := []struct {
		kind Kind
		want biquad.Coefficients
	}{
		{KindLowpass, Lowpass(500, 1, sr)},
		{KindHighpass, Highpass(500, 1, sr)},
		{KindBandpass, Bandpass(500, 1, sr)},
		{KindNotch, Notch(500, 1, sr)},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := ForKind(tt.kind, 500, 1, sr); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseKind_RoundTrip(t *testing.T) {
	for _, k := range []Kind{KindLowpass, KindHighpass, KindBandpass, KindNotch} {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Fatalf("ParseKind(%q) = %v, %v", k.String(), got, ok)
		}
	}

	if _, ok := ParseKind("comb"); ok {
		t.Fatal("ParseKind accepted unknown kind")
	}
}
