// Package audio bridges the synchronous engine to a realtime playback
// stream. [Ring] is a bounded mono sample FIFO: the tick loop pushes whole
// blocks, the playback goroutine drains it through the beep.Streamer
// interface. The ring's free room is the readiness signal that throttles
// the scheduler — when playback falls behind, ticks are skipped rather
// than samples dropped.
package audio

import "sync"

// Ring is a bounded FIFO of mono samples safe for one producer (the tick
// loop) and one consumer (the playback goroutine).
type Ring struct {
	mu   sync.Mutex
	buf  []float64
	head int // read position
	size int // samples currently buffered
}

// NewRing creates a ring holding up to capacity samples.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring{buf: make([]float64, capacity)}
}

// Capacity returns the total sample capacity.
func (r *Ring) Capacity() int {
	return len(r.buf)
}

// Room returns how many more samples the ring can accept.
func (r *Ring) Room() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buf) - r.size
}

// Len returns the number of buffered samples.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Push appends block to the ring and returns the number of samples
// accepted. Samples beyond the available room are discarded; callers that
// check Room first never lose any.
func (r *Ring) Push(block []float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := len(r.buf) - r.size
	n := len(block)
	if n > room {
		n = room
	}

	write := (r.head + r.size) % len(r.buf)
	for i := 0; i < n; i++ {
		r.buf[write] = block[i]
		write++
		if write == len(r.buf) {
			write = 0
		}
	}
	r.size += n

	return n
}

// Stream implements beep.Streamer. The mono ring content is duplicated to
// both stereo channels; underruns produce silence so playback never halts.
func (r *Ring) Stream(samples [][2]float64) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range samples {
		var v float64
		if r.size > 0 {
			v = r.buf[r.head]
			r.head++
			if r.head == len(r.buf) {
				r.head = 0
			}
			r.size--
		}
		samples[i][0] = v
		samples[i][1] = v
	}

	return len(samples), true
}

// Err implements beep.Streamer. The ring never fails.
func (r *Ring) Err() error {
	return nil
}
