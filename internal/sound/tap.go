package sound

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// Tap wraps a beep.Streamer and records the last samples played into a ring
// buffer, so the renderer can pulse with the audio. Stream runs on the
// speaker goroutine; Level and Snapshot may be called from any other.
type Tap struct {
	Source beep.Streamer

	mu     sync.RWMutex
	buffer [][2]float64
	next   int
	filled int
}

func NewTap(src beep.Streamer, ringSize int) *Tap {
	if ringSize < 1 {
		ringSize = 1
	}
	return &Tap{Source: src, buffer: make([][2]float64, ringSize)}
}

func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.buffer[t.next] = samples[i]
			t.next = (t.next + 1) % len(t.buffer)
		}
		t.filled += n
		if t.filled > len(t.buffer) {
			t.filled = len(t.buffer)
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *Tap) Err() error { return t.Source.Err() }

// Snapshot returns up to the last n samples, oldest first.
func (t *Tap) Snapshot(n int) [][2]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n > t.filled {
		n = t.filled
	}
	out := make([][2]float64, n)
	start := t.next - n
	if start < 0 {
		start += len(t.buffer)
	}
	for i := 0; i < n; i++ {
		out[i] = t.buffer[(start+i)%len(t.buffer)]
	}
	return out
}

// Level is the RMS of the last n samples, mixed down to mono.
func (t *Tap) Level(n int) float64 {
	s := t.Snapshot(n)
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s {
		m := (v[0] + v[1]) * 0.5
		sum += m * m
	}
	return math.Sqrt(sum / float64(len(s)))
}

// Clear forgets recorded samples.
func (t *Tap) Clear() {
	t.mu.Lock()
	t.next, t.filled = 0, 0
	t.mu.Unlock()
}
