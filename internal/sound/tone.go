// Package sound builds the short tones played as balls spawn.
package sound

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

const (
	LowPitch  = 220.0
	HighPitch = 880.0
)

// PitchFor maps a normalized value onto two octaves above LowPitch.
func PitchFor(norm float64) float64 {
	if norm < 0 {
		norm = 0
	}
	if norm > 1 {
		norm = 1
	}
	return LowPitch * math.Pow(HighPitch/LowPitch, norm)
}

// Blip is a sine tone at freq with a linear decay to silence over d.
func Blip(sr beep.SampleRate, freq float64, d time.Duration, volume float64) beep.Streamer {
	total := sr.N(d)
	pos := 0
	step := 2 * math.Pi * freq / float64(sr)
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			env := 1 - float64(pos)/float64(total)
			v := volume * env * math.Sin(step*float64(pos))
			samples[i][0], samples[i][1] = v, v
			pos++
			n++
		}
		return n, true
	})
}
