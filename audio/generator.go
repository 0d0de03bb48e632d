package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

// NewBlip returns a short sine beep. Higher scores pitch it up a little,
// capped at two octaves.
func NewBlip(sr beep.SampleRate, score int) (beep.Streamer, error) {
	freq := 440 * math.Pow(2, math.Min(float64(score), 24)/12)
	tone, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, err
	}
	return beep.Take(sr.N(70*time.Millisecond), tone), nil
}

// CrashGenerator is a falling buzz with an exponential decay, played when
// the snake dies. It ends after its duration.
type CrashGenerator struct {
	sr       beep.SampleRate
	pos      int
	duration int
	freq     float64
}

func NewCrashGenerator(sr beep.SampleRate, freq float64, d time.Duration) *CrashGenerator {
	return &CrashGenerator{
		sr:       sr,
		duration: sr.N(d),
		freq:     freq,
	}
}

func (g *CrashGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.duration {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.sr)

		// pitch drops by an octave over the whole sound
		freq := g.freq * math.Pow(0.5, float64(g.pos)/float64(g.duration))
		sample := 0.3*math.Sin(2*math.Pi*freq*t) +
			0.15*math.Sin(2*math.Pi*freq*2*t) +
			0.075*math.Sin(2*math.Pi*freq*3*t)
		sample *= math.Exp(-t * 6)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *CrashGenerator) Err() error {
	return nil
}
