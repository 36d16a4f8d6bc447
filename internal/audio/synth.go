package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// wave is an oscillator shape.
type wave int

const (
	waveSine wave = iota
	waveSquare
	waveNoise
)

// tone is a fixed-length oscillator with a linear attack and release.
type tone struct {
	freq    float64
	phase   float64
	wave    wave
	rate    beep.SampleRate
	pos     int
	total   int
	attack  int
	release int
	rng     *rand.Rand
}

func newTone(freq float64, dur time.Duration, w wave, rate beep.SampleRate) *tone {
	return &tone{
		freq:    freq,
		wave:    w,
		rate:    rate,
		total:   rate.N(dur),
		attack:  rate.N(5 * time.Millisecond),
		release: rate.N(dur / 3),
		rng:     rand.New(rand.NewPCG(uint64(freq), 1)),
	}
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}

		var v float64
		switch t.wave {
		case waveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case waveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case waveNoise:
			v = t.rng.Float64()*2 - 1
		}
		v *= t.envelope()

		samples[i][0] = v
		samples[i][1] = v
		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

func (t *tone) envelope() float64 {
	if t.attack > 0 && t.pos < t.attack {
		return float64(t.pos) / float64(t.attack)
	}
	if rs := t.total - t.release; t.release > 0 && t.pos >= rs {
		return float64(t.total-t.pos) / float64(t.release)
	}
	return 1
}

// withVolume scales s by gain. Zero gain is silent rather than -Inf.
func withVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// cue builds the streamer for kind at the given master gain. Unknown kinds
// yield nil.
func cue(kind Kind, rate beep.SampleRate, gain float64) beep.Streamer {
	var s beep.Streamer
	switch kind {
	case Collect:
		s = beep.Seq(
			newTone(660, 60*time.Millisecond, waveSine, rate),
			newTone(990, 90*time.Millisecond, waveSine, rate),
		)
	case Use:
		s = newTone(520, 80*time.Millisecond, waveSine, rate)
	case Craft:
		s = beep.Seq(
			newTone(440, 70*time.Millisecond, waveSine, rate),
			newTone(554, 70*time.Millisecond, waveSine, rate),
			newTone(659, 120*time.Millisecond, waveSine, rate),
		)
	case Alert:
		s = beep.Seq(
			newTone(880, 120*time.Millisecond, waveSquare, rate),
			beep.Silence(rate.N(80*time.Millisecond)),
			newTone(880, 120*time.Millisecond, waveSquare, rate),
		)
	case Deny:
		s = newTone(140, 150*time.Millisecond, waveSquare, rate)
	case Splash:
		s = newTone(0, 250*time.Millisecond, waveNoise, rate)
	case Death:
		s = beep.Mix(
			newTone(110, 600*time.Millisecond, waveSine, rate),
			withVolume(newTone(0, 600*time.Millisecond, waveNoise, rate), 0.3),
		)
	case MenuMove:
		sine, err := generators.SineTone(rate, 1200)
		if err != nil {
			return nil
		}
		s = beep.Take(rate.N(25*time.Millisecond), sine)
	default:
		return nil
	}
	return withVolume(s, gain*0.4)
}
