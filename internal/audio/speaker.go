package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// speakerPlayer mixes cues into the system speaker.
type speakerPlayer struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	gain   float64
	mixer  *beep.Mixer
	closed bool
}

func newSpeakerPlayer(cfg Config) (*speakerPlayer, error) {
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", cfg.SampleRate)
	}
	rate := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(cfg.Buffer)); err != nil {
		return nil, err
	}

	p := &speakerPlayer{rate: rate, gain: cfg.Volume, mixer: &beep.Mixer{}}
	speaker.Play(p.mixer)
	return p, nil
}

func (p *speakerPlayer) Play(kind Kind) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	s := cue(kind, p.rate, p.gain)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

func (p *speakerPlayer) SetVolume(percent int) {
	p.mu.Lock()
	p.gain = volumeFraction(percent)
	p.mu.Unlock()
}

func (p *speakerPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}
