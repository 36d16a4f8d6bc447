package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

const testRate = beep.SampleRate(8000)

func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for i := 0; i < 1000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			if v := max(smp[0], -smp[0]); v > peak {
				peak = v
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("Expected cue to end")
	return 0, 0
}

func TestEveryCueEnds(t *testing.T) {
	for _, k := range Kinds {
		t.Run(string(k), func(t *testing.T) {
			s := cue(k, testRate, 1)
			if s == nil {
				t.Fatalf("Expected a streamer for %q", k)
			}
			n, peak := drain(t, s)
			if n == 0 {
				t.Error("Expected samples, got none")
			}
			if peak == 0 {
				t.Error("Expected audible output at full gain")
			}
			if peak > 1 {
				t.Errorf("Expected output within [-1,1], got peak %v", peak)
			}
		})
	}
}

func TestToneLength(t *testing.T) {
	s := newTone(440, 100*time.Millisecond, waveSine, testRate)
	n, _ := drain(t, s)
	if want := testRate.N(100 * time.Millisecond); n != want {
		t.Errorf("Expected %d samples, got %d", want, n)
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	_, peak := drain(t, cue(Collect, testRate, 0))
	if peak != 0 {
		t.Errorf("Expected silence at zero gain, got peak %v", peak)
	}
}

func TestUnknownCue(t *testing.T) {
	if s := cue(Kind("gong"), testRate, 1); s != nil {
		t.Error("Expected nil streamer for unknown cue")
	}
}

func TestDisabledReturnsNull(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	p, err := New(cfg)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, ok := p.(Null); !ok {
		t.Errorf("Expected Null player, got %T", p)
	}
	p.Play(Collect)
	p.SetVolume(50)
	p.Close()
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DEEPDIVE_AUDIO_ENABLED", "false")
	t.Setenv("DEEPDIVE_AUDIO_VOLUME", "250")
	t.Setenv("DEEPDIVE_AUDIO_SAMPLE_RATE", "nope")

	cfg := DefaultConfig().ApplyEnv()
	if cfg.Enabled {
		t.Error("Expected audio disabled from env")
	}
	if cfg.Volume != 1 {
		t.Errorf("Expected volume clamped to 1, got %v", cfg.Volume)
	}
	if cfg.SampleRate != 44100 {
		t.Errorf("Expected malformed sample rate ignored, got %d", cfg.SampleRate)
	}
}
