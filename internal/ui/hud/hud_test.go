package hud

import (
	"strings"
	"testing"

	"chosenoffset.com/deepdive/internal/player"
	"chosenoffset.com/deepdive/internal/render/rendertest"
)

func drawStatus(t *testing.T, s Status) *rendertest.Image {
	t.Helper()
	h := New(rendertest.NewRenderer(), nil, 800, 600)
	h.SetStatus(s)
	img := rendertest.NewImage(800, 600)
	h.Draw(img)
	return img
}

func texts(img *rendertest.Image) []string {
	var out []string
	for _, op := range img.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func baseStatus() Status {
	return Status{Stats: player.DefaultStats(), Pos: [3]float64{60, -12.4, 55}, Alive: true, PointerLocked: true}
}

func TestDepthReadout(t *testing.T) {
	got := texts(drawStatus(t, baseStatus()))
	if !contains(got, "Depth: 12m") {
		t.Errorf("Expected depth readout, got %v", got)
	}
}

func TestOxygenBanner(t *testing.T) {
	tests := []struct {
		name   string
		oxygen float64
		want   string
	}{
		{"healthy", 50, ""},
		{"at threshold", 15, ""},
		{"low", 14, "OXYGEN LOW"},
		{"empty", 0, "OUT OF OXYGEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := baseStatus()
			s.Stats.Oxygen = tt.oxygen
			got := texts(drawStatus(t, s))

			for _, banner := range []string{"OXYGEN LOW", "OUT OF OXYGEN"} {
				if contains(got, banner) != (banner == tt.want) {
					t.Errorf("Expected banner %q, got texts %v", tt.want, got)
				}
			}
		})
	}
}

func TestPromptAndClickToStart(t *testing.T) {
	s := baseStatus()
	s.Prompt = "Press E to collect"
	s.PointerLocked = false
	got := texts(drawStatus(t, s))

	if !contains(got, "Press E to collect") {
		t.Errorf("Expected prompt, got %v", got)
	}
	if !contains(got, "Click to start") {
		t.Errorf("Expected click to start hint, got %v", got)
	}
}

func TestDeadHidesPrompt(t *testing.T) {
	s := baseStatus()
	s.Alive = false
	s.Prompt = "Press E to collect"
	got := texts(drawStatus(t, s))

	if contains(got, s.Prompt) {
		t.Error("Expected no prompt when dead")
	}
	if !contains(got, "VITAL SIGNS LOST") {
		t.Errorf("Expected death banner, got %v", got)
	}
}

func TestQuickSlotsAndMessages(t *testing.T) {
	s := baseStatus()
	s.Quick[0] = Slot{Name: "Metal Salvage", Count: 3}
	s.Messages = []Line{
		{Sender: "AURORA", Text: "one"},
		{Sender: "PDA", Text: "two"},
		{Sender: "PDA", Text: "three"},
		{Sender: "PDA", Text: "four"},
	}
	got := texts(drawStatus(t, s))

	if !contains(got, "Met") || !contains(got, "3") {
		t.Errorf("Expected abbreviated slot label with count, got %v", got)
	}
	if contains(got, "one") {
		t.Error("Expected oldest message to scroll off")
	}
	if !contains(got, "four") {
		t.Errorf("Expected newest message, got %v", got)
	}
	if !contains(got, "9") {
		t.Errorf("Expected slot numbers, got %v", strings.Join(got, ","))
	}
}

func TestBarColor(t *testing.T) {
	if BarColor(0.9) == BarColor(0.5) || BarColor(0.5) == BarColor(0.1) {
		t.Error("Expected distinct colours per band")
	}
}
