package term

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/deepdive/internal/render"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func TestBlitHalfBlocks(t *testing.T) {
	s := newScreen(t, 2, 1)
	px := image.NewRGBA(image.Rect(0, 0, 2, 2))
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	for x := 0; x < 2; x++ {
		px.SetRGBA(x, 0, red)
		px.SetRGBA(x, 1, blue)
	}

	Blit(s, px, 2, 1)

	r, _, style, _ := s.GetContent(1, 0)
	if r != halfBlock {
		t.Errorf("Expected half block, got %q", r)
	}
	want := tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 0, 0)).Background(tcell.NewRGBColor(0, 0, 255))
	if style != want {
		t.Errorf("Expected red over blue, got %v", style)
	}
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModShift), "w"},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), "space"},
		{tcell.NewEventKey(tcell.KeyRune, '3', tcell.ModNone), "3"},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), "arrowup"},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "escape"},
		{tcell.NewEventKey(tcell.KeyRune, '%', tcell.ModNone), ""},
	}
	for _, tt := range tests {
		if got := KeyName(tt.ev); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}

// recordingSink captures what the manager forwards.
type recordingSink struct {
	calls  []string
	moves  [][2]float64
	locked bool
}

func (r *recordingSink) KeyDown(name string) { r.calls = append(r.calls, "down:"+name) }
func (r *recordingSink) KeyUp(name string)   { r.calls = append(r.calls, "up:"+name) }
func (r *recordingSink) MouseMove(dx, dy float64) {
	r.moves = append(r.moves, [2]float64{dx, dy})
}
func (r *recordingSink) SetPointerLock(locked bool)      { r.locked = locked }
func (r *recordingSink) TouchStart(id int, x, y float64) {}
func (r *recordingSink) TouchMove(id int, x, y float64)  {}
func (r *recordingSink) TouchEnd(id int)                 {}

var _ render.InputSink = (*recordingSink)(nil)

func TestRepeatsHoldKeyAndExpiryReleases(t *testing.T) {
	m := NewInputManager(150*time.Millisecond, 8)
	start := time.Unix(0, 0)
	w := tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)

	m.keyEvent(w, start)
	m.keyEvent(w, start.Add(30*time.Millisecond))
	m.keyEvent(w, start.Add(60*time.Millisecond))
	m.expire(start.Add(200 * time.Millisecond))

	sink := &recordingSink{}
	m.Poll(sink)
	if len(sink.calls) != 1 || sink.calls[0] != "down:w" {
		t.Fatalf("Expected a single key down while repeating, got %v", sink.calls)
	}

	m.expire(start.Add(211 * time.Millisecond))
	m.Poll(sink)
	if len(sink.calls) != 2 || sink.calls[1] != "up:w" {
		t.Errorf("Expected synthesized key up after timeout, got %v", sink.calls)
	}
}

func TestMouseLocksOnClick(t *testing.T) {
	m := NewInputManager(150*time.Millisecond, 8)
	sink := &recordingSink{}

	m.mouseEvent(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone))
	m.Poll(sink)
	if sink.locked || len(sink.moves) != 0 {
		t.Fatal("Expected no capture before a click")
	}

	m.mouseEvent(tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone))
	m.mouseEvent(tcell.NewEventMouse(12, 4, tcell.ButtonNone, tcell.ModNone))
	m.Poll(sink)
	if !sink.locked || !m.PointerLocked() {
		t.Error("Expected pointer lock after click")
	}
	if len(sink.moves) != 1 || sink.moves[0] != [2]float64{16, -8} {
		t.Errorf("Expected one scaled move (16,-8), got %v", sink.moves)
	}

	m.ReleasePointer()
	m.mouseEvent(tcell.NewEventMouse(20, 20, tcell.ButtonNone, tcell.ModNone))
	m.Poll(sink)
	if len(sink.moves) != 1 {
		t.Errorf("Expected no moves after release, got %v", sink.moves)
	}
}

// stubGame draws a solid colour and counts calls.
type stubGame struct {
	updates, draws int
	err            error
}

func (g *stubGame) Update() error {
	g.updates++
	return g.err
}

func (g *stubGame) Draw(screen render.Image) {
	g.draws++
	screen.Fill(color.RGBA{0, 255, 0, 255})
}

func (g *stubGame) Layout(w, h int) (int, int) { return w, h }

func TestFrameDrawsGame(t *testing.T) {
	s := newScreen(t, 4, 3)
	cfg := DefaultConfig()
	cfg.ShowTitle = false
	e := NewEngine(cfg, s)
	g := &stubGame{}

	if err := e.Frame(g, time.Now()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if g.updates != 1 || g.draws != 1 {
		t.Errorf("Expected one update and draw, got %d and %d", g.updates, g.draws)
	}
	if w, h := e.frame.Size(); w != 4 || h != 6 {
		t.Errorf("Expected a 4x6 pixel frame, got %dx%d", w, h)
	}
	_, _, style, _ := s.GetContent(3, 2)
	green := tcell.NewRGBColor(0, 255, 0)
	if style != tcell.StyleDefault.Foreground(green).Background(green) {
		t.Errorf("Expected green cell, got %v", style)
	}

	g.err = render.ErrTerminated
	if err := e.Frame(g, time.Now()); err != render.ErrTerminated {
		t.Errorf("Expected terminate error to pass through, got %v", err)
	}
}
