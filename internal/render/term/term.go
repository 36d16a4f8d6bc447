// Package term runs the game in a terminal. Frames are drawn with the software
// rasterizer and shown as half-block characters, two pixels per cell.
package term

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/sync/errgroup"

	"chosenoffset.com/deepdive/internal/render"
	"chosenoffset.com/deepdive/internal/render/raster"
)

// halfBlock paints the upper pixel as foreground and the lower as background.
const halfBlock = '▀'

// Config tunes the terminal frontend.
type Config struct {
	FrameInterval time.Duration `json:"frame_interval"`
	// HoldTimeout is how long a key counts as held after its last press or
	// repeat. Terminals report no key releases.
	HoldTimeout time.Duration `json:"hold_timeout"`
	MouseScale  float64       `json:"mouse_scale"` // look delta per cell of mouse travel
	ShowTitle   bool          `json:"show_title"`
}

// DefaultConfig returns the stock terminal settings.
func DefaultConfig() Config {
	return Config{
		FrameInterval: 16 * time.Millisecond,
		HoldTimeout:   150 * time.Millisecond,
		MouseScale:    8,
		ShowTitle:     true,
	}
}

// NewBackend creates a terminal backend on the controlling tty.
func NewBackend(cfg Config) (render.Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return render.Backend{}, fmt.Errorf("failed to create terminal screen: %w", err)
	}
	eng := NewEngine(cfg, screen)
	return render.Backend{
		Renderer: raster.NewRenderer(),
		Input:    eng.Input(),
		Engine:   eng,
	}, nil
}

// Engine implements render.Engine over a tcell screen.
type Engine struct {
	cfg    Config
	screen tcell.Screen
	input  *InputManager
	title  string
	frame  *raster.Image

	finiOnce sync.Once
}

// NewEngine wraps screen. The screen is initialized by RunGame.
func NewEngine(cfg Config, screen tcell.Screen) *Engine {
	return &Engine{
		cfg:    cfg,
		screen: screen,
		input:  NewInputManager(cfg.HoldTimeout, cfg.MouseScale),
	}
}

// Input returns the input manager fed by this engine's event pump.
func (e *Engine) Input() *InputManager { return e.input }

// SetWindowSize is a no-op; the terminal decides its own size.
func (e *Engine) SetWindowSize(width, height int) {}

// SetWindowTitle sets the text shown on the top row.
func (e *Engine) SetWindowTitle(title string) { e.title = title }

// SetWindowResizable is a no-op; terminals always resize.
func (e *Engine) SetWindowResizable(resizable bool) {}

// RunGame initializes the terminal and runs the frame loop until the game
// returns render.ErrTerminated, an error, or the user presses Ctrl-C.
func (e *Engine) RunGame(game render.Game) error {
	if err := e.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer e.fini()
	e.screen.HideCursor()
	e.screen.EnableMouse()
	e.screen.Clear()

	events := make(chan tcell.Event, 64)
	g, ctx := errgroup.WithContext(context.Background())

	// PollEvent blocks until the screen is finalized, which the frame loop
	// does on its way out.
	g.Go(func() error {
		for {
			ev := e.screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		defer e.fini()
		return e.loop(ctx, game, events)
	})

	return g.Wait()
}

func (e *Engine) fini() {
	e.finiOnce.Do(e.screen.Fini)
}

func (e *Engine) loop(ctx context.Context, game render.Game, events <-chan tcell.Event) error {
	ticker := time.NewTicker(e.cfg.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if e.handle(ev, time.Now()) {
				return nil
			}
		case now := <-ticker.C:
			if err := e.Frame(game, now); err != nil {
				if errors.Is(err, render.ErrTerminated) {
					return nil
				}
				return err
			}
		}
	}
}

// handle routes one terminal event. It reports true when the user asked to quit.
func (e *Engine) handle(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return true
		}
		e.input.keyEvent(ev, now)
	case *tcell.EventMouse:
		e.input.mouseEvent(ev)
	case *tcell.EventResize:
		e.screen.Sync()
	}
	return false
}

// Frame runs one update and draw at time now and shows the result.
func (e *Engine) Frame(game render.Game, now time.Time) error {
	e.input.expire(now)
	if err := game.Update(); err != nil {
		return err
	}

	cols, rows := e.screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil
	}
	lw, lh := game.Layout(cols, rows*2)
	if e.frame == nil || e.frame.Bounds().Dx() != lw || e.frame.Bounds().Dy() != lh {
		e.frame = raster.NewImage(lw, lh)
	}
	e.frame.Clear()
	game.Draw(e.frame)

	Blit(e.screen, e.frame.Pixels(), cols, rows)
	if e.cfg.ShowTitle && e.title != "" {
		drawString(e.screen, 0, 0, e.title, tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack))
	}
	e.screen.Show()
	return nil
}

// Blit samples px into a cols x rows grid of half-block cells.
func Blit(s tcell.Screen, px *image.RGBA, cols, rows int) {
	b := px.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}
	for y := 0; y < rows; y++ {
		ty := b.Min.Y + (2*y)*h/(2*rows)
		by := b.Min.Y + (2*y+1)*h/(2*rows)
		for x := 0; x < cols; x++ {
			sx := b.Min.X + x*w/cols
			top := cellColor(px, sx, ty)
			bottom := cellColor(px, sx, by)
			s.SetContent(x, y, halfBlock, nil, tcell.StyleDefault.Foreground(top).Background(bottom))
		}
	}
}

func cellColor(px *image.RGBA, x, y int) tcell.Color {
	c := px.RGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// drawString writes text at (x, y), advancing by each rune's display width.
func drawString(s tcell.Screen, x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += max(1, runewidth.RuneWidth(r))
	}
	return x
}
