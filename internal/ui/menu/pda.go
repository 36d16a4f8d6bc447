package menu

import (
	"fmt"
	"time"

	"chosenoffset.com/deepdive/internal/input"
	"chosenoffset.com/deepdive/internal/render"
)

// Entry is one PDA log line.
type Entry struct {
	Sender string
	Text   string
	At     time.Duration
}

// PDA shows the full message log, newest at the bottom.
type PDA struct {
	renderer render.Renderer
	entries  []Entry
	scroll   int // lines hidden below the view
}

// NewPDA creates the PDA overlay.
func NewPDA(r render.Renderer) *PDA {
	return &PDA{renderer: r}
}

// SetEntries replaces the log and scrolls to the newest entry.
func (p *PDA) SetEntries(entries []Entry) {
	p.entries = entries
	p.scroll = 0
}

// Handle scrolls the log. It returns true when the player closes the PDA.
func (p *PDA) Handle(cmd input.Command) bool {
	switch cmd.Action {
	case input.ActionUp:
		p.scroll = min(p.scroll+1, max(0, len(p.entries)-1))
	case input.ActionDown:
		p.scroll = max(0, p.scroll-1)
	case input.ActionBack:
		return true
	}
	return false
}

// Draw renders the log over the dive.
func (p *PDA) Draw(screen render.Image) {
	x, y, _, h := drawOverlay(p.renderer, screen, "PDA")

	lines := (h - 100) / 20
	end := len(p.entries) - p.scroll
	start := max(0, end-lines)

	row := y + 60
	for _, e := range p.entries[start:end] {
		stamp := fmt.Sprintf("[%02d:%02d]", int(e.At.Minutes()), int(e.At.Seconds())%60)
		p.renderer.DrawText(screen, stamp, x+20, row, hintColor, 1.0)
		p.renderer.DrawText(screen, e.Sender+":", x+90, row, titleColor, 1.0)
		p.renderer.DrawText(screen, e.Text, x+160, row, itemColor, 1.0)
		row += 20
	}

	p.renderer.DrawText(screen, "Up/Down: scroll    Tab / Esc: close", x+20, y+h-30, hintColor, 1.0)
}
