// Package menu implements the keyboard-driven screens shown outside the dive:
// the main menu, settings, and the fabricator, PDA and inventory overlays.
package menu

import (
	"image/color"

	"chosenoffset.com/deepdive/internal/input"
	"chosenoffset.com/deepdive/internal/render"
)

// Choice is what the main menu asks the game to do.
type Choice int

const (
	ChoiceNone Choice = iota
	ChoiceStart
	ChoiceSettings
	ChoiceQuit
)

var mainItems = []struct {
	label  string
	choice Choice
}{
	{"Start Game", ChoiceStart},
	{"Settings", ChoiceSettings},
	{"Quit", ChoiceQuit},
}

var controls = []string{
	"WASD / arrows: swim    Space: ascend    Shift / C: descend",
	"Mouse: look    E: collect / fabricator    F: use item",
	"1-9: quick slot    I: inventory    Tab / P: PDA    Esc: menu",
}

// Colours shared by every screen.
var (
	backgroundColor = color.RGBA{4, 18, 32, 255}
	overlayColor    = color.RGBA{4, 18, 32, 220}
	titleColor      = color.RGBA{140, 220, 255, 255}
	itemColor       = color.RGBA{190, 205, 215, 255}
	selectedColor   = color.RGBA{255, 255, 120, 255}
	disabledColor   = color.RGBA{110, 120, 130, 255}
	hintColor       = color.RGBA{130, 150, 160, 255}
)

// MainMenu represents the main menu screen.
type MainMenu struct {
	cursor       cursor
	renderer     render.Renderer
	screenWidth  int
	screenHeight int
}

// NewMainMenu creates a new main menu.
func NewMainMenu(r render.Renderer, width, height int) *MainMenu {
	return &MainMenu{
		renderer:     r,
		screenWidth:  width,
		screenHeight: height,
	}
}

// SetScreenSize updates the layout dimensions.
func (m *MainMenu) SetScreenSize(width, height int) {
	m.screenWidth, m.screenHeight = width, height
}

// Selected returns the highlighted item index.
func (m *MainMenu) Selected() int { return m.cursor.pos }

// Handle applies one command and returns the chosen action, if any.
func (m *MainMenu) Handle(cmd input.Command) Choice {
	switch cmd.Action {
	case input.ActionUp:
		m.cursor.move(-1, len(mainItems))
	case input.ActionDown:
		m.cursor.move(1, len(mainItems))
	case input.ActionConfirm, input.ActionCollect:
		return mainItems[m.cursor.pos].choice
	}
	return ChoiceNone
}

// Draw renders the menu to the screen.
func (m *MainMenu) Draw(screen render.Image) {
	screen.Fill(backgroundColor)

	m.renderer.DrawText(screen, "DEEPDIVE", 50, 30, titleColor, 3.0)
	m.renderer.DrawText(screen, "Descent into Planet 4546B", 50, 80, itemColor, 1.5)

	y := 140
	for i, item := range mainItems {
		clr := itemColor
		if i == m.cursor.pos {
			clr = selectedColor
			m.renderer.DrawText(screen, ">", 50, y, clr, 1.5)
		}
		m.renderer.DrawText(screen, item.label, 70, y, clr, 1.5)
		y += 36
	}

	instructionY := m.screenHeight - 20*len(controls) - 20
	for i, line := range controls {
		m.renderer.DrawText(screen, line, 20, instructionY+i*20, hintColor, 1.0)
	}
}

// Helper types and functions

// cursor is a wrapping selection index.
type cursor struct {
	pos int
}

func (c *cursor) move(delta, n int) {
	if n <= 0 {
		c.pos = 0
		return
	}
	c.pos = ((c.pos+delta)%n + n) % n
}

func (c *cursor) clamp(n int) {
	if c.pos >= n {
		c.pos = max(0, n-1)
	}
}

// drawOverlay dims the dive behind a panel and draws its title.
func drawOverlay(r render.Renderer, screen render.Image, title string) (x, y, w, h int) {
	sw, sh := screen.Size()
	w, h = sw*3/4, sh*3/4
	x, y = (sw-w)/2, (sh-h)/2
	r.FillRect(screen, float32(x), float32(y), float32(w), float32(h), overlayColor)
	r.StrokeLine(screen, float32(x), float32(y), float32(x+w), float32(y), 2, titleColor)
	r.DrawText(screen, title, x+20, y+16, titleColor, 2.0)
	return x, y, w, h
}
