// Package hud draws the in-dive heads-up display: depth, survival meters,
// quick slots, the interaction prompt, warnings and recent PDA messages.
package hud

import (
	"fmt"
	"image/color"
	"math"

	"chosenoffset.com/deepdive/internal/inventory"
	"chosenoffset.com/deepdive/internal/player"
	"chosenoffset.com/deepdive/internal/render"
)

// Config defines what to display in the HUD.
type Config struct {
	ShowPosition bool    `json:"show_position"` // Show world coordinates under the depth
	ShowMessages bool    `json:"show_messages"` // Show recent PDA messages
	MessageLines int     `json:"message_lines"` // How many messages to show
	Position     string  `json:"position"`      // "top-left", "top-right", "bottom-left", "bottom-right"
	Opacity      float64 `json:"opacity"`       // Background opacity (0-1)

	// OxygenWarning is the level below which the OXYGEN LOW banner shows.
	OxygenWarning float64 `json:"oxygen_warning"`
}

// DefaultConfig returns a sensible default HUD configuration
func DefaultConfig() *Config {
	return &Config{
		ShowPosition:  false,
		ShowMessages:  true,
		MessageLines:  3,
		Position:      "top-left",
		Opacity:       0.7,
		OxygenWarning: 15,
	}
}

// Slot is one quick slot as shown on the bar.
type Slot struct {
	Icon  string
	Name  string
	Count int
}

// Line is a PDA message as shown on the HUD.
type Line struct {
	Sender string
	Text   string
}

// Status is everything the HUD shows for one frame.
type Status struct {
	Stats         player.Stats
	Pos           [3]float64
	Quick         [inventory.QuickSlotCount]Slot
	Selected      int
	Prompt        string
	PointerLocked bool
	Alive         bool
	Messages      []Line // oldest first
}

// Colours
var (
	textColor    = color.RGBA{220, 235, 240, 255}
	dimColor     = color.RGBA{150, 170, 180, 255}
	shadowColor  = color.RGBA{0, 0, 0, 200}
	warningColor = color.RGBA{255, 70, 60, 255}
	promptColor  = color.RGBA{255, 240, 140, 255}
	slotColor    = color.RGBA{10, 30, 45, 180}
	selectColor  = color.RGBA{120, 220, 255, 255}
	borderColor  = color.RGBA{60, 90, 110, 255}
	senderColor  = color.RGBA{120, 200, 255, 255}
)

// HUD manages the heads-up display
type HUD struct {
	config       *Config
	renderer     render.Renderer
	screenWidth  int
	screenHeight int

	status Status

	// Cached layout
	panelWidth  int
	panelHeight int
}

// New creates a new HUD with the given configuration
func New(r render.Renderer, config *Config, screenWidth, screenHeight int) *HUD {
	if config == nil {
		config = DefaultConfig()
	}
	return &HUD{
		config:       config,
		renderer:     r,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		panelWidth:   180,
	}
}

// SetStatus replaces what the next Draw shows.
func (h *HUD) SetStatus(s Status) {
	h.status = s
}

// SetScreenSize updates the screen dimensions
func (h *HUD) SetScreenSize(width, height int) {
	h.screenWidth = width
	h.screenHeight = height
}

// Draw renders the HUD to the screen
func (h *HUD) Draw(screen render.Image) {
	if screen == nil {
		return
	}
	if t, ok := h.renderer.(interface{ Tag(string) }); ok {
		t.Tag("hud")
	}

	x, y := h.calculatePosition()
	h.drawPanel(screen, x, y)
	currentY := y + 8

	s := h.status.Stats
	h.drawText(screen, fmt.Sprintf("Depth: %dm", int(math.Round(math.Abs(h.status.Pos[1])))), x+8, currentY, textColor)
	currentY += 16
	if h.config.ShowPosition {
		pos := fmt.Sprintf("Pos: %.0f, %.0f", h.status.Pos[0], h.status.Pos[2])
		h.drawText(screen, pos, x+8, currentY, dimColor)
		currentY += 16
	}

	h.drawDivider(screen, x+4, currentY, h.panelWidth-8)
	currentY += 8

	currentY = h.drawBar(screen, x+8, currentY, "HP", s.Health, 100)
	currentY = h.drawBar(screen, x+8, currentY, "O2", s.Oxygen, s.MaxOxygen)
	currentY = h.drawBar(screen, x+8, currentY, "Food", s.Hunger, 100)
	h.drawBar(screen, x+8, currentY, "Water", s.Thirst, 100)

	h.drawQuickSlots(screen)
	h.drawPrompt(screen)
	h.drawWarnings(screen)
	if h.config.ShowMessages {
		h.drawMessages(screen)
	}
}

// calculatePosition returns the top-left corner of the HUD panel
func (h *HUD) calculatePosition() (int, int) {
	padding := 10
	h.panelHeight = h.calculatePanelHeight()

	switch h.config.Position {
	case "top-right":
		return h.screenWidth - h.panelWidth - padding, padding
	case "bottom-left":
		return padding, h.screenHeight - h.panelHeight - padding
	case "bottom-right":
		return h.screenWidth - h.panelWidth - padding, h.screenHeight - h.panelHeight - padding
	default: // "top-left"
		return padding, padding
	}
}

// drawPanel draws the semi-transparent background panel
func (h *HUD) drawPanel(screen render.Image, x, y int) {
	alpha := uint8(math.Max(0, math.Min(1, h.config.Opacity)) * 255)
	fx, fy := float32(x), float32(y)
	w, ht := float32(h.panelWidth), float32(h.panelHeight)

	h.renderer.FillRect(screen, fx, fy, w, ht, color.RGBA{5, 20, 30, alpha})
	border := color.RGBA{borderColor.R, borderColor.G, borderColor.B, alpha}
	h.renderer.StrokeLine(screen, fx, fy, fx+w, fy, 1, border)
	h.renderer.StrokeLine(screen, fx, fy+ht, fx+w, fy+ht, 1, border)
	h.renderer.StrokeLine(screen, fx, fy, fx, fy+ht, 1, border)
	h.renderer.StrokeLine(screen, fx+w, fy, fx+w, fy+ht, 1, border)
}

// calculatePanelHeight calculates the height needed for all panel elements
func (h *HUD) calculatePanelHeight() int {
	height := 16 + 8 // depth line and divider
	if h.config.ShowPosition {
		height += 16
	}
	height += 4 * 18 // bars
	return height + 8
}

// drawBar draws one labelled meter and returns the next line's y.
func (h *HUD) drawBar(screen render.Image, x, y int, label string, value, maxValue float64) int {
	labelWidth := 44
	barWidth := h.panelWidth - 16 - labelWidth
	barHeight := 12

	h.drawText(screen, label, x, y, dimColor)

	bx := float32(x + labelWidth)
	h.renderer.FillRect(screen, bx, float32(y), float32(barWidth), float32(barHeight), color.RGBA{40, 20, 20, 255})

	pct := 0.0
	if maxValue > 0 {
		pct = math.Max(0, math.Min(1, value/maxValue))
	}
	if pct > 0 {
		fillWidth := math.Max(1, float64(barWidth-2)*pct)
		h.renderer.FillRect(screen, bx+1, float32(y+1), float32(fillWidth), float32(barHeight-2), BarColor(pct))
	}

	txt := fmt.Sprintf("%d", int(math.Round(value)))
	tw, _ := h.renderer.MeasureText(txt, 1)
	h.drawText(screen, txt, x+labelWidth+barWidth/2-tw/2, y, textColor)

	return y + barHeight + 6
}

// BarColor picks a meter colour from its fill fraction.
func BarColor(pct float64) color.RGBA {
	switch {
	case pct > 0.6:
		return color.RGBA{50, 180, 90, 255}
	case pct > 0.3:
		return color.RGBA{200, 180, 50, 255}
	default:
		return color.RGBA{200, 50, 50, 255}
	}
}

func (h *HUD) drawQuickSlots(screen render.Image) {
	const size, gap = 40, 4
	total := inventory.QuickSlotCount*size + (inventory.QuickSlotCount-1)*gap
	x0 := (h.screenWidth - total) / 2
	y := h.screenHeight - size - 12

	for i, slot := range h.status.Quick {
		x := x0 + i*(size+gap)
		fx, fy := float32(x), float32(y)
		h.renderer.FillRect(screen, fx, fy, size, size, slotColor)

		edge, width := color.Color(borderColor), float32(1)
		if i == h.status.Selected {
			edge, width = selectColor, 2
		}
		h.renderer.StrokeLine(screen, fx, fy, fx+size, fy, width, edge)
		h.renderer.StrokeLine(screen, fx, fy+size, fx+size, fy+size, width, edge)
		h.renderer.StrokeLine(screen, fx, fy, fx, fy+size, width, edge)
		h.renderer.StrokeLine(screen, fx+size, fy, fx+size, fy+size, width, edge)

		h.renderer.DrawText(screen, fmt.Sprintf("%d", i+1), x+3, y+2, dimColor, 0.8)
		if slot.Count == 0 {
			continue
		}
		label := slot.Icon
		if label == "" {
			label = abbreviate(slot.Name)
		}
		h.drawText(screen, label, x+10, y+14, textColor)
		if slot.Count > 1 {
			h.renderer.DrawText(screen, fmt.Sprintf("%d", slot.Count), x+size-14, y+size-14, textColor, 0.8)
		}
	}
}

func abbreviate(name string) string {
	r := []rune(name)
	if len(r) > 3 {
		r = r[:3]
	}
	return string(r)
}

func (h *HUD) drawPrompt(screen render.Image) {
	if h.status.Prompt == "" || !h.status.Alive {
		return
	}
	h.drawCentered(screen, h.status.Prompt, h.screenHeight-90, promptColor)
}

func (h *HUD) drawWarnings(screen render.Image) {
	cy := h.screenHeight / 2
	oxygen := h.status.Stats.Oxygen

	switch {
	case !h.status.Alive:
		h.drawCentered(screen, "VITAL SIGNS LOST", cy-40, warningColor)
	case oxygen <= 0:
		h.drawCentered(screen, "OUT OF OXYGEN", cy-40, warningColor)
	case oxygen < h.config.OxygenWarning:
		h.drawCentered(screen, "OXYGEN LOW", cy-40, warningColor)
	}

	if !h.status.PointerLocked && h.status.Alive {
		h.drawCentered(screen, "Click to start", cy+20, textColor)
	}
}

func (h *HUD) drawMessages(screen render.Image) {
	msgs := h.status.Messages
	n := h.config.MessageLines
	if n <= 0 || len(msgs) == 0 {
		return
	}
	if len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}

	y := 10
	for _, m := range msgs {
		sender := m.Sender + ": "
		sw, _ := h.renderer.MeasureText(sender, 1)
		tw, _ := h.renderer.MeasureText(m.Text, 1)
		x := h.screenWidth - sw - tw - 10
		h.drawText(screen, sender, x, y, senderColor)
		h.drawText(screen, m.Text, x+sw, y, textColor)
		y += 16
	}
}

// drawDivider draws a horizontal line
func (h *HUD) drawDivider(screen render.Image, x, y, width int) {
	h.renderer.FillRect(screen, float32(x), float32(y), float32(width), 1, color.RGBA{80, 100, 120, 200})
}

func (h *HUD) drawCentered(screen render.Image, text string, y int, clr color.Color) {
	w, _ := h.renderer.MeasureText(text, 1)
	h.drawText(screen, text, (h.screenWidth-w)/2, y, clr)
}

// drawText draws text with a shadow for readability
func (h *HUD) drawText(screen render.Image, text string, x, y int, clr color.Color) {
	h.renderer.DrawText(screen, text, x+1, y+1, shadowColor, 1)
	h.renderer.DrawText(screen, text, x, y, clr, 1)
}
