package menu

import (
	"fmt"

	"chosenoffset.com/deepdive/internal/input"
	"chosenoffset.com/deepdive/internal/render"
	"chosenoffset.com/deepdive/internal/settings"
)

// FOVStep is how far one left/right press moves the field of view, in degrees.
const FOVStep = 5

// VolumeStep is how far one left/right press moves the volume.
const VolumeStep = 10

// Result is the outcome of a settings command.
type Result int

const (
	ResultNone Result = iota
	ResultApply
	ResultCancel
)

const (
	rowGraphics = iota
	rowVolume
	rowFOV
	rowApply
	rowCount
)

// SettingsMenu edits a working copy of the settings. Nothing changes for the
// game until the player applies.
type SettingsMenu struct {
	cursor   cursor
	renderer render.Renderer
	working  settings.Settings
}

// NewSettingsMenu creates a settings screen starting from current.
func NewSettingsMenu(r render.Renderer, current settings.Settings) *SettingsMenu {
	return &SettingsMenu{renderer: r, working: current.Normalized()}
}

// Reset discards edits and starts over from current.
func (m *SettingsMenu) Reset(current settings.Settings) {
	m.working = current.Normalized()
	m.cursor.pos = 0
}

// Value returns the edited settings.
func (m *SettingsMenu) Value() settings.Settings { return m.working }

// Handle applies one command.
func (m *SettingsMenu) Handle(cmd input.Command) Result {
	switch cmd.Action {
	case input.ActionUp:
		m.cursor.move(-1, rowCount)
	case input.ActionDown:
		m.cursor.move(1, rowCount)
	case input.ActionLeft:
		m.adjust(-1)
	case input.ActionRight:
		m.adjust(1)
	case input.ActionConfirm:
		if m.cursor.pos == rowApply {
			return ResultApply
		}
		m.adjust(1)
	case input.ActionBack:
		return ResultCancel
	}
	return ResultNone
}

func (m *SettingsMenu) adjust(dir int) {
	s := m.working
	switch m.cursor.pos {
	case rowGraphics:
		if dir > 0 {
			s.Graphics = s.Graphics.Next()
		} else {
			s.Graphics = s.Graphics.Prev()
		}
	case rowVolume:
		s.Volume += dir * VolumeStep
	case rowFOV:
		s = s.WithFOVDegrees(s.FOVDegrees() + dir*FOVStep)
	}
	m.working = s.Normalized()
}

// Draw renders the settings screen.
func (m *SettingsMenu) Draw(screen render.Image) {
	screen.Fill(backgroundColor)
	m.renderer.DrawText(screen, "SETTINGS", 50, 30, titleColor, 3.0)

	rows := [rowCount]string{
		fmt.Sprintf("Graphics:  < %s >", m.working.Graphics),
		fmt.Sprintf("Volume:    < %d%% >", m.working.Volume),
		fmt.Sprintf("FOV:       < %d° >", m.working.FOVDegrees()),
		"Apply",
	}
	y := 110
	for i, row := range rows {
		clr := itemColor
		if i == m.cursor.pos {
			clr = selectedColor
			m.renderer.DrawText(screen, ">", 50, y, clr, 1.5)
		}
		m.renderer.DrawText(screen, row, 70, y, clr, 1.5)
		y += 36
	}

	_, h := screen.Size()
	m.renderer.DrawText(screen, "Left/Right: change    Enter: apply    Esc: back", 20, h-40, hintColor, 1.0)
}
