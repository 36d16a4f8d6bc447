package game

import (
	"fmt"
	"log"

	"chosenoffset.com/deepdive/internal/audio"
	"chosenoffset.com/deepdive/internal/core"
	"chosenoffset.com/deepdive/internal/input"
	"chosenoffset.com/deepdive/internal/interaction"
	"chosenoffset.com/deepdive/internal/loop"
	"chosenoffset.com/deepdive/internal/render"
	"chosenoffset.com/deepdive/internal/render/raycast"
	"chosenoffset.com/deepdive/internal/settings"
	"chosenoffset.com/deepdive/internal/simulation"
	"chosenoffset.com/deepdive/internal/ui/hud"
	"chosenoffset.com/deepdive/internal/ui/menu"
)

// Manager handles the overall game state, including menu and gameplay.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int
	State        State
	Renderer     render.Renderer
	InputMgr     render.InputManager

	// Session is the current dive. It is nil until the first Start and
	// survives trips to the menu.
	Session *Session

	Settings     settings.Settings
	SettingsPath string // where applied settings are saved; empty disables saving

	cfg   *simulation.Config
	sound audio.Player
	input *input.Aggregator
	clock *loop.Stopwatch

	raycaster *raycast.Renderer
	lastFrame raycast.FrameStats

	HUD            *hud.HUD
	MainMenu       *menu.MainMenu
	SettingsMenu   *menu.SettingsMenu
	Fabricator     *menu.Fabricator
	PDA            *menu.PDA
	InventoryPanel *menu.InventoryPanel
}

// NewManager creates a new game manager. sound may be nil.
func NewManager(r render.Renderer, in render.InputManager, cfg *simulation.Config, set settings.Settings, sound audio.Player, width, height int) *Manager {
	if cfg == nil {
		cfg = simulation.DefaultConfig()
	}
	if sound == nil {
		sound = audio.Null{}
	}
	set = set.Normalized()
	sound.SetVolume(set.Volume)

	agg := input.NewAggregator(cfg.Input)
	agg.SetViewport(width, height)

	return &Manager{
		ScreenWidth:    width,
		ScreenHeight:   height,
		State:          StateMenu,
		Renderer:       r,
		InputMgr:       in,
		Settings:       set,
		cfg:            cfg,
		sound:          sound,
		input:          agg,
		clock:          loop.NewStopwatch(),
		raycaster:      raycast.New(r, cfg.Render, core.NewRNG(cfg.Terrain.Seed).Fork()),
		HUD:            hud.New(r, nil, width, height),
		MainMenu:       menu.NewMainMenu(r, width, height),
		SettingsMenu:   menu.NewSettingsMenu(r, set),
		Fabricator:     menu.NewFabricator(r, nil, nil),
		PDA:            menu.NewPDA(r),
		InventoryPanel: menu.NewInventoryPanel(r, nil),
	}
}

// Input returns the aggregator the backend feeds.
func (m *Manager) Input() *input.Aggregator { return m.input }

// LastFrame returns the raycaster's counters for the most recent dive frame.
func (m *Manager) LastFrame() raycast.FrameStats { return m.lastFrame }

// Update updates the game state.
func (m *Manager) Update() error {
	dt := m.clock.Lap()
	if m.InputMgr != nil {
		m.InputMgr.Poll(m.input)
	}
	for _, cmd := range m.input.TakeCommands() {
		if err := m.handle(cmd); err != nil {
			return err
		}
	}
	if m.Session != nil && m.State.Simulates() {
		m.Session.Advance(dt)
	}
	return nil
}

func (m *Manager) handle(cmd input.Command) error {
	if cmd.Action == input.ActionUp || cmd.Action == input.ActionDown {
		if m.State != StatePlaying {
			m.sound.Play(audio.MenuMove)
		}
	}

	switch m.State {
	case StateMenu:
		switch m.MainMenu.Handle(cmd) {
		case menu.ChoiceStart:
			return m.startDive()
		case menu.ChoiceSettings:
			m.SettingsMenu.Reset(m.Settings)
			m.transition(TriggerOpenSettings)
		case menu.ChoiceQuit:
			log.Println("Quit selected")
			return render.ErrTerminated
		}

	case StateSettings:
		switch m.SettingsMenu.Handle(cmd) {
		case menu.ResultApply:
			m.ApplySettings(m.SettingsMenu.Value())
			m.transition(TriggerApplySettings)
		case menu.ResultCancel:
			m.transition(TriggerEscape)
		}

	case StatePlaying:
		m.handlePlaying(cmd)

	case StatePDA:
		if cmd.Action == input.ActionPDA {
			m.transition(TriggerTogglePDA)
		} else if m.PDA.Handle(cmd) {
			m.transition(TriggerClose)
		}

	case StateFabricator:
		id, closed := m.Fabricator.Handle(cmd)
		if id != "" && m.Session != nil {
			// Failures are reported to the player through the PDA.
			m.Session.Craft(id)
		}
		if closed {
			m.transition(TriggerClose)
		}

	case StateInventory:
		if m.InventoryPanel.Handle(cmd) {
			if cmd.Action == input.ActionInventory {
				m.transition(TriggerToggleInventory)
			} else {
				m.transition(TriggerClose)
			}
		}
	}
	return nil
}

func (m *Manager) handlePlaying(cmd input.Command) {
	s := m.Session
	switch cmd.Action {
	case input.ActionBack:
		m.transition(TriggerEscape)
	case input.ActionPDA:
		m.PDA.SetEntries(entries(s.Messages()))
		m.transition(TriggerTogglePDA)
	case input.ActionInventory:
		m.InventoryPanel.Bind(s.Inventory())
		m.transition(TriggerToggleInventory)
	case input.ActionCollect:
		if p, ok := s.Collect(); ok && p.Kind == interaction.PromptFabricator {
			m.Fabricator.Bind(s.Book(), s.Inventory())
			m.transition(TriggerOpenFabricator)
		}
	case input.ActionUse:
		s.Use()
	case input.ActionSlot:
		s.SelectSlot(cmd.Slot)
	}
}

// startDive resumes the current dive, or generates a new one when there is
// none or the diver died.
func (m *Manager) startDive() error {
	if m.Session == nil || !m.Session.Alive() {
		s, err := NewSession(m.cfg, m.input, m.sound)
		if err != nil {
			return fmt.Errorf("failed to start session: %w", err)
		}
		m.Session = s
	}
	m.transition(TriggerStart)
	return nil
}

// ApplySettings makes s current. The renderer and integrator read it from the
// next tick.
func (m *Manager) ApplySettings(s settings.Settings) {
	m.Settings = s.Normalized()
	m.sound.SetVolume(m.Settings.Volume)
	log.Printf("Settings applied: graphics %s, volume %d, fov %d°",
		m.Settings.Graphics, m.Settings.Volume, m.Settings.FOVDegrees())

	if m.SettingsPath == "" {
		return
	}
	if err := m.Settings.Save(m.SettingsPath); err != nil {
		log.Printf("Warning: %v", err)
	}
}

// transition moves the state machine and starts or stops the simulation when
// entering or leaving play.
func (m *Manager) transition(t Trigger) {
	to, ok := Next(m.State, t)
	if !ok {
		return
	}
	from := m.State
	m.State = to

	if m.Session != nil {
		switch {
		case !from.Simulates() && to.Simulates():
			m.clock.Reset()
			m.Session.Start()
		case from.Simulates() && !to.Simulates():
			m.Session.Stop()
		}
	}
	if from == StatePlaying {
		if m.InputMgr != nil {
			m.InputMgr.ReleasePointer()
		}
		if m.input != nil {
			m.input.SetPointerLock(false)
		}
	}
	log.Printf("State %s -> %s (%s)", from, to, t)
}

// Draw draws the current screen.
func (m *Manager) Draw(screen render.Image) {
	switch m.State {
	case StateMenu:
		m.MainMenu.Draw(screen)
		return
	case StateSettings:
		m.SettingsMenu.Draw(screen)
		return
	}

	if m.Session == nil {
		return
	}
	m.lastFrame = m.raycaster.Render(screen, m.Session.View(m.Settings))
	m.HUD.SetStatus(m.status())
	m.HUD.Draw(screen)

	switch m.State {
	case StatePDA:
		m.PDA.Draw(screen)
	case StateFabricator:
		m.Fabricator.Draw(screen)
	case StateInventory:
		m.InventoryPanel.Draw(screen)
	}
}

// status gathers what the HUD shows from the session.
func (m *Manager) status() hud.Status {
	s := m.Session
	p := s.Player()
	st := hud.Status{
		Stats:    p.Stats,
		Pos:      [3]float64{p.Pos.X(), p.Pos.Y(), p.Pos.Z()},
		Selected: p.SelectedSlot,
		Prompt:   s.Candidate().Text,
		Alive:    p.Alive(),
	}
	if m.InputMgr != nil {
		st.PointerLocked = m.InputMgr.PointerLocked()
	}

	inv := s.Inventory()
	for i, id := range inv.QuickSlots() {
		if id == "" {
			continue
		}
		slot := hud.Slot{Name: id, Count: inv.Count(id)}
		if def, ok := inv.Definition(id); ok {
			slot.Name, slot.Icon = def.Name, def.Icon
		}
		st.Quick[i] = slot
	}

	for _, msg := range s.Messages() {
		st.Messages = append(st.Messages, hud.Line{Sender: msg.Sender, Text: msg.Text})
	}
	return st
}

func entries(msgs []Message) []menu.Entry {
	out := make([]menu.Entry, len(msgs))
	for i, msg := range msgs {
		out[i] = menu.Entry{Sender: msg.Sender, Text: msg.Text, At: msg.At}
	}
	return out
}

// Layout returns the logical screen size, which tracks the window.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != m.ScreenWidth || outsideHeight != m.ScreenHeight {
		m.ScreenWidth, m.ScreenHeight = outsideWidth, outsideHeight
		m.input.SetViewport(outsideWidth, outsideHeight)
		m.HUD.SetScreenSize(outsideWidth, outsideHeight)
		m.MainMenu.SetScreenSize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Close releases the raycaster's cached images and the audio device.
func (m *Manager) Close() {
	if m.Session != nil {
		m.Session.Stop()
	}
	m.raycaster.Dispose()
	m.sound.Close()
}
