package game

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/deepdive/internal/audio"
	"chosenoffset.com/deepdive/internal/core"
	"chosenoffset.com/deepdive/internal/crafting"
	"chosenoffset.com/deepdive/internal/input"
	"chosenoffset.com/deepdive/internal/interaction"
	"chosenoffset.com/deepdive/internal/inventory"
	"chosenoffset.com/deepdive/internal/loop"
	"chosenoffset.com/deepdive/internal/physics"
	"chosenoffset.com/deepdive/internal/player"
	"chosenoffset.com/deepdive/internal/render/raycast"
	"chosenoffset.com/deepdive/internal/settings"
	"chosenoffset.com/deepdive/internal/simulation"
	"chosenoffset.com/deepdive/internal/survival"
	"chosenoffset.com/deepdive/internal/world/entity"
	"chosenoffset.com/deepdive/internal/world/terrain"
)

// Message senders.
const (
	SenderAurora = "AURORA"
	SenderPDA    = "PDA"
)

// MaxMessages bounds the PDA log; the oldest entries are dropped first.
const MaxMessages = 50

// Message is one PDA log entry.
type Message struct {
	Sender string
	Text   string
	At     time.Duration // session time when it arrived
}

// landingMessage is queued when a session starts.
const landingMessage = "Lifepod 5 has come to rest in shallow water. Oxygen, food and water are limited. " +
	"Gather materials from the seabed and use the fabricator inside the pod."

// Session owns one dive: the generated world, the diver and everything that
// ticks them. It is driven from a single goroutine.
type Session struct {
	cfg *simulation.Config
	rng *core.RNG

	field    *terrain.Field
	entities *entity.Registry
	player   *player.State
	inv      *inventory.Inventory
	book     *crafting.Book

	physics  *physics.Integrator
	survival *survival.Clock
	interact *interaction.Engine

	scheduler *loop.Scheduler
	input     *input.Aggregator
	sound     audio.Player

	messages []Message
	elapsed  time.Duration
}

// NewSession generates the world and wires every subsystem. sound and agg may
// be nil.
func NewSession(cfg *simulation.Config, agg *input.Aggregator, sound audio.Player) (*Session, error) {
	if cfg == nil {
		cfg = simulation.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if agg == nil {
		agg = input.NewAggregator(cfg.Input)
	}
	if sound == nil {
		sound = audio.Null{}
	}

	field, err := terrain.Generate(cfg.Terrain)
	if err != nil {
		return nil, fmt.Errorf("failed to generate terrain: %w", err)
	}

	rng := core.NewRNG(cfg.Terrain.Seed)
	s := &Session{
		cfg:       cfg,
		rng:       rng,
		field:     field,
		entities:  entity.Populate(rng.Fork(), field, cfg.Populate),
		player:    player.New(mgl64.Vec3{cfg.Spawn[0], cfg.Spawn[1], cfg.Spawn[2]}),
		inv:       inventory.New(),
		book:      crafting.DefaultBook(),
		physics:   physics.New(cfg.Movement, field),
		survival:  survival.NewClock(cfg.Survival),
		scheduler: loop.NewScheduler(),
		input:     agg,
		sound:     sound,
	}
	inventory.DefaultLibrary().Apply(s.inv)

	s.interact = interaction.NewEngine(cfg.Interaction, s.entities, s.inv)
	s.interact.OnMessage = func(msg string) { s.notify(SenderPDA, msg) }
	s.interact.OnPlaySound = func(name string) { s.sound.Play(audio.Kind(name)) }
	s.survival.OnAlert = s.onAlert

	wanderRNG := rng.Fork()
	wanderDT := cfg.Timing.Wander.Seconds()
	s.scheduler.Every("movement", cfg.Timing.Movement, s.stepMovement)
	s.scheduler.Every("survival", cfg.Timing.Survival, func() { s.survival.Tick(s.player) })
	s.scheduler.Every("wander", cfg.Timing.Wander, func() { s.entities.Wander(wanderRNG, cfg.Wander, wanderDT) })

	s.notify(SenderAurora, landingMessage)
	log.Printf("Session created: seed %d, %d entities", cfg.Terrain.Seed, s.entities.Len())
	return s, nil
}

// SetBook replaces the fabricator recipes.
func (s *Session) SetBook(b *crafting.Book) {
	if b != nil {
		s.book = b
	}
}

// Start resumes the fixed-rate systems.
func (s *Session) Start() { s.scheduler.Start() }

// Stop halts every ticker and releases held input so nothing fires or stays
// pressed while paused.
func (s *Session) Stop() {
	s.scheduler.Stop()
	s.input.Release()
}

// Running reports whether the world is advancing.
func (s *Session) Running() bool { return s.scheduler.Running() }

// Advance moves session time forward by dt and runs every due tick. It
// returns the number of ticks fired.
func (s *Session) Advance(dt time.Duration) int {
	if !s.scheduler.Running() {
		return 0
	}
	s.elapsed += dt
	return s.scheduler.Advance(dt)
}

func (s *Session) stepMovement() {
	if !s.player.Alive() {
		return
	}
	dx, dy := s.input.TakeLook()
	if dx != 0 || dy != 0 {
		s.physics.Look(s.player, dx, dy)
	}
	wasUnder := s.player.Underwater()
	s.physics.Step(s.player, s.input.Intent())
	if wasUnder != s.player.Underwater() {
		s.sound.Play(audio.Splash)
	}
}

func (s *Session) onAlert(a survival.Alert) {
	switch a {
	case survival.AlertLowOxygen:
		s.notify(SenderPDA, "Warning: oxygen low. Return to the surface.")
		s.sound.Play(audio.Alert)
	case survival.AlertOxygenRestored:
		s.notify(SenderPDA, "Oxygen restored.")
	case survival.AlertSuffocating:
		s.notify(SenderPDA, "Out of oxygen.")
		s.sound.Play(audio.Alert)
	case survival.AlertDeath:
		s.notify(SenderPDA, "Vital signs lost.")
		s.sound.Play(audio.Death)
		log.Printf("Diver died after %v", s.elapsed.Round(time.Second))
	}
}

func (s *Session) notify(sender, text string) {
	s.messages = append(s.messages, Message{Sender: sender, Text: text, At: s.elapsed})
	if n := len(s.messages); n > MaxMessages {
		s.messages = append(s.messages[:0], s.messages[n-MaxMessages:]...)
	}
}

// Collect acts on the nearby candidate: picks up a resource, or reports a
// fabricator prompt for the caller to open.
func (s *Session) Collect() (interaction.Prompt, bool) {
	if !s.player.Alive() {
		return interaction.Prompt{}, false
	}
	return s.interact.Collect(s.player.Pos)
}

// Use consumes the item in the selected quick slot.
func (s *Session) Use() bool {
	if !s.player.Alive() {
		return false
	}
	return s.interact.Use(s.player)
}

// SelectSlot makes quick slot i (0-based) active. Out-of-range slots are
// ignored.
func (s *Session) SelectSlot(i int) {
	if i < 0 || i >= inventory.QuickSlotCount {
		return
	}
	s.player.SelectedSlot = i
}

// Craft runs recipe id at the fabricator. Crafting an oxygen tank raises the
// diver's capacity.
func (s *Session) Craft(id string) (crafting.Recipe, error) {
	r, err := s.book.Craft(s.inv, id)
	if err != nil {
		s.sound.Play(audio.Deny)
		if errors.Is(err, crafting.ErrMissingIngredients) || errors.Is(err, crafting.ErrInventoryFull) {
			s.notify(SenderPDA, fmt.Sprintf("Cannot fabricate: %v", err))
		}
		return crafting.Recipe{}, err
	}
	if r.OxygenBonus > 0 {
		s.player.Stats.MaxOxygen += r.OxygenBonus
	}
	s.notify(SenderPDA, fmt.Sprintf("Fabricated %s", r.Name))
	s.sound.Play(audio.Craft)
	return r, nil
}

// Position returns the diver's position.
func (s *Session) Position() mgl64.Vec3 { return s.player.Pos }

// Rotation returns the camera orientation.
func (s *Session) Rotation() player.Rotation { return s.player.Rot }

// Stats returns the survival meters.
func (s *Session) Stats() player.Stats { return s.player.Stats }

// Player returns a copy of the full diver state.
func (s *Session) Player() player.State { return *s.player }

// Alive reports whether the diver has health left.
func (s *Session) Alive() bool { return s.player.Alive() }

// Candidate returns what the diver can interact with right now.
func (s *Session) Candidate() interaction.Prompt { return s.interact.Candidate(s.player.Pos) }

// Inventory returns the diver's inventory.
func (s *Session) Inventory() *inventory.Inventory { return s.inv }

// Book returns the fabricator recipes.
func (s *Session) Book() *crafting.Book { return s.book }

// Messages returns a copy of the PDA log, oldest first.
func (s *Session) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Elapsed returns the simulated time spent playing.
func (s *Session) Elapsed() time.Duration { return s.elapsed }

// Entities returns the world's entity registry.
func (s *Session) Entities() *entity.Registry { return s.entities }

// Terrain returns the height field.
func (s *Session) Terrain() *terrain.Field { return s.field }

// View snapshots everything the raycaster needs for one frame.
func (s *Session) View(set settings.Settings) raycast.View {
	return raycast.View{
		Player:   *s.player,
		Settings: set,
		Terrain:  s.field,
		Entities: s.entities.All(),
		Time:     s.elapsed,
	}
}
