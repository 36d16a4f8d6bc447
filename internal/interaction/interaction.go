// Package interaction resolves what the diver can act on right now and
// carries out collect and use commands against the world and inventory.
package interaction

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/deepdive/internal/inventory"
	"chosenoffset.com/deepdive/internal/player"
	"chosenoffset.com/deepdive/internal/world/entity"
)

// PromptKind identifies the interaction available to the player.
type PromptKind int

const (
	PromptNone PromptKind = iota
	PromptCollect
	PromptFabricator
)

// Prompt is the nearby interaction candidate shown by the HUD.
type Prompt struct {
	Kind   PromptKind
	Entity entity.Entity
	Text   string
}

// Config holds capture radii.
type Config struct {
	CollectHorizontal float64 `json:"collect_horizontal"`
	CollectVertical   float64 `json:"collect_vertical"`
	PodRadius         float64 `json:"pod_radius"`
	PodMaxDepth       float64 `json:"pod_max_depth"` // |y| must be below this
}

// DefaultConfig returns the stock capture radii.
func DefaultConfig() Config {
	return Config{CollectHorizontal: 3, CollectVertical: 2, PodRadius: 3, PodMaxDepth: 2}
}

// MessageHandler is called when a message should be displayed to the player
type MessageHandler func(message string)

// Engine processes interactions between the player and the world.
type Engine struct {
	cfg Config

	Registry  *entity.Registry
	Inventory *inventory.Inventory

	// Message display callback
	OnMessage MessageHandler

	// Sound playback callback
	OnPlaySound func(soundName string)
}

// NewEngine creates an interaction engine over reg and inv.
func NewEngine(cfg Config, reg *entity.Registry, inv *inventory.Inventory) *Engine {
	return &Engine{cfg: cfg, Registry: reg, Inventory: inv}
}

// Candidate returns the interaction available at pos. Resources win over the
// pod so a diver can still pick up things lying beside it.
func (e *Engine) Candidate(pos mgl64.Vec3) Prompt {
	if e.Registry == nil {
		return Prompt{}
	}
	if res, ok := e.Registry.Nearest(pos, e.cfg.CollectHorizontal, e.cfg.CollectVertical, entity.KindResource); ok {
		return Prompt{Kind: PromptCollect, Entity: res, Text: "Press E to collect"}
	}
	if pod, ok := e.Registry.Landmark(entity.EscapePod); ok {
		if pod.HorizontalDist(pos) < e.cfg.PodRadius && math.Abs(pos.Y()) < e.cfg.PodMaxDepth {
			return Prompt{Kind: PromptFabricator, Entity: pod, Text: "Press E to use Fabricator"}
		}
	}
	return Prompt{}
}

// Collect picks up the resource in range of pos, if any. It removes exactly
// one entity and adds exactly one item, returning the prompt that was acted
// on. A fabricator prompt is returned untouched for the caller to open.
func (e *Engine) Collect(pos mgl64.Vec3) (Prompt, bool) {
	p := e.Candidate(pos)
	switch p.Kind {
	case PromptCollect:
		item, ok := entity.ItemFor(p.Entity.Type)
		if !ok || e.Inventory == nil {
			return Prompt{}, false
		}
		if _, known := e.Inventory.Definition(item.ID); !known {
			e.Inventory.Register(item)
		}
		if e.Inventory.Add(item.ID, 1) == 0 {
			e.message("Inventory full")
			return Prompt{}, false
		}
		e.Registry.Remove(p.Entity.ID)
		e.message(fmt.Sprintf("+1 %s", item.Name))
		e.sound("collect")
		return p, true
	case PromptFabricator:
		return p, true
	default:
		return Prompt{}, false
	}
}

// Use consumes one of the item in the player's selected quick slot, applying
// its food and water values. Non-consumables are not used up.
func (e *Engine) Use(p *player.State) bool {
	if e.Inventory == nil || p == nil {
		return false
	}
	id := e.Inventory.QuickSlot(p.SelectedSlot)
	if id == "" {
		return false
	}
	def, ok := e.Inventory.Definition(id)
	if !ok || (def.Food == 0 && def.Water == 0) {
		e.message(fmt.Sprintf("%s equipped", displayName(def, id)))
		return false
	}
	if !e.Inventory.Remove(id, 1) {
		return false
	}
	p.Stats.Hunger = math.Min(100, p.Stats.Hunger+def.Food)
	p.Stats.Thirst = math.Min(100, p.Stats.Thirst+def.Water)
	e.message(fmt.Sprintf("Used %s", def.Name))
	e.sound("use")
	return true
}

func displayName(def inventory.Item, id string) string {
	if def.Name != "" {
		return def.Name
	}
	return id
}

func (e *Engine) message(msg string) {
	if e.OnMessage != nil {
		e.OnMessage(msg)
	}
}

func (e *Engine) sound(name string) {
	if e.OnPlaySound != nil {
		e.OnPlaySound(name)
	}
}
