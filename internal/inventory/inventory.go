// Package inventory tracks what the diver is carrying. Items are stored by id
// with quantities; a row of quick slots references held item ids.
package inventory

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
)

// Category groups items for the HUD and crafting UI.
type Category string

const (
	CategoryTool      Category = "tool"
	CategoryFood      Category = "food"
	CategoryMaterial  Category = "material"
	CategoryWater     Category = "water"
	CategoryCraftable Category = "craftable"
	CategoryEquipment Category = "equipment"
)

// QuickSlotCount is the number of quick slots selectable with the number keys.
const QuickSlotCount = 9

// Item describes an item type.
type Item struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Icon     string   `json:"icon,omitempty"`
	Category Category `json:"category"`
	MaxStack int      `json:"max_stack,omitempty"` // 0 = unlimited

	// Consumables restore survival meters when used.
	Food  float64 `json:"food,omitempty"`
	Water float64 `json:"water,omitempty"`
}

// Slot is an item id and its quantity.
type Slot struct {
	ItemID string
	Count  int
}

// Inventory holds the player's items.
type Inventory struct {
	mu sync.RWMutex

	counts map[string]int
	defs   map[string]*Item
	quick  [QuickSlotCount]string

	// MaxTypes limits distinct item types (0 = unlimited)
	MaxTypes int

	// OnChange fires after every successful mutation (for UI refresh)
	OnChange func()
}

// New creates an empty inventory.
func New() *Inventory {
	return &Inventory{
		counts: make(map[string]int),
		defs:   make(map[string]*Item),
	}
}

// Register adds an item definition.
func (inv *Inventory) Register(item Item) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	it := item
	inv.defs[item.ID] = &it
}

// Definition returns the registered definition for an item id.
func (inv *Inventory) Definition(id string) (Item, bool) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	def, ok := inv.defs[id]
	if !ok {
		return Item{}, false
	}
	return *def, true
}

// Has reports whether at least count of the item are held.
func (inv *Inventory) Has(id string, count int) bool {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.counts[id] >= count
}

// Count returns the quantity held (0 if none).
func (inv *Inventory) Count(id string) int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.counts[id]
}

// Add adds count of an item and returns how many were actually added. A new
// item type is placed into the first free quick slot.
func (inv *Inventory) Add(id string, count int) int {
	if count <= 0 {
		return 0
	}

	inv.mu.Lock()
	_, held := inv.counts[id]
	if !held && inv.MaxTypes > 0 && len(inv.counts) >= inv.MaxTypes {
		inv.mu.Unlock()
		return 0
	}

	if def, ok := inv.defs[id]; ok && def.MaxStack > 0 {
		count = min(count, def.MaxStack-inv.counts[id])
	}
	if count <= 0 {
		inv.mu.Unlock()
		return 0
	}

	inv.counts[id] += count
	if !held {
		inv.assignQuickSlot(id)
	}
	inv.mu.Unlock()

	inv.notifyChange()
	return count
}

// Fits reports whether count more of an item can be added in full.
func (inv *Inventory) Fits(id string, count int) bool {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	held, ok := inv.counts[id]
	if !ok && inv.MaxTypes > 0 && len(inv.counts) >= inv.MaxTypes {
		return false
	}
	if def, ok := inv.defs[id]; ok && def.MaxStack > 0 {
		return held+count <= def.MaxStack
	}
	return true
}

// Remove takes count of an item. It returns false, leaving the inventory
// untouched, when fewer than count are held.
func (inv *Inventory) Remove(id string, count int) bool {
	if count <= 0 {
		return true
	}

	inv.mu.Lock()
	if inv.counts[id] < count {
		inv.mu.Unlock()
		return false
	}
	inv.counts[id] -= count
	if inv.counts[id] == 0 {
		delete(inv.counts, id)
		for i, q := range inv.quick {
			if q == id {
				inv.quick[i] = ""
			}
		}
	}
	inv.mu.Unlock()

	inv.notifyChange()
	return true
}

// RemoveAll takes every listed quantity or nothing at all.
func (inv *Inventory) RemoveAll(need map[string]int) bool {
	inv.mu.Lock()
	for id, n := range need {
		if inv.counts[id] < n {
			inv.mu.Unlock()
			return false
		}
	}
	for id, n := range need {
		inv.counts[id] -= n
		if inv.counts[id] <= 0 {
			delete(inv.counts, id)
			for i, q := range inv.quick {
				if q == id {
					inv.quick[i] = ""
				}
			}
		}
	}
	inv.mu.Unlock()

	inv.notifyChange()
	return true
}

// assignQuickSlot must be called with the lock held.
func (inv *Inventory) assignQuickSlot(id string) {
	for i, q := range inv.quick {
		if q == "" {
			inv.quick[i] = id
			return
		}
	}
}

// QuickSlot returns the item id in slot i (0-based), or "" if empty.
func (inv *Inventory) QuickSlot(i int) string {
	if i < 0 || i >= QuickSlotCount {
		return ""
	}
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.quick[i]
}

// QuickSlots returns a copy of the quick slot row.
func (inv *Inventory) QuickSlots() [QuickSlotCount]string {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.quick
}

// Items returns all held items sorted by id.
func (inv *Inventory) Items() []Slot {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	result := make([]Slot, 0, len(inv.counts))
	for id, n := range inv.counts {
		result = append(result, Slot{ItemID: id, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ItemID < result[j].ItemID
	})
	return result
}

// Types returns the number of distinct item types held.
func (inv *Inventory) Types() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return len(inv.counts)
}

// Total returns the total count of all items.
func (inv *Inventory) Total() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	total := 0
	for _, n := range inv.counts {
		total += n
	}
	return total
}

func (inv *Inventory) notifyChange() {
	if inv.OnChange != nil {
		inv.OnChange()
	}
}

// String summarizes the inventory for logs.
func (inv *Inventory) String() string {
	return fmt.Sprintf("Inventory{%d types, %d total}", inv.Types(), inv.Total())
}

// --- Item Library ---

// Library holds item definitions shared by every inventory in a session.
type Library struct {
	Items []Item `json:"items"`
}

// DefaultLibrary returns the built-in item set: raw materials from the seabed
// plus everything the fabricator can produce.
func DefaultLibrary() *Library {
	return &Library{Items: []Item{
		{ID: "limestone", Name: "Limestone", Icon: "🪨", Category: CategoryMaterial},
		{ID: "metal", Name: "Metal Salvage", Icon: "⚙️", Category: CategoryMaterial},
		{ID: "quartz", Name: "Quartz", Icon: "💎", Category: CategoryMaterial},
		{ID: "scanner", Name: "Scanner", Icon: "📡", Category: CategoryTool, MaxStack: 1},
		{ID: "knife", Name: "Survival Knife", Icon: "🔪", Category: CategoryTool, MaxStack: 1},
		{ID: "tank", Name: "Standard O₂ Tank", Icon: "🫁", Category: CategoryEquipment, MaxStack: 1},
		{ID: "water", Name: "Filtered Water", Icon: "💧", Category: CategoryWater, Water: 25},
		{ID: "ration", Name: "Nutrient Block", Icon: "🍫", Category: CategoryFood, Food: 30},
		{ID: "flare", Name: "Flare", Icon: "🔦", Category: CategoryTool},
	}}
}

// LoadLibrary loads item definitions from a JSON file.
func LoadLibrary(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read item library: %w", err)
	}

	var lib Library
	if err := json.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("failed to parse item library: %w", err)
	}
	for i, it := range lib.Items {
		if it.ID == "" {
			return nil, fmt.Errorf("item %d has no id", i)
		}
	}
	return &lib, nil
}

// Apply registers every library item on inv.
func (lib *Library) Apply(inv *Inventory) {
	for _, it := range lib.Items {
		inv.Register(it)
	}
}

// Lookup finds an item definition by id.
func (lib *Library) Lookup(id string) (Item, bool) {
	for _, it := range lib.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
