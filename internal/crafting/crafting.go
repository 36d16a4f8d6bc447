// Package crafting implements the fabricator: recipes that turn carried
// materials into tools, equipment and consumables.
package crafting

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"chosenoffset.com/deepdive/internal/inventory"
)

var (
	// ErrUnknownRecipe is returned when no recipe has the requested id.
	ErrUnknownRecipe = errors.New("unknown recipe")
	// ErrMissingIngredients is returned when the inventory lacks something.
	ErrMissingIngredients = errors.New("missing ingredients")
	// ErrInventoryFull is returned when the product has nowhere to go.
	ErrInventoryFull = errors.New("inventory full")
)

// Ingredient is an item id and quantity.
type Ingredient struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// Recipe produces one unit of an item from its ingredients.
type Recipe struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Icon     string             `json:"icon"`
	Requires []Ingredient       `json:"requires"`
	Category inventory.Category `json:"category"`

	// OxygenBonus raises the diver's oxygen capacity when crafted.
	OxygenBonus float64 `json:"oxygen_bonus,omitempty"`
}

// Book is an ordered list of recipes.
type Book struct {
	Recipes []Recipe `json:"recipes"`
}

// DefaultBook returns the stock fabricator recipes.
func DefaultBook() *Book {
	return &Book{Recipes: []Recipe{
		{
			ID: "scanner", Name: "Scanner", Icon: "📡", Category: inventory.CategoryTool,
			Requires: []Ingredient{{ID: "metal", Count: 1}, {ID: "quartz", Count: 1}},
		},
		{
			ID: "knife", Name: "Survival Knife", Icon: "🔪", Category: inventory.CategoryTool,
			Requires: []Ingredient{{ID: "metal", Count: 1}},
		},
		{
			ID: "tank", Name: "Standard O₂ Tank", Icon: "🫁", Category: inventory.CategoryEquipment,
			Requires:    []Ingredient{{ID: "metal", Count: 3}},
			OxygenBonus: 30,
		},
		{
			ID: "water", Name: "Filtered Water", Icon: "💧", Category: inventory.CategoryWater,
			Requires: []Ingredient{{ID: "quartz", Count: 2}},
		},
	}}
}

// LoadBook reads recipes from a JSON file.
func LoadBook(path string) (*Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe book: %w", err)
	}
	var b Book
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse recipe book: %w", err)
	}
	for i, r := range b.Recipes {
		if r.ID == "" || len(r.Requires) == 0 {
			return nil, fmt.Errorf("recipe %d is incomplete", i)
		}
	}
	return &b, nil
}

// Find returns the recipe with the given id.
func (b *Book) Find(id string) (Recipe, bool) {
	for _, r := range b.Recipes {
		if r.ID == id {
			return r, true
		}
	}
	return Recipe{}, false
}

// CanCraft reports whether inv holds every ingredient of r.
func CanCraft(inv *inventory.Inventory, r Recipe) bool {
	for _, ing := range r.Requires {
		if !inv.Has(ing.ID, ing.Count) {
			return false
		}
	}
	return true
}

// Craft consumes the ingredients of recipe id and adds its product to inv.
// The inventory is left untouched on error.
func (b *Book) Craft(inv *inventory.Inventory, id string) (Recipe, error) {
	r, ok := b.Find(id)
	if !ok {
		return Recipe{}, fmt.Errorf("%w: %s", ErrUnknownRecipe, id)
	}

	need := make(map[string]int, len(r.Requires))
	for _, ing := range r.Requires {
		need[ing.ID] += ing.Count
	}
	if !CanCraft(inv, r) {
		return Recipe{}, fmt.Errorf("%w for %s", ErrMissingIngredients, r.Name)
	}

	if _, ok := inv.Definition(r.ID); !ok {
		inv.Register(inventory.Item{ID: r.ID, Name: r.Name, Icon: r.Icon, Category: r.Category})
	}
	if !inv.Fits(r.ID, 1) {
		return Recipe{}, fmt.Errorf("%w: no room for %s", ErrInventoryFull, r.Name)
	}
	if !inv.RemoveAll(need) {
		return Recipe{}, fmt.Errorf("%w for %s", ErrMissingIngredients, r.Name)
	}
	inv.Add(r.ID, 1)
	return r, nil
}
