package crafting

import (
	"errors"
	"testing"

	"chosenoffset.com/deepdive/internal/inventory"
)

func TestCraftConsumesIngredients(t *testing.T) {
	inv := inventory.New()
	inv.Add("metal", 4)

	r, err := DefaultBook().Craft(inv, "tank")
	if err != nil {
		t.Fatalf("Failed to craft tank: %v", err)
	}
	if r.OxygenBonus != 30 {
		t.Errorf("Expected oxygen bonus 30, got %v", r.OxygenBonus)
	}
	if inv.Count("metal") != 1 {
		t.Errorf("Expected 1 metal left, got %d", inv.Count("metal"))
	}
	if inv.Count("tank") != 1 {
		t.Errorf("Expected 1 tank, got %d", inv.Count("tank"))
	}
}

func TestCraftMissingIngredientsLeavesInventory(t *testing.T) {
	inv := inventory.New()
	inv.Add("metal", 1)

	_, err := DefaultBook().Craft(inv, "scanner")
	if !errors.Is(err, ErrMissingIngredients) {
		t.Fatalf("Expected ErrMissingIngredients, got %v", err)
	}
	if inv.Count("metal") != 1 || inv.Count("scanner") != 0 {
		t.Errorf("Expected inventory untouched, got %v", inv.Items())
	}
}

func TestCraftUnknownRecipe(t *testing.T) {
	_, err := DefaultBook().Craft(inventory.New(), "submarine")
	if !errors.Is(err, ErrUnknownRecipe) {
		t.Errorf("Expected ErrUnknownRecipe, got %v", err)
	}
}

func TestCanCraft(t *testing.T) {
	inv := inventory.New()
	book := DefaultBook()
	water, _ := book.Find("water")

	inv.Add("quartz", 1)
	if CanCraft(inv, water) {
		t.Error("Expected water to need 2 quartz")
	}
	inv.Add("quartz", 1)
	if !CanCraft(inv, water) {
		t.Error("Expected water craftable with 2 quartz")
	}
}

func TestCraftFullStackKeepsIngredients(t *testing.T) {
	inv := inventory.New()
	inventory.DefaultLibrary().Apply(inv)
	inv.Add("metal", 6)

	book := DefaultBook()
	if _, err := book.Craft(inv, "tank"); err != nil {
		t.Fatalf("Failed to craft tank: %v", err)
	}
	_, err := book.Craft(inv, "tank")
	if !errors.Is(err, ErrInventoryFull) {
		t.Fatalf("Expected ErrInventoryFull, got %v", err)
	}
	if inv.Count("metal") != 3 || inv.Count("tank") != 1 {
		t.Errorf("Expected 3 metal and 1 tank, got %s", inv)
	}
}
