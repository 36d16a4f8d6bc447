package inventory

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddAssignsQuickSlots(t *testing.T) {
	inv := New()
	inv.Add("metal", 2)
	inv.Add("quartz", 1)
	inv.Add("metal", 1)

	if got := inv.Count("metal"); got != 3 {
		t.Errorf("Expected 3 metal, got %d", got)
	}
	if inv.QuickSlot(0) != "metal" || inv.QuickSlot(1) != "quartz" {
		t.Errorf("Expected metal, quartz in first slots, got %v", inv.QuickSlots())
	}
	if inv.QuickSlot(-1) != "" || inv.QuickSlot(QuickSlotCount) != "" {
		t.Error("Expected out-of-range slots to be empty")
	}
}

func TestRemoveFreesSlot(t *testing.T) {
	inv := New()
	inv.Add("water", 1)

	if inv.Remove("water", 2) {
		t.Fatal("Expected remove of more than held to fail")
	}
	if !inv.Remove("water", 1) {
		t.Fatal("Expected remove to succeed")
	}
	if inv.QuickSlot(0) != "" {
		t.Errorf("Expected slot to be cleared, got %q", inv.QuickSlot(0))
	}
	if inv.Types() != 0 {
		t.Errorf("Expected empty inventory, got %d types", inv.Types())
	}
}

func TestRemoveAllIsAtomic(t *testing.T) {
	inv := New()
	inv.Add("metal", 1)
	inv.Add("quartz", 1)

	if inv.RemoveAll(map[string]int{"metal": 1, "quartz": 2}) {
		t.Fatal("Expected RemoveAll to fail on missing quartz")
	}
	if inv.Count("metal") != 1 {
		t.Errorf("Expected metal untouched, got %d", inv.Count("metal"))
	}
	if !inv.RemoveAll(map[string]int{"metal": 1, "quartz": 1}) {
		t.Fatal("Expected RemoveAll to succeed")
	}
	if inv.Total() != 0 {
		t.Errorf("Expected nothing left, got %d", inv.Total())
	}
}

func TestMaxStackAndOnChange(t *testing.T) {
	inv := New()
	DefaultLibrary().Apply(inv)

	changes := 0
	inv.OnChange = func() { changes++ }

	if got := inv.Add("knife", 3); got != 1 {
		t.Errorf("Expected 1 knife added, got %d", got)
	}
	if got := inv.Add("knife", 1); got != 0 {
		t.Errorf("Expected no second knife, got %d", got)
	}
	if changes != 1 {
		t.Errorf("Expected 1 change notification, got %d", changes)
	}
}

func TestLoadLibrary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.json")
	data := `{"items":[{"id":"flare","name":"Flare","category":"tool"}]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("Failed to write library: %v", err)
	}

	lib, err := LoadLibrary(path)
	if err != nil {
		t.Fatalf("Failed to load library: %v", err)
	}
	it, ok := lib.Lookup("flare")
	if !ok || it.Category != CategoryTool {
		t.Errorf("Expected flare tool, got %+v", it)
	}

	if _, err := LoadLibrary(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestFitsRespectsLimits(t *testing.T) {
	inv := New()
	DefaultLibrary().Apply(inv)
	inv.MaxTypes = 2

	if !inv.Fits("knife", 1) {
		t.Error("Expected a knife to fit in an empty inventory")
	}
	inv.Add("knife", 1)
	if inv.Fits("knife", 1) {
		t.Error("Expected a second knife not to fit")
	}
	inv.Add("metal", 1)
	if inv.Fits("quartz", 1) {
		t.Error("Expected a third item type not to fit")
	}
	if !inv.Fits("metal", 5) {
		t.Error("Expected more metal to stack")
	}
}
