package menu

import (
	"fmt"

	"chosenoffset.com/deepdive/internal/input"
	"chosenoffset.com/deepdive/internal/inventory"
	"chosenoffset.com/deepdive/internal/render"
)

// InventoryPanel lists everything the diver carries.
type InventoryPanel struct {
	cursor   cursor
	renderer render.Renderer
	inv      *inventory.Inventory
}

// NewInventoryPanel creates the inventory overlay.
func NewInventoryPanel(r render.Renderer, inv *inventory.Inventory) *InventoryPanel {
	return &InventoryPanel{renderer: r, inv: inv}
}

// Bind points the panel at a new inventory.
func (p *InventoryPanel) Bind(inv *inventory.Inventory) {
	p.inv = inv
	p.cursor.pos = 0
}

func (p *InventoryPanel) items() []inventory.Slot {
	if p.inv == nil {
		return nil
	}
	return p.inv.Items()
}

// Handle moves the highlight. It returns true when the panel should close.
func (p *InventoryPanel) Handle(cmd input.Command) bool {
	n := len(p.items())
	switch cmd.Action {
	case input.ActionUp:
		p.cursor.move(-1, n)
	case input.ActionDown:
		p.cursor.move(1, n)
	case input.ActionBack, input.ActionInventory:
		return true
	}
	return false
}

// Draw renders the inventory over the dive.
func (p *InventoryPanel) Draw(screen render.Image) {
	x, y, _, h := drawOverlay(p.renderer, screen, "INVENTORY")
	items := p.items()
	p.cursor.clamp(len(items))

	if len(items) == 0 {
		p.renderer.DrawText(screen, "Empty", x+40, y+60, disabledColor, 1.2)
	}

	row := y + 60
	for i, slot := range items {
		name, icon, cat := slot.ItemID, "", ""
		if def, ok := p.inv.Definition(slot.ItemID); ok {
			name, icon, cat = def.Name, def.Icon, string(def.Category)
		}
		clr := itemColor
		if i == p.cursor.pos {
			clr = selectedColor
			p.renderer.DrawText(screen, ">", x+20, row, clr, 1.2)
		}
		p.renderer.DrawText(screen, fmt.Sprintf("%s %s x%d", icon, name, slot.Count), x+40, row, clr, 1.2)
		p.renderer.DrawText(screen, cat, x+320, row, hintColor, 1.0)
		row += 26
	}

	if p.inv != nil {
		summary := fmt.Sprintf("%d types, %d items", p.inv.Types(), p.inv.Total())
		p.renderer.DrawText(screen, summary, x+20, y+h-50, hintColor, 1.0)
	}
	p.renderer.DrawText(screen, "I / Esc: close", x+20, y+h-30, hintColor, 1.0)
}
