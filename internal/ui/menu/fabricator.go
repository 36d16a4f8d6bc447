package menu

import (
	"fmt"
	"strings"

	"chosenoffset.com/deepdive/internal/crafting"
	"chosenoffset.com/deepdive/internal/input"
	"chosenoffset.com/deepdive/internal/inventory"
	"chosenoffset.com/deepdive/internal/render"
)

// Fabricator lists the recipes and marks the ones the inventory can afford.
type Fabricator struct {
	cursor   cursor
	renderer render.Renderer
	book     *crafting.Book
	inv      *inventory.Inventory
}

// NewFabricator creates the fabricator overlay.
func NewFabricator(r render.Renderer, book *crafting.Book, inv *inventory.Inventory) *Fabricator {
	return &Fabricator{renderer: r, book: book, inv: inv}
}

// Bind points the overlay at a new session's recipes and inventory.
func (f *Fabricator) Bind(book *crafting.Book, inv *inventory.Inventory) {
	f.book, f.inv = book, inv
	f.cursor.pos = 0
}

func (f *Fabricator) recipes() []crafting.Recipe {
	if f.book == nil {
		return nil
	}
	return f.book.Recipes
}

// Handle applies one command. It returns the recipe id to craft when the
// player confirms, and closed when they back out.
func (f *Fabricator) Handle(cmd input.Command) (craft string, closed bool) {
	list := f.recipes()
	switch cmd.Action {
	case input.ActionUp:
		f.cursor.move(-1, len(list))
	case input.ActionDown:
		f.cursor.move(1, len(list))
	case input.ActionConfirm, input.ActionCollect:
		f.cursor.clamp(len(list))
		if len(list) > 0 {
			return list[f.cursor.pos].ID, false
		}
	case input.ActionBack:
		return "", true
	}
	return "", false
}

// Draw renders the recipe list over the dive.
func (f *Fabricator) Draw(screen render.Image) {
	x, y, _, h := drawOverlay(f.renderer, screen, "FABRICATOR")
	list := f.recipes()
	f.cursor.clamp(len(list))

	row := y + 60
	for i, r := range list {
		clr := itemColor
		if f.inv != nil && !crafting.CanCraft(f.inv, r) {
			clr = disabledColor
		}
		if i == f.cursor.pos {
			f.renderer.DrawText(screen, ">", x+20, row, selectedColor, 1.2)
			if clr == itemColor {
				clr = selectedColor
			}
		}
		f.renderer.DrawText(screen, fmt.Sprintf("%s %s", r.Icon, r.Name), x+40, row, clr, 1.2)
		f.renderer.DrawText(screen, f.ingredients(r), x+60, row+20, hintColor, 1.0)
		row += 48
	}

	f.renderer.DrawText(screen, "Enter / E: fabricate    Esc: close", x+20, y+h-30, hintColor, 1.0)
}

// ingredients formats "2x Metal Salvage (1/2), 1x Quartz (0/1)".
func (f *Fabricator) ingredients(r crafting.Recipe) string {
	parts := make([]string, 0, len(r.Requires))
	for _, ing := range r.Requires {
		name, have := ing.ID, 0
		if f.inv != nil {
			if def, ok := f.inv.Definition(ing.ID); ok && def.Name != "" {
				name = def.Name
			}
			have = f.inv.Count(ing.ID)
		}
		parts = append(parts, fmt.Sprintf("%dx %s (%d/%d)", ing.Count, name, have, ing.Count))
	}
	return strings.Join(parts, ", ")
}
