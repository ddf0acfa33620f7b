// Package items defines the closed set of item kinds, their display data and
// the lookup tables keyed by them: food values, weapon stats, crops and
// crafting recipes.
package items

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/forest-survival/internal/core"
)

// ID identifies an item kind.
type ID int

const (
	None ID = iota

	// Raw resources
	Wood
	Leaf
	Fruit
	Seed
	Stone
	Iron
	Berry
	Mushroom
	Reed
	Fiber
	Herb
	Meat
	Leather

	// Farming
	Carrot
	Potato
	Cabbage
	VeggieSeed
	WateringCan
	Fertilizer

	// Structures
	Campfire
	Shelter
	Trap
	Torch
	House
	FarmPlot

	// Consumables and gear
	Bandage
	Armor
	IronArmor
	Poison

	// Weapons
	Fists
	StoneKnife
	WoodenSpear
	Club
	Axe
	Pickaxe
	IronSword
	Bow

	count
)

type info struct {
	key   string
	name  string
	glyph rune
	color core.Color
}

var table = [count]info{
	None:        {"none", "Nothing", ' ', core.ColorDefault},
	Wood:        {"wood", "Wood", '=', core.ColorBrown},
	Leaf:        {"leaf", "Leaf", '%', core.ColorBrightGreen},
	Fruit:       {"fruit", "Fruit", 'o', core.ColorBrightRed},
	Seed:        {"seed", "Seed", '.', core.ColorYellow},
	Stone:       {"stone", "Stone", 'o', core.ColorGray},
	Iron:        {"iron", "Iron", '*', core.ColorWhite},
	Berry:       {"berry", "Berry", 'o', core.ColorMagenta},
	Mushroom:    {"mushroom", "Mushroom", 'm', core.ColorRed},
	Reed:        {"reed", "Reed", '|', core.ColorSand},
	Fiber:       {"fiber", "Fiber", '~', core.ColorSand},
	Herb:        {"herb", "Herb", 'h', core.ColorGreen},
	Meat:        {"meat", "Meat", 'M', core.ColorBrightRed},
	Leather:     {"leather", "Leather", 'L', core.ColorBrown},
	Carrot:      {"carrot", "Carrot", 'v', core.ColorOrange},
	Potato:      {"potato", "Potato", 'o', core.ColorSand},
	Cabbage:     {"cabbage", "Cabbage", '@', core.ColorBrightGreen},
	VeggieSeed:  {"veggie_seed", "Veggie Seed", ':', core.ColorYellow},
	WateringCan: {"watering_can", "Watering Can", 'u', core.ColorBrightBlue},
	Fertilizer:  {"fertilizer", "Fertilizer", '&', core.ColorBrown},
	Campfire:    {"campfire", "Campfire", '▲', core.ColorOrange},
	Shelter:     {"shelter", "Shelter", '⌂', core.ColorSand},
	Trap:        {"trap", "Trap", 'x', core.ColorGray},
	Torch:       {"torch", "Torch", '!', core.ColorBrightYellow},
	House:       {"house", "House", '■', core.ColorBrown},
	FarmPlot:    {"farm_plot", "Farm Plot", '#', core.ColorBrown},
	Bandage:     {"bandage", "Bandage", '+', core.ColorBrightWhite},
	Armor:       {"armor", "Armor", ']', core.ColorBrown},
	IronArmor:   {"iron_armor", "Iron Armor", ']', core.ColorWhite},
	Poison:      {"poison", "Poison", '!', core.ColorBrightMagenta},
	Fists:       {"fists", "Fists", ' ', core.ColorDefault},
	StoneKnife:  {"stone_knife", "Stone Knife", '/', core.ColorGray},
	WoodenSpear: {"wooden_spear", "Wooden Spear", '/', core.ColorBrown},
	Club:        {"club", "Club", '/', core.ColorBrown},
	Axe:         {"axe", "Axe", 'P', core.ColorGray},
	Pickaxe:     {"pickaxe", "Pickaxe", 'T', core.ColorGray},
	IronSword:   {"iron_sword", "Iron Sword", '/', core.ColorBrightWhite},
	Bow:         {"bow", "Bow", ')', core.ColorBrown},
}

var byKey = func() map[string]ID {
	m := make(map[string]ID, count)
	for id := None; id < count; id++ {
		m[table[id].key] = id
	}
	return m
}()

// Valid reports whether id names a real item.
func (id ID) Valid() bool {
	return id > None && id < count
}

// Key returns the stable snake_case identifier used in config and saves.
func (id ID) Key() string {
	if id < None || id >= count {
		return "unknown"
	}
	return table[id].key
}

// String returns the display name.
func (id ID) String() string {
	if id < None || id >= count {
		return "Unknown"
	}
	return table[id].name
}

// Glyph returns the rune used to draw the item on the ground.
func (id ID) Glyph() rune {
	if !id.Valid() {
		return '?'
	}
	return table[id].glyph
}

// Color returns the item's icon color.
func (id ID) Color() core.Color {
	if !id.Valid() {
		return core.ColorDefault
	}
	return table[id].color
}

// MarshalText implements encoding.TextMarshaler so IDs serialize by key.
func (id ID) MarshalText() ([]byte, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("items: cannot marshal invalid id %d", int(id))
	}
	return []byte(id.Key()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// Parse resolves a snake_case key into an ID.
func Parse(key string) (ID, error) {
	id, ok := byKey[key]
	if !ok || id == None {
		return None, fmt.Errorf("items: unknown item %q", key)
	}
	return id, nil
}

// All returns every valid item ID in declaration order.
func All() []ID {
	out := make([]ID, 0, count-1)
	for id := None + 1; id < count; id++ {
		out = append(out, id)
	}
	return out
}

// Stack is a quantity of one item kind.
type Stack struct {
	ID  ID  `json:"id"`
	Qty int `json:"qty"`
}

// Inventory maps item kinds to positive quantities. Entries are removed at zero.
type Inventory map[ID]int

// Add grants qty of id. Non-positive quantities are ignored.
func (inv Inventory) Add(id ID, qty int) {
	if qty <= 0 || !id.Valid() {
		return
	}
	inv[id] += qty
}

// Count returns how many of id are held.
func (inv Inventory) Count(id ID) int {
	return inv[id]
}

// Has reports whether at least qty of id are held.
func (inv Inventory) Has(id ID, qty int) bool {
	return inv[id] >= qty
}

// Remove takes qty of id, returning false without mutation when short.
func (inv Inventory) Remove(id ID, qty int) bool {
	if qty <= 0 {
		return true
	}
	if inv[id] < qty {
		return false
	}
	inv[id] -= qty
	if inv[id] <= 0 {
		delete(inv, id)
	}
	return true
}

// HasAll reports whether every stack in needs is covered.
func (inv Inventory) HasAll(needs []Stack) bool {
	for _, n := range needs {
		if inv[n.ID] < n.Qty {
			return false
		}
	}
	return true
}

// TakeAll removes every stack in needs, or nothing if any is short.
func (inv Inventory) TakeAll(needs []Stack) bool {
	if !inv.HasAll(needs) {
		return false
	}
	for _, n := range needs {
		inv.Remove(n.ID, n.Qty)
	}
	return true
}

// Clone returns an independent copy.
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for k, v := range inv {
		out[k] = v
	}
	return out
}

// Stacks lists the inventory in item declaration order.
func (inv Inventory) Stacks() []Stack {
	out := make([]Stack, 0, len(inv))
	for id, q := range inv {
		if q > 0 {
			out = append(out, Stack{ID: id, Qty: q})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
