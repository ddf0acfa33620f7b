package player

import (
	"github.com/vovakirdan/forest-survival/internal/core"
	"github.com/vovakirdan/forest-survival/internal/survival/items"
	"github.com/vovakirdan/forest-survival/internal/survival/world"
)

// Consumption values.
const (
	DrinkAmount   = 50
	BandageHeal   = 30
	ArmorValue    = 5
	IronArmorVal  = 13
	PoisonPerVial = 3
)

// Drink refills thirst from water in the player's cell or a neighbour.
func (p *Player) Drink(w *world.Grid) bool {
	for _, c := range p.Cell().Neighbors4() {
		if w.Tile(c.X, c.Y).IsWater() {
			p.Thirst = core.ClampF(p.Thirst+DrinkAmount, 0, 100)
			return true
		}
	}
	return false
}

// Eat consumes the first held food in preference order.
func (p *Player) Eat() (items.ID, bool) {
	for _, id := range items.EatOrder {
		if p.Inv.Has(id, 1) {
			return id, p.EatItem(id)
		}
	}
	return items.None, false
}

// EatItem consumes one unit of a specific food.
func (p *Player) EatItem(id items.ID) bool {
	f, ok := items.FoodValue(id)
	if !ok || !p.Inv.Remove(id, 1) {
		return false
	}
	p.Hunger = core.ClampF(p.Hunger+f.Hunger, 0, 100)
	p.Thirst = core.ClampF(p.Thirst+f.Thirst, 0, 100)
	return true
}

// UseOutcome classifies the result of using an inventory item.
type UseOutcome int

const (
	UseNothing UseOutcome = iota
	UseHealed
	UseArmored
	UsePoisoned
	UseEquipped
	UseAte
	UsePlaced
)

// UseItem applies an inventory item. Structures are placed, weapons equipped
// by reference and consumables spent.
func (p *Player) UseItem(id items.ID) UseOutcome {
	if !p.Inv.Has(id, 1) {
		return UseNothing
	}
	switch {
	case id == items.Bandage:
		p.Inv.Remove(id, 1)
		p.HP = core.ClampF(p.HP+BandageHeal, 0, p.MaxHP)
		return UseHealed
	case id == items.Armor:
		p.Inv.Remove(id, 1)
		p.Armor = ArmorValue
		return UseArmored
	case id == items.IronArmor:
		p.Inv.Remove(id, 1)
		p.Armor = IronArmorVal
		return UseArmored
	case id == items.Poison:
		p.Inv.Remove(id, 1)
		p.PoisonStacks += PoisonPerVial
		return UsePoisoned
	case items.IsWeapon(id):
		p.Weapon = id
		return UseEquipped
	case items.IsStructure(id):
		if p.Place(id) {
			return UsePlaced
		}
		return UseNothing
	}
	if p.EatItem(id) {
		return UseAte
	}
	return UseNothing
}

// Craft spends a recipe's ingredients. Nothing changes when any is missing.
func (p *Player) Craft(r items.Recipe) bool {
	if !p.Inv.TakeAll(r.Needs) {
		return false
	}
	p.Inv.Add(r.Output, r.Qty)
	p.Crafted++
	return true
}

// Place puts one owned structure at the player's cell. Farm plots are keyed
// by cell center and start half watered.
func (p *Player) Place(kind items.ID) bool {
	if !items.IsStructure(kind) || !p.Inv.Has(kind, 1) {
		return false
	}
	at := p.Cell().Center()
	if kind == items.FarmPlot {
		if _, taken := p.Plots[at]; taken {
			return false
		}
		p.Plots[at] = &Plot{Water: 50}
	} else {
		p.Structures[kind] = append(p.Structures[kind], p.Pos)
	}
	p.Inv.Remove(kind, 1)
	return true
}

// PlaceFirst places the first owned structure in placement order.
func (p *Player) PlaceFirst() (items.ID, bool) {
	for _, kind := range items.PlaceOrder {
		if p.Inv.Has(kind, 1) {
			return kind, p.Place(kind)
		}
	}
	return items.None, false
}
