package survival

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/forest-survival/internal/audio"
	"github.com/vovakirdan/forest-survival/internal/core"
	"github.com/vovakirdan/forest-survival/internal/survival/campaign"
	"github.com/vovakirdan/forest-survival/internal/survival/enemy"
	"github.com/vovakirdan/forest-survival/internal/survival/items"
	"github.com/vovakirdan/forest-survival/internal/survival/player"
	"github.com/vovakirdan/forest-survival/internal/survival/world"
)

// Combat constants applied by the session.
const (
	Knockback    = 7.0
	PoisonBonus  = 1.25
	PoisonPerHit = 3.0
	CraftXP      = 12
)

func (g *Game) handleActions(in core.InputFrame) {
	if g.player.Dead {
		return
	}
	switch {
	case in.Has(core.ActionAttack):
		g.Attack()
	case in.Has(core.ActionInteract):
		if !g.Harvest() {
			g.notify("Nothing to harvest here")
		}
	case in.Has(core.ActionEat):
		g.Eat()
	case in.Has(core.ActionDrink):
		g.Drink()
	case in.Has(core.ActionPlace):
		g.Place()
	case in.Has(core.ActionFarm):
		g.Farm()
	}
	if in.Has(core.ActionSave) {
		g.Save()
	}
}

// Attack swings the equipped weapon at every enemy in range. A swing that
// connects with nothing falls back to harvesting.
func (g *Game) Attack() {
	p := g.player
	if !p.CanAttack() {
		return
	}
	p.BeginSwing()
	g.sink.Play(audio.Swing)

	reach := p.WeaponStats().Range
	hit := false
	for _, e := range g.enemies {
		if !e.Alive() {
			continue
		}
		d := core.Dist(p.Pos, e.Pos)
		if d >= reach {
			continue
		}
		dmg := float64(p.Damage())
		poison := 0.0
		if p.PoisonStacks > 0 {
			p.PoisonStacks--
			dmg = math.Floor(dmg * PoisonBonus)
			poison = PoisonPerHit
		}
		var kb core.Vec
		if d > 1 {
			kb = e.Pos.Sub(p.Pos).Scale(Knockback / d)
		}
		killed := e.TakeHit(dmg, kb, poison)
		if !hit {
			g.fx.EmitBlood(e.Pos, 5)
			g.sink.Play(audio.Hit)
		}
		hit = true
		p.RegisterHit()
		if killed {
			g.killEnemy(e)
		}
	}
	g.removeDead()
	if !hit {
		g.Harvest()
	}
}

// killEnemy pays out a kill and drops loot at the enemy's cell.
func (g *Game) killEnemy(e *enemy.Enemy) {
	p := g.player
	t := e.Kind.Template()
	e.HP = 0
	levels := p.GainXP(t.XP)
	p.Kills++
	g.campaign.Record(campaign.Kills, 1)
	if e.Kind == enemy.Demon {
		g.campaign.Record(campaign.DemonKills, 1)
	}
	cell := world.CellAt(e.Pos)
	for _, s := range t.Drops {
		g.world.AddDrop(cell, s)
	}
	g.fx.EmitBurst(e.Pos, core.ColorBrightYellow, 10, 80, 0.8, 6, true)
	g.notify(fmt.Sprintf("Killed %s! +%d XP", t.Name, t.XP))
	g.leveled(levels)
	g.checkMissions()
}

func (g *Game) leveled(levels int) {
	if levels <= 0 {
		return
	}
	g.notify(fmt.Sprintf("Level up! Lv.%d", g.player.Level))
	g.sink.Play(audio.LevelUp)
	g.fx.EmitHeal(g.player.Pos)
}

// Harvest hits the first object on or next to the player's cell. Drops land
// on the object's cell and are collected by auto-pickup.
func (g *Game) Harvest() bool {
	p := g.player
	for _, c := range p.Cell().Neighbors4() {
		if _, ok := g.world.Object(c); !ok {
			continue
		}
		drops := g.world.Hit(c.X, c.Y, p.HarvestPower())
		for _, s := range drops {
			g.world.AddDrop(c, s)
			switch s.ID {
			case items.Wood:
				g.campaign.Record(campaign.WoodGot, s.Qty)
			case items.Stone:
				g.campaign.Record(campaign.StoneGot, s.Qty)
			case items.Herb:
				g.campaign.Record(campaign.HerbGot, s.Qty)
			}
		}
		g.fx.EmitBurst(c.Center(), core.ColorBrown, 5, 40, 0.4, 4, true)
		if len(drops) > 0 {
			g.sink.Play(audio.Pickup)
		}
		g.checkMissions()
		return true
	}
	return false
}

// Eat consumes the best food held.
func (g *Game) Eat() {
	id, ok := g.player.Eat()
	if !ok {
		g.notify("Nothing to eat")
		return
	}
	g.notify(fmt.Sprintf("Ate %s", id))
	g.sink.Play(audio.Eat)
}

// Drink drinks from adjacent water.
func (g *Game) Drink() {
	if !g.player.Drink(g.world) {
		g.notify("No water nearby")
		return
	}
	g.notify("You drink deeply")
	g.sink.Play(audio.Drink)
}

// Place puts down the first owned structure.
func (g *Game) Place() {
	kind, ok := g.player.PlaceFirst()
	switch {
	case kind == items.None:
		g.notify("Need a campfire, shelter, trap, torch, house or farm plot")
		return
	case !ok:
		g.notify(fmt.Sprintf("Cannot place %s here", kind))
		return
	}
	g.notify(fmt.Sprintf("Placed %s", kind))
	g.sink.Play(audio.Click)
	if kind == items.Campfire {
		g.campaign.Record(campaign.CampPlaced, 1)
		g.fx.EmitFire(g.player.Pos)
		g.checkMissions()
	}
}

// Farm performs the next useful farming step in reach.
func (g *Game) Farm() {
	out, st := g.player.FarmAction(g.rng)
	switch out {
	case player.FarmHarvested:
		g.notify(fmt.Sprintf("Harvested %s x%d", st.ID, st.Qty))
		g.sink.Play(audio.Pickup)
		g.fx.EmitHeal(g.player.Pos)
	case player.FarmWatered:
		g.notify("Plots watered")
		g.sink.Play(audio.Drink)
	case player.FarmFertilized:
		g.notify("Fertilized: growth doubled")
	case player.FarmPlanted:
		g.notify(fmt.Sprintf("Planted %s", st.ID))
		g.sink.Play(audio.Click)
	default:
		g.notify("Stand by a farm plot to plant, water or harvest")
	}
}

// Use applies an inventory item.
func (g *Game) Use(id items.ID) {
	p := g.player
	switch p.UseItem(id) {
	case player.UseHealed:
		g.notify(fmt.Sprintf("Bandaged +%d HP", player.BandageHeal))
		g.sink.Play(audio.Drink)
		g.fx.EmitHeal(p.Pos)
	case player.UseArmored:
		g.notify(fmt.Sprintf("Armor on: %d", p.Armor))
		g.sink.Play(audio.Pickup)
	case player.UsePoisoned:
		g.notify(fmt.Sprintf("Weapon coated: %d poison hits", p.PoisonStacks))
	case player.UseEquipped:
		g.notify(fmt.Sprintf("Equipped %s", id))
		g.sink.Play(audio.Pickup)
	case player.UseAte:
		g.notify(fmt.Sprintf("Ate %s", id))
		g.sink.Play(audio.Eat)
	case player.UsePlaced:
		g.notify(fmt.Sprintf("Placed %s", id))
		g.sink.Play(audio.Click)
		if id == items.Campfire {
			g.campaign.Record(campaign.CampPlaced, 1)
			g.checkMissions()
		}
	default:
		g.notify(fmt.Sprintf("Cannot use %s", id))
	}
}

// Craft builds a recipe, reporting what is missing when it cannot.
func (g *Game) Craft(r items.Recipe) bool {
	p := g.player
	if !p.Craft(r) {
		g.notify("Missing " + missing(p.Inv, r.Needs))
		return false
	}
	g.notify(fmt.Sprintf("Crafted %s", r.Output))
	g.sink.Play(audio.Craft)
	g.campaign.Record(campaign.Crafted, 1)
	switch r.Output {
	case items.Armor, items.IronArmor:
		g.campaign.Record(campaign.ArmorMade, 1)
	case items.IronSword:
		g.campaign.Record(campaign.SwordMade, 1)
	}
	g.checkMissions()
	g.leveled(p.GainXP(CraftXP))
	return true
}

func missing(inv items.Inventory, needs []items.Stack) string {
	var parts []string
	for _, n := range needs {
		if have := inv.Count(n.ID); have < n.Qty {
			parts = append(parts, fmt.Sprintf("%s %d/%d", n.ID, have, n.Qty))
		}
	}
	return strings.Join(parts, ", ")
}

// Save writes the session to the configured store.
func (g *Game) Save() {
	if g.opts.Saves == nil {
		g.notify("Saving is not available")
		return
	}
	if err := g.opts.Saves.StoreSave(g.Record()); err != nil {
		g.logErr("save game", err)
		g.notify("Save failed")
		return
	}
	g.logf("game saved", "stage", g.campaign.Current().ID, "day", g.player.Day)
	g.notify("Game saved")
}

// handleMenuInput moves the overlay cursor and applies the selection.
func (g *Game) handleMenuInput(in core.InputFrame) {
	n := g.menuLen()
	if n == 0 {
		g.cursor = 0
		return
	}
	switch {
	case in.Has(core.ActionUp):
		g.cursor = (g.cursor + n - 1) % n
	case in.Has(core.ActionDown):
		g.cursor = (g.cursor + 1) % n
	case in.Has(core.ActionConfirm):
		switch g.overlay {
		case OverlayInventory:
			g.Use(g.player.Inv.Stacks()[g.cursor].ID)
		case OverlayCraft:
			g.Craft(items.Recipes[g.cursor])
		}
		if n := g.menuLen(); g.cursor >= n {
			g.cursor = max(0, n-1)
		}
	}
}

func (g *Game) menuLen() int {
	switch g.overlay {
	case OverlayInventory:
		return len(g.player.Inv.Stacks())
	case OverlayCraft:
		return len(items.Recipes)
	}
	return 0
}
