package player

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/forest-survival/internal/survival/items"
	"github.com/vovakirdan/forest-survival/internal/survival/world"
)

func TestDamageFormula(t *testing.T) {
	p := newTestPlayer(world.NewEmpty(1))
	assert.Equal(t, 5, p.Damage(), "fists at level 1")

	p.Inv.Add(items.IronSword, 1)
	p.Weapon = items.IronSword
	p.Level = 3
	assert.Equal(t, 24, p.Damage())

	p.Combo = ComboThreshold
	assert.Equal(t, 36, p.Damage(), "combo multiplier")
}

func TestEquippedWeaponIsInventoryReference(t *testing.T) {
	p := newTestPlayer(world.NewEmpty(1))
	assert.Equal(t, UseNothing, p.UseItem(items.Axe), "cannot equip what is not held")

	p.Inv.Add(items.Axe, 1)
	assert.Equal(t, UseEquipped, p.UseItem(items.Axe))
	assert.Equal(t, 1, p.Inv.Count(items.Axe), "equipping does not consume")
	assert.Equal(t, items.Axe, p.EquippedWeapon())
	assert.Equal(t, 2, p.HarvestPower())

	p.Inv.Remove(items.Axe, 1)
	assert.Equal(t, items.Fists, p.EquippedWeapon())
	assert.Equal(t, 1, p.HarvestPower())
}

func TestStartWeaponGranted(t *testing.T) {
	p := New("A", 0, world.Cell{X: 3, Y: 3}.Center(), 50, items.WoodenSpear)
	assert.Equal(t, items.WoodenSpear, p.EquippedWeapon())
	assert.Equal(t, 1, p.Inv.Count(items.WoodenSpear))
	assert.Equal(t, 50.0, p.HP)
	assert.Equal(t, 100.0, p.MaxHP)
}

func TestComboCapAndExpiry(t *testing.T) {
	p := newTestPlayer(world.NewEmpty(1))
	for i := 0; i < 20; i++ {
		p.RegisterHit()
	}
	assert.Equal(t, ComboCap, p.Combo)
	p.updateTimers(ComboWindow + 0.01)
	assert.Zero(t, p.Combo)
}

func TestTakeDamageArmorAndInvulnerability(t *testing.T) {
	p := newTestPlayer(world.NewEmpty(1))
	p.Armor = 5

	dmg, ok := p.TakeDamage(9)
	assert.True(t, ok)
	assert.Equal(t, 4.0, dmg)
	assert.Equal(t, 96.0, p.HP)

	_, ok = p.TakeDamage(9)
	assert.False(t, ok, "post-hit invulnerability")

	p.updateTimers(HitInvuln)
	dmg, ok = p.TakeDamage(3)
	assert.True(t, ok)
	assert.Zero(t, dmg, "armor never heals")
	assert.Equal(t, 96.0, p.HP)
}

func TestLevelUpLoop(t *testing.T) {
	p := newTestPlayer(world.NewEmpty(1))
	p.HP = 50

	levels := p.GainXP(100 + 145 + 10)
	assert.Equal(t, 2, levels)
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, 10, p.XP)
	assert.Equal(t, 210, p.XPNext)
	assert.Equal(t, 124.0, p.MaxHP)
	assert.Equal(t, 110.0, p.HP)
}

func TestMaxHPCapped(t *testing.T) {
	p := newTestPlayer(world.NewEmpty(1))
	p.MaxHP = 195
	p.GainXP(p.XPNext)
	assert.Equal(t, float64(MaxHPCap), p.MaxHP)
}
