package player

import (
	"math"

	"github.com/vovakirdan/forest-survival/internal/survival/items"
)

// Combat tuning.
const (
	ComboCap        = 12
	ComboWindow     = 2.2
	ComboThreshold  = 3
	ComboMultiplier = 1.5
	HitInvuln       = 0.5
	HitFlash        = 0.4
	LevelUpHPGain   = 12
	LevelUpHeal     = 30
	XPGrowth        = 1.45
)

// EquippedWeapon returns the weapon in use. Equipping is a reference into
// the inventory, so a weapon no longer held falls back to fists.
func (p *Player) EquippedWeapon() items.ID {
	if p.Weapon == items.Fists || p.Inv.Count(p.Weapon) >= 1 {
		return p.Weapon
	}
	return items.Fists
}

// WeaponStats returns the stats of the equipped weapon.
func (p *Player) WeaponStats() items.Weapon {
	w, _ := items.WeaponStats(p.EquippedWeapon())
	return w
}

// Damage returns the damage of the next swing.
func (p *Player) Damage() int {
	d := p.WeaponStats().Damage + (p.Level-1)*2
	if p.Combo >= ComboThreshold {
		d = int(float64(d) * ComboMultiplier)
	}
	return d
}

// HarvestPower is the hit strength against world objects.
func (p *Player) HarvestPower() int {
	switch p.EquippedWeapon() {
	case items.Axe, items.Pickaxe:
		return 2
	}
	return 1
}

// CanAttack reports whether the attack cooldown has elapsed.
func (p *Player) CanAttack() bool {
	return !p.Dead && p.AttackCD <= 0
}

// BeginSwing starts the weapon cooldown and swing animation.
func (p *Player) BeginSwing() {
	p.AttackCD = p.WeaponStats().Cooldown
	p.Swinging = true
	p.Swing = 0
}

// RegisterHit extends the combo streak.
func (p *Player) RegisterHit() {
	if p.Combo < ComboCap {
		p.Combo++
	}
	p.ComboTimer = ComboWindow
}

// TakeDamage applies an enemy attack reduced by armor. It returns the damage
// dealt and false while the post-hit invulnerability window is active.
func (p *Player) TakeDamage(atk int) (float64, bool) {
	if p.Dead || p.HitCD > 0 {
		return 0, false
	}
	dmg := math.Max(0, float64(atk-p.Armor))
	p.HP -= dmg
	p.Flash = HitFlash
	p.HitCD = HitInvuln
	p.clampVitals()
	if p.HP <= 0 {
		p.Dead = true
	}
	return dmg, true
}

// GainXP adds experience and applies every level-up it pays for.
// It returns the number of levels gained.
func (p *Player) GainXP(n int) int {
	if n <= 0 {
		return 0
	}
	p.XP += n
	levels := 0
	for p.XPNext > 0 && p.XP >= p.XPNext {
		p.XP -= p.XPNext
		p.Level++
		p.XPNext = int(float64(p.XPNext) * XPGrowth)
		p.MaxHP = math.Min(MaxHPCap, p.MaxHP+LevelUpHPGain)
		p.HP = math.Min(p.MaxHP, p.HP+LevelUpHeal)
		levels++
	}
	return levels
}
