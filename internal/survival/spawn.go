package survival

import (
	"fmt"
	"math"

	"github.com/vovakirdan/forest-survival/internal/audio"
	"github.com/vovakirdan/forest-survival/internal/core"
	"github.com/vovakirdan/forest-survival/internal/survival/campaign"
	"github.com/vovakirdan/forest-survival/internal/survival/enemy"
)

// NightDemonWeight is added to the stage pool after dark when the pool has
// no demons of its own.
const NightDemonWeight = 2

// spawnEnemies tops the population up to the stage's enemy count, trying
// count×8 random positions in an annulus around the player.
func (g *Game) spawnEnemies() {
	target := g.rules.EnemyCount
	pool := g.spawnPool()
	if len(pool) == 0 {
		return
	}
	p := g.player
	for attempts := 0; len(g.enemies) < target && attempts < target*8; attempts++ {
		angle := g.rng.Float64() * 2 * math.Pi
		dist := g.sim.SpawnMinRadius + g.rng.Float64()*(g.sim.SpawnMaxRadius-g.sim.SpawnMinRadius)
		pos := core.Vec{X: p.Pos.X + math.Cos(angle)*dist, Y: p.Pos.Y + math.Sin(angle)*dist}
		if !g.world.WalkableAt(pos) {
			continue
		}
		g.enemies = append(g.enemies, enemy.New(g.pickKind(pool), pos, g.rules.EnemyMult))
	}
}

func (g *Game) spawnPool() []campaign.SpawnEntry {
	pool := g.campaign.Current().Pool
	if !g.player.IsNight() {
		return pool
	}
	for _, e := range pool {
		if e.Kind == enemy.Demon {
			return pool
		}
	}
	night := make([]campaign.SpawnEntry, len(pool), len(pool)+1)
	copy(night, pool)
	return append(night, campaign.SpawnEntry{Kind: enemy.Demon, Weight: NightDemonWeight})
}

func (g *Game) pickKind(pool []campaign.SpawnEntry) enemy.Kind {
	total := 0
	for _, e := range pool {
		total += max(0, e.Weight)
	}
	if total == 0 {
		return pool[0].Kind
	}
	r := g.rng.Intn(total)
	for _, e := range pool {
		if r < e.Weight {
			return e.Kind
		}
		r -= max(0, e.Weight)
	}
	return pool[len(pool)-1].Kind
}

// updateEnemies advances every enemy and resolves attacks and deaths.
func (g *Game) updateEnemies(dt float64) {
	p := g.player
	for _, e := range g.enemies {
		if !e.Alive() {
			continue
		}
		switch e.Update(dt, p.Pos, g.world, g.rng) {
		case enemy.Dead:
			g.killEnemy(e)
		case enemy.Attack:
			dmg, ok := p.TakeDamage(e.Atk)
			if !ok {
				continue
			}
			g.fx.EmitBlood(p.Pos, 6)
			g.sink.Play(audio.Hit)
			g.notify(fmt.Sprintf("%s attacks! -%d HP", e.Kind, int(dmg)))
			if p.Dead {
				g.removeDead()
				g.die()
				return
			}
		}
		if g.phase != PhasePlaying || g.overlay != OverlayNone {
			break
		}
	}
	g.removeDead()
}

func (g *Game) removeDead() {
	live := g.enemies[:0]
	for _, e := range g.enemies {
		if e.Alive() {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(g.enemies); i++ {
		g.enemies[i] = nil
	}
	g.enemies = live
}

// cull drops enemies that wandered beyond the cull radius.
func (g *Game) cull() {
	live := g.enemies[:0]
	for _, e := range g.enemies {
		if core.Dist(e.Pos, g.player.Pos) < g.sim.CullRadius {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(g.enemies); i++ {
		g.enemies[i] = nil
	}
	g.enemies = live
}
