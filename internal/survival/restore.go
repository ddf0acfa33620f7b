package survival

import (
	"fmt"
	"time"

	"github.com/vovakirdan/forest-survival/internal/config"
	"github.com/vovakirdan/forest-survival/internal/savegame"
	"github.com/vovakirdan/forest-survival/internal/survival/campaign"
	"github.com/vovakirdan/forest-survival/internal/survival/world"
)

// Record captures the session for saving.
func (g *Game) Record() savegame.Record {
	rec := savegame.Default()
	rec.SavedAt = time.Now().UTC()
	rec.BaseSeed = g.baseSeed
	rec.WorldSeed = g.worldSeed
	rec.Difficulty = string(g.opts.Tier.ID)
	rec.StageID = g.campaign.Current().ID
	rec.Cleared = g.campaign.Cleared()
	rec.Player = savegame.FromPlayer(g.player)
	rec.Progress = g.campaign.Progress()
	rec.Missions = make(map[string]int)
	for k, v := range g.campaign.Stats() {
		rec.Missions[k.String()] = v
	}
	return rec
}

// Restore rebuilds a session from a save. The world is regenerated from the
// stored seed; the player, mission counters and unlock record come from the
// record. opts.Stages and opts.Tier are resolved as in New, and the record's
// unlock state replaces opts.Progress.
func Restore(opts Options, rec savegame.Record) (*Game, error) {
	opts.Progress = rec.Progress
	opts.Runtime.Seed = rec.BaseSeed
	if opts.Tier.ID == "" {
		if preset, err := config.ParsePreset(rec.Difficulty); err == nil {
			opts.Difficulty = preset
		}
	}
	g, err := newGame(opts)
	if err != nil {
		return nil, err
	}
	if _, ok := g.campaign.Stage(rec.StageID); !ok {
		return nil, fmt.Errorf("survival: save refers to unknown stage %d", rec.StageID)
	}

	stats := make(map[campaign.MissionKey]int, len(rec.Missions))
	for key, v := range rec.Missions {
		k, err := campaign.ParseMissionKey(key)
		if err != nil {
			continue
		}
		stats[k] = v
	}
	g.campaign.Restore(rec.StageID, stats, rec.Cleared)

	stage := g.campaign.Current()
	g.baseSeed = rec.BaseSeed
	g.worldSeed = rec.WorldSeed
	g.world = world.Generate(rec.WorldSeed)
	g.rules = config.Resolve(g.opts.Tier, stage.Config)

	p, skipped := rec.Player.Player()
	g.player = p
	if !g.world.WalkableAt(p.Pos) {
		p.Pos = g.world.SpawnPoint()
	}
	g.resetSession()
	g.spawnEnemies()
	if len(skipped) > 0 {
		g.logf("save referenced unknown items", "items", skipped)
	}
	g.notify(fmt.Sprintf("Welcome back, %s!", p.Name))
	g.logf("game restored", "stage", stage.ID, "seed", rec.WorldSeed)
	return g, nil
}
