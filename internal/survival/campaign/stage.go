package campaign

import (
	"fmt"

	"github.com/vovakirdan/forest-survival/internal/config"
	"github.com/vovakirdan/forest-survival/internal/core"
	"github.com/vovakirdan/forest-survival/internal/survival/enemy"
	"github.com/vovakirdan/forest-survival/internal/survival/items"
)

// SpawnEntry is one weighted kind of a stage pool.
type SpawnEntry struct {
	Kind   enemy.Kind
	Weight int
}

// Stage is a campaign chapter: a generated world with its own pool and missions.
type Stage struct {
	ID          int
	Name        string
	Subtitle    string
	Description string
	Color       core.Color
	Pool        []SpawnEntry
	Missions    []Mission
	Intro       []string
	SeedOffset  int64
	Config      config.StageConfig
}

var colorNames = map[string]core.Color{
	"green":        core.ColorGreen,
	"bright_green": core.ColorBrightGreen,
	"cyan":         core.ColorCyan,
	"yellow":       core.ColorYellow,
	"orange":       core.ColorOrange,
	"magenta":      core.ColorMagenta,
	"red":          core.ColorRed,
	"blue":         core.ColorBlue,
	"white":        core.ColorWhite,
}

// StagesFromConfig converts stage definitions into typed stages, rejecting
// unknown enemy kinds, mission keys and reward items.
func StagesFromConfig(defs []config.StageConfig) ([]Stage, error) {
	out := make([]Stage, 0, len(defs))
	for _, d := range defs {
		s := Stage{
			ID:          d.ID,
			Name:        d.Name,
			Subtitle:    d.Subtitle,
			Description: d.Description,
			Color:       colorNames[d.Color],
			Intro:       d.Intro,
			SeedOffset:  d.SeedOffset,
			Config:      d,
		}
		for _, e := range d.Enemies {
			k, err := enemy.ParseKind(e.Kind)
			if err != nil {
				return nil, fmt.Errorf("campaign: stage %d: %w", d.ID, err)
			}
			s.Pool = append(s.Pool, SpawnEntry{Kind: k, Weight: e.Weight})
		}
		for _, m := range d.Missions {
			key, err := ParseMissionKey(m.Key)
			if err != nil {
				return nil, fmt.Errorf("campaign: stage %d: %w", d.ID, err)
			}
			mission := Mission{Key: key, Name: m.Name, Goal: m.Goal, RewardXP: m.RewardXP}
			for _, r := range m.RewardItems {
				id, err := items.Parse(r.Item)
				if err != nil {
					return nil, fmt.Errorf("campaign: stage %d mission %s: %w", d.ID, m.Key, err)
				}
				mission.RewardItems = append(mission.RewardItems, items.Stack{ID: id, Qty: r.Qty})
			}
			s.Missions = append(s.Missions, mission)
		}
		out = append(out, s)
	}
	return out, nil
}
