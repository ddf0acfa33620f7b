package config

import (
	"fmt"
	"math"
	"time"
)

// DifficultyPreset represents a named difficulty tier.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyHell   DifficultyPreset = "hell"
)

// ParsePreset validates a preset name from the command line.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyHell:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, hell)", s)
}

// Tier returns the tier for a preset.
func (c ForestConfig) Tier(p DifficultyPreset) (DifficultyTier, error) {
	for _, t := range c.Difficulties {
		if t.ID == p {
			return t, nil
		}
	}
	return DifficultyTier{}, fmt.Errorf("config: difficulty %q not configured", p)
}

// Rules are the effective multipliers of one stage played at one tier.
type Rules struct {
	VitalMult  float64
	EnemyMult  float64
	EnemyCount int
	StartHP    float64
}

// Resolve combines a tier with a stage.
func Resolve(t DifficultyTier, s StageConfig) Rules {
	nm, em := s.NMMult, s.EMMult
	if nm <= 0 {
		nm = 1
	}
	if em <= 0 {
		em = 1
	}
	return Rules{
		VitalMult:  t.NM * nm,
		EnemyMult:  t.EM * em,
		EnemyCount: int(math.Max(1, float64(s.EC+t.EC))),
		StartHP:    t.StartHP,
	}
}

// MaxDelta returns the tick clamp as a duration.
func (s SimConfig) MaxDelta() time.Duration {
	return time.Duration(s.MaxDeltaMS) * time.Millisecond
}
