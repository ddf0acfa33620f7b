// Package config provides YAML-based configuration loading for the survival
// game: simulation tuning, difficulty tiers and the stage campaign.
package config

// ForestConfig contains all configuration for a run.
type ForestConfig struct {
	Sim          SimConfig        `yaml:"sim"`
	Difficulties []DifficultyTier `yaml:"difficulties"`
	Stages       []StageConfig    `yaml:"stages"`
}

// SimConfig defines the simulation clock, spawner and HUD timings.
type SimConfig struct {
	MaxDeltaMS      int     `yaml:"max_delta_ms"`      // Upper bound on one tick's elapsed time
	FirstSpawnDelay float64 `yaml:"first_spawn_delay"` // Seconds before the first wave
	SpawnInterval   float64 `yaml:"spawn_interval"`    // Seconds between waves
	SpawnMinRadius  float64 `yaml:"spawn_min_radius"`  // Inner radius of the spawn annulus
	SpawnMaxRadius  float64 `yaml:"spawn_max_radius"`  // Outer radius of the spawn annulus
	CullRadius      float64 `yaml:"cull_radius"`       // Enemies farther than this are removed
	CameraRate      float64 `yaml:"camera_rate"`       // Exponential follow rate per second
	NotifyMax       int     `yaml:"notify_max"`        // Notifications kept on screen
	NotifySeconds   float64 `yaml:"notify_seconds"`    // Default notification lifetime
	IntroSeconds    float64 `yaml:"intro_seconds"`     // Stage intro banner lifetime
}

// DifficultyTier scales vital decay and enemies.
type DifficultyTier struct {
	ID      DifficultyPreset `yaml:"id"`
	Name    string           `yaml:"name"`
	NM      float64          `yaml:"nm"`       // Hunger/thirst decay multiplier
	EM      float64          `yaml:"em"`       // Enemy hp/attack multiplier
	EC      int              `yaml:"ec"`       // Added to each stage's enemy count
	StartHP float64          `yaml:"start_hp"` // Hit points at the start of a run
}

// StageConfig defines one campaign stage.
type StageConfig struct {
	ID          int             `yaml:"id"`
	Name        string          `yaml:"name"`
	Subtitle    string          `yaml:"subtitle"`
	Description string          `yaml:"description"`
	Color       string          `yaml:"color"`
	Enemies     []SpawnWeight   `yaml:"enemies"`
	Missions    []MissionConfig `yaml:"missions"`
	Intro       []string        `yaml:"intro"`
	SeedOffset  int64           `yaml:"seed_offset"`
	NMMult      float64         `yaml:"nm_mult"`
	EMMult      float64         `yaml:"em_mult"`
	EC          int             `yaml:"ec"`
}

// SpawnWeight is one entry of a stage's enemy pool.
type SpawnWeight struct {
	Kind   string `yaml:"kind"`
	Weight int    `yaml:"weight"`
}

// MissionConfig is one stage objective.
type MissionConfig struct {
	Key         string      `yaml:"key"`
	Name        string      `yaml:"name"`
	Goal        int         `yaml:"goal"`
	RewardXP    int         `yaml:"reward_xp"`
	RewardItems []ItemCount `yaml:"reward_items,omitempty"`
}

// ItemCount names a quantity of an item by key.
type ItemCount struct {
	Item string `yaml:"item"`
	Qty  int    `yaml:"qty"`
}

// Stage returns the stage with the given id.
func (c ForestConfig) Stage(id int) (StageConfig, bool) {
	for _, s := range c.Stages {
		if s.ID == id {
			return s, true
		}
	}
	return StageConfig{}, false
}
