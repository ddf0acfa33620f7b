package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadForest loads the game configuration. A custom path must exist and
// validate. Otherwise the first valid file of ~/.forest/configs/forest.yaml
// and ./configs/forest.yaml wins, then the embedded defaults. Files are
// decoded over the defaults, so they only need the keys they change.
func LoadForest(customPath string) (ForestConfig, error) {
	if customPath != "" {
		cfg, err := decodeFile(customPath)
		if err != nil {
			return ForestConfig{}, err
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		if cfg, err := decodeFile(path); err == nil {
			return cfg, nil
		}
	}

	cfg := DefaultForestConfig()
	if err := yaml.Unmarshal(defaultForestYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultForestConfig(), nil
	}
	return cfg, nil
}

// searchPaths lists the optional config files in priority order.
func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".forest", "configs", "forest.yaml"))
	}
	return append(paths, filepath.Join("configs", "forest.yaml"))
}

// decodeFile reads path over the defaults and validates the result.
func decodeFile(path string) (ForestConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ForestConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := DefaultForestConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ForestConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return ForestConfig{}, fmt.Errorf("config: invalid %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks structural consistency. Unknown enemy kinds, mission keys
// and items are reported when the campaign is built from the config.
func (c ForestConfig) Validate() error {
	var errs []error
	if c.Sim.MaxDeltaMS <= 0 {
		errs = append(errs, errors.New("sim.max_delta_ms must be positive"))
	}
	if c.Sim.SpawnMaxRadius < c.Sim.SpawnMinRadius {
		errs = append(errs, errors.New("sim.spawn_max_radius must not be below spawn_min_radius"))
	}
	if len(c.Difficulties) == 0 {
		errs = append(errs, errors.New("no difficulties configured"))
	}
	if len(c.Stages) == 0 {
		errs = append(errs, errors.New("no stages configured"))
	}
	for i, s := range c.Stages {
		if s.ID != i+1 {
			errs = append(errs, fmt.Errorf("stage %q: id %d out of sequence, want %d", s.Name, s.ID, i+1))
		}
		if len(s.Enemies) == 0 {
			errs = append(errs, fmt.Errorf("stage %d: empty enemy pool", s.ID))
		}
		for _, e := range s.Enemies {
			if e.Weight <= 0 {
				errs = append(errs, fmt.Errorf("stage %d: enemy %q weight must be positive", s.ID, e.Kind))
			}
		}
		for _, m := range s.Missions {
			if m.Goal <= 0 {
				errs = append(errs, fmt.Errorf("stage %d: mission %q goal must be positive", s.ID, m.Key))
			}
		}
	}
	return errors.Join(errs...)
}
