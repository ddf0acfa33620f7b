package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	var cfg ForestConfig
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	want := DefaultForestConfig()
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("embedded defaults drifted from DefaultForestConfig()\n got: %+v\nwant: %+v", cfg, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "forest.yaml")

	cfg := DefaultForestConfig()
	cfg.Sim.SpawnInterval = 3
	cfg.Stages = cfg.Stages[:2]
	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := LoadForest(path)
	if err != nil {
		t.Fatalf("LoadForest() error = %v", err)
	}
	if got.Sim.SpawnInterval != 3 {
		t.Errorf("SpawnInterval = %v, expected 3", got.Sim.SpawnInterval)
	}
	if len(got.Stages) != 2 {
		t.Errorf("len(Stages) = %d, expected 2", len(got.Stages))
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadForest(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("stages: [{id: 3, name: x}]\nsim: {max_delta_ms: 50}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadForest(bad); err == nil {
		t.Error("expected validation error for out-of-sequence stage")
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	wd, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(wd) })
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadForest("")
	if err != nil {
		t.Fatalf("LoadForest() error = %v", err)
	}
	if len(cfg.Stages) != 6 {
		t.Errorf("expected 6 default stages, got %d", len(cfg.Stages))
	}
}

func TestPresetsAndResolve(t *testing.T) {
	cfg := DefaultForestConfig()
	for _, name := range []string{"easy", "normal", "hard", "hell"} {
		p, err := ParsePreset(name)
		if err != nil {
			t.Fatalf("ParsePreset(%q): %v", name, err)
		}
		if _, err := cfg.Tier(p); err != nil {
			t.Errorf("Tier(%q): %v", p, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}

	hell, _ := cfg.Tier(DifficultyHell)
	if hell.StartHP != 50 {
		t.Errorf("hell StartHP = %v, expected 50", hell.StartHP)
	}

	stage, ok := cfg.Stage(1)
	if !ok {
		t.Fatal("stage 1 missing")
	}
	easy, _ := cfg.Tier(DifficultyEasy)
	r := Resolve(easy, stage)
	if r.EnemyCount != 3 {
		t.Errorf("EnemyCount = %d, expected 3", r.EnemyCount)
	}
	if diff := r.EnemyMult - 0.72; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("EnemyMult = %v, expected 0.72", r.EnemyMult)
	}

	stage.EC = 0
	if r := Resolve(easy, stage); r.EnemyCount != 1 {
		t.Errorf("EnemyCount should floor at 1, got %d", r.EnemyCount)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forest.yaml")
	if err := os.WriteFile(path, []byte("sim:\n  spawn_interval: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadForest(path)
	if err != nil {
		t.Fatalf("LoadForest() error = %v", err)
	}
	want := DefaultForestConfig()
	if got.Sim.SpawnInterval != 9 {
		t.Errorf("SpawnInterval = %v, expected 9", got.Sim.SpawnInterval)
	}
	if got.Sim.MaxDeltaMS != want.Sim.MaxDeltaMS || len(got.Stages) != len(want.Stages) {
		t.Error("keys missing from the file should keep their defaults")
	}
}
