package tui

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/forest-survival/internal/audio"
	"github.com/vovakirdan/forest-survival/internal/config"
	"github.com/vovakirdan/forest-survival/internal/core"
	"github.com/vovakirdan/forest-survival/internal/storage"
	"github.com/vovakirdan/forest-survival/internal/survival"
	"github.com/vovakirdan/forest-survival/internal/survival/campaign"
	"github.com/vovakirdan/forest-survival/internal/survival/items"
)

// Deps are the shared services every screen draws on. Store may be nil, in
// which case progress, saves and scores live only for the session.
type Deps struct {
	Store   *storage.Store
	Config  config.ForestConfig
	Logger  *log.Logger
	Bank    *audio.Bank
	Runtime core.RuntimeConfig
}

// Settings are the player's choices on the title screen.
type Settings struct {
	Name       string
	Difficulty config.DifficultyPreset
	Weapon     items.ID
	StageID    int
}

// DefaultSettings returns the title screen's initial choices.
func DefaultSettings() Settings {
	return Settings{
		Name:       "Survivor",
		Difficulty: config.DifficultyNormal,
		Weapon:     items.Fists,
	}
}

func (d Deps) logger() *log.Logger {
	if d.Logger == nil {
		return log.New(io.Discard)
	}
	return d.Logger
}

func (d Deps) stages() ([]campaign.Stage, error) {
	cfg := d.Config
	if len(cfg.Stages) == 0 {
		cfg = config.DefaultForestConfig()
	}
	return campaign.StagesFromConfig(cfg.Stages)
}

// progress returns the unlock record, falling back to a fresh campaign.
func (d Deps) progress() campaign.Progress {
	if d.Store == nil {
		return campaign.Progress{}
	}
	p, err := d.Store.LoadProgress()
	if err != nil {
		d.logger().Warn("could not load progress", "profile", d.Store.Profile(), "error", err)
		return campaign.Progress{}
	}
	return p
}

func (d Deps) options(s Settings, sink audio.Sink) (survival.Options, error) {
	stages, err := d.stages()
	if err != nil {
		return survival.Options{}, err
	}
	cfg := d.Config
	if len(cfg.Difficulties) == 0 {
		cfg = config.DefaultForestConfig()
	}
	tier, err := cfg.Tier(s.Difficulty)
	if err != nil {
		return survival.Options{}, err
	}
	opts := survival.Options{
		Name:     s.Name,
		Weapon:   s.Weapon,
		Runtime:  d.Runtime,
		Sim:      cfg.Sim,
		Tier:     tier,
		Stages:   stages,
		Progress: d.progress(),
		StageID:  s.StageID,
		Sink:     sink,
		Logger:   d.Logger,
	}
	if opts.Runtime.MaxDelta == 0 {
		opts.Runtime.MaxDelta = cfg.Sim.MaxDelta()
	}
	// A nil *Store must not become a non-nil interface.
	if d.Store != nil {
		opts.ProgressSaver = d.Store
		opts.Saves = d.Store
	}
	return opts, nil
}

// newGame starts a fresh run with the given settings.
func (d Deps) newGame(s Settings, sink audio.Sink) (*survival.Game, error) {
	opts, err := d.options(s, sink)
	if err != nil {
		return nil, err
	}
	return survival.New(opts)
}

// continueGame restores the profile's save slot.
func (d Deps) continueGame(sink audio.Sink) (*survival.Game, error) {
	if d.Store == nil {
		return nil, errors.New("no save storage")
	}
	rec, err := d.Store.LoadSave(d.Store.Profile())
	if err != nil {
		return nil, err
	}
	preset, err := config.ParsePreset(rec.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("save: %w", err)
	}
	opts, err := d.options(Settings{Name: rec.Player.Name, Difficulty: preset}, sink)
	if err != nil {
		return nil, err
	}
	return survival.Restore(opts, rec)
}

// hasSave reports whether the profile has a save to continue.
func (d Deps) hasSave() bool {
	if d.Store == nil {
		return false
	}
	_, err := d.Store.LoadSave(d.Store.Profile())
	return err == nil
}
