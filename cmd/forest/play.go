package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/forest-survival/internal/audio"
	"github.com/vovakirdan/forest-survival/internal/config"
	"github.com/vovakirdan/forest-survival/internal/core"
	"github.com/vovakirdan/forest-survival/internal/platform/tui"
	"github.com/vovakirdan/forest-survival/internal/survival/items"
)

var (
	flagDifficulty string
	flagName       string
	flagWeapon     string
	flagStage      int
	flagContinue   bool
	flagNoSound    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Forest Survival",
	Long: `Open the title screen, or jump straight into a run.

Controls:
  WASD/Arrows     - Move (hold Shift or use capitals to sprint)
  Space           - Attack (an empty swing chops or mines)
  E               - Chop/mine the object next to you
  F / G           - Eat / drink from adjacent water
  B / V           - Place a structure / farm
  I / C           - Inventory / crafting
  P/Esc           - Pause
  F5              - Save
  M / N           - Toggle sound effects / music
  R               - Restart (after death)
  Q/Ctrl+C        - Quit

Difficulty options:
  easy, normal, hard, hell

Examples:
  forest play
  forest play --name Ava --difficulty hard --weapon club
  forest play --stage 3
  forest play --continue`,
	RunE: runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "normal", "Difficulty preset: easy, normal, hard, hell")
	cmd.Flags().StringVar(&flagName, "name", "Survivor", "Player name")
	cmd.Flags().StringVar(&flagWeapon, "weapon", "fists", "Starting weapon: fists, stone_knife, wooden_spear, club")
	cmd.Flags().IntVar(&flagStage, "stage", 0, "Start this unlocked stage, skipping the title")
	cmd.Flags().BoolVar(&flagContinue, "continue", false, "Continue the profile's save, skipping the title")
	cmd.Flags().BoolVar(&flagNoSound, "no-sound", false, "Skip sound synthesis")
}

func runPlay(_ *cobra.Command, _ []string) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	weapon, err := parseWeapon(flagWeapon)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()
	deps := tui.Deps{
		Store:  store,
		Config: cfg,
		Logger: logger,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
			MaxDelta: cfg.Sim.MaxDelta(),
		},
	}
	if !flagNoSound {
		deps.Bank = buildBank()
	}

	settings := tui.Settings{
		Name:       flagName,
		Difficulty: preset,
		Weapon:     weapon,
		StageID:    flagStage,
	}
	begin := tui.ChoiceNone
	switch {
	case flagContinue:
		begin = tui.ChoiceContinue
	case flagStage > 0:
		begin = tui.ChoiceNewGame
	}

	logger.Info("starting", "profile", flagProfile, "difficulty", preset, "stage", flagStage, "continue", flagContinue)
	if err := tui.Run(deps, settings, begin); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

// buildBank synthesizes the sound bank, giving up after a few seconds.
func buildBank() *audio.Bank {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	start := time.Now()
	bank, err := audio.BuildBank(ctx, logger)
	if err != nil {
		logger.Warn("sound disabled", "error", err)
		return nil
	}
	logger.Debug("sound bank ready", "effects", bank.Len(), "took", time.Since(start))
	return bank
}

func parseWeapon(s string) (items.ID, error) {
	id, err := items.Parse(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return items.None, err
	}
	for _, w := range items.StartWeapons {
		if w == id {
			return id, nil
		}
	}
	return items.None, fmt.Errorf("%s is not a starting weapon", id)
}
