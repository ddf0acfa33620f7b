package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/forest-survival/internal/survival/campaign"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List campaign stages",
	Long: `Shows every campaign stage with its missions and whether the current
profile has unlocked or cleared it.

Examples:
  forest stages
  forest stages --profile ava`,
	RunE: runStages,
}

func runStages(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	stages, err := campaign.StagesFromConfig(cfg.Stages)
	if err != nil {
		return err
	}

	var progress campaign.Progress
	if store := openStore(); store != nil {
		defer store.Close()
		if progress, err = store.LoadProgress(); err != nil {
			return err
		}
	}

	fmt.Printf("Stages - profile %s\n", flagProfile)
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, s := range stages {
		if len(s.Name) > maxNameLen {
			maxNameLen = len(s.Name)
		}
	}

	// Print header
	fmt.Printf("  %-2s  %-*s  %-7s  %s\n", "ID", maxNameLen, "Name", "Status", "Missions")
	fmt.Printf("  %-2s  %-*s  %-7s  %s\n", "--", maxNameLen, "----", "------", "--------")

	for _, s := range stages {
		status := "locked"
		switch {
		case progress.Completed(s.ID):
			status = "cleared"
		case s.ID <= progress.MaxUnlocked():
			status = "open"
		}
		fmt.Printf("  %-2d  %-*s  %-7s  %d\n", s.ID, maxNameLen, s.Name, status, len(s.Missions))
		for _, m := range s.Missions {
			fmt.Printf("  %-2s  %-*s  %-7s    - %s\n", "", maxNameLen, "", "", m.Name)
		}
	}

	fmt.Println()
	fmt.Println("Run 'forest play --stage <id>' to play an unlocked stage.")
	return nil
}
