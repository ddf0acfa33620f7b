package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/forest-survival/internal/storage"
)

var flagSavesDelete bool

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List save slots",
	Long: `List every profile's save slot with its stage, day and tier.
Each profile has one slot; F5 in game overwrites it.

Examples:
  forest saves
  forest saves --profile ava --delete`,
	RunE: runSaves,
}

func init() {
	savesCmd.Flags().BoolVar(&flagSavesDelete, "delete", false, "Delete the --profile save slot")
}

func runSaves(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening game database: %w", err)
	}
	defer store.Close()

	if flagSavesDelete {
		if err := store.DeleteSave(flagProfile); err != nil {
			return err
		}
		logger.Info("save deleted", "profile", flagProfile)
		fmt.Printf("Deleted the save of profile %s\n", flagProfile)
		return nil
	}

	saves, err := store.Saves()
	if err != nil {
		return err
	}
	if len(saves) == 0 {
		fmt.Println("No saves yet. Press F5 in game to save.")
		return nil
	}

	fmt.Printf("  %-16s  %-6s  %-5s  %-4s  %-16s  %s\n", "Profile", "Tier", "Stage", "Day", "Player", "Saved")
	fmt.Printf("  %-16s  %-6s  %-5s  %-4s  %-16s  %s\n", "-------", "----", "-----", "---", "------", "-----")
	for _, info := range saves {
		rec, err := store.LoadSave(info.Slot)
		if err != nil {
			logger.Warn("unreadable save", "slot", info.Slot, "error", err)
			fmt.Printf("  %-16s  (unreadable: %v)\n", info.Slot, err)
			continue
		}
		fmt.Printf("  %-16s  %-6s  %-5d  %-4d  %-16s  %s\n",
			info.Slot, rec.Difficulty, rec.StageID, rec.Player.Day, rec.Player.Name,
			info.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
