package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/forest-survival/internal/audio"
)

var (
	flagSynthOut    string
	flagSynthEffect string
)

var synthCmd = &cobra.Command{
	Use:   "synth",
	Short: "Export the synthesized sound bank as WAV files",
	Long: `Synthesize every sound effect and the ambient loop and write them as
mono 16-bit WAV files, one per effect.

Examples:
  forest synth
  forest synth --out ./sounds
  forest synth --effect swing`,
	RunE: runSynth,
}

func init() {
	synthCmd.Flags().StringVar(&flagSynthOut, "out", "sounds", "Output directory")
	synthCmd.Flags().StringVar(&flagSynthEffect, "effect", "", "Export a single effect by key")
}

func runSynth(cmd *cobra.Command, _ []string) error {
	if flagSynthEffect != "" {
		return exportEffect(flagSynthEffect)
	}

	bank, err := audio.BuildBank(context.Background(), logger)
	if err != nil {
		return fmt.Errorf("synth: %w", err)
	}
	paths, err := audio.ExportBank(bank, flagSynthOut)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	logger.Info("sound bank exported", "dir", flagSynthOut, "files", len(paths))
	return nil
}

func exportEffect(key string) error {
	e, err := audio.ParseEffect(key)
	if err != nil {
		return err
	}
	pcm, err := audio.Synthesize(e)
	if err != nil {
		return fmt.Errorf("synth %s: %w", e, err)
	}
	if err := os.MkdirAll(flagSynthOut, 0o755); err != nil {
		return err
	}
	path := filepath.Join(flagSynthOut, e.Key()+".wav")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := audio.WriteWAV(f, pcm); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}
