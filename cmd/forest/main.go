// forest is a top-down survival game for the terminal.
//
// Usage:
//
//	forest                   - Open the title screen (same as play)
//	forest play              - Play, optionally skipping the title
//	forest stages            - List campaign stages and their lock state
//	forest scores [tier]     - Show the best runs
//	forest serve             - Start SSH server for remote play
//	forest synth             - Export the synthesized sound bank as WAV files
//	forest worldmap          - Print a generated world as text
//	forest config            - Print the effective game configuration
//	forest saves             - List or delete save slots
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set world seed for reproducible worlds
//	--db <path>        - Set database path (default: ~/.forest/forest.db)
//	--config <path>    - Use a custom game config YAML
//	--profile <name>   - Progress and save profile (default: local)
//	--log <path>       - Log file; "" logs to stderr, "-" disables logging
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/forest-survival/internal/config"
	"github.com/vovakirdan/forest-survival/internal/logging"
	"github.com/vovakirdan/forest-survival/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagProfile  string
	flagLogPath  string
	flagLogLevel string

	logger    *log.Logger
	logCloser io.Closer
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "forest",
	Short: "Forest Survival - survive the woods in your terminal",
	Long: `Forest Survival is a top-down survival game played in the terminal.
Gather wood and stone, craft tools and shelter, keep fed and watered,
and fight through a campaign of stages as the nights grow darker.

Available commands:
  play      - Play (the default)
  stages    - List campaign stages
  scores    - View the best runs
  serve     - Start SSH server for remote play
  synth     - Export the sound bank as WAV files
  worldmap  - Print a generated world
  config    - Print the game configuration
  saves     - List or delete save slots

Examples:
  forest
  forest play --difficulty hard --weapon club
  forest play --continue
  forest serve --ssh :2222
  forest scores hell`,
	PersistentPreRunE: setupLogging,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
	RunE:          runPlay,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "World seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.forest/forest.db", "Path to game database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", storage.DefaultProfile, "Profile for progress and saves")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.forest/forest.log", `Log file ("" = stderr, "-" = off)`)
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	addPlayFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(stagesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(synthCmd)
	rootCmd.AddCommand(worldmapCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(savesCmd)
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	l, closer, err := logging.New(logging.Options{
		Path:   flagLogPath,
		Level:  flagLogLevel,
		Prefix: "forest",
	})
	if err != nil {
		return err
	}
	logger, logCloser = l, closer
	logger.Debug("command started", "cmd", cmd.Name())
	return nil
}

// loadConfig loads the game configuration from --config or the default
// search path.
func loadConfig() (config.ForestConfig, error) {
	cfg, err := config.LoadForest(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// openStore opens the database under the --profile profile. A failure is
// logged and returns nil; the game still runs without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open game database: %v\n", err)
		logger.Warn("could not open game database", "path", flagDBPath, "error", err)
		return nil
	}
	return store.WithProfile(flagProfile)
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
