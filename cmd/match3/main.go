// match3 is a terminal match-3 game with local, SSH and WebSocket play.
//
// Usage:
//
//	match3 list                - List game variants
//	match3 play [variant]      - Play a variant
//	match3 menu                - Pick variants interactively
//	match3 scores [variant]    - Show high scores
//	match3 serve               - Serve games over SSH and WebSocket
//	match3 sim [variant]       - Autoplay a seeded game without a terminal
//	match3 config              - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.match3/scores.db)
//	--config <path>       - Load a custom YAML config
//	--difficulty <name>   - easy, normal, hard or endless
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagVerbose    bool

	// Effective configuration, loaded before any command runs.
	gameConfig config.Match3Config
	logger     *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - swap tiles in your terminal",
	Long: `Match-3 is a terminal puzzle game. Swap neighbouring tiles to line up
three or more of a colour, build specials from bigger matches and chain
cascades for combo points.

Available commands:
  list     - Show all variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  scores   - View high scores
  serve    - Serve games over SSH and WebSocket
  sim      - Headless seeded autoplay
  config   - Print the effective configuration

Examples:
  match3 list
  match3 play match3_hex
  match3 play --difficulty hard
  match3 serve --ssh :2222 --ws :8080
  match3 sim --seed 42 --boards`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.match3/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, endless")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads the configuration and hands it to the game package.
func setup(cmd *cobra.Command, _ []string) error {
	logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		ReportTimestamp: true,
		Prefix:          "match3",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.LoadMatch3(flagConfig)
	if err != nil {
		return err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	gameConfig = cfg
	match3.SetConfig(cfg)
	match3.SetDifficulty(preset)
	logger.Debug("config loaded", "difficulty", preset, "moves", cfg.Game.Moves, "board", fmt.Sprintf("%dx%d", cfg.Board.Rows, cfg.Board.Cols))
	return nil
}

// openRecorder opens the score store. Games still run when it fails.
func openRecorder() *tui.Recorder {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return &tui.Recorder{Logger: logger}
	}
	return &tui.Recorder{Store: store, Keep: gameConfig.Scores.Keep, Logger: logger}
}

func closeRecorder(rec *tui.Recorder) {
	if rec != nil && rec.Store != nil {
		rec.Store.Close()
	}
}
