package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick variants from an interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant and Tab for
the high score tables. After a game ends, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select variant
  Tab          - High scores
  Q            - Quit

Examples:
  match3 menu
  match3 menu --difficulty hard
  match3 menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	rec := openRecorder()
	defer closeRecorder(rec)

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(rec.Store, cfg)
		if err != nil {
			return err
		}

		// Keep any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(rec.Store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				logger.Error("scoreboard failed", "error", err)
			}
			if goBack {
				continue
			}
			return nil
		}

		if menuResult.GameID == "" {
			return nil
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("creating game", "variant", menuResult.GameID, "error", err)
			continue
		}

		// A fixed --seed replays the same board every round.
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, rec, cfg); err != nil {
			logger.Error("running game", "variant", menuResult.GameID, "error", err)
		}
	}
}
