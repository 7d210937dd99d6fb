package main

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the best results for the specified variant. Without a variant,
print a one-line summary per variant that has been played.

Examples:
  match3 scores
  match3 scores match3_hex --limit 3
  match3 scores match3_endless --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of results to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every result of the variant")
}

func runScores(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		if flagScoresClear {
			return fmt.Errorf("--clear needs a variant")
		}
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("opening scores database: %w", err)
		}
		defer store.Close()
		return printSummary(out, store)
	}

	gameID := args[0]
	info, ok := registry.Info(gameID)
	if !ok {
		return fmt.Errorf("unknown variant %q, run 'match3 list' to see available variants", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Fprintf(out, "Cleared all scores for %s.\n", info.Title)
		return nil
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Fprintf(out, "High Scores - %s\n", info.Title)
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'match3 play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-8s  %-5s  %-5s  %-12s  %s\n", "Rank", "Score", "Moves", "Combo", "Player", "Date")
	fmt.Fprintf(out, "  %-4s  %-8s  %-5s  %-5s  %-12s  %s\n", "----", "-----", "-----", "-----", "------", "----")
	for i, entry := range scores {
		player := entry.Player
		if player == "" {
			player = "-"
		}
		fmt.Fprintf(out, "  %-4d  %-8d  %-5d  x%-4d  %-12.12s  %s\n",
			i+1, entry.Score, entry.Moves, entry.BestCombo, player, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Best: %d   Games: %d   Average: %.0f   Best combo: x%d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.BestCombo)
	}
	return nil
}

// printSummary lists per-variant statistics in registry order. Results of
// variants no longer registered are listed last under their raw ID.
func printSummary(w io.Writer, store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}

	fmt.Fprintln(w, "High Scores")
	fmt.Fprintln(w)
	if len(all) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-20s  %-5s  %-8s  %-8s  %-5s  %s\n", "Variant", "Games", "Best", "Average", "Combo", "Last played")
	fmt.Fprintf(w, "  %-20s  %-5s  %-8s  %-8s  %-5s  %s\n", "-------", "-----", "----", "-------", "-----", "-----------")
	row := func(title string, st *storage.GameStats) {
		fmt.Fprintf(w, "  %-20.20s  %-5d  %-8d  %-8.0f  x%-4d  %s\n",
			title, st.GamesCount, st.HighScore, st.AvgScore, st.BestCombo, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	for _, info := range registry.List() {
		if st, ok := all[info.ID]; ok {
			row(info.Title, st)
			delete(all, info.ID)
		}
	}
	for _, id := range slices.Sorted(maps.Keys(all)) {
		row(id, all[id])
	}
	return nil
}
