package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// simMaxMoves bounds autoplay of variants without a move limit.
const simMaxMoves = 500

var (
	flagSimMoves  int
	flagSimBoards bool
	flagSimLayout string
)

var simCmd = &cobra.Command{
	Use:   "sim [variant]",
	Short: "Autoplay a seeded game without a terminal",
	Long: `Play a variant headlessly by always taking the hinted swap, printing
every settle step. The same seed always prints the same game.

A layout file starts from a fixed board instead of a dealt one:

  moves: 5
  rows:
    - RGBYP
    - GBYPR
    - ...

Examples:
  match3 sim --seed 42
  match3 sim match3_hex --seed 7 --moves 3 --boards
  match3 sim --layout ./puzzle.yaml --boards`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimMoves, "moves", 0, "Stop after this many swaps (0 = until game over)")
	simCmd.Flags().BoolVar(&flagSimBoards, "boards", false, "Print the board after every step")
	simCmd.Flags().StringVar(&flagSimLayout, "layout", "", "YAML puzzle file with a starting board")
}

// puzzle is a fixed starting board read from YAML.
type puzzle struct {
	Moves int      `yaml:"moves"`
	Rows  []string `yaml:"rows"`
}

func runSim(cmd *cobra.Command, args []string) error {
	variant := "match3"
	if len(args) > 0 {
		variant = args[0]
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var (
		session *match3.Session
		err     error
	)
	if flagSimLayout != "" {
		session, err = puzzleSession(flagSimLayout, variant, seed)
	} else {
		session, err = match3.NewVariantSession(variant, seed)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s seed=%d\n", variant, seed)
	return simulate(cmd.OutOrStdout(), session, flagSimMoves, flagSimBoards)
}

func puzzleSession(path, variant string, seed int64) (*match3.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout: %w", err)
	}
	var p puzzle
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing layout %s: %w", path, err)
	}

	cfg, err := match3.VariantConfig(variant)
	if err != nil {
		return nil, err
	}
	engine, err := cfg.EngineConfig(seed)
	if err != nil {
		return nil, err
	}
	board, err := m3.FromLayout(engine, p.Rows)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", path, err)
	}
	return match3.NewSessionFromBoard(board, p.Moves), nil
}

// simulate plays hinted swaps until the game ends or maxMoves swaps were made.
func simulate(w io.Writer, s *match3.Session, maxMoves int, boards bool) error {
	if maxMoves <= 0 && s.MoveLimit() == 0 {
		maxMoves = simMaxMoves
	}

	fmt.Fprintln(w, m3.RenderASCII(s.Board()))

	reason := "stopped"
	for n := 1; maxMoves <= 0 || n <= maxMoves; n++ {
		if s.GameOver() {
			reason = "game over"
			break
		}
		mv, ok := s.Hint()
		if !ok {
			reason = "no moves left"
			break
		}

		out, err := s.Swap(mv.From, mv.To)
		if err != nil {
			return fmt.Errorf("move %d: %w", n, err)
		}
		if out.Kind != m3.OutcomeSettled {
			return fmt.Errorf("move %d: hinted swap %v -> %v was %v", n, mv.From, mv.To, out.Kind)
		}

		fmt.Fprintf(w, "\nmove %d: %v -> %v\n", n, mv.From, mv.To)
		for _, step := range s.Drain() {
			fmt.Fprintf(w, "  step %d: cleared %d (+%d, x%d)", step.Iteration, len(step.Cleared), step.ScoreDelta, step.Combo)
			if sc := step.SpecialCreated; sc != nil {
				fmt.Fprintf(w, " %s at %v", sc.Special, sc.Pos)
			}
			fmt.Fprintln(w)
			if boards {
				fmt.Fprintln(w, indent(m3.RenderASCII(step.Board), "    "))
			}
		}
	}
	if s.GameOver() {
		reason = "game over"
	}

	fmt.Fprintf(w, "\nscore=%d moves=%d best_combo=x%d (%s)\n", s.Score(), s.Moves(), s.BestCombo(), reason)
	return nil
}

func indent(text, prefix string) string {
	return prefix + strings.ReplaceAll(text, "\n", "\n"+prefix)
}
