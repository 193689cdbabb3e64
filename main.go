package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"

	"reversi/engine"
	"reversi/experiments"
	"reversi/game"
	"reversi/layout"
	"reversi/meta"
	"reversi/render"
	"reversi/searcher"
	"reversi/searcher/agent"
)

type config struct {
	mode       string
	layout     string
	seed       uint64
	rollouts   int
	goroutines int
	duration   time.Duration
	games      int
	out        string
	level      string
}

func main() {
	cfg := config{}
	flag.StringVar(&cfg.mode, "mode", "play", "One of play, evaluate, experiment")
	flag.StringVar(&cfg.layout, "layout", "classic", "Starting board, classic or four")
	flag.Uint64Var(&cfg.seed, "seed", meta.SEED, "Seed of every random stream")
	flag.IntVar(&cfg.rollouts, "rollouts", meta.ROLLOUTS, "Decisive rollouts per candidate")
	flag.IntVar(&cfg.goroutines, "goroutines", meta.GO_ROUTINES, "Goroutines evaluating candidates")
	flag.DurationVar(&cfg.duration, "duration", 0, "Time budget per move, 0 for none")
	flag.IntVar(&cfg.games, "games", meta.NUM_GAMES, "Games per match up in experiment mode")
	flag.StringVar(&cfg.out, "out", meta.OUTPUT_DIR, "Root directory of experiment records")
	flag.StringVar(&cfg.level, "level", "info", "Log level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	level, err := zerolog.ParseLevel(cfg.level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	board, err := createBoard(cfg.layout)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid layout")
	}

	ctx := context.Background()
	switch cfg.mode {
	case "play":
		err = play(ctx, cfg, board)
	case "evaluate":
		err = evaluate(ctx, cfg, board)
	case "experiment":
		err = experiment(ctx, cfg)
	default:
		err = errors.Errorf("unknown mode %q", cfg.mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", cfg.mode)
	}
}

func createBoard(name string) (*game.Board, error) {
	switch name {
	case "classic":
		return layout.Classic(), nil
	case "four":
		return layout.FourPlayer(), nil
	}
	return nil, errors.Errorf("unknown layout %q", name)
}

func searchOptions(cfg config) []searcher.Option {
	options := []searcher.Option{
		searcher.WithRollouts(cfg.rollouts),
		searcher.WithGoroutines(cfg.goroutines),
		searcher.WithMetrics(),
	}
	if cfg.duration > 0 {
		options = append(options, searcher.WithDuration(cfg.duration))
	}
	return options
}

// play seats the evaluation agent as stone 1 against random agents and prints every board.
func play(ctx context.Context, cfg config, board *game.Board) error {
	agents := []agent.Agent{agent.NewEvaluationAgent(cfg.seed, searchOptions(cfg)...)}
	for i := 1; i < board.StoneCount(); i++ {
		agents = append(agents, agent.NewRandomAgent(rand.New(rand.NewSource(cfg.seed+uint64(i)))))
	}
	e, err := engine.LocalEngine(board, agents)
	if err != nil {
		return err
	}

	winners, gameMetric, _, err := e.Run(ctx)
	if err != nil {
		return err
	}

	history := e.Session.History()
	for i, b := range history {
		fmt.Printf("turn %d\n%s\n", i, render.Emoji(b, 0))
	}
	fmt.Printf("counts: %v\nwinners: %s\n", gameMetric.Counts[1:], engine.JoinStones(winners))
	return nil
}

// evaluate prints the estimated win rate of every legal placement of stone 1.
func evaluate(ctx context.Context, cfg config, board *game.Board) error {
	options := append(searchOptions(cfg), searcher.WithSeed(cfg.seed))
	mc := searcher.NewMonteCarlo(board, 1, options...)
	rates, searchMetric, err := mc.Estimate(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("estimate incomplete")
	}

	fmt.Print(render.Emoji(board, 1))
	positions := make([]game.Position, 0, len(rates))
	for pos := range rates {
		positions = append(positions, pos)
	}
	slices.SortFunc(positions, func(a, b game.Position) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	for _, pos := range positions {
		fmt.Printf("%s: %.3f\n", pos, rates[pos])
	}
	fmt.Printf("%d playouts, %d draws in %s\n", searchMetric.Playouts, searchMetric.Draws, searchMetric.Duration)
	return nil
}

func experiment(ctx context.Context, cfg config) error {
	for _, setup := range []experiments.Setup{
		experiments.RolloutSetup(cfg.games, cfg.seed, cfg.out),
		experiments.ParallelizationSetup(cfg.games, cfg.seed, cfg.out),
	} {
		if _, err := experiments.Run(ctx, setup); err != nil {
			return err
		}
	}
	return nil
}
