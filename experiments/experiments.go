package experiments

import (
	"context"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"reversi/engine"
	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/layout"
	"reversi/meta"
	"reversi/searcher"
	"reversi/searcher/agent"
)

type Setup struct {
	Name     string
	Board    func() *game.Board
	Configs  []metrics.AgentConfig
	MatchUps [][]metrics.AgentConfig // One config per stone, stone i+1 plays MatchUps[m][i]
	NumGames int                     // Per match up
	Seed     uint64
	OutDir   string // Records are skipped when empty
}

type Summary struct {
	Games     int
	MeanMoves float64
	StdMoves  float64
	Wins      map[int]float64 // Sole-winner ratio per AgentConfig.ID over the games it played
	Dir       string
}

// RolloutSetup pits Monte Carlo agents with growing rollout counts against a random agent
// on the classic board.
func RolloutSetup(numGames int, seed uint64, outDir string) Setup {
	baseline := metrics.AgentConfig{ID: 0, Kind: metrics.RandomAgent}
	configs := []metrics.AgentConfig{
		{ID: 1, Kind: metrics.MonteCarloAgent, Goroutines: meta.GO_ROUTINES, Rollouts: 5},
		{ID: 2, Kind: metrics.MonteCarloAgent, Goroutines: meta.GO_ROUTINES, Rollouts: 20},
		{ID: 3, Kind: metrics.MonteCarloAgent, Goroutines: meta.GO_ROUTINES, Rollouts: meta.ROLLOUTS},
	}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{config, baseline})
	}
	return Setup{
		Name:     "rollouts",
		Board:    layout.Classic,
		Configs:  append(configs, baseline),
		MatchUps: matchUps,
		NumGames: numGames,
		Seed:     seed,
		OutDir:   outDir,
	}
}

// ParallelizationSetup plays Monte Carlo agents that differ only in goroutines under the same
// time budget, against the sequential agent.
func ParallelizationSetup(numGames int, seed uint64, outDir string) Setup {
	baseline := metrics.AgentConfig{ID: 0, Kind: metrics.MonteCarloAgent, Goroutines: 1, Rollouts: meta.ROLLOUTS, Duration: meta.TIME_BUDGET}
	configs := []metrics.AgentConfig{
		{ID: 1, Kind: metrics.MonteCarloAgent, Goroutines: 1, Rollouts: meta.ROLLOUTS, Duration: meta.TIME_BUDGET},
		{ID: 2, Kind: metrics.MonteCarloAgent, Goroutines: 4, Rollouts: meta.ROLLOUTS, Duration: meta.TIME_BUDGET},
		{ID: 3, Kind: metrics.MonteCarloAgent, Goroutines: 8, Rollouts: meta.ROLLOUTS, Duration: meta.TIME_BUDGET},
		{ID: 4, Kind: metrics.MonteCarloAgent, Goroutines: 16, Rollouts: meta.ROLLOUTS, Duration: meta.TIME_BUDGET},
	}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return Setup{
		Name:     "parallelization",
		Board:    layout.Classic,
		Configs:  append(configs, baseline),
		MatchUps: matchUps,
		NumGames: numGames,
		Seed:     seed,
		OutDir:   outDir,
	}
}

// Run plays every match up NumGames times, stores the records and summarizes the results.
func Run(ctx context.Context, setup Setup) (Summary, error) {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", setup.Name)

	for mi, matchUp := range setup.MatchUps {
		log.Info().Msgf("starting matchup %d of %d: %+v", mi+1, len(setup.MatchUps), matchUp)

		for i := 0; i < setup.NumGames; i++ {
			count++
			seed := setup.Seed + uint64(count)*uint64(len(matchUp))
			winners, gameMetric, moveMetrics, err := runGame(ctx, setup.Board(), matchUp, seed)
			if err != nil {
				return Summary{}, errors.Wrapf(err, "matchup %d game %d", mi+1, i+1)
			}

			ids := make([]int, len(matchUp))
			for seat, config := range matchUp {
				ids[seat] = config.ID
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agents:     ids,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winners: %s", mi+1, len(setup.MatchUps), i+1, engine.JoinStones(winners))
		}
	}

	log.Info().Msgf("completed %s experiment", setup.Name)

	summary := Summarize(gameRecords)
	if setup.OutDir != "" {
		dir, err := store(setup, gameRecords, moveRecords)
		if err != nil {
			return summary, err
		}
		summary.Dir = dir
	}

	log.Info().Msgf("%d games, %.1f ± %.1f moves per game, win ratios %v", summary.Games, summary.MeanMoves, summary.StdMoves, summary.Wins)
	return summary, nil
}

func store(setup Setup, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(setup.OutDir, setup.Name)
	if err != nil {
		return "", errors.Wrap(err, "failed to create experiment writer")
	}

	var errs error
	if err := writer.WriteAgentConfigs(setup.Configs); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		errs = multierror.Append(errs, err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		errs = multierror.Append(errs, err)
	}
	if errs != nil {
		return writer.Dir(), errs
	}
	log.Info().Msgf("stored records in %s", writer.Dir())
	return writer.Dir(), nil
}

// Summarize computes the moves-per-game statistics and the sole-winner ratio of every agent.
func Summarize(records []metrics.GameRecord) Summary {
	summary := Summary{Games: len(records), Wins: map[int]float64{}}
	if len(records) == 0 {
		return summary
	}

	moves := make([]float64, len(records))
	played := map[int]float64{}
	for i, record := range records {
		moves[i] = float64(record.TotalMoves)
		for _, id := range record.Agents {
			played[id]++
			if _, ok := summary.Wins[id]; !ok {
				summary.Wins[id] = 0
			}
		}
		if winner, ok := soleWinner(record); ok {
			summary.Wins[winner]++
		}
	}
	for id, games := range played {
		summary.Wins[id] /= games
	}
	summary.MeanMoves, summary.StdMoves = stat.MeanStdDev(moves, nil)
	return summary
}

// soleWinner returns the agent ID of the single winning stone.
func soleWinner(record metrics.GameRecord) (int, bool) {
	stone, err := strconv.Atoi(record.Winners)
	if err != nil {
		return 0, false
	}
	if stone < 1 || stone > len(record.Agents) {
		return 0, false
	}
	return record.Agents[stone-1], true
}

func runGame(ctx context.Context, board *game.Board, matchUp []metrics.AgentConfig, seed uint64) ([]game.Stone, metrics.GameMetric, []metrics.MoveMetric, error) {
	agents := make([]agent.Agent, len(matchUp))
	for seat, config := range matchUp {
		agents[seat] = createAgent(config, seed+uint64(seat))
	}
	e, err := engine.LocalEngine(board, agents)
	if err != nil {
		return nil, metrics.GameMetric{}, nil, err
	}
	return e.Run(ctx)
}

func createAgent(config metrics.AgentConfig, seed uint64) agent.Agent {
	if config.Kind == metrics.RandomAgent {
		return agent.NewRandomAgent(rand.New(rand.NewSource(seed)))
	}

	options := []searcher.Option{}
	if config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}
	if config.Rollouts > 0 {
		options = append(options, searcher.WithRollouts(config.Rollouts))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	options = append(options, searcher.WithMetrics())
	return agent.NewEvaluationAgent(seed, options...)
}
