package agent

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/searcher"
	"reversi/utils"
)

var ErrNoMove = errors.New("no legal move")

type Agent interface {
	// FindMove picks a placement for the session's playing stone and returns the search metrics
	// (if collected) of the decision.
	FindMove(ctx context.Context, s *game.Session) (game.Position, metrics.SearchMetric, error)
}

type evaluationAgent struct {
	seed    uint64
	options []searcher.Option
}

// NewEvaluationAgent returns an agent playing the candidate with the highest Monte Carlo win rate.
// The seed is offset by the turn number so each decision draws fresh streams.
func NewEvaluationAgent(seed uint64, options ...searcher.Option) Agent {
	return evaluationAgent{seed: seed, options: options}
}

func (a evaluationAgent) FindMove(ctx context.Context, s *game.Session) (game.Position, metrics.SearchMetric, error) {
	board, player := s.Board(), s.Playing()
	candidates := board.LegalPlacements(player)
	if len(candidates) == 0 {
		return game.Position{}, metrics.SearchMetric{}, errors.Wrapf(ErrNoMove, "stone %d", player)
	}

	options := append(a.options[:len(a.options):len(a.options)], searcher.WithSeed(a.seed+uint64(s.Turns())))
	estimates, metric, err := searcher.NewMonteCarlo(board, player, options...).Estimate(ctx)
	if err != nil {
		if errors.Is(err, game.ErrInvalidStone) {
			return game.Position{}, metric, err
		}
		log.Warn().Err(err).Msgf("stone %d: some candidates were not estimated", player)
	}

	move, _ := utils.ArgMax(candidates, estimates)
	return move, metric, nil
}

type randomAgent struct {
	r game.Rand
}

// NewRandomAgent returns an agent playing a uniformly random legal placement drawn from r.
func NewRandomAgent(r game.Rand) Agent {
	return randomAgent{r: r}
}

func (a randomAgent) FindMove(ctx context.Context, s *game.Session) (game.Position, metrics.SearchMetric, error) {
	candidates := s.Board().LegalPlacements(s.Playing())
	if len(candidates) == 0 {
		return game.Position{}, metrics.SearchMetric{}, errors.Wrapf(ErrNoMove, "stone %d", s.Playing())
	}
	return candidates[a.r.Intn(len(candidates))], metrics.SearchMetric{}, nil
}
