package searcher

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/meta"
)

var ErrTooManyDraws = errors.New("too many drawn rollouts")

type Option func(m *MonteCarlo)

// MonteCarlo estimates the win rate of every legal placement of a player by playing
// uniformly random games to completion.
type MonteCarlo struct {
	board       *game.Board
	player      game.Stone
	rollouts    int
	goroutines  int
	duration    time.Duration
	seed        uint64
	maxAttempts int
	metrics     metrics.Collector
}

// WithRollouts sets the number of decisive rollouts per candidate.
func WithRollouts(rollouts int) Option {
	return func(m *MonteCarlo) {
		if rollouts > 0 {
			m.rollouts = rollouts
		}
	}
}

func WithGoroutines(goroutines int) Option {
	return func(m *MonteCarlo) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

// WithDuration stops outstanding rollouts once duration has elapsed.
func WithDuration(duration time.Duration) Option {
	return func(m *MonteCarlo) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MonteCarlo) {
		m.seed = seed
	}
}

// WithMaxAttempts bounds the rollouts, draws included, played for a single candidate.
func WithMaxAttempts(attempts int) Option {
	return func(m *MonteCarlo) {
		if attempts > 0 {
			m.maxAttempts = attempts
		}
	}
}

func WithMetrics() Option {
	return func(m *MonteCarlo) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMonteCarlo(board *game.Board, player game.Stone, options ...Option) *MonteCarlo {
	m := &MonteCarlo{ // Default values
		board:      board,
		player:     player,
		rollouts:   meta.ROLLOUTS,
		goroutines: meta.GO_ROUTINES,
		seed:       meta.SEED,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if board == nil {
		panic("Must specify a board")
	}
	if m.maxAttempts == 0 {
		m.maxAttempts = meta.DRAW_BOUND_FACTOR * m.rollouts
	}
	if m.maxAttempts < m.rollouts {
		m.maxAttempts = m.rollouts
	}
	return m
}

type tally struct {
	wins   int
	losses int
	draws  int
	err    error
}

func (t tally) decisive() int {
	return t.wins + t.losses
}

// Estimate returns the win rate in [0, 1] of every legal placement of the player.
// Draws are resampled until the configured number of decisive rollouts is reached. When ctx
// is done first, the rates cover the decisive rollouts collected so far.
func (m *MonteCarlo) Estimate(ctx context.Context) (map[game.Position]float64, metrics.SearchMetric, error) {
	if m.player < 1 || int(m.player) > m.board.StoneCount() {
		return nil, metrics.SearchMetric{}, errors.Wrapf(game.ErrInvalidStone, "player %d", m.player)
	}
	if m.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.duration)
		defer cancel()
	}

	root, err := game.NewSession(m.board, game.WithStartingPlayer(m.player))
	if err != nil {
		return nil, metrics.SearchMetric{}, err
	}

	candidates := m.board.LegalPlacements(m.player)
	m.metrics.Start(m.goroutines, m.rollouts, len(candidates))

	tallies := m.iterate(ctx, root, candidates)

	estimates := make(map[game.Position]float64, len(candidates))
	partial := false
	var errs error
	for i, candidate := range candidates {
		t := tallies[i]
		if t.err != nil {
			errs = multierror.Append(errs, t.err)
			continue
		}
		if t.decisive() < m.rollouts {
			partial = true
		}
		if t.decisive() > 0 {
			estimates[candidate] = float64(t.wins) / float64(t.decisive())
		} else {
			estimates[candidate] = 0
		}
	}
	m.metrics.SetPartial(partial)
	metric := m.metrics.Complete()

	log.Debug().Msgf("estimated %d candidates for stone %d (partial=%t)", len(candidates), m.player, partial)
	return estimates, metric, errs
}

// iterate spreads the candidates over the worker goroutines. Each candidate owns its
// random stream, so results do not depend on scheduling.
func (m *MonteCarlo) iterate(ctx context.Context, root *game.Session, candidates []game.Position) []tally {
	tallies := make([]tally, len(candidates))

	task := make(chan int, len(candidates))
	for i := range candidates {
		task <- i
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for index := range task {
				tallies[index] = m.evaluate(ctx, root, index, candidates[index])
			}
		}()
	}

	wg.Wait()
	return tallies
}

func (m *MonteCarlo) evaluate(ctx context.Context, root *game.Session, index int, candidate game.Position) tally {
	r := rand.New(rand.NewSource(streamSeed(m.seed, index)))

	var t tally
	for attempts := 0; t.decisive() < m.rollouts; attempts++ {
		if ctx.Err() != nil {
			return t
		}
		if attempts >= m.maxAttempts {
			t.err = errors.Wrapf(ErrTooManyDraws, "candidate %s: %d draws in %d rollouts", candidate, t.draws, attempts)
			return t
		}

		outcome, err := m.rollout(root, candidate, r)
		if err != nil {
			t.err = errors.Wrapf(err, "candidate %s", candidate)
			return t
		}
		m.metrics.AddPlayout()

		switch outcome {
		case Win:
			t.wins++
		case Lose:
			t.losses++
		default:
			t.draws++
			m.metrics.AddDraw()
		}
	}
	return t
}

// rollout plays candidate on a clone of root, then random moves until the game is over.
// root is only read, so workers share it.
func (m *MonteCarlo) rollout(root *game.Session, candidate game.Position, r game.Rand) (Outcome, error) {
	s := root.Clone()
	if err := s.Place(m.player, candidate); err != nil {
		return Draw, err
	}
	s.AdvanceTurn()

	top, err := s.AutoPlay(r)
	if err != nil {
		return Draw, err
	}
	return Classify(top, m.player), nil
}

// streamSeed derives an independent seed per candidate.
func streamSeed(seed uint64, index int) uint64 {
	return seed ^ (uint64(index+1) * 0x9E3779B97F4A7C15)
}
