package engine

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/searcher/agent"
)

type localEngine struct {
	Session *game.Session
	Agents  []agent.Agent // Agents[i] plays stone i+1
}

// LocalEngine seats one agent per stone of the board; the starting player defaults to 1.
func LocalEngine(board *game.Board, agents []agent.Agent, options ...game.SessionOption) (*localEngine, error) {
	if len(agents) != board.StoneCount() {
		return nil, errors.Errorf("number of agents %d does not match stone count %d", len(agents), board.StoneCount())
	}
	session, err := game.NewSession(board, options...)
	if err != nil {
		return nil, err
	}
	return &localEngine{
		Session: session,
		Agents:  agents,
	}, nil
}

// Run executes the game loop until the session finishes.
func (e *localEngine) Run(ctx context.Context) ([]game.Stone, metrics.GameMetric, []metrics.MoveMetric, error) {
	s := e.Session
	gameMetric := metrics.GameMetric{
		StartingPlayer: int(s.Playing()),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("player %d is starting", s.Playing())

	step := 1
	for s.Status() == game.InGame {
		player := s.Playing()
		if len(s.LegalPlacements(player)) > 0 {
			move, searchMetric, err := e.Agents[player-1].FindMove(ctx, s)
			if err != nil {
				return nil, gameMetric, moveMetrics, errors.Wrapf(err, "player %d at step %d", player, step)
			}
			if err := s.Place(player, move); err != nil {
				return nil, gameMetric, moveMetrics, errors.Wrapf(err, "player %d at step %d", player, step)
			}
			moveMetrics = append(moveMetrics, metrics.MoveMetric{
				Step:         step,
				Player:       int(player),
				X:            move.X,
				Y:            move.Y,
				BoardHash:    uint64(s.Board().Hash()),
				SearchMetric: searchMetric,
			})
			log.Debug().Msgf("step %d: player %d placed at %s", step, player, move)
			step++
		} else {
			log.Debug().Msgf("player %d passes", player)
		}
		s.AdvanceTurn()
	}

	winners := s.TopStones()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.Counts = s.CountAll()
	gameMetric.Winners = JoinStones(winners)

	log.Info().Msgf("game over after %d moves, winners: %s", gameMetric.TotalMoves, gameMetric.Winners)
	return winners, gameMetric, moveMetrics, nil
}

// JoinStones formats stones as "1|2".
func JoinStones(stones []game.Stone) string {
	parts := make([]string, len(stones))
	for i, s := range stones {
		parts[i] = strconv.Itoa(int(s))
	}
	return strings.Join(parts, "|")
}
