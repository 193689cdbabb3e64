package engine

import (
	"context"

	"reversi/experiments/metrics"
	"reversi/game"
)

type Engine interface {
	// Run plays a game until every player is stuck and returns the top stones
	Run(ctx context.Context) (winners []game.Stone, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
