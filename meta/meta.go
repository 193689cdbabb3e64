// meta/meta.go
package meta

import "time"

// ROLLOUTS is the number of decisive rollouts per candidate move.
const ROLLOUTS = 100

// GO_ROUTINES defines the number of goroutines evaluating candidates.
const GO_ROUTINES = 8

// DRAW_BOUND_FACTOR bounds the attempts per candidate to DRAW_BOUND_FACTOR*ROLLOUTS
// when draws keep being resampled.
const DRAW_BOUND_FACTOR = 50

// SEED is the default seed of the random streams.
const SEED = 1

// NUM_GAMES is the number of games per match up in experiments.
const NUM_GAMES = 10

// TIME_BUDGET is the default per-move search duration of experiment agents.
const TIME_BUDGET = 200 * time.Millisecond

// OUTPUT_DIR is where experiment records are written.
const OUTPUT_DIR = "experiments"
