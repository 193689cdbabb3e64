package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines int
	Duration   time.Duration
	Rollouts   int // Decisive rollouts required per candidate
	Candidates int
	Playouts   int // Rollouts played, draws included
	Draws      int
	IsPartial  bool // Stopped by a deadline before every candidate completed
}

type MoveMetric struct {
	Step      int
	Player    int // Stone
	X, Y      int
	BoardHash uint64 // Hash of the board after the placement
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int
	Winners        string // Top stones joined by "|"
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Counts         []int // Final cell count per stone, index 0 is empty
}

type Collector interface {
	Start(goroutines, rollouts, candidates int)
	AddPlayout()
	AddDraw()
	SetPartial(value bool)
	Complete() SearchMetric
}

type collector struct {
	goroutines int
	rollouts   int
	candidates int
	startTime  time.Time
	playouts   atomic.Int32
	draws      atomic.Int32
	isPartial  atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, rollouts, candidates int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.rollouts = rollouts
	m.candidates = candidates
	m.playouts.Store(0)
	m.draws.Store(0)
	m.isPartial.Store(false)
}

func (m *collector) AddPlayout() {
	m.playouts.Add(1)
}

func (m *collector) AddDraw() {
	m.draws.Add(1)
}

func (m *collector) SetPartial(value bool) {
	m.isPartial.Store(value)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines: m.goroutines,
		Duration:   time.Since(m.startTime),
		Rollouts:   m.rollouts,
		Candidates: m.candidates,
		Playouts:   int(m.playouts.Load()),
		Draws:      int(m.draws.Load()),
		IsPartial:  m.isPartial.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, rollouts, candidates int) {}
func (m *dummyCollector) AddPlayout()                               {}
func (m *dummyCollector) AddDraw()                                  {}
func (m *dummyCollector) SetPartial(value bool)                     {}
func (m *dummyCollector) Complete() SearchMetric                    { return SearchMetric{} }
