package game

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

type Status int

const (
	InGame Status = iota
	Finished
)

func (s Status) String() string {
	switch s {
	case InGame:
		return "IN_GAME"
	case Finished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

type SessionOption func(s *Session)

// WithStartingPlayer sets the stone that moves first. Defaults to 1.
func WithStartingPlayer(stone Stone) SessionOption {
	return func(s *Session) {
		s.playing = stone
	}
}

// Session sequences the turns of one game. It owns an append-only history of board snapshots,
// the playing stone, and a per-stone "no legal move" flag used for termination.
type Session struct {
	history []*Board
	playing Stone
	passed  []bool // indexed by stone-1
	status  Status
}

// NewSession starts a game from board.
func NewSession(board *Board, options ...SessionOption) (*Session, error) {
	if board == nil {
		return nil, errors.Wrap(ErrInvalidShape, "nil board")
	}
	s := &Session{
		history: []*Board{board},
		playing: 1,
		passed:  make([]bool, board.StoneCount()),
		status:  InGame,
	}
	for _, option := range options {
		option(s)
	}
	if !s.isPlayer(s.playing) {
		return nil, errors.Wrapf(ErrInvalidStone, "starting player %d", s.playing)
	}
	return s, nil
}

// Clone copies the session for independent play. Boards are immutable and shared.
func (s *Session) Clone() *Session {
	return &Session{
		history: slices.Clone(s.history),
		playing: s.playing,
		passed:  slices.Clone(s.passed),
		status:  s.status,
	}
}

func (s *Session) isPlayer(stone Stone) bool {
	return stone >= 1 && int(stone) <= len(s.passed)
}

// Board returns the current board.
func (s *Session) Board() *Board {
	return s.history[len(s.history)-1]
}

// BoardAt returns the i-th snapshot of the history. Negative indices count from the end.
func (s *Session) BoardAt(i int) (*Board, bool) {
	if i < 0 {
		i += len(s.history)
	}
	if i < 0 || i >= len(s.history) {
		return nil, false
	}
	return s.history[i], true
}

// History returns every board from the initial one to the current one.
func (s *Session) History() []*Board {
	return slices.Clone(s.history)
}

// Turns returns the number of snapshots in the history, the initial board included.
func (s *Session) Turns() int {
	return len(s.history)
}

func (s *Session) Playing() Stone {
	return s.playing
}

func (s *Session) Status() Status {
	return s.status
}

func (s *Session) StoneCount() int {
	return len(s.passed)
}

func (s *Session) Count(stone Stone) int {
	return s.Board().Count(stone)
}

func (s *Session) CountAll() []int {
	return s.Board().CountAll()
}

// LegalPlacements returns the legal placements of stone on the current board.
// An empty result flags stone as unable to move, and the game finishes once every stone
// is flagged at the same time.
func (s *Session) LegalPlacements(stone Stone) []Position {
	if !s.isPlayer(stone) {
		return nil
	}
	positions := s.Board().LegalPlacements(stone)
	if len(positions) == 0 {
		s.passed[stone-1] = true
	}
	if !slices.Contains(s.passed, false) {
		s.status = Finished
	}
	return positions
}

// Place puts stone at pos and appends the resulting board to the history.
// It does nothing once the game is finished.
func (s *Session) Place(stone Stone, pos Position) error {
	if s.status == Finished {
		return nil
	}
	if !s.isPlayer(stone) {
		return errors.Wrapf(ErrIllegalMove, "stone %d is not a player", stone)
	}
	board, err := s.Board().Apply(stone, pos)
	if err != nil {
		return err
	}
	s.history = append(s.history, board)
	for i := range s.passed {
		s.passed[i] = false
	}
	return nil
}

// AdvanceTurn passes the turn to the next stone, wrapping after the last one.
func (s *Session) AdvanceTurn() Stone {
	if int(s.playing) >= len(s.passed) {
		s.playing = 1
	} else {
		s.playing++
	}
	return s.playing
}

// TopStones returns the stones tied for the highest count. More than one stone means a draw.
func (s *Session) TopStones() []Stone {
	counts := s.CountAll()
	best := slices.Max(counts[1:])
	var top []Stone
	for stone := 1; stone < len(counts); stone++ {
		if counts[stone] == best {
			top = append(top, Stone(stone))
		}
	}
	return top
}

// AutoPlay plays uniformly random legal moves drawn from r until the game finishes and
// returns the top stones.
func (s *Session) AutoPlay(r Rand) ([]Stone, error) {
	for s.status == InGame {
		candidates := s.LegalPlacements(s.playing)
		if len(candidates) > 0 {
			pos := candidates[r.Intn(len(candidates))]
			if err := s.Place(s.playing, pos); err != nil {
				return nil, err
			}
		}
		s.AdvanceTurn()
	}
	return s.TopStones(), nil
}
