package puzzle

import "errors"

// Outcome of a move attempt.
type Outcome int

const (
	OutcomeNoOp     Outcome = iota // nothing selected or dragged
	OutcomeRejected                // target not a legal destination; selection cleared
	OutcomeApplied
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRejected:
		return "rejected"
	case OutcomeApplied:
		return "applied"
	default:
		return "noop"
	}
}

type MoveResult struct {
	Outcome Outcome
	Move    Move
	// WinAchieved is set only on the move that flips the win flag to true.
	WinAchieved bool
}

// Game is the state machine for one puzzle session. It is not safe for
// concurrent use; callers serialise access.
type Game struct {
	initial Board
	board   Board
	history []Board

	selected *Coord
	dragFrom *Coord
	legal    []Coord
	lastMove *Move

	won        bool
	winPending bool
}

var (
	ErrNoTargets  = errors.New("layout has no second-side pieces")
	ErrNoAttacker = errors.New("layout has no first-side pieces")
)

// ValidatePuzzle reports whether b is a playable starting position.
func ValidatePuzzle(b *Board) error {
	if b.Count(Second) == 0 {
		return ErrNoTargets
	}
	if b.Count(First) == 0 {
		return ErrNoAttacker
	}
	return nil
}

func NewGame(initial Board) *Game {
	g := &Game{initial: initial}
	g.Reset()
	return g
}

func NewInitialGame() *Game {
	return NewGame(InitialBoard())
}

// Board returns a copy of the current board.
func (g *Game) Board() Board { return g.board }

func (g *Game) Won() bool { return g.won }

func (g *Game) HistoryLen() int { return len(g.history) }

func (g *Game) Dragging() bool { return g.dragFrom != nil }

// movable: only first-side pieces are ever picked up.
func (g *Game) movable(c Coord) bool {
	if !c.Playable() {
		return false
	}
	pc := g.board.At(c)
	return pc != 0 && pc.Side() == First
}

func (g *Game) pick(c Coord) {
	cc := c
	g.selected = &cc
	g.legal = LegalMoves(g.board.At(c), c, &g.board)
}

// Select picks up the piece on c for a click-style move. Empty, missing or
// enemy squares and an active drag make it a no-op.
func (g *Game) Select(c Coord) bool {
	mustInBounds(c)
	if g.dragFrom != nil || !g.movable(c) {
		return false
	}
	g.pick(c)
	return true
}

// StartDrag picks up the piece on c and remembers it as the drag origin.
func (g *Game) StartDrag(c Coord) bool {
	mustInBounds(c)
	if !g.movable(c) {
		return false
	}
	g.pick(c)
	cc := c
	g.dragFrom = &cc
	return true
}

// DropOn finishes a drag. Without an active drag it does nothing.
func (g *Game) DropOn(c Coord) MoveResult {
	mustInBounds(c)
	if g.dragFrom == nil {
		return MoveResult{Outcome: OutcomeNoOp}
	}
	return g.AttemptMove(c)
}

// Click either selects (nothing held) or tries to move the held piece to c.
func (g *Game) Click(c Coord) MoveResult {
	mustInBounds(c)
	if g.selected == nil && g.dragFrom == nil {
		g.Select(c)
		return MoveResult{Outcome: OutcomeNoOp}
	}
	return g.AttemptMove(c)
}

// AttemptMove moves the selected or dragged piece to to if to is one of its
// cached legal destinations. Either way the selection is cleared.
func (g *Game) AttemptMove(to Coord) MoveResult {
	mustInBounds(to)
	from := g.selected
	if g.dragFrom != nil {
		from = g.dragFrom
	}
	if from == nil {
		return MoveResult{Outcome: OutcomeNoOp}
	}
	m := Move{From: *from, To: to}
	ok := containsCoord(g.legal, to)
	g.clearSelection()
	if !ok {
		return MoveResult{Outcome: OutcomeRejected, Move: m}
	}

	g.history = append(g.history, g.board)
	g.board = g.board.ApplyMove(m)
	g.lastMove = &m

	res := MoveResult{Outcome: OutcomeApplied, Move: m}
	wasWon := g.won
	g.won = HasWon(&g.board)
	if g.won && !wasWon {
		g.winPending = true
		res.WinAchieved = true
	}
	return res
}

// Undo restores the board from before the last applied move.
func (g *Game) Undo() bool {
	if len(g.history) == 0 {
		return false
	}
	last := len(g.history) - 1
	g.board = g.history[last]
	g.history = g.history[:last]
	g.clearSelection()
	g.lastMove = nil
	g.won = HasWon(&g.board)
	if !g.won {
		g.winPending = false
	}
	return true
}

func (g *Game) Reset() {
	g.board = g.initial
	g.history = nil
	g.clearSelection()
	g.lastMove = nil
	g.won = false
	g.winPending = false
}

// TakeWinEvent returns true once per false→true transition of the win flag.
func (g *Game) TakeWinEvent() bool {
	if !g.winPending {
		return false
	}
	g.winPending = false
	return true
}

// Deselect drops any click selection or drag in progress.
func (g *Game) Deselect() { g.clearSelection() }

func (g *Game) clearSelection() {
	g.selected = nil
	g.dragFrom = nil
	g.legal = nil
}

// View is a read-only copy of the game state for the presentation layer.
type View struct {
	Board    Board
	Selected *Coord
	DragFrom *Coord
	Legal    []Coord
	Captures []Coord
	LastMove *Move
	Won      bool
	History  int
}

func (g *Game) Snapshot() View {
	v := View{
		Board:   g.board,
		Won:     g.won,
		History: len(g.history),
		Legal:   append([]Coord(nil), g.legal...),
	}
	if g.selected != nil {
		c := *g.selected
		v.Selected = &c
		v.Captures = Captures(&g.board, First, g.legal)
	}
	if g.dragFrom != nil {
		c := *g.dragFrom
		v.DragFrom = &c
	}
	if g.lastMove != nil {
		m := *g.lastMove
		v.LastMove = &m
	}
	return v
}
