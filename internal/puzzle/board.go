package puzzle

import "fmt"

const (
	Rows       = 6
	Cols       = 4
	NumSquares = Rows * Cols

	// Rank 5 is gone entirely; rank 1 only keeps the squares from PartialCutoff on.
	NoRank        = 5
	PartialRank   = 1
	PartialCutoff = 3
)

func indexOf(row, col int) int { return row*Cols + col }
func rowOf(sq int) int         { return sq / Cols }
func colOf(sq int) int         { return sq % Cols }

func coordOf(sq int) Coord { return Coord{Row: rowOf(sq), Col: colOf(sq)} }

func InBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

func rankOf(row int) int { return Rows - row }

// IsMissing depends only on geometry, never on what is on the board.
func IsMissing(row, col int) bool {
	rank := rankOf(row)
	return rank == NoRank || (rank == PartialRank && col < PartialCutoff)
}

func IsPlayable(row, col int) bool {
	return InBounds(row, col) && !IsMissing(row, col)
}

// MissingSquares lists the permanently absent squares in row-major order.
func MissingSquares() []Coord {
	var out []Coord
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if IsMissing(r, c) {
				out = append(out, Coord{Row: r, Col: c})
			}
		}
	}
	return out
}

func (c Coord) InBounds() bool { return InBounds(c.Row, c.Col) }
func (c Coord) Playable() bool { return IsPlayable(c.Row, c.Col) }
func (c Coord) Rank() int      { return rankOf(c.Row) }
func (c Coord) File() byte     { return byte('a' + c.Col) }

// String renders the square as file letter + rank, e.g. "d1".
func (c Coord) String() string {
	if !c.InBounds() {
		return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
	}
	return fmt.Sprintf("%c%d", c.File(), c.Rank())
}

// mustInBounds is the precondition check shared by every entry point that
// takes a coordinate. A bad coordinate is a caller bug, not a user input.
func mustInBounds(c Coord) {
	if !c.InBounds() {
		panic(fmt.Sprintf("puzzle: coordinate %v outside %dx%d board", c, Rows, Cols))
	}
}

func (b *Board) At(c Coord) Piece {
	mustInBounds(c)
	return b.Squares[indexOf(c.Row, c.Col)]
}

// Set places p at c. Placing a piece on a missing square is a caller bug.
func (b *Board) Set(c Coord, p Piece) {
	mustInBounds(c)
	if p != 0 && IsMissing(c.Row, c.Col) {
		panic(fmt.Sprintf("puzzle: cannot place %s on missing square %v", p, c))
	}
	b.Squares[indexOf(c.Row, c.Col)] = p
}

// at is the unchecked read used by the generators; callers have already
// verified playability.
func (b *Board) at(row, col int) Piece {
	return b.Squares[indexOf(row, col)]
}

func (b *Board) Count(side Side) int {
	n := 0
	for _, pc := range b.Squares {
		if pc != 0 && pc.Side() == side {
			n++
		}
	}
	return n
}

// HasWon reports whether no second-side piece is left. It always scans.
func HasWon(b *Board) bool {
	for _, pc := range b.Squares {
		if pc != 0 && pc.Side() == Second {
			return false
		}
	}
	return true
}

func opposite(side Side) Side {
	if side == First {
		return Second
	}
	if side == Second {
		return First
	}
	return NoSide
}

// Pawn direction: first side moves up (-1), second side moves down (+1).
func pawnDir(side Side) int {
	if side == First {
		return -1
	}
	if side == Second {
		return +1
	}
	return 0
}

var initialLayout = Layout{
	{"bp", "bp", "bp", "bp"},
	{"", "", "", ""},
	{"wb", "wb", "wb", "wb"},
	{"wr", "wr", "wr", "wr"},
	{"wp", "wp", "wp", ""},
	{"", "", "", "wn"},
}

// InitialBoard returns the standard starting position.
func InitialBoard() Board {
	b, err := ParseLayout(initialLayout)
	if err != nil {
		panic("initial layout: " + err.Error())
	}
	return b
}

// InitialLayout returns a fresh copy of the standard starting layout.
func InitialLayout() Layout {
	return initialLayout.Clone()
}
