package puzzle

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Cell is one square of a stored layout: "" for empty (null on the wire) or
// a two-letter code, side letter then kind letter ("wp", "bn").
type Cell string

func (c Cell) MarshalJSON() ([]byte, error) {
	if c == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(c))
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = Cell(s)
	return nil
}

// Layout is the persisted form of a board: a Rows x Cols grid of cells.
type Layout [][]Cell

func (l Layout) Clone() Layout {
	out := make(Layout, len(l))
	for r, row := range l {
		out[r] = append([]Cell(nil), row...)
	}
	return out
}

var ErrInvalidLayout = errors.New("invalid layout")

var (
	sideLetter = map[Side]byte{First: 'w', Second: 'b'}
	kindLetter = map[Kind]byte{Pawn: 'p', Knight: 'n', Bishop: 'b', Rook: 'r'}

	letterToSide = map[byte]Side{'w': First, 'b': Second}
	letterToKind = map[byte]Kind{'p': Pawn, 'n': Knight, 'b': Bishop, 'r': Rook}
)

// ParsePiece decodes a two-letter piece code. The empty code is the empty piece.
func ParsePiece(code string) (Piece, error) {
	if code == "" {
		return 0, nil
	}
	if len(code) != 2 {
		return 0, fmt.Errorf("%w: bad piece code %q", ErrInvalidLayout, code)
	}
	side, ok := letterToSide[code[0]]
	if !ok {
		return 0, fmt.Errorf("%w: unknown side in %q", ErrInvalidLayout, code)
	}
	k, ok := letterToKind[code[1]]
	if !ok {
		return 0, fmt.Errorf("%w: unknown kind in %q", ErrInvalidLayout, code)
	}
	return MakePiece(side, k), nil
}

// ParseLayout builds a board from a stored layout. The grid must be exactly
// Rows x Cols and may not put a piece on a missing square.
func ParseLayout(l Layout) (Board, error) {
	var b Board
	if len(l) != Rows {
		return b, fmt.Errorf("%w: %d rows, want %d", ErrInvalidLayout, len(l), Rows)
	}
	for r, row := range l {
		if len(row) != Cols {
			return b, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidLayout, r, len(row), Cols)
		}
		for c, cell := range row {
			pc, err := ParsePiece(string(cell))
			if err != nil {
				return b, err
			}
			if pc == 0 {
				continue
			}
			if IsMissing(r, c) {
				return b, fmt.Errorf("%w: %s on missing square %v", ErrInvalidLayout, cell, Coord{Row: r, Col: c})
			}
			b.Squares[indexOf(r, c)] = pc
		}
	}
	return b, nil
}

// Layout encodes the board; missing squares come out as empty cells.
func (b *Board) Layout() Layout {
	out := make(Layout, Rows)
	for r := 0; r < Rows; r++ {
		out[r] = make([]Cell, Cols)
		for c := 0; c < Cols; c++ {
			out[r][c] = Cell(b.at(r, c).String())
		}
	}
	return out
}
