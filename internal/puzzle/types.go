package puzzle

type Side int8

const (
	NoSide Side = -1
	First  Side = 0 // "w", the side the player moves
	Second Side = 1 // "b", the side to be captured
)

type Kind int8

const (
	KindNone Kind = iota
	Pawn
	Knight
	Bishop
	Rook
)

// Piece: 0 = empty; >0 first side; <0 second side; abs = Kind.
type Piece int8

func MakePiece(side Side, k Kind) Piece {
	if k == KindNone || side == NoSide {
		return 0
	}
	if side == First {
		return Piece(k)
	}
	return -Piece(k)
}

func (p Piece) Kind() Kind {
	if p < 0 {
		return Kind(-p)
	}
	return Kind(p)
}

func (p Piece) Side() Side {
	if p == 0 {
		return NoSide
	}
	if p > 0 {
		return First
	}
	return Second
}

func (p Piece) IsEmpty() bool { return p == 0 }

func (p Piece) String() string {
	if p == 0 {
		return ""
	}
	return string(sideLetter[p.Side()]) + string(kindLetter[p.Kind()])
}

// Coord is a (row, col) pair; row 0 is rank 6.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type Move struct {
	From Coord `json:"from"`
	To   Coord `json:"to"`
}

// Board holds every in-bounds square. Missing squares stay empty for the
// board's lifetime. Board is a value: assigning it copies all squares.
type Board struct {
	Squares [NumSquares]Piece
}
