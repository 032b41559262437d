package puzzle

// LegalMoves returns the squares pc may move to from origin on b. It returns
// nil when pc is empty or origin does not hold pc. b is not modified.
func LegalMoves(pc Piece, from Coord, b *Board) []Coord {
	mustInBounds(from)
	if pc == 0 || !from.Playable() || b.At(from) != pc {
		return nil
	}
	sq := indexOf(from.Row, from.Col)
	var moves []Coord
	switch pc.Kind() {
	case Pawn:
		genPawnMoves(b, sq, &moves)
	case Knight:
		genKnightMoves(b, sq, &moves)
	case Bishop:
		genBishopMoves(b, sq, &moves)
	case Rook:
		genRookMoves(b, sq, &moves)
	}
	return moves
}

// MovesFrom is LegalMoves for whatever piece stands on from.
func (b *Board) MovesFrom(from Coord) []Coord {
	return LegalMoves(b.At(from), from, b)
}

// GenerateMovesForSide lists every legal move of side on b.
func (b *Board) GenerateMovesForSide(side Side) []Move {
	var out []Move
	for sq := 0; sq < NumSquares; sq++ {
		pc := b.Squares[sq]
		if pc == 0 || pc.Side() != side {
			continue
		}
		from := coordOf(sq)
		for _, to := range LegalMoves(pc, from, b) {
			out = append(out, Move{From: from, To: to})
		}
	}
	return out
}

// Captures keeps the destinations in moves that hold an enemy of side.
func Captures(b *Board, side Side, moves []Coord) []Coord {
	var out []Coord
	for _, to := range moves {
		dst := b.At(to)
		if dst != 0 && dst.Side() == opposite(side) {
			out = append(out, to)
		}
	}
	return out
}

func containsCoord(set []Coord, c Coord) bool {
	for _, x := range set {
		if x == c {
			return true
		}
	}
	return false
}

// ApplyMove returns a copy of b with the piece on m.From moved to m.To.
// Legality is the caller's job.
func (b Board) ApplyMove(m Move) Board {
	mustInBounds(m.From)
	mustInBounds(m.To)
	pc := b.At(m.From)
	b.Squares[indexOf(m.To.Row, m.To.Col)] = pc
	b.Squares[indexOf(m.From.Row, m.From.Col)] = 0
	return b
}
