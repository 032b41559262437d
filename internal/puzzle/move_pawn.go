package puzzle

// Pawns step one square forward onto an empty square, or one square
// diagonally forward onto an enemy. No double step, en passant or promotion.
func genPawnMoves(b *Board, from int, moves *[]Coord) {
	row, col := rowOf(from), colOf(from)
	pc := b.Squares[from]
	if pc == 0 {
		return
	}
	side := pc.Side()
	r := row + pawnDir(side)

	// straight ahead: never a capture
	if IsPlayable(r, col) && b.at(r, col) == 0 {
		*moves = append(*moves, Coord{Row: r, Col: col})
	}

	for _, dc := range []int{-1, +1} {
		c := col + dc
		if !IsPlayable(r, c) {
			continue
		}
		dst := b.at(r, c)
		if dst != 0 && dst.Side() != side {
			*moves = append(*moves, Coord{Row: r, Col: c})
		}
	}
}
