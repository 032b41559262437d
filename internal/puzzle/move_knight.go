package puzzle

var knightOffsets = [8][2]int{
	{-2, -1}, {-2, +1},
	{-1, -2}, {-1, +2},
	{+1, -2}, {+1, +2},
	{+2, -1}, {+2, +1},
}

// Knights jump: nothing between origin and target matters, including missing squares.
func genKnightMoves(b *Board, from int, moves *[]Coord) {
	row, col := rowOf(from), colOf(from)
	side := b.Squares[from].Side()
	for _, d := range knightOffsets {
		r, c := row+d[0], col+d[1]
		if !IsPlayable(r, c) {
			continue
		}
		dst := b.at(r, c)
		if dst == 0 || dst.Side() != side {
			*moves = append(*moves, Coord{Row: r, Col: c})
		}
	}
}
