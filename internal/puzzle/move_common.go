package puzzle

var (
	rookDirs   = [4][2]int{{-1, 0}, {+1, 0}, {0, -1}, {0, +1}}
	bishopDirs = [4][2]int{{-1, -1}, {-1, +1}, {+1, -1}, {+1, +1}}
)

// genSlideMoves walks each direction until the edge, a missing square or the
// first piece. A missing square stops the ray exactly like the edge does.
func genSlideMoves(b *Board, from int, dirs [4][2]int, moves *[]Coord) {
	row, col := rowOf(from), colOf(from)
	side := b.Squares[from].Side()
	for _, d := range dirs {
		r, c := row+d[0], col+d[1]
		for IsPlayable(r, c) {
			pc := b.at(r, c)
			if pc == 0 {
				*moves = append(*moves, Coord{Row: r, Col: c})
			} else {
				if pc.Side() != side {
					*moves = append(*moves, Coord{Row: r, Col: c})
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

// Rook: orthogonal slides.
func genRookMoves(b *Board, from int, moves *[]Coord) {
	genSlideMoves(b, from, rookDirs, moves)
}

// Bishop: diagonal slides.
func genBishopMoves(b *Board, from int, moves *[]Coord) {
	genSlideMoves(b, from, bishopDirs, moves)
}
