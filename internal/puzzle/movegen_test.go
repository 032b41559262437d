package puzzle

import (
	"math/rand"
	"sort"
	"testing"
)

type placement map[string]string

func boardWith(t *testing.T, pieces placement) Board {
	t.Helper()
	var b Board
	for label, code := range pieces {
		pc, err := ParsePiece(code)
		if err != nil {
			t.Fatalf("bad code %q: %v", code, err)
		}
		b.Set(sq(label), pc)
	}
	return b
}

func labels(cs []Coord) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	sort.Strings(out)
	return out
}

func sameSet(got []Coord, want ...string) bool {
	g := labels(got)
	sort.Strings(want)
	if len(g) != len(want) {
		return false
	}
	for i := range g {
		if g[i] != want[i] {
			return false
		}
	}
	return true
}

func TestMovesPerKind(t *testing.T) {
	tests := []struct {
		name   string
		pieces placement
		from   string
		want   []string
	}{
		{
			name:   "rook on empty board stops at missing ranks",
			pieces: placement{"b3": "wr"},
			from:   "b3",
			want:   []string{"b4", "b2", "a3", "c3", "d3"},
		},
		{
			name:   "rook captures first enemy and stops",
			pieces: placement{"b3": "wr", "c3": "bp", "d3": "bp"},
			from:   "b3",
			want:   []string{"b4", "b2", "a3", "c3"},
		},
		{
			name:   "bishop on empty board",
			pieces: placement{"b3": "wb"},
			from:   "b3",
			want:   []string{"a4", "c4", "a2", "c2", "d1"},
		},
		{
			name:   "bishop blocked by friend",
			pieces: placement{"b3": "wb", "c2": "wp"},
			from:   "b3",
			want:   []string{"a4", "c4", "a2"},
		},
		{
			name:   "bishop captures enemy but not beyond",
			pieces: placement{"b3": "wb", "c2": "bn"},
			from:   "b3",
			want:   []string{"a4", "c4", "a2", "c2"},
		},
		{
			name:   "knight jumps over missing rank",
			pieces: placement{"b4": "wn", "a6": "bp", "c6": "wp"},
			from:   "b4",
			want:   []string{"a6", "d3", "a2", "c2"},
		},
		{
			name:   "pawn steps forward",
			pieces: placement{"b2": "wp"},
			from:   "b2",
			want:   []string{"b3"},
		},
		{
			name:   "pawn blocked straight ahead by enemy",
			pieces: placement{"b2": "wp", "b3": "bp"},
			from:   "b2",
			want:   nil,
		},
		{
			name:   "pawn captures diagonally",
			pieces: placement{"b2": "wp", "a3": "bp", "c3": "br"},
			from:   "b2",
			want:   []string{"b3", "a3", "c3"},
		},
		{
			name:   "pawn never captures friend",
			pieces: placement{"b2": "wp", "a3": "wr"},
			from:   "b2",
			want:   []string{"b3"},
		},
		{
			name:   "second side pawn moves down",
			pieces: placement{"b4": "bp", "c3": "wr"},
			from:   "b4",
			want:   []string{"b3", "c3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardWith(t, tt.pieces)
			got := b.MovesFrom(sq(tt.from))
			if !sameSet(got, tt.want...) {
				t.Fatalf("from %s: got %v want %v", tt.from, labels(got), tt.want)
			}
		})
	}
}

func TestKnightIgnoresSurroundingPieces(t *testing.T) {
	b := boardWith(t, placement{
		"b3": "wn",
		"a4": "wr", "b4": "wr", "c4": "wr",
		"a3": "wr", "c3": "wr",
		"a2": "wr", "b2": "wr", "c2": "wr",
		"d4": "bp",
	})
	got := b.MovesFrom(sq("b3"))
	if !sameSet(got, "d4", "d2") {
		t.Fatalf("got %v want [d2 d4]", labels(got))
	}
}

// Scenario B: a rook on rank 3 never slides across rank 5 or the holes on rank 1.
func TestRookDoesNotCrossMissingSquares(t *testing.T) {
	for c := 0; c < Cols; c++ {
		from := Coord{Row: 3, Col: c}
		b := boardWith(t, placement{from.String(): "wr", "a6": "bp", "b6": "bp", "c6": "bp", "d6": "bp"})
		for _, to := range b.MovesFrom(from) {
			if to.Row < 2 {
				t.Fatalf("rook from %v slid past rank 5 to %v", from, to)
			}
			if to.Col == c && to.Row == 5 && IsMissing(5, c) {
				t.Fatalf("rook from %v landed on missing %v", from, to)
			}
		}
	}
}

// Scenario D: a pawn with no forward rank has no moves.
func TestPawnAtForwardEdge(t *testing.T) {
	cases := []struct {
		label string
		code  string
	}{
		{"a6", "wp"},
		{"d6", "wp"},
		{"b4", "wp"}, // rank 5 ahead is missing
		{"d1", "bp"},
		{"c2", "bp"}, // c1 is missing
	}
	for _, tc := range cases {
		b := boardWith(t, placement{tc.label: tc.code})
		if got := b.MovesFrom(sq(tc.label)); len(got) != 0 {
			t.Fatalf("%s %s: want no moves, got %v", tc.code, tc.label, labels(got))
		}
	}
}

func TestLegalMovesMismatchedPiece(t *testing.T) {
	b := InitialBoard()
	if got := LegalMoves(MakePiece(First, Rook), sq("d2"), &b); got != nil {
		t.Fatalf("empty origin: got %v", labels(got))
	}
	if got := LegalMoves(MakePiece(First, Knight), sq("d3"), &b); got != nil {
		t.Fatalf("wrong piece on origin: got %v", labels(got))
	}
	if got := LegalMoves(0, sq("d3"), &b); got != nil {
		t.Fatalf("absent piece: got %v", labels(got))
	}
}

func TestLegalMovesDoesNotMutate(t *testing.T) {
	b := InitialBoard()
	before := b
	for sqi := 0; sqi < NumSquares; sqi++ {
		b.MovesFrom(coordOf(sqi))
	}
	if b != before {
		t.Fatalf("move generation changed the board")
	}
}

func TestInitialMovesForFirstSide(t *testing.T) {
	b := InitialBoard()
	moves := b.GenerateMovesForSide(First)
	if len(moves) != 1 {
		t.Fatalf("got %d moves want 1: %+v", len(moves), moves)
	}
	if moves[0] != (Move{From: sq("d3"), To: sq("d2")}) {
		t.Fatalf("got %+v want d3-d2", moves[0])
	}
}

func randomBoard(rng *rand.Rand) Board {
	var b Board
	kinds := []Kind{Pawn, Knight, Bishop, Rook}
	for s := 0; s < NumSquares; s++ {
		r, c := rowOf(s), colOf(s)
		if IsMissing(r, c) || rng.Intn(3) == 0 {
			continue
		}
		side := First
		if rng.Intn(2) == 0 {
			side = Second
		}
		b.Squares[s] = MakePiece(side, kinds[rng.Intn(len(kinds))])
	}
	return b
}

func TestGeneratedMovesInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		b := randomBoard(rng)
		for s := 0; s < NumSquares; s++ {
			pc := b.Squares[s]
			if pc == 0 {
				continue
			}
			from := coordOf(s)
			seen := map[Coord]bool{}
			for _, to := range LegalMoves(pc, from, &b) {
				if !to.Playable() {
					t.Fatalf("board %d: %s %v -> unplayable %v", i, pc, from, to)
				}
				if seen[to] {
					t.Fatalf("board %d: duplicate destination %v", i, to)
				}
				seen[to] = true
				dst := b.At(to)
				if dst != 0 && dst.Side() == pc.Side() {
					t.Fatalf("board %d: %s %v captures own piece on %v", i, pc, from, to)
				}
				if pc.Kind() == Pawn {
					if to.Col == from.Col && dst != 0 {
						t.Fatalf("board %d: pawn %v captures straight ahead on %v", i, from, to)
					}
					if to.Col != from.Col && dst == 0 {
						t.Fatalf("board %d: pawn %v moves diagonally to empty %v", i, from, to)
					}
					if to.Row-from.Row != pawnDir(pc.Side()) {
						t.Fatalf("board %d: pawn %v moved backwards to %v", i, from, to)
					}
				}
				if pc.Kind() == Rook || pc.Kind() == Bishop {
					checkClearPath(t, &b, from, to)
				}
			}
		}
	}
}

// checkClearPath asserts every square strictly between from and to is
// playable and empty.
func checkClearPath(t *testing.T, b *Board, from, to Coord) {
	t.Helper()
	dr, dc := sign(to.Row-from.Row), sign(to.Col-from.Col)
	r, c := from.Row+dr, from.Col+dc
	for r != to.Row || c != to.Col {
		if !IsPlayable(r, c) || b.at(r, c) != 0 {
			t.Fatalf("slide %v -> %v passes through blocked (%d,%d)", from, to, r, c)
		}
		r += dr
		c += dc
	}
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
