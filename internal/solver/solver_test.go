package solver

import (
	"context"
	"errors"
	"testing"

	"pawnpuzzle/internal/puzzle"
)

func TestSolveInitialLayout(t *testing.T) {
	res, err := Solve(context.Background(), puzzle.InitialBoard(), Config{})
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if !res.Solved || len(res.Moves) != 25 {
		t.Fatalf("got solved=%v len=%d want 25", res.Solved, len(res.Moves))
	}

	g := puzzle.NewInitialGame()
	for i, mv := range res.Moves {
		g.Select(mv.From)
		if r := g.AttemptMove(mv.To); r.Outcome != puzzle.OutcomeApplied {
			t.Fatalf("move %d %v-%v not legal in game", i+1, mv.From, mv.To)
		}
	}
	if !g.Won() {
		t.Fatalf("replayed solution did not win")
	}
}

func TestSolveAlreadyWon(t *testing.T) {
	var b puzzle.Board
	b.Set(puzzle.Coord{Row: 3, Col: 0}, puzzle.MakePiece(puzzle.First, puzzle.Rook))
	res, err := Solve(context.Background(), b, Config{})
	if err != nil || !res.Solved || len(res.Moves) != 0 {
		t.Fatalf("got %+v %v", res, err)
	}
}

func TestSolveUnsolvable(t *testing.T) {
	var b puzzle.Board
	// a lone pawn behind its target can never reach it
	b.Set(puzzle.Coord{Row: 0, Col: 0}, puzzle.MakePiece(puzzle.First, puzzle.Pawn))
	b.Set(puzzle.Coord{Row: 4, Col: 0}, puzzle.MakePiece(puzzle.Second, puzzle.Pawn))
	if _, err := Solve(context.Background(), b, Config{}); !errors.Is(err, ErrUnsolvable) {
		t.Fatalf("got %v want ErrUnsolvable", err)
	}
}

func TestSolveBudget(t *testing.T) {
	_, err := Solve(context.Background(), puzzle.InitialBoard(), Config{MaxNodes: 10})
	if !errors.Is(err, ErrBudget) {
		t.Fatalf("got %v want ErrBudget", err)
	}
}

func TestSolveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Solve(ctx, puzzle.InitialBoard(), Config{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v want context.Canceled", err)
	}
}
