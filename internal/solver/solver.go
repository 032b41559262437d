// Package solver finds the shortest sequence of first-side moves that
// captures every second-side piece. It backs the hint endpoint.
package solver

import (
	"context"
	"errors"
	"time"

	"pawnpuzzle/internal/puzzle"
)

// Config bounds a search. Zero values use the defaults.
type Config struct {
	MaxNodes  int64         // positions expanded before giving up
	TimeLimit time.Duration // 0 means no limit beyond ctx
}

const DefaultMaxNodes = 2_000_000

// Result of a search.
type Result struct {
	Solved   bool
	Moves    []puzzle.Move // shortest line, empty when already solved
	Nodes    int64
	TimeUsed time.Duration
}

var (
	ErrUnsolvable = errors.New("no sequence of moves captures every piece")
	ErrBudget     = errors.New("search budget exhausted")
)

type parent struct {
	prev puzzle.Board
	move puzzle.Move
}

// Solve runs a breadth-first search from b. Boards are comparable values,
// so the visited table is keyed by the board itself.
func Solve(ctx context.Context, b puzzle.Board, cfg Config) (Result, error) {
	start := time.Now()
	if cfg.MaxNodes <= 0 {
		cfg.MaxNodes = DefaultMaxNodes
	}
	if cfg.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.TimeLimit)
		defer cancel()
	}

	var res Result
	if puzzle.HasWon(&b) {
		res.Solved = true
		res.TimeUsed = time.Since(start)
		return res, nil
	}

	seen := map[puzzle.Board]parent{b: {}}
	queue := []puzzle.Board{b}
	for len(queue) > 0 {
		if res.Nodes&1023 == 0 {
			if err := ctx.Err(); err != nil {
				res.TimeUsed = time.Since(start)
				return res, err
			}
		}
		if res.Nodes >= cfg.MaxNodes {
			res.TimeUsed = time.Since(start)
			return res, ErrBudget
		}
		cur := queue[0]
		queue = queue[1:]
		res.Nodes++

		for _, mv := range cur.GenerateMovesForSide(puzzle.First) {
			next := cur.ApplyMove(mv)
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next] = parent{prev: cur, move: mv}
			if puzzle.HasWon(&next) {
				res.Solved = true
				res.Moves = line(seen, b, next)
				res.TimeUsed = time.Since(start)
				return res, nil
			}
			queue = append(queue, next)
		}
	}
	res.TimeUsed = time.Since(start)
	return res, ErrUnsolvable
}

// line walks the parent links back to root.
func line(seen map[puzzle.Board]parent, root, end puzzle.Board) []puzzle.Move {
	var out []puzzle.Move
	for cur := end; cur != root; {
		p := seen[cur]
		out = append(out, p.move)
		cur = p.prev
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
