package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"pawnpuzzle/internal/puzzle"
	"pawnpuzzle/internal/solver"
)

func main() {
	solve := flag.Bool("solve", false, "print a shortest winning line")
	flag.Parse()

	b := puzzle.InitialBoard()
	for r, row := range b.Layout() {
		fmt.Printf("%d ", puzzle.Rows-r)
		for c, cell := range row {
			switch {
			case puzzle.IsMissing(r, c):
				fmt.Print(" ##")
			case cell == "":
				fmt.Print(" ..")
			default:
				fmt.Printf(" %s", cell)
			}
		}
		fmt.Println()
	}
	fmt.Println("   a  b  c  d")

	moves := b.GenerateMovesForSide(puzzle.First)
	fmt.Println("Legal moves:", len(moves))
	for _, m := range moves {
		fmt.Printf("  %v-%v\n", m.From, m.To)
	}

	if !*solve {
		return
	}
	res, err := solver.Solve(context.Background(), b, solver.Config{TimeLimit: 30 * time.Second})
	if err != nil {
		fmt.Printf("solve: %v (nodes=%d)\n", err, res.Nodes)
		return
	}
	fmt.Printf("Solution: %d moves, %d nodes, %v\n", len(res.Moves), res.Nodes, res.TimeUsed)
	for i, m := range res.Moves {
		fmt.Printf("%3d. %v-%v\n", i+1, m.From, m.To)
	}
}
