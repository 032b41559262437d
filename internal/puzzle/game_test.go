package puzzle

import "testing"

// solution captures all four second-side pawns from the initial layout.
var solution = [][2]string{
	{"d3", "d2"}, {"c3", "d3"}, {"b3", "c3"}, {"b2", "b3"}, {"d1", "b2"},
	{"d2", "d1"}, {"d3", "d2"}, {"c4", "d3"}, {"c3", "c4"}, {"d4", "c3"},
	{"c4", "d4"}, {"b2", "c4"}, {"c4", "b6"}, {"b6", "c4"}, {"c4", "d6"},
	{"d6", "c4"}, {"c4", "b2"}, {"d3", "c4"}, {"b2", "d3"}, {"c3", "b2"},
	{"b4", "c3"}, {"d3", "b4"}, {"b4", "a6"}, {"a6", "b4"}, {"b4", "c6"},
}

func playClick(t *testing.T, g *Game, from, to string) MoveResult {
	t.Helper()
	if res := g.Click(sq(from)); res.Outcome != OutcomeNoOp {
		t.Fatalf("click %s: got %v want noop", from, res.Outcome)
	}
	res := g.Click(sq(to))
	if res.Outcome != OutcomeApplied {
		t.Fatalf("move %s-%s: got %v", from, to, res.Outcome)
	}
	return res
}

func TestSelectNoOps(t *testing.T) {
	g := NewInitialGame()
	for _, label := range []string{"d2", "a5", "a1", "a6"} {
		if g.Select(sq(label)) {
			t.Fatalf("select %s should be a no-op", label)
		}
		if v := g.Snapshot(); v.Selected != nil {
			t.Fatalf("select %s left a selection", label)
		}
	}
	if !g.Select(sq("d3")) {
		t.Fatalf("select d3 should succeed")
	}
	v := g.Snapshot()
	if v.Selected == nil || *v.Selected != sq("d3") {
		t.Fatalf("selected: got %v", v.Selected)
	}
	if !sameSet(v.Legal, "d2") {
		t.Fatalf("legal: got %v", labels(v.Legal))
	}
}

func TestAttemptMoveAppliesAndRecordsHistory(t *testing.T) {
	g := NewInitialGame()
	start := g.Board()
	g.Select(sq("d3"))
	res := g.AttemptMove(sq("d2"))
	if res.Outcome != OutcomeApplied {
		t.Fatalf("got %v want applied", res.Outcome)
	}
	b := g.Board()
	if b.At(sq("d2")) != MakePiece(First, Rook) || b.At(sq("d3")) != 0 {
		t.Fatalf("rook not moved: %v", b.Layout())
	}
	if g.HistoryLen() != 1 {
		t.Fatalf("history: got %d want 1", g.HistoryLen())
	}
	if g.history[0] != start {
		t.Fatalf("history snapshot differs from the pre-move board")
	}
	v := g.Snapshot()
	if v.LastMove == nil || *v.LastMove != (Move{From: sq("d3"), To: sq("d2")}) {
		t.Fatalf("last move: got %+v", v.LastMove)
	}
	if v.Selected != nil || len(v.Legal) != 0 {
		t.Fatalf("selection not cleared after move")
	}

	// later moves must not leak into the stored snapshot
	g.Select(sq("c3"))
	g.AttemptMove(sq("d3"))
	if g.history[0] != start {
		t.Fatalf("history snapshot mutated by a later move")
	}
}

func TestAttemptMoveRejected(t *testing.T) {
	g := NewInitialGame()
	before := g.Board()
	g.Select(sq("d3"))
	res := g.AttemptMove(sq("a6"))
	if res.Outcome != OutcomeRejected {
		t.Fatalf("got %v want rejected", res.Outcome)
	}
	if g.Board() != before || g.HistoryLen() != 0 {
		t.Fatalf("rejected move mutated state")
	}
	if v := g.Snapshot(); v.Selected != nil || v.LastMove != nil {
		t.Fatalf("rejected move left selection or last move")
	}
	if res := g.AttemptMove(sq("d2")); res.Outcome != OutcomeNoOp {
		t.Fatalf("attempt without selection: got %v want noop", res.Outcome)
	}
}

func TestDragAndDrop(t *testing.T) {
	g := NewInitialGame()
	if res := g.DropOn(sq("d2")); res.Outcome != OutcomeNoOp {
		t.Fatalf("drop without drag: got %v", res.Outcome)
	}
	if !g.StartDrag(sq("d3")) {
		t.Fatalf("start drag on d3 failed")
	}
	if g.Select(sq("c3")) {
		t.Fatalf("select during drag should be a no-op")
	}
	if v := g.Snapshot(); v.DragFrom == nil || *v.DragFrom != sq("d3") {
		t.Fatalf("drag origin: got %v", v.DragFrom)
	}
	if res := g.DropOn(sq("d2")); res.Outcome != OutcomeApplied {
		t.Fatalf("drop: got %v", res.Outcome)
	}
	if g.Dragging() {
		t.Fatalf("drag state not cleared")
	}

	if !g.StartDrag(sq("d2")) {
		t.Fatalf("start drag on d2 failed")
	}
	before := g.Board()
	if res := g.DropOn(sq("a6")); res.Outcome != OutcomeRejected {
		t.Fatalf("illegal drop: got %v", res.Outcome)
	}
	if g.Board() != before || g.Dragging() {
		t.Fatalf("illegal drop changed state")
	}
}

func TestStartDragRejectsEnemy(t *testing.T) {
	g := NewInitialGame()
	if g.StartDrag(sq("a6")) {
		t.Fatalf("dragging a second-side piece should not be allowed")
	}
}

func TestUndo(t *testing.T) {
	g := NewInitialGame()
	if g.Undo() {
		t.Fatalf("undo on empty history should be a no-op")
	}
	boards := []Board{g.Board()}
	for _, mv := range solution[:5] {
		playClick(t, g, mv[0], mv[1])
		boards = append(boards, g.Board())
	}
	for i := len(boards) - 2; i >= 0; i-- {
		if !g.Undo() {
			t.Fatalf("undo %d failed", i)
		}
		if g.Board() != boards[i] {
			t.Fatalf("undo to step %d: board mismatch", i)
		}
		if v := g.Snapshot(); v.LastMove != nil || v.Selected != nil {
			t.Fatalf("undo did not clear last move / selection")
		}
	}
	if g.Undo() || g.HistoryLen() != 0 {
		t.Fatalf("extra undo should be a no-op")
	}
}

// Scenario A.
func TestSolutionWinsOnce(t *testing.T) {
	g := NewInitialGame()
	wins := 0
	for i, mv := range solution {
		res := playClick(t, g, mv[0], mv[1])
		last := i == len(solution)-1
		if res.WinAchieved {
			wins++
			if !last {
				t.Fatalf("win reported early at move %d", i+1)
			}
		}
		if g.Won() != last {
			t.Fatalf("move %d: won=%v", i+1, g.Won())
		}
		b := g.Board()
		if g.Won() != HasWon(&b) {
			t.Fatalf("move %d: win flag drifted from board", i+1)
		}
	}
	if wins != 1 {
		t.Fatalf("win reported %d times", wins)
	}
	if !g.TakeWinEvent() {
		t.Fatalf("win event not raised")
	}
	if g.TakeWinEvent() {
		t.Fatalf("win event raised twice")
	}
}

func TestUndoAfterWinClearsFlag(t *testing.T) {
	g := NewInitialGame()
	for _, mv := range solution {
		playClick(t, g, mv[0], mv[1])
	}
	if !g.Won() {
		t.Fatalf("expected win")
	}
	g.Undo()
	if g.Won() {
		t.Fatalf("win flag stuck after undoing the capture")
	}
	if g.TakeWinEvent() {
		t.Fatalf("stale win event after undo")
	}
	last := solution[len(solution)-1]
	res := playClick(t, g, last[0], last[1])
	if !res.WinAchieved || !g.TakeWinEvent() {
		t.Fatalf("re-capture should raise the win again")
	}
}

// Scenario C.
func TestResetRestoresInitial(t *testing.T) {
	g := NewInitialGame()
	for _, mv := range solution[:12] {
		playClick(t, g, mv[0], mv[1])
	}
	g.Select(sq("c4"))
	g.Reset()
	if g.Board() != InitialBoard() {
		t.Fatalf("reset did not restore the initial layout")
	}
	v := g.Snapshot()
	if v.History != 0 || v.Selected != nil || v.DragFrom != nil || v.LastMove != nil || v.Won {
		t.Fatalf("reset left state behind: %+v", v)
	}
}

func TestCapturesInSnapshot(t *testing.T) {
	g := NewInitialGame()
	for _, mv := range solution[:12] {
		playClick(t, g, mv[0], mv[1])
	}
	g.Select(sq("c4"))
	v := g.Snapshot()
	if !sameSet(v.Captures, "b6", "d6") {
		t.Fatalf("captures: got %v", labels(v.Captures))
	}
}

func TestOutOfBoundsPanics(t *testing.T) {
	calls := map[string]func(g *Game){
		"select": func(g *Game) { g.Select(Coord{Row: 6, Col: 0}) },
		"click":  func(g *Game) { g.Click(Coord{Row: 0, Col: -1}) },
		"drag":   func(g *Game) { g.StartDrag(Coord{Row: -1, Col: 0}) },
		"drop":   func(g *Game) { g.DropOn(Coord{Row: 0, Col: 4}) },
		"move":   func(g *Game) { g.AttemptMove(Coord{Row: 9, Col: 9}) },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("%s: expected precondition panic", name)
				}
			}()
			call(NewInitialGame())
		})
	}
}

func TestValidatePuzzle(t *testing.T) {
	b := InitialBoard()
	if err := ValidatePuzzle(&b); err != nil {
		t.Fatalf("initial board: %v", err)
	}
	var empty Board
	if err := ValidatePuzzle(&empty); err != ErrNoTargets {
		t.Fatalf("empty board: got %v", err)
	}
	onlyTargets := boardWith(t, placement{"a6": "bp"})
	if err := ValidatePuzzle(&onlyTargets); err != ErrNoAttacker {
		t.Fatalf("no attackers: got %v", err)
	}
}
