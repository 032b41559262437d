package game

import (
	"sync"
	"time"

	"pawnpuzzle/internal/puzzle"
)

// GameState is one player's session. mu serialises every command on Game.
type GameState struct {
	ID        string
	LayoutID  string // empty for the built-in layout
	CreatedAt time.Time
	UpdatedAt time.Time

	mu   sync.Mutex
	game *puzzle.Game
	seq  uint64 // bumped under mu by every mutating command
}

// Event is what a command produced; watchers of the session receive it too.
type Event struct {
	GameID string
	Seq    uint64 // orders events of one session; larger is newer
	View   puzzle.View
	Result *puzzle.MoveResult

	// WinEvent is true exactly once per win, on the event of the winning move.
	WinEvent bool
}
