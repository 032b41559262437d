package httpserver

import (
	"pawnpuzzle/internal/puzzle"
	"pawnpuzzle/internal/server/game"
	"pawnpuzzle/internal/store"
)

// NewGameRequest starts a game; an empty LayoutID means the built-in layout.
type NewGameRequest struct {
	LayoutID string `json:"layout_id"`
}

// GameRequest is used by state / undo / reset / deselect.
type GameRequest struct {
	GameID string `json:"game_id"`
}

// InputRequest carries one square for select / click / drag_start / drop.
type InputRequest struct {
	GameID string        `json:"game_id"`
	At     *puzzle.Coord `json:"at"`
}

// PlayRequest moves a piece in one call.
type PlayRequest struct {
	GameID string      `json:"game_id"`
	Move   puzzle.Move `json:"move"`
}

// StateResponse is what every game endpoint returns.
type StateResponse struct {
	GameID     string         `json:"game_id"`
	Seq        uint64         `json:"seq"` // grows with every change to the session
	Layout     puzzle.Layout  `json:"layout"`
	Missing    []puzzle.Coord `json:"missing"`
	Selected   *puzzle.Coord  `json:"selected"`
	DragFrom   *puzzle.Coord  `json:"drag_from"`
	LegalMoves []puzzle.Coord `json:"legal_moves"`
	Captures   []puzzle.Coord `json:"captures"` // legal moves that take a piece
	LastMove   *puzzle.Move   `json:"last_move"`
	Won        bool           `json:"won"`
	WinEvent   bool           `json:"win_event"` // true only on the response to the winning move
	History    int            `json:"history"`
	Result     string         `json:"result,omitempty"` // "applied" / "rejected" / "noop"
	Status     string         `json:"status"`           // "ongoing" / "won"
}

// HintResponse suggests the first move of a shortest winning line.
// Move is null when the board is already won or cannot be won.
type HintResponse struct {
	GameID    string       `json:"game_id"`
	Move      *puzzle.Move `json:"move"`
	Remaining int          `json:"remaining"`
	Solvable  bool         `json:"solvable"`
	Nodes     int64        `json:"nodes"`
}

// SavePuzzleRequest stores a named layout.
type SavePuzzleRequest struct {
	Name   string        `json:"name"`
	Layout puzzle.Layout `json:"layout"`
}

// NewStateResponse renders a session event for the wire.
func NewStateResponse(ev game.Event) StateResponse {
	v := ev.View
	resp := StateResponse{
		GameID:     ev.GameID,
		Seq:        ev.Seq,
		Layout:     v.Board.Layout(),
		Missing:    puzzle.MissingSquares(),
		Selected:   v.Selected,
		DragFrom:   v.DragFrom,
		LegalMoves: nonNil(v.Legal),
		Captures:   nonNil(v.Captures),
		LastMove:   v.LastMove,
		Won:        v.Won,
		WinEvent:   ev.WinEvent,
		History:    v.History,
		Status:     "ongoing",
	}
	if v.Won {
		resp.Status = "won"
	}
	if ev.Result != nil {
		resp.Result = ev.Result.Outcome.String()
	}
	return resp
}

func nonNil(cs []puzzle.Coord) []puzzle.Coord {
	if cs == nil {
		return []puzzle.Coord{}
	}
	return cs
}

func recordsOrEmpty(rs []store.Record) []store.Record {
	if rs == nil {
		return []store.Record{}
	}
	return rs
}
