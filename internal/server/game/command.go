package game

import (
	"errors"
	"fmt"

	"pawnpuzzle/internal/puzzle"
)

type CommandKind string

const (
	CmdState     CommandKind = "state"
	CmdSelect    CommandKind = "select"
	CmdDeselect  CommandKind = "deselect"
	CmdClick     CommandKind = "click"
	CmdDragStart CommandKind = "drag_start"
	CmdDrop      CommandKind = "drop"
	CmdMove      CommandKind = "move"
	CmdUndo      CommandKind = "undo"
	CmdReset     CommandKind = "reset"
)

// Command is a player input coming from any transport.
type Command struct {
	Kind CommandKind
	At   puzzle.Coord // select, click, drag_start, drop
	Move puzzle.Move  // move
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadCoord       = errors.New("coordinate off the board")
)

// Validate rejects coordinates the core would treat as a programming error.
func (c Command) Validate() error {
	switch c.Kind {
	case CmdSelect, CmdClick, CmdDragStart, CmdDrop:
		if !c.At.InBounds() {
			return fmt.Errorf("%w: %+v", ErrBadCoord, c.At)
		}
	case CmdMove:
		if !c.Move.From.InBounds() || !c.Move.To.InBounds() {
			return fmt.Errorf("%w: %+v", ErrBadCoord, c.Move)
		}
	case CmdState, CmdDeselect, CmdUndo, CmdReset:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, c.Kind)
	}
	return nil
}

func (c Command) mutates() bool { return c.Kind != CmdState }

func (c Command) apply(g *puzzle.Game) *puzzle.MoveResult {
	var res puzzle.MoveResult
	switch c.Kind {
	case CmdSelect:
		g.Select(c.At)
		return nil
	case CmdDeselect:
		g.Deselect()
		return nil
	case CmdDragStart:
		g.StartDrag(c.At)
		return nil
	case CmdClick:
		res = g.Click(c.At)
	case CmdDrop:
		res = g.DropOn(c.At)
	case CmdMove:
		g.Deselect()
		if !g.Select(c.Move.From) {
			res = puzzle.MoveResult{Outcome: puzzle.OutcomeRejected, Move: c.Move}
			break
		}
		res = g.AttemptMove(c.Move.To)
	case CmdUndo:
		g.Undo()
		return nil
	case CmdReset:
		g.Reset()
		return nil
	default:
		return nil
	}
	return &res
}
