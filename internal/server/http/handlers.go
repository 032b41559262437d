package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"pawnpuzzle/internal/puzzle"
	"pawnpuzzle/internal/server/game"
	"pawnpuzzle/internal/solver"
	"pawnpuzzle/internal/store"
)

const (
	maxJSONBodyBytes int64 = 1 << 20
	hintTimeLimit          = 3 * time.Second
)

// Handler implements http.Handler for the /api/* routes.
type Handler struct {
	games  *game.Manager
	layout store.LayoutStore
	log    *zap.Logger
}

func NewHandler(games *game.Manager, layouts store.LayoutStore, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{games: games, layout: layouts, log: log}
}

// inputCommands maps single-square endpoints to their command.
var inputCommands = map[string]game.CommandKind{
	"/api/select":     game.CmdSelect,
	"/api/click":      game.CmdClick,
	"/api/drag_start": game.CmdDragStart,
	"/api/drop":       game.CmdDrop,
}

// gameCommands maps endpoints that only need a game id.
var gameCommands = map[string]game.CommandKind{
	"/api/state":    game.CmdState,
	"/api/deselect": game.CmdDeselect,
	"/api/undo":     game.CmdUndo,
	"/api/reset":    game.CmdReset,
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/puzzles" {
		switch r.Method {
		case http.MethodGet:
			h.handleListPuzzles(w, r)
		case http.MethodPost:
			h.handleSavePuzzle(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	if r.Method != http.MethodPost {
		if r.URL.Path == "/api/new_game" || r.URL.Path == "/api/move" ||
			r.URL.Path == "/api/hint" ||
			inputCommands[r.URL.Path] != "" || gameCommands[r.URL.Path] != "" {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		http.NotFound(w, r)
		return
	}

	switch r.URL.Path {
	case "/api/new_game":
		h.handleNewGame(w, r)
	case "/api/move":
		h.handlePlay(w, r)
	case "/api/hint":
		h.handleHint(w, r)
	default:
		if kind, ok := inputCommands[r.URL.Path]; ok {
			h.handleInput(w, r, kind)
			return
		}
		if kind, ok := gameCommands[r.URL.Path]; ok {
			h.handleGameCommand(w, r, kind)
			return
		}
		http.NotFound(w, r)
	}
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	initial := puzzle.InitialBoard()
	if req.LayoutID != "" {
		if h.layout == nil {
			http.Error(w, "layout storage not configured", http.StatusServiceUnavailable)
			return
		}
		rec, err := h.layout.Load(r.Context(), req.LayoutID)
		if err != nil {
			h.writeError(w, err)
			return
		}
		b, err := puzzle.ParseLayout(rec.Layout)
		if err == nil {
			err = puzzle.ValidatePuzzle(&b)
		}
		if err != nil {
			h.log.Warn("stored layout unplayable", zap.String("layout_id", rec.ID), zap.Error(err))
			http.Error(w, "stored layout is not playable: "+err.Error(), http.StatusUnprocessableEntity)
			return
		}
		initial = b
	}

	g := h.games.NewGame(initial, req.LayoutID)
	h.exec(w, g.ID, game.Command{Kind: game.CmdState})
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	h.exec(w, req.GameID, game.Command{Kind: game.CmdMove, Move: req.Move})
}

func (h *Handler) handleInput(w http.ResponseWriter, r *http.Request, kind game.CommandKind) {
	var req InputRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.At == nil {
		http.Error(w, "missing square", http.StatusBadRequest)
		return
	}
	h.exec(w, req.GameID, game.Command{Kind: kind, At: *req.At})
}

func (h *Handler) handleGameCommand(w http.ResponseWriter, r *http.Request, kind game.CommandKind) {
	var req GameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	h.exec(w, req.GameID, game.Command{Kind: kind})
}

func (h *Handler) exec(w http.ResponseWriter, gameID string, cmd game.Command) {
	ev, err := h.games.Exec(gameID, cmd)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NewStateResponse(ev))
}

// handleHint solves from the session's current board. The search runs
// outside the session lock on a copy of the board.
func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	ev, err := h.games.Exec(req.GameID, game.Command{Kind: game.CmdState})
	if err != nil {
		h.writeError(w, err)
		return
	}

	res, err := solver.Solve(r.Context(), ev.View.Board, solver.Config{TimeLimit: hintTimeLimit})
	resp := HintResponse{GameID: req.GameID, Nodes: res.Nodes, Solvable: res.Solved}
	switch {
	case err == nil:
		resp.Remaining = len(res.Moves)
		if len(res.Moves) > 0 {
			mv := res.Moves[0]
			resp.Move = &mv
		}
	case errors.Is(err, solver.ErrUnsolvable):
	case errors.Is(err, solver.ErrBudget), errors.Is(err, context.DeadlineExceeded):
		h.log.Warn("hint search gave up", zap.String("game_id", req.GameID), zap.Int64("nodes", res.Nodes))
		http.Error(w, "hint search gave up", http.StatusServiceUnavailable)
		return
	default:
		h.writeError(w, err)
		return
	}
	h.log.Debug("hint", zap.String("game_id", req.GameID), zap.Int64("nodes", res.Nodes), zap.Duration("took", res.TimeUsed))
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListPuzzles(w http.ResponseWriter, r *http.Request) {
	if h.layout == nil {
		http.Error(w, "layout storage not configured", http.StatusServiceUnavailable)
		return
	}
	recs, err := h.layout.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recordsOrEmpty(recs))
}

func (h *Handler) handleSavePuzzle(w http.ResponseWriter, r *http.Request) {
	if h.layout == nil {
		http.Error(w, "layout storage not configured", http.StatusServiceUnavailable)
		return
	}
	var req SavePuzzleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	rec, err := h.layout.Save(r.Context(), req.Name, req.Layout)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.log.Info("layout saved", zap.String("layout_id", rec.ID), zap.String("name", rec.Name))
	writeJSON(w, http.StatusCreated, rec)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrGameNotFound), errors.Is(err, store.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, game.ErrBadCoord),
		errors.Is(err, game.ErrUnknownCommand),
		errors.Is(err, puzzle.ErrInvalidLayout),
		errors.Is(err, store.ErrInvalidName):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.log.Error("request failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
