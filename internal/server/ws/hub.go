// Package ws streams session state over websockets and accepts the same
// commands as the HTTP API.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"pawnpuzzle/internal/puzzle"
	"pawnpuzzle/internal/server/game"
	httpserver "pawnpuzzle/internal/server/http"
)

const (
	pingInterval = 15 * time.Second
	writeTimeout = 5 * time.Second
	sendBuffer   = 16
)

// Msg is the envelope in both directions.
type Msg struct {
	T string          `json:"t"`           // type
	M json.RawMessage `json:"m,omitempty"` // payload
}

// movePayload is the body of a "move" message.
type movePayload struct {
	From puzzle.Coord `json:"from"`
	To   puzzle.Coord `json:"to"`
}

// outbound is either a session state or a pre-encoded message.
type outbound struct {
	ev  *game.Event
	raw []byte
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

type Hub struct {
	games        *game.Manager
	allowOrigins map[string]bool
	log          *zap.Logger
}

func NewHub(games *game.Manager, allow []string, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	m := map[string]bool{}
	for _, a := range allow {
		if a != "" {
			m[a] = true
		}
	}
	return &Hub{games: games, allowOrigins: m, log: log}
}

// originAllowed accepts clients without an Origin, the page served by this
// same host, and anything on the allow-list.
func (h *Hub) originAllowed(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || h.allowOrigins[origin] {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host != "" && u.Host == r.Host
}

// ServeHTTP handles GET /ws?game_id=...
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.originAllowed(r) {
		h.log.Warn("rejected origin", zap.String("origin", r.Header.Get("Origin")))
		http.Error(w, "forbidden origin", http.StatusForbidden)
		return
	}
	id := r.URL.Query().Get("game_id")
	events, cancel, err := h.games.Watch(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	defer cancel()

	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		return
	}
	defer c.Close(websocket.StatusInternalError, "unexpected exit")

	ctx, stop := context.WithCancel(r.Context())
	defer stop()

	log := h.log.With(zap.String("game_id", id))
	log.Info("watcher connected")
	defer log.Info("watcher disconnected")

	send := make(chan outbound, sendBuffer)

	// writer
	go func() {
		ping := time.NewTicker(pingInterval)
		defer ping.Stop()
		var last uint64
		for {
			var out outbound
			select {
			case <-ctx.Done():
				return
			case out = <-send:
			case ev, ok := <-events:
				if !ok {
					// session pruned
					c.Close(websocket.StatusGoingAway, "game closed")
					stop()
					return
				}
				out.ev = &ev
			case <-ping.C:
				if err := c.Ping(ctx); err != nil {
					stop()
					return
				}
				continue
			}
			msg := out.raw
			if out.ev != nil {
				// a state reply may have been taken before a newer push
				if out.ev.Seq < last {
					continue
				}
				last = out.ev.Seq
				msg = encode("state", httpserver.NewStateResponse(*out.ev))
			}
			if err := write(ctx, c, msg); err != nil {
				stop()
				return
			}
		}
	}()

	if ev, err := h.games.Exec(id, game.Command{Kind: game.CmdState}); err == nil {
		queue(ctx, send, outbound{ev: &ev})
	}

	// reader
	for {
		_, data, err := c.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
				c.Close(websocket.StatusNormalClosure, "bye")
			}
			return
		}
		var m Msg
		if err := json.Unmarshal(data, &m); err != nil {
			queue(ctx, send, outbound{raw: encode("error", errorPayload{Code: "BAD_JSON"})})
			continue
		}
		cmd, err := parseCommand(m)
		if err != nil {
			queue(ctx, send, outbound{raw: encode("error", errorPayload{Code: "BAD_COMMAND", Message: err.Error()})})
			continue
		}
		ev, err := h.games.Exec(id, cmd)
		if err != nil {
			queue(ctx, send, outbound{raw: encode("error", errorPayload{Code: errorCode(err), Message: err.Error()})})
			continue
		}
		// mutating commands reach this client through the watch channel
		if cmd.Kind == game.CmdState {
			queue(ctx, send, outbound{ev: &ev})
		}
	}
}

func parseCommand(m Msg) (game.Command, error) {
	cmd := game.Command{Kind: game.CommandKind(m.T)}
	switch cmd.Kind {
	case game.CmdSelect, game.CmdClick, game.CmdDragStart, game.CmdDrop:
		if len(m.M) == 0 {
			return cmd, errors.New("missing square")
		}
		if err := json.Unmarshal(m.M, &cmd.At); err != nil {
			return cmd, err
		}
	case game.CmdMove:
		var p movePayload
		if err := json.Unmarshal(m.M, &p); err != nil {
			return cmd, err
		}
		cmd.Move = puzzle.Move{From: p.From, To: p.To}
	}
	return cmd, nil
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		return "NO_GAME"
	case errors.Is(err, game.ErrBadCoord):
		return "BAD_COORD"
	case errors.Is(err, game.ErrUnknownCommand):
		return "UNKNOWN_COMMAND"
	default:
		return "INTERNAL"
	}
}

func encode(t string, payload any) []byte {
	raw, _ := json.Marshal(payload)
	b, _ := json.Marshal(Msg{T: t, M: raw})
	return b
}

func queue(ctx context.Context, send chan<- outbound, msg outbound) {
	select {
	case send <- msg:
	case <-ctx.Done():
	}
}

func write(ctx context.Context, c *websocket.Conn, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return c.Write(ctx, websocket.MessageText, msg)
}
