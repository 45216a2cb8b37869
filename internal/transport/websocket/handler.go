package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/internal/service/game"
	"github.com/iamasit07/connect4/pkg/httputil"
	"github.com/iamasit07/connect4/pkg/logger"
	"github.com/iamasit07/connect4/pkg/uid"
	"github.com/rs/zerolog"
)

type Options struct {
	// InputCooldown drops further drops for this long after an accepted move.
	InputCooldown time.Duration
	// AnnounceDelay is the pause between the final move_made and game_over.
	AnnounceDelay  time.Duration
	PingInterval   time.Duration
	ReadTimeout    time.Duration
	AllowedOrigins []string
}

// Handler manages WebSocket dependencies
type Handler struct {
	Service     *game.Service
	ConnManager *ConnectionManager
	Upgrader    websocket.Upgrader

	opts Options
	log  zerolog.Logger
}

func NewHandler(svc *game.Service, cm *ConnectionManager, opts Options) *Handler {
	if opts.PingInterval <= 0 {
		opts.PingInterval = 30 * time.Second
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = 60 * time.Second
	}

	allowed := make(map[string]bool, len(opts.AllowedOrigins))
	for _, o := range opts.AllowedOrigins {
		allowed[o] = true
	}

	return &Handler{
		Service:     svc,
		ConnManager: cm,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin] || httputil.SameOrigin(origin, r.Host)
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		opts: opts,
		log:  logger.Component("ws"),
	}
}

// HandleWebSocket upgrades the request and serves the connection until the
// client goes away.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("Upgrade error")
		return
	}
	h.handleConnection(conn)
}

func (h *Handler) handleConnection(conn *websocket.Conn) {
	client := newClient(uid.GenerateClientID(), conn)
	h.ConnManager.Add(client)
	log := h.log.With().Str("client", client.ID).Logger()
	log.Info().Msg("Connection opened")

	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		h.cleanup(client)
		h.ConnManager.Remove(client)
		_ = conn.Close()
		log.Info().Msg("Connection closed")
	}()

	_ = conn.SetReadDeadline(time.Now().Add(h.opts.ReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.opts.ReadTimeout))
	})

	// Keep-alive pinger
	go func() {
		ticker := time.NewTicker(h.opts.PingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := client.ping(); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("Client disconnected unexpectedly")
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.send(client, errorMessage("invalid_message", "message is not valid JSON"))
			continue
		}
		h.processMessage(ctx, client, msg)
	}
}

// processMessage routes specific actions
func (h *Handler) processMessage(ctx context.Context, client *Client, msg ClientMessage) {
	switch msg.Type {
	case TypeNewGame:
		h.newGame(ctx, client, msg)
	case TypeDrop:
		h.drop(ctx, client, msg)
	case TypeRestart:
		h.restart(ctx, client)
	case TypeState:
		h.state(ctx, client)
	default:
		h.send(client, errorMessage("unknown_type", "unknown message type "+msg.Type))
	}
}

func (h *Handler) newGame(ctx context.Context, client *Client, msg ClientMessage) {
	session, err := h.Service.Create(ctx, game.NewGameRequest{Player1: msg.Player1, Player2: msg.Player2})
	if err != nil {
		h.sendError(client, err)
		return
	}

	previous := client.currentGame()
	client.reset(session.ID)
	if previous != "" {
		h.discard(previous)
	}

	view := game.NewView(session)
	h.send(client, ServerMessage{Type: TypeGameStart, Game: &view})
}

func (h *Handler) drop(ctx context.Context, client *Client, msg ClientMessage) {
	if msg.Column == nil {
		h.send(client, errorMessage("invalid_message", "drop needs a column"))
		return
	}

	client.mu.Lock()
	gameID := client.gameID
	cooling := !client.lastDrop.IsZero() && time.Since(client.lastDrop) < h.opts.InputCooldown
	client.mu.Unlock()

	if gameID == "" {
		h.send(client, errorMessage("no_game", "start a game first"))
		return
	}
	if cooling {
		return
	}

	out, err := h.Service.Move(ctx, gameID, *msg.Column)
	if errors.Is(err, domain.ErrColumnFull) {
		return
	}
	if err != nil {
		h.sendError(client, err)
		return
	}

	client.mu.Lock()
	client.lastDrop = time.Now()
	client.mu.Unlock()

	view := game.NewView(out.Session)
	move, cue := out.Move, out.Cue
	h.send(client, ServerMessage{Type: TypeMoveMade, Game: &view, Move: &move, Cue: &cue})

	if out.Session.Game.IsFinished() {
		h.scheduleAnnounce(client, view)
	}
}

// scheduleAnnounce sends game_over after the announce delay unless the
// client restarts or leaves first.
func (h *Handler) scheduleAnnounce(client *Client, view game.View) {
	client.mu.Lock()
	defer client.mu.Unlock()

	gen := client.generation
	client.announce = time.AfterFunc(h.opts.AnnounceDelay, func() {
		client.mu.Lock()
		current := client.generation == gen
		if current {
			client.announce = nil
		}
		client.mu.Unlock()

		if current {
			h.send(client, ServerMessage{Type: TypeGameOver, Game: &view})
		}
	})
}

func (h *Handler) restart(ctx context.Context, client *Client) {
	gameID := client.currentGame()
	if gameID == "" {
		h.send(client, errorMessage("no_game", "start a game first"))
		return
	}

	session, err := h.Service.Restart(ctx, gameID)
	if err != nil {
		h.sendError(client, err)
		return
	}
	client.reset(gameID)

	view := game.NewView(session)
	h.send(client, ServerMessage{Type: TypeGameStart, Game: &view})
}

func (h *Handler) state(ctx context.Context, client *Client) {
	gameID := client.currentGame()
	if gameID == "" {
		h.send(client, errorMessage("no_game", "start a game first"))
		return
	}

	session, err := h.Service.Get(ctx, gameID)
	if err != nil {
		h.sendError(client, err)
		return
	}
	view := game.NewView(session)
	h.send(client, ServerMessage{Type: TypeState, Game: &view})
}

// cleanup cancels timers and drops the client's game; nobody else can reach it.
func (h *Handler) cleanup(client *Client) {
	gameID := client.currentGame()
	client.reset("")
	if gameID != "" {
		h.discard(gameID)
	}
}

func (h *Handler) discard(gameID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.Service.Delete(ctx, gameID); err != nil && !errors.Is(err, game.ErrGameNotFound) {
		h.log.Warn().Err(err).Str("gameID", gameID).Msg("Failed to remove game")
	}
}

func (h *Handler) sendError(client *Client, err error) {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		h.send(client, errorMessage("game_not_found", err.Error()))
	case errors.Is(err, domain.ErrGameOver):
		h.send(client, errorMessage("game_over", err.Error()))
	case errors.Is(err, domain.ErrInvalidColumn):
		h.send(client, errorMessage("invalid_column", err.Error()))
	case errors.Is(err, game.ErrUnknownColor):
		h.send(client, errorMessage("unknown_color", err.Error()))
	case errors.Is(err, game.ErrSameColor):
		h.send(client, errorMessage("same_color", err.Error()))
	case errors.Is(err, game.ErrInvalidName):
		h.send(client, errorMessage("invalid_name", err.Error()))
	default:
		h.log.Error().Err(err).Str("client", client.ID).Msg("Request failed")
		h.send(client, errorMessage("internal", "internal error"))
	}
}

func (h *Handler) send(client *Client, msg ServerMessage) {
	if err := client.Send(msg); err != nil {
		h.log.Debug().Err(err).Str("client", client.ID).Str("type", msg.Type).Msg("Write failed")
	}
}
