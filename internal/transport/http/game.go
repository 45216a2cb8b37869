package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4/internal/service/game"
	"github.com/iamasit07/connect4/pkg/uid"
)

// ClientConfig is what the page needs before it draws a board.
type ClientConfig struct {
	Width           int      `json:"width"`
	Height          int      `json:"height"`
	Palette         []string `json:"palette"`
	InputCooldownMs int64    `json:"inputCooldownMs"`
	AnnounceDelayMs int64    `json:"announceDelayMs"`
}

type GameHandler struct {
	Service *game.Service
	Config  ClientConfig
}

func NewGameHandler(svc *game.Service, cfg ClientConfig) *GameHandler {
	return &GameHandler{Service: svc, Config: cfg}
}

type moveRequest struct {
	// Pointer so a missing column is told apart from column 0.
	Column *int `json:"column" binding:"required"`
}

// gameID reads the :id parameter. Malformed ids are answered with 404
// without touching the store.
func gameID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if !uid.IsGameID(id) {
		respondError(c, game.ErrGameNotFound)
		return "", false
	}
	return id, true
}

func (h *GameHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.Config)
}

func (h *GameHandler) CreateGame(c *gin.Context) {
	var req game.NewGameRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "invalid_request", Message: err.Error()})
			return
		}
	}

	session, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, game.NewView(session))
}

func (h *GameHandler) GetGame(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}
	session, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game.NewView(session))
}

func (h *GameHandler) MakeMove(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "invalid_request", Message: err.Error()})
		return
	}

	out, err := h.Service.Move(c.Request.Context(), id, *req.Column)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game.NewMoveView(out))
}

func (h *GameHandler) RestartGame(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}
	session, err := h.Service.Restart(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game.NewView(session))
}

func (h *GameHandler) DeleteGame(c *gin.Context) {
	id, ok := gameID(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
