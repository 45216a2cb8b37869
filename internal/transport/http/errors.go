package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/internal/service/game"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// respondError maps service and engine errors to a status and a stable code
// the page can switch on.
func respondError(c *gin.Context, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		c.AbortWithStatusJSON(status, errorResponse{Error: code, Message: "internal error"})
		return
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: code, Message: err.Error()})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		return http.StatusNotFound, "game_not_found"
	case errors.Is(err, domain.ErrColumnFull):
		return http.StatusConflict, "column_full"
	case errors.Is(err, domain.ErrGameOver):
		return http.StatusConflict, "game_over"
	case errors.Is(err, domain.ErrInvalidColumn):
		return http.StatusBadRequest, "invalid_column"
	case errors.Is(err, game.ErrUnknownColor):
		return http.StatusBadRequest, "unknown_color"
	case errors.Is(err, game.ErrSameColor):
		return http.StatusBadRequest, "same_color"
	case errors.Is(err, game.ErrInvalidName):
		return http.StatusBadRequest, "invalid_name"
	}
	return http.StatusInternalServerError, "internal"
}
