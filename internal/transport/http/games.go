package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/clash-of-dots/backend/internal/domain"
	"github.com/iamasit07/clash-of-dots/backend/internal/service/game"
)

type GameHandler struct {
	Games *game.Service
	// Viewers reports live connections per game. Optional.
	Viewers func(gameID string) int
}

func NewGameHandler(gs *game.Service) *GameHandler {
	return &GameHandler{Games: gs}
}

type createGameRequest struct {
	Variant string `json:"variant"`
	Starter string `json:"starter"`
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

type resetRequest struct {
	Starter string `json:"starter"`
}

type moveResponse struct {
	Applied bool           `json:"applied"`
	State   game.StateView `json:"state"`
}

// CreateGame starts a game. An empty body uses the default variant with the human first.
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req createGameRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "error": err.Error()})
			return
		}
	}

	view, err := h.Games.NewGame(domain.Variant(req.Variant), game.ParseStarter(req.Starter))
	if err != nil {
		writeError(c, "Error creating game", err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *GameHandler) GetGame(c *gin.Context) {
	view, err := h.Games.GetGame(c.Param("id"))
	if err != nil {
		writeError(c, "Error fetching game", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetLiveGames returns every game that is still being played
func (h *GameHandler) GetLiveGames(c *gin.Context) {
	games := h.Games.ActiveGames()
	if h.Viewers != nil {
		for i := range games {
			games[i].Viewers = h.Viewers(games[i].GameID)
		}
	}
	c.JSON(http.StatusOK, games)
}

// EndGame drops a game the player abandoned.
func (h *GameHandler) EndGame(c *gin.Context) {
	if err := h.Games.EndGame(c.Param("id")); err != nil {
		writeError(c, "Error ending game", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Move plays the human's column. A full column answers 200 with applied=false.
func (h *GameHandler) Move(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "error": err.Error()})
		return
	}

	applied, view, err := h.Games.Move(c.Param("id"), *req.Column)
	if err != nil {
		writeError(c, "Error applying move", err)
		return
	}
	c.JSON(http.StatusOK, moveResponse{Applied: applied, State: view})
}

func (h *GameHandler) Reset(c *gin.Context) {
	var req resetRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "error": err.Error()})
			return
		}
	}

	view, err := h.Games.Reset(c.Param("id"), game.ParseStarter(req.Starter))
	if err != nil {
		writeError(c, "Error resetting game", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *GameHandler) Register(r gin.IRouter) {
	r.POST("/games", h.CreateGame)
	r.GET("/games", h.GetLiveGames)
	r.GET("/games/:id", h.GetGame)
	r.DELETE("/games/:id", h.EndGame)
	r.POST("/games/:id/moves", h.Move)
	r.POST("/games/:id/reset", h.Reset)
}
