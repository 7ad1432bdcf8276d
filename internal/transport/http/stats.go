package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/clash-of-dots/backend/internal/domain"
	"github.com/iamasit07/clash-of-dots/backend/internal/service/stats"
)

type StatsHandler struct {
	Stats *stats.Service
}

func NewStatsHandler(s *stats.Service) *StatsHandler {
	return &StatsHandler{Stats: s}
}

func (h *StatsHandler) GetStats(c *gin.Context) {
	s, err := h.Stats.GetStats(c.Request.Context())
	if err != nil {
		writeError(c, "Error fetching stats", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// Increment returns a handler bumping one counter and echoing the new aggregate.
func (h *StatsHandler) Increment(inc domain.Increment) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := h.Stats.Increment(c.Request.Context(), inc)
		if err != nil {
			writeError(c, "Error updating stats", err)
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

func (h *StatsHandler) Register(r gin.IRouter) {
	r.GET("/stats", h.GetStats)
	r.POST("/stats/total", h.Increment(domain.IncrementTotal))
	r.POST("/stats/win", h.Increment(domain.IncrementWon))
	r.POST("/stats/draw", h.Increment(domain.IncrementDrawn))
}
