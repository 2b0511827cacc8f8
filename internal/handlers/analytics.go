package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/htw-hub/questboard-api/internal/constants"
	"github.com/htw-hub/questboard-api/internal/dto"
	"github.com/htw-hub/questboard-api/internal/services"
	"github.com/htw-hub/questboard-api/internal/utils"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// Stats returns task and member counters
func (h *AnalyticsHandler) Stats(c *gin.Context) {
	stats, err := h.analyticsService.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStatsDTO(*stats))
}

// Leaderboard returns users ranked by earned XP
func (h *AnalyticsHandler) Leaderboard(c *gin.Context) {
	limit := utils.ParseLimit(c, constants.DefaultLeaderboardLimit, constants.MaxLeaderboardLimit)

	entries, err := h.analyticsService.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToLeaderboardDTOs(entries))
}
