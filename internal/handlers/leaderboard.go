package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/middleware"
	"github.com/yungbote/ecotrack-backend/internal/services"
)

type LeaderboardHandler struct {
	log         *logger.Logger
	leaderboard services.LeaderboardService
}

func NewLeaderboardHandler(log *logger.Logger, leaderboard services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		log:         log.With("handler", "LeaderboardHandler"),
		leaderboard: leaderboard,
	}
}

func (h *LeaderboardHandler) Top(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))
	entries, err := h.leaderboard.Top(c.Request.Context(), limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"leaderboard": entries})
}

func (h *LeaderboardHandler) Standing(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	standing, err := h.leaderboard.Standing(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, standing)
}

func (h *LeaderboardHandler) Groups(c *gin.Context) {
	groups, err := h.leaderboard.GroupRanking(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"groups": groups})
}
