package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/middleware"
	"github.com/yungbote/ecotrack-backend/internal/services"
)

type RewardHandler struct {
	log     *logger.Logger
	rewards services.RewardService
}

func NewRewardHandler(log *logger.Logger, rewards services.RewardService) *RewardHandler {
	return &RewardHandler{
		log:     log.With("handler", "RewardHandler"),
		rewards: rewards,
	}
}

func (h *RewardHandler) Balance(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	reward, err := h.rewards.Balance(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, reward)
}

func (h *RewardHandler) Ledger(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	entries, err := h.rewards.Ledger(c.Request.Context(), userID, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"transactions": entries})
}

type redeemRequest struct {
	// Points 0 redeems the whole balance.
	Points      int    `json:"points"`
	Description string `json:"description"`
}

func (h *RewardHandler) Redeem(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req redeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	reward, err := h.rewards.Redeem(c.Request.Context(), userID, req.Points, req.Description)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, reward)
}
