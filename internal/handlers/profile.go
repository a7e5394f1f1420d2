package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/middleware"
	"github.com/yungbote/ecotrack-backend/internal/services"
)

type ProfileHandler struct {
	log      *logger.Logger
	profiles services.ProfileService
}

func NewProfileHandler(log *logger.Logger, profiles services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		log:      log.With("handler", "ProfileHandler"),
		profiles: profiles,
	}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	profile, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, profile)
}

type weeklyGoalRequest struct {
	GoalGrams int `json:"goal_grams" binding:"required"`
}

func (h *ProfileHandler) SetWeeklyGoal(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req weeklyGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := h.profiles.SetWeeklyGoal(c.Request.Context(), userID, req.GoalGrams); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"weekly_goal": req.GoalGrams})
}

func (h *ProfileHandler) GoalProgress(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	progress, err := h.profiles.GoalProgress(c.Request.Context(), userID, time.Now())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, progress)
}
