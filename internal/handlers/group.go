package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/middleware"
	"github.com/yungbote/ecotrack-backend/internal/services"
)

type GroupHandler struct {
	log    *logger.Logger
	groups services.GroupService
}

func NewGroupHandler(log *logger.Logger, groups services.GroupService) *GroupHandler {
	return &GroupHandler{
		log:    log.With("handler", "GroupHandler"),
		groups: groups,
	}
}

func (h *GroupHandler) List(c *gin.Context) {
	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"groups": groups})
}

func (h *GroupHandler) Create(c *gin.Context) {
	var input services.CreateGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	group, err := h.groups.Create(c.Request.Context(), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

func (h *GroupHandler) Join(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.groups.Join(c.Request.Context(), userID, groupID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"joined": groupID})
}
