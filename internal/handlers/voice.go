package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/services"
)

// VoiceHandler is the webhook surface for the voice platform. It is public;
// the caller is trusted to carry user identity in call metadata, and the
// dispatcher treats that identity as untrusted input.
type VoiceHandler struct {
	log   *logger.Logger
	voice services.VoiceService
}

func NewVoiceHandler(log *logger.Logger, voice services.VoiceService) *VoiceHandler {
	return &VoiceHandler{
		log:   log.With("handler", "VoiceHandler"),
		voice: voice,
	}
}

func (h *VoiceHandler) Webhook(c *gin.Context) {
	var payload services.VoicePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	response, err := h.voice.HandleWebhook(c.Request.Context(), payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *VoiceHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "voice functions endpoint ready"})
}
