package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/middleware"
	"github.com/yungbote/ecotrack-backend/internal/services"
)

type WasteHandler struct {
	log   *logger.Logger
	waste services.WasteService
}

func NewWasteHandler(log *logger.Logger, waste services.WasteService) *WasteHandler {
	return &WasteHandler{
		log:   log.With("handler", "WasteHandler"),
		waste: waste,
	}
}

type verifyWasteRequest struct {
	Image    string `json:"image" binding:"required"`
	MimeType string `json:"mime_type"`
}

func (h *WasteHandler) Verify(c *gin.Context) {
	var req verifyWasteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_image", err)
		return
	}
	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	verification, err := h.waste.Verify(c.Request.Context(), image, mimeType)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, verification)
}

func (h *WasteHandler) Report(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var input services.ReportWasteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	report, err := h.waste.Report(c.Request.Context(), userID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

func (h *WasteHandler) Reports(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	reports, err := h.waste.Reports(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"reports": reports})
}

func (h *WasteHandler) Pending(c *gin.Context) {
	reports, err := h.waste.Pending(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"reports": reports})
}

func (h *WasteHandler) Collect(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	reportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.waste.Collect(c.Request.Context(), userID, reportID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"collected": reportID})
}

func (h *WasteHandler) Offset(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	grams, err := h.waste.OffsetEarned(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"offset_grams": grams})
}
