package handlers

import (
	"encoding/base64"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/ecotrack-backend/internal/logger"
	"github.com/yungbote/ecotrack-backend/internal/middleware"
	"github.com/yungbote/ecotrack-backend/internal/receipt"
	"github.com/yungbote/ecotrack-backend/internal/services"
)

type ReceiptHandler struct {
	log      *logger.Logger
	receipts services.ReceiptService
}

func NewReceiptHandler(log *logger.Logger, receipts services.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{
		log:      log.With("handler", "ReceiptHandler"),
		receipts: receipts,
	}
}

type analyzeReceiptRequest struct {
	// Image is base64-encoded photo bytes.
	Image    string `json:"image" binding:"required"`
	MimeType string `json:"mime_type"`
}

func (h *ReceiptHandler) Analyze(c *gin.Context) {
	var req analyzeReceiptRequest
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
	result, err := h.receipts.Analyze(c.Request.Context(), image, mimeType)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

type saveReceiptRequest struct {
	Analysis *receipt.Analysis `json:"analysis" binding:"required"`
	ImageURL string            `json:"image_url"`
}

func (h *ReceiptHandler) Save(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req saveReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	result, err := h.receipts.Save(c.Request.Context(), userID, req.Analysis, req.ImageURL)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *ReceiptHandler) History(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	scans, err := h.receipts.History(c.Request.Context(), userID, limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"scans": scans})
}

func (h *ReceiptHandler) Items(c *gin.Context) {
	receiptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	items, err := h.receipts.Items(c.Request.Context(), receiptID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"items": items})
}

func (h *ReceiptHandler) Stats(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	stats, err := h.receipts.Stats(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, stats)
}
