package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/ecotrack-backend/internal/aijson"
	"github.com/yungbote/ecotrack-backend/internal/apperr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondServiceError maps domain errors onto HTTP statuses. Model-output
// failures surface as 422: the request was fine, the photo was not.
func RespondServiceError(c *gin.Context, err error) {
	var parseErr *aijson.ParseError
	var semErr *aijson.SemanticError
	var valErr *aijson.ValidationError
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, apperr.ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
	case errors.As(err, &parseErr), errors.As(err, &semErr), errors.As(err, &valErr):
		RespondError(c, http.StatusUnprocessableEntity, "ai_response_invalid", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}
