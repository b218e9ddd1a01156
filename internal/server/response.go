package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/authd/internal/apperrors"
	"github.com/kbukum/authd/internal/logger"
)

// DataResponse is the standard success envelope.
type DataResponse struct {
	Data any `json:"data"`
}

// RespondWithError inspects err: if it is an *apperrors.AppError the status
// and structured body are derived automatically; otherwise a generic 500 is
// sent. The internal sub-reason and cause are logged, never serialized.
func RespondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			logger.Error("Request failed", logger.Fields(
				"path", c.Request.URL.Path,
				"code", string(appErr.Code),
				logger.FieldError, appErr.Error(),
			))
		} else if appErr.Reason != "" {
			logger.Warn("Request rejected", logger.Fields(
				"path", c.Request.URL.Path,
				"code", string(appErr.Code),
				logger.FieldReason, appErr.Reason,
			))
		}
		c.JSON(appErr.HTTPStatus, appErr.ToResponse())
		return
	}
	logger.Error("Unhandled error", logger.ErrorFields(c.Request.URL.Path, err))
	c.JSON(http.StatusInternalServerError, apperrors.Internal(err).ToResponse())
}

// RespondOK sends a 200 response wrapping data.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}

// RespondCreated sends a 201 response wrapping data.
func RespondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, DataResponse{Data: data})
}
