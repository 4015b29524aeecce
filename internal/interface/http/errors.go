package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/vendor-vault/pkg/apperror"
	"github.com/oksasatya/vendor-vault/pkg/response"
)

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.Unauthenticated:
		return http.StatusUnauthorized
	case apperror.Forbidden:
		return http.StatusForbidden
	case apperror.Validation:
		return http.StatusBadRequest
	case apperror.Conflict:
		return http.StatusConflict
	case apperror.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err in the shared envelope. Internal errors are logged
// with the request id and reach the client without their cause.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	kind := apperror.KindOf(err)
	status := StatusFor(kind)

	body := map[string]any{"kind": kind.String()}
	message := "internal error"
	var ae *apperror.Error
	if kind != apperror.Internal {
		if errors.As(err, &ae) {
			message = ae.Message
			if len(ae.Details) > 0 {
				body["details"] = ae.Details
			}
		}
	} else if logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		}).Error("request failed")
	}
	response.Error[any](c, status, message, body)
}
