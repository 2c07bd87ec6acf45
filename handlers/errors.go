package handlers

import (
	"errors"
	"net/http"
	"time"

	"citaflow/services/appointment"
	"citaflow/services/availability"
	"citaflow/services/provisioning"
	"citaflow/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps the service error taxonomy onto distinct HTTP statuses
// so clients can tell "pick another time" from "fix your settings" from
// "try again later".
func respondError(c *gin.Context, err error) {
	var validationErr *appointment.ValidationError
	var conflictErr *appointment.ConflictError
	var notFoundErr *appointment.NotFoundError
	var busyErr *appointment.BookingBusyError
	var provisioningErr *provisioning.ProvisioningError
	var sourceErr *availability.SourceUnavailableError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":   conflictErr.Error(),
			"staffId": conflictErr.StaffID,
			"source":  conflictErr.Source,
			"start":   conflictErr.Start.Format(time.RFC3339),
			"end":     conflictErr.End.Format(time.RFC3339),
		})
	case errors.As(err, &provisioningErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":    provisioningErr.Error(),
			"provider": provisioningErr.Provider,
		})
	case errors.As(err, &sourceErr):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":  sourceErr.Error(),
			"source": sourceErr.Source,
		})
	case errors.As(err, &busyErr):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": busyErr.Error()})
	default:
		utils.GetLogger().Error("unhandled request error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
