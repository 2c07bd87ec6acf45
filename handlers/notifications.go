package handlers

import (
	"net/http"
	"strconv"

	"citaflow/middleware"

	"github.com/gin-gonic/gin"
)

// ListNotificationsHandler returns the caller's notifications plus their
// unread count.
// GET /api/notifications?unreadOnly=true&limit=20
func (hb *HandlerBundle) ListNotificationsHandler(c *gin.Context) {
	member := middleware.CurrentStaff(c)
	if member == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session required"})
		return
	}

	unreadOnly := c.Query("unreadOnly") == "true"
	var limit int64
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	rows, unread, err := hb.Notifications.List(c.Request.Context(), member.ID, unreadOnly, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": rows, "unreadCount": unread})
}

// MarkAllNotificationsReadHandler marks every unread notification of the
// caller as read.
// POST /api/notifications/mark-all-read
func (hb *HandlerBundle) MarkAllNotificationsReadHandler(c *gin.Context) {
	member := middleware.CurrentStaff(c)
	if member == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session required"})
		return
	}

	updated, err := hb.Notifications.MarkAllRead(c.Request.Context(), member.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "updated": updated})
}
