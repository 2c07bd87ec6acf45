package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListAgendaStaffHandler serves the bookable staff directory with meeting
// integration info per member.
// GET /api/agenda/staff
func (hb *HandlerBundle) ListAgendaStaffHandler(c *gin.Context) {
	entries, err := hb.Directory.ListAgendaStaff(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": entries, "count": len(entries)})
}
