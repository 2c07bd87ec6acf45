package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// GetAvailabilityHandler serves the aggregated busy view.
// GET /api/agenda/availability?staffIds=1,2&from=...&to=...
func (hb *HandlerBundle) GetAvailabilityHandler(c *gin.Context) {
	staffIDs, err := parseStaffIDs(c.Query("staffIds"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(staffIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "staffIds is required"})
		return
	}

	from, err := parseTimeParam(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from: " + err.Error()})
		return
	}
	to, err := parseTimeParam(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to: " + err.Error()})
		return
	}
	if (from == nil) != (to == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to must be provided together"})
		return
	}
	if from != nil && to != nil && !to.After(*from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be after from"})
		return
	}

	result, err := hb.Availability.GetBusyIntervals(c.Request.Context(), staffIDs, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseStaffIDs(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	seen := make(map[int]bool)
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil || id <= 0 {
			return nil, &strconv.NumError{Func: "parseStaffIDs", Num: part, Err: strconv.ErrSyntax}
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func parseTimeParam(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
