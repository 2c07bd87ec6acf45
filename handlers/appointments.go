package handlers

import (
	"net/http"
	"strconv"
	"time"

	appointmentRepo "citaflow/database/repository/appointment"
	"citaflow/middleware"
	"citaflow/services/appointment"

	"github.com/gin-gonic/gin"
)

type createAppointmentInput struct {
	AgentID      int       `json:"agentId" binding:"required"`
	SupervisorID *int      `json:"supervisorId"`
	Start        time.Time `json:"start" binding:"required"`
	End          time.Time `json:"end" binding:"required"`
	Provider     string    `json:"provider"`
	MeetingURL   *string   `json:"meetingUrl"`
	GenerateLink bool      `json:"generateLink"`
	ProspectID   *int64    `json:"prospectId"`
	ProspectName *string   `json:"prospectName"`
	Notes        *string   `json:"notes"`
}

// CreateAppointmentHandler books a new appointment.
// POST /api/agenda/appointments
func (hb *HandlerBundle) CreateAppointmentHandler(c *gin.Context) {
	var input createAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	requestedBy := ""
	if member := middleware.CurrentStaff(c); member != nil {
		requestedBy = member.Email
	}

	appt, err := hb.Appointments.Create(c.Request.Context(), appointment.CreateRequest{
		AgentID:      input.AgentID,
		SupervisorID: input.SupervisorID,
		Start:        input.Start,
		End:          input.End,
		Provider:     input.Provider,
		MeetingURL:   input.MeetingURL,
		GenerateLink: input.GenerateLink,
		ProspectID:   input.ProspectID,
		ProspectName: input.ProspectName,
		Notes:        input.Notes,
		RequestedBy:  requestedBy,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

type cancelAppointmentInput struct {
	AppointmentID string  `json:"appointmentId" binding:"required"`
	Reason        *string `json:"reason"`
}

// CancelAppointmentHandler cancels a confirmed appointment. Cancelling twice
// succeeds both times.
// POST /api/agenda/appointments/cancel
func (hb *HandlerBundle) CancelAppointmentHandler(c *gin.Context) {
	var input cancelAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := hb.Appointments.Cancel(c.Request.Context(), appointment.CancelRequest{
		AppointmentID: input.AppointmentID,
		Reason:        input.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "appointment": appt})
}

// ListAppointmentsHandler lists appointments with optional filters.
// GET /api/agenda/appointments?state=&agent_id=&from=&to=&limit=
func (hb *HandlerBundle) ListAppointmentsHandler(c *gin.Context) {
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

	filter := appointmentRepo.ListFilter{
		State: c.Query("state"),
		From:  from,
		To:    to,
	}
	if raw := c.Query("agent_id"); raw != "" {
		agentID, err := strconv.Atoi(raw)
		if err != nil || agentID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid agent_id"})
			return
		}
		filter.AgentID = agentID
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		filter.Limit = limit
	}

	appts, err := hb.Appointments.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts, "count": len(appts)})
}
