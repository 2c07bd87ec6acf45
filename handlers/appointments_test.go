package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	appointmentRepo "citaflow/database/repository/appointment"
	"citaflow/models"
	"citaflow/services/appointment"

	"github.com/gin-gonic/gin"
)

type fakeAppointmentService struct {
	listFilter *appointmentRepo.ListFilter
}

func (f *fakeAppointmentService) Create(context.Context, appointment.CreateRequest) (*models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentService) Cancel(context.Context, appointment.CancelRequest) (*models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentService) List(_ context.Context, filter appointmentRepo.ListFilter) ([]models.Appointment, error) {
	f.listFilter = &filter
	return []models.Appointment{}, nil
}

func listAppointments(t *testing.T, svc *fakeAppointmentService, query string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/agenda/appointments?"+query, nil)

	hb := &HandlerBundle{Appointments: svc}
	hb.ListAppointmentsHandler(c)
	return rec
}

func TestListAppointmentsFiltersByStaffID(t *testing.T) {
	svc := &fakeAppointmentService{}
	rec := listAppointments(t, svc, "agent_id=7&state=confirmed&limit=25")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if svc.listFilter == nil {
		t.Fatal("list was never called")
	}
	if svc.listFilter.AgentID != 7 || svc.listFilter.State != "confirmed" || svc.listFilter.Limit != 25 {
		t.Fatalf("filter = %+v", *svc.listFilter)
	}
}

func TestListAppointmentsWithoutAgentFilter(t *testing.T) {
	svc := &fakeAppointmentService{}
	rec := listAppointments(t, svc, "state=cancelled")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if svc.listFilter.AgentID != 0 {
		t.Fatalf("filter = %+v", *svc.listFilter)
	}
}

func TestListAppointmentsRejectsBadAgentID(t *testing.T) {
	for _, raw := range []string{"tok-1", "0", "-3"} {
		svc := &fakeAppointmentService{}
		rec := listAppointments(t, svc, "agent_id="+raw)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("agent_id=%q: status = %d", raw, rec.Code)
		}
		if svc.listFilter != nil {
			t.Fatalf("agent_id=%q: list was called with %+v", raw, *svc.listFilter)
		}
	}
}
