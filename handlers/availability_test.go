package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"citaflow/models"

	"github.com/gin-gonic/gin"
)

type fakeAvailabilityService struct {
	called bool
}

func (f *fakeAvailabilityService) GetBusyIntervals(context.Context, []int, *time.Time, *time.Time) (*models.AvailabilityResult, error) {
	f.called = true
	return &models.AvailabilityResult{Busy: []models.BusyInterval{}, MissingAuth: []int{}}, nil
}

func getAvailability(t *testing.T, svc *fakeAvailabilityService, query string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/agenda/availability?"+query, nil)

	hb := &HandlerBundle{Availability: svc}
	hb.GetAvailabilityHandler(c)
	return rec
}

func TestGetAvailabilityRejectsHalfOpenWindow(t *testing.T) {
	for _, query := range []string{
		"staffIds=1,2&from=2025-06-01T00:00:00Z",
		"staffIds=1,2&to=2025-06-08T00:00:00Z",
	} {
		svc := &fakeAvailabilityService{}
		rec := getAvailability(t, svc, query)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d", query, rec.Code)
		}
		if svc.called {
			t.Fatalf("%s: service was called on a half-open window", query)
		}
	}
}

func TestGetAvailabilityAcceptsFullOrEmptyWindow(t *testing.T) {
	for _, query := range []string{
		"staffIds=1",
		"staffIds=1&from=2025-06-01T00:00:00Z&to=2025-06-08T00:00:00Z",
	} {
		svc := &fakeAvailabilityService{}
		rec := getAvailability(t, svc, query)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, body %s", query, rec.Code, rec.Body.String())
		}
		if !svc.called {
			t.Fatalf("%s: service was not called", query)
		}
	}
}
