package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"citaflow/services/appointment"
	"citaflow/services/availability"
	"citaflow/services/provisioning"

	"github.com/gin-gonic/gin"
)

func respond(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	respondError(c, err)
	return rec
}

func TestRespondErrorStatusMapping(t *testing.T) {
	now := time.Now()
	cases := []struct {
		err  error
		code int
	}{
		{&appointment.ValidationError{Field: "end", Message: "end must be after start"}, http.StatusBadRequest},
		{&appointment.NotFoundError{Resource: "appointment", ID: "x"}, http.StatusNotFound},
		{&appointment.ConflictError{StaffID: 1, Start: now, End: now.Add(time.Hour)}, http.StatusConflict},
		{&provisioning.ProvisioningError{Provider: "zoom", Message: "no stored settings"}, http.StatusUnprocessableEntity},
		{&availability.SourceUnavailableError{Source: "weekly_plan", Message: "store down"}, http.StatusBadGateway},
		{&appointment.BookingBusyError{Err: errors.New("lock timeout")}, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if rec := respond(t, tc.err); rec.Code != tc.code {
			t.Errorf("%T mapped to %d, want %d", tc.err, rec.Code, tc.code)
		}
	}
}

func TestParseStaffIDs(t *testing.T) {
	ids, err := parseStaffIDs(" 1, 2,2 ,3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Fatalf("ids = %v", ids)
	}

	if _, err := parseStaffIDs("1,zero"); err == nil {
		t.Fatal("accepted non-numeric id")
	}
	if _, err := parseStaffIDs("-4"); err == nil {
		t.Fatal("accepted negative id")
	}
	if ids, err := parseStaffIDs(""); err != nil || ids != nil {
		t.Fatalf("empty input: %v, %v", ids, err)
	}
}
