package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-CourtBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type useCaseStub struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (s *useCaseStub) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

func newRequest(body string, principal *domain.Principal) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if principal != nil {
		req = req.WithContext(handlers.WithPrincipal(req.Context(), *principal))
	}
	return req
}

var student = &domain.Principal{UserID: 42, Role: domain.RoleStudent}

const validBody = `{"locationId":1,"date":"2025-06-11","startTime":"09:00","endTime":"24:00"}`

func TestHandler_Created(t *testing.T) {
	stub := &useCaseStub{resp: &createBooking.Response{
		ID:         10,
		LocationID: 1,
		UserID:     42,
		Date:       types.NewDate(2025, time.June, 11),
		StartTime:  "09:00",
		EndTime:    "24:00",
		StartUTC:   time.Date(2025, time.June, 10, 23, 0, 0, 0, time.UTC),
		EndUTC:     time.Date(2025, time.June, 11, 14, 0, 0, 0, time.UTC),
		CreditCost: 25,
	}}
	rec := httptest.NewRecorder()

	NewHandler(stub, nopLogger{}).Handle(rec, newRequest(validBody, student))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, types.TimeString(createBooking.EndOfDay), stub.got.EndTime)
	assert.Equal(t, *student, stub.got.Principal)

	var resp BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "2025-06-11", resp.Date)
	assert.Equal(t, "2025-06-10T23:00:00Z", resp.StartUTC)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		principal *domain.Principal
		err       error
		status    int
	}{
		{"no principal", validBody, nil, nil, http.StatusUnauthorized},
		{"unknown field", `{"locationId":1,"foo":1}`, student, nil, http.StatusBadRequest},
		{"bad time", `{"locationId":1,"date":"2025-06-11","startTime":"9:00","endTime":"10:00"}`, student, nil, http.StatusBadRequest},
		{"capacity", validBody, student, createBooking.ErrSlotNotAvailable, http.StatusConflict},
		{"already booked", validBody, student, createBooking.ErrAlreadyBooked, http.StatusConflict},
		{"forbidden", validBody, student, createBooking.ErrAccessDenied, http.StatusForbidden},
		{"in past", validBody, student, createBooking.ErrBookingInPast, http.StatusBadRequest},
		{"no slot", validBody, student, createBooking.ErrSlotNotFound, http.StatusNotFound},
		{"internal", validBody, student, createBooking.ErrInternal, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &useCaseStub{err: tt.err}
			rec := httptest.NewRecorder()

			NewHandler(stub, nopLogger{}).Handle(rec, newRequest(tt.body, tt.principal))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
