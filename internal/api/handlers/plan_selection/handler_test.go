package plan_selection

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
	planSelection "github.com/m04kA/SMC-CourtBooking/internal/usecase/plan_selection"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type useCaseStub struct {
	got  *planSelection.Request
	resp *planSelection.Response
	err  error
}

func (s *useCaseStub) Execute(_ context.Context, req *planSelection.Request) (*planSelection.Response, error) {
	s.got = req
	return s.resp, s.err
}

func post(stub *useCaseStub, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/selection/toggle", strings.NewReader(body))
	NewHandler(stub, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandler_ConvertsSelection(t *testing.T) {
	selection := planSelection.Selection{1: {"09:00", "09:30"}}
	stub := &useCaseStub{resp: &planSelection.Response{
		Date:      types.NewDate(2025, time.June, 11),
		Selection: selection,
		Valid:     true,
		Summary:   planSelection.Summarize(selection),
	}}

	rec := post(stub, `{"date":"2025-06-11","selection":[],"candidate":{"locationId":1,"start":"09:00"}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, types.TimeString("09:00"), stub.got.Candidate.Start)
	assert.Empty(t, stub.got.Selection)

	var resp ToggleResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Valid)
	assert.Equal(t, 60, resp.TotalMinutes)
	require.Len(t, resp.Ranges, 1)
	assert.Equal(t, "09:00", resp.Ranges[0].Start)
	assert.Equal(t, "10:00", resp.Ranges[0].End)
	assert.Equal(t, []LocationSelection{{LocationID: 1, Slots: []string{"09:00", "09:30"}}}, resp.Selection)
}

func TestHandler_IncompleteBlockIs422(t *testing.T) {
	stub := &useCaseStub{err: planSelection.ErrIncompleteMinimumBlock}

	rec := post(stub, `{"date":"2025-06-11","candidate":{"locationId":1,"start":"23:30"}}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, handlers.CodeIncompleteBlock, body.Code)
}

func TestHandler_BadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad date", `{"date":"11.06.2025","candidate":{"locationId":1,"start":"09:00"}}`},
		{"bad time", `{"date":"2025-06-11","candidate":{"locationId":1,"start":"9am"}}`},
		{"duplicate location", `{"date":"2025-06-11","selection":[{"locationId":1,"slots":["09:00"]},{"locationId":1,"slots":["10:00"]}],"candidate":{"locationId":1,"start":"09:00"}}`},
		{"missing candidate", `{"date":"2025-06-11"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &useCaseStub{}
			rec := post(stub, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, stub.got)
		})
	}
}
