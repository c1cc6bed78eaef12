package compute_heatmap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	computeHeatmap "github.com/m04kA/SMC-CourtBooking/internal/usecase/compute_heatmap"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type useCaseStub struct {
	got  *computeHeatmap.Request
	resp *computeHeatmap.Response
	err  error
}

func (s *useCaseStub) Execute(_ context.Context, req *computeHeatmap.Request) (*computeHeatmap.Response, error) {
	s.got = req
	return s.resp, s.err
}

func TestHandler_PassesSessionAndFilter(t *testing.T) {
	from := types.NewDate(2025, time.June, 10)
	stub := &useCaseStub{resp: &computeHeatmap.Response{
		From: from,
		To:   from.AddDays(1),
		Days: []computeHeatmap.Day{
			{Date: from, HasOpenSlot: true},
			{Date: from.AddDays(1), HasOpenSlot: false},
		},
		Computed: 2,
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/heatmap?from=2025-06-10&to=2025-06-11&locationId=4", nil)
	req.Header.Set(SessionHeader, "tab-1")
	rec := httptest.NewRecorder()

	NewHandler(stub, nopLogger{}).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tab-1", stub.got.SessionID)
	require.NotNil(t, stub.got.LocationID)
	assert.Equal(t, int64(4), *stub.got.LocationID)

	var resp HeatmapResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []DayResponse{
		{Date: "2025-06-10", HasOpenSlot: true},
		{Date: "2025-06-11", HasOpenSlot: false},
	}, resp.Days)
}

func TestHandler_BadQuery(t *testing.T) {
	for _, target := range []string{
		"/api/v1/heatmap",
		"/api/v1/heatmap?from=2025-06-10",
		"/api/v1/heatmap?from=2025-06-10&to=2025-06-11&locationId=x",
	} {
		stub := &useCaseStub{}
		rec := httptest.NewRecorder()
		NewHandler(stub, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Nil(t, stub.got)
	}
}

func TestHandler_RangeTooLarge(t *testing.T) {
	stub := &useCaseStub{err: computeHeatmap.ErrRangeTooLarge}
	rec := httptest.NewRecorder()

	NewHandler(stub, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/heatmap?from=2025-01-01&to=2025-12-31", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
