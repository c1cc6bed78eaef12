package compute_heatmap

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/ptr"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
	"github.com/m04kA/SMC-CourtBooking/pkg/tz"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// availabilityStub хранит открытые слоты и фильтрует их как репозиторий
type availabilityStub struct {
	mu      sync.Mutex
	slots   []*domain.Availability
	filters []domain.AvailabilityFilter
	err     error
}

func (s *availabilityStub) List(_ context.Context, f domain.AvailabilityFilter) ([]*domain.Availability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filters = append(s.filters, f)
	if s.err != nil {
		return nil, s.err
	}

	var out []*domain.Availability
	for _, a := range s.slots {
		if a.StartTime.Before(f.From) || a.StartTime.After(f.To) {
			continue
		}
		if f.LocationID != nil && a.LocationID != *f.LocationID {
			continue
		}
		if f.OnlyOpen && a.IsBooked {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *availabilityStub) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.filters)
}

var zone = tz.MustNew(tz.DefaultZone)

func slotAt(loc int64, d types.Date, hour int, booked bool) *domain.Availability {
	start := d.In(zone.Location(), hour, 0).UTC()
	return &domain.Availability{
		LocationID:  loc,
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		MaxCapacity: 1,
		IsBooked:    booked,
	}
}

func june(day int) types.Date {
	return types.NewDate(2025, time.June, day)
}

func openDays(resp *Response) []string {
	var out []string
	for _, d := range resp.Days {
		if d.HasOpenSlot {
			out = append(out, d.Date.String())
		}
	}
	return out
}

func TestExecute_OpenDays(t *testing.T) {
	repo := &availabilityStub{slots: []*domain.Availability{
		slotAt(1, june(10), 9, false),
		slotAt(1, june(11), 9, true),
		// 07:00 по Сиднею - ещё предыдущий день по UTC
		slotAt(2, june(12), 7, false),
	}}
	uc := NewUseCase(repo, zone, nil, 0, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{From: june(10), To: june(13)})

	require.NoError(t, err)
	require.Len(t, resp.Days, 4)
	assert.Equal(t, []string{"2025-06-10", "2025-06-12"}, openDays(resp))
	assert.Equal(t, 4, resp.Computed)
}

func TestExecute_LocationFilter(t *testing.T) {
	repo := &availabilityStub{slots: []*domain.Availability{
		slotAt(1, june(10), 9, false),
		slotAt(2, june(11), 9, false),
	}}
	uc := NewUseCase(repo, zone, nil, 0, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{From: june(10), To: june(11), LocationID: ptr.Ptr(int64(2))})

	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-11"}, openDays(resp))
}

func TestExecute_IncrementalGrowth(t *testing.T) {
	repo := &availabilityStub{slots: []*domain.Availability{
		slotAt(1, june(10), 9, false),
		slotAt(1, june(20), 9, false),
	}}
	uc := NewUseCase(repo, zone, NewMemoryCache(time.Hour), 0, nopLogger{})
	ctx := context.Background()

	resp, err := uc.Execute(ctx, &Request{SessionID: "s1", From: june(10), To: june(15)})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Computed)

	resp, err = uc.Execute(ctx, &Request{SessionID: "s1", From: june(10), To: june(20)})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Computed)
	assert.Equal(t, []string{"2025-06-10", "2025-06-20"}, openDays(resp))

	// Второй запрос должен начинаться с 16 июня
	require.Equal(t, 2, repo.calls())
	from, _ := zone.LocalDateToUTCRange(june(16))
	assert.Equal(t, from, repo.filters[1].From)

	resp, err = uc.Execute(ctx, &Request{SessionID: "s1", From: june(12), To: june(18)})
	require.NoError(t, err)
	assert.Zero(t, resp.Computed)
	assert.Equal(t, 2, repo.calls())
}

func TestExecute_FilterChangeResetsCache(t *testing.T) {
	repo := &availabilityStub{slots: []*domain.Availability{slotAt(1, june(10), 9, false)}}
	uc := NewUseCase(repo, zone, NewMemoryCache(time.Hour), 0, nopLogger{})
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{SessionID: "s1", From: june(10), To: june(11)})
	require.NoError(t, err)

	resp, err := uc.Execute(ctx, &Request{SessionID: "s1", From: june(10), To: june(11), LocationID: ptr.Ptr(int64(2))})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Computed)
	assert.Empty(t, openDays(resp))

	resp, err = uc.Execute(ctx, &Request{SessionID: "s1", From: june(10), To: june(11)})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Computed)
	assert.Equal(t, []string{"2025-06-10"}, openDays(resp))
}

func TestExecute_SessionsAreIsolated(t *testing.T) {
	repo := &availabilityStub{}
	uc := NewUseCase(repo, zone, NewMemoryCache(time.Hour), 0, nopLogger{})
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{SessionID: "a", From: june(10), To: june(11)})
	require.NoError(t, err)
	resp, err := uc.Execute(ctx, &Request{SessionID: "b", From: june(10), To: june(11)})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Computed)
	assert.Equal(t, 2, repo.calls())
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&availabilityStub{}, zone, nil, 31, nopLogger{})

	tests := []struct {
		name string
		req  *Request
		want error
	}{
		{name: "missing from", req: &Request{To: june(10)}, want: ErrInvalidInput},
		{name: "reversed", req: &Request{From: june(11), To: june(10)}, want: ErrInvalidInput},
		{name: "bad location", req: &Request{From: june(10), To: june(10), LocationID: ptr.Ptr(int64(0))}, want: ErrInvalidInput},
		{name: "too long", req: &Request{From: june(1), To: types.NewDate(2025, time.July, 2)}, want: ErrRangeTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestExecute_RepositoryFailure(t *testing.T) {
	cache := NewMemoryCache(time.Hour)
	uc := NewUseCase(&availabilityStub{err: errors.New("timeout")}, zone, cache, 0, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: "s1", From: june(10), To: june(11)})

	assert.ErrorIs(t, err, domain.ErrDependency)
	_, err = cache.Load(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_Expiry(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	entry := newEntry(nil)
	entry.Days["2025-06-10"] = true
	require.NoError(t, cache.Store(ctx, "s1", entry))

	// Запись в кеше не должна зависеть от исходной
	entry.Days["2025-06-10"] = false

	got, err := cache.Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, got.Days["2025-06-10"])

	now = now.Add(2 * time.Minute)
	_, err = cache.Load(ctx, "s1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
