package list_sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
	"github.com/m04kA/SMC-CourtBooking/pkg/tz"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type bookingsStub struct {
	bookings []*domain.Booking
	err      error
	filter   domain.BookingsFilter
}

func (s *bookingsStub) List(_ context.Context, f domain.BookingsFilter) ([]*domain.Booking, error) {
	s.filter = f
	return s.bookings, s.err
}

type usersStub struct {
	profiles map[int64]domain.Profile
	err      error
	calls    [][]int64
}

func (u *usersStub) GetProfilesWithGracefulDegradation(_ context.Context, ids []int64) (map[int64]domain.Profile, error) {
	u.calls = append(u.calls, ids)
	if u.err != nil {
		return map[int64]domain.Profile{}, u.err
	}
	return u.profiles, nil
}

func request(p domain.Principal) *Request {
	return &Request{
		Principal: p,
		From:      types.NewDate(2025, time.June, 10),
		To:        types.NewDate(2025, time.June, 11),
	}
}

func TestExecute_RoleScoping(t *testing.T) {
	tests := []struct {
		name      string
		principal domain.Principal
		check     func(t *testing.T, f domain.BookingsFilter)
	}{
		{name: "admin sees all", principal: domain.Principal{UserID: 1, Role: domain.RoleAdmin}, check: func(t *testing.T, f domain.BookingsFilter) {
			assert.Nil(t, f.UserID)
			assert.Nil(t, f.CoachID)
		}},
		{name: "coach sees own sessions", principal: domain.Principal{UserID: 50, Role: domain.RoleCoach}, check: func(t *testing.T, f domain.BookingsFilter) {
			require.NotNil(t, f.CoachID)
			assert.Equal(t, int64(50), *f.CoachID)
			assert.Nil(t, f.UserID)
		}},
		{name: "student sees own bookings", principal: domain.Principal{UserID: 10, Role: domain.RoleStudent}, check: func(t *testing.T, f domain.BookingsFilter) {
			require.NotNil(t, f.UserID)
			assert.Equal(t, int64(10), *f.UserID)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &bookingsStub{}
			uc := NewUseCase(repo, &usersStub{}, tz.MustNew(tz.DefaultZone), 0, nopLogger{})

			_, err := uc.Execute(context.Background(), request(tt.principal))

			require.NoError(t, err)
			tt.check(t, repo.filter)
			assert.Equal(t, time.Date(2025, 6, 9, 14, 0, 0, 0, time.UTC), *repo.filter.From)
		})
	}
}

func TestExecute_GroupsWithOneProfileCall(t *testing.T) {
	users := &usersStub{profiles: profiles}
	uc := NewUseCase(&bookingsStub{bookings: sampleBookings()}, users, tz.MustNew(tz.DefaultZone), 0, nopLogger{})

	resp, err := uc.Execute(context.Background(), request(domain.Principal{UserID: 1, Role: domain.RoleAdmin}))

	require.NoError(t, err)
	require.Len(t, users.calls, 1)
	assert.Len(t, resp.Sessions, 3)
	assert.Equal(t, 75.0, resp.TotalRevenue)
	assert.False(t, resp.Degraded)

	// 23:00 UTC - 09:00 по Сиднею следующего дня
	assert.Equal(t, types.TimeString("09:00"), resp.Sessions[1].StartTime)
	assert.Equal(t, types.TimeString("10:00"), resp.Sessions[1].EndTime)
	assert.Equal(t, types.NewDate(2025, time.June, 11), resp.Sessions[1].Date)
}

func TestExecute_ProfilesDegraded(t *testing.T) {
	users := &usersStub{err: errors.New("userservice unavailable")}
	uc := NewUseCase(&bookingsStub{bookings: sampleBookings()}, users, tz.MustNew(tz.DefaultZone), 0, nopLogger{})

	resp, err := uc.Execute(context.Background(), request(domain.Principal{UserID: 1, Role: domain.RoleAdmin}))

	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	for _, s := range resp.Sessions {
		for _, name := range s.Participants {
			assert.Equal(t, domain.UnknownName, name)
		}
	}
}

func TestExecute_NoBookingsSkipsProfiles(t *testing.T) {
	users := &usersStub{}
	uc := NewUseCase(&bookingsStub{}, users, tz.MustNew(tz.DefaultZone), 0, nopLogger{})

	resp, err := uc.Execute(context.Background(), request(domain.Principal{UserID: 1, Role: domain.RoleAdmin}))

	require.NoError(t, err)
	assert.Empty(t, resp.Sessions)
	assert.Empty(t, users.calls)
}

func TestExecute_Errors(t *testing.T) {
	uc := NewUseCase(&bookingsStub{err: errors.New("db down")}, &usersStub{}, tz.MustNew(tz.DefaultZone), 0, nopLogger{})

	_, err := uc.Execute(context.Background(), request(domain.Principal{UserID: 1, Role: domain.RoleAdmin}))
	assert.ErrorIs(t, err, domain.ErrDependency)

	_, err = uc.Execute(context.Background(), request(domain.Principal{UserID: 1, Role: "guest"}))
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)

	bad := request(domain.Principal{UserID: 1, Role: domain.RoleAdmin})
	bad.From, bad.To = bad.To, bad.From
	_, err = uc.Execute(context.Background(), bad)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
