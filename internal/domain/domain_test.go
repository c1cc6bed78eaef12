package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfile_DisplayName(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		want    string
	}{
		{"full name", Profile{FirstName: "Ana", LastName: "Ivanović", Email: "ana@example.com"}, "Ana Ivanović"},
		{"first name only", Profile{FirstName: " Ana "}, "Ana"},
		{"email fallback", Profile{Email: "ana@example.com"}, "ana@example.com"},
		{"unknown", Profile{}, UnknownName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.DisplayName())
		})
	}
}

func TestDisplayNameOf_MissingProfile(t *testing.T) {
	profiles := map[int64]Profile{1: {FirstName: "Ana"}}

	assert.Equal(t, "Ana", DisplayNameOf(profiles, 1))
	assert.Equal(t, UnknownName, DisplayNameOf(profiles, 2))
	assert.Equal(t, UnknownName, DisplayNameOf(nil, 1))
}

func TestBooking_SessionKey(t *testing.T) {
	start := time.Date(2025, time.June, 10, 23, 0, 0, 0, time.UTC)
	sydney, err := time.LoadLocation("Australia/Sydney")
	if err != nil {
		t.Skip("tzdata is not available")
	}

	a := &Booking{LocationID: 1, StartTime: start, EndTime: start.Add(time.Hour)}
	// Тот же момент в другой зоне даёт тот же ключ
	b := &Booking{LocationID: 1, StartTime: start.In(sydney), EndTime: start.Add(time.Hour).In(sydney)}
	c := &Booking{LocationID: 2, StartTime: start, EndTime: start.Add(time.Hour)}

	assert.Equal(t, a.SessionKey(), b.SessionKey())
	assert.NotEqual(t, a.SessionKey(), c.SessionKey())
	assert.Equal(t, 60, a.DurationMinutes())
}

func TestAvailability_Capacity(t *testing.T) {
	slot := &Availability{MaxCapacity: 3}

	assert.False(t, slot.IsFullAt(2))
	assert.True(t, slot.IsFullAt(3))
	assert.Equal(t, 1, slot.RemainingAt(2))
	assert.Equal(t, 0, slot.RemainingAt(5))
}

func TestAvailability_OverlapsIsHalfOpen(t *testing.T) {
	start := time.Date(2025, time.June, 10, 23, 0, 0, 0, time.UTC)
	slot := &Availability{StartTime: start, EndTime: start.Add(30 * time.Minute)}

	assert.True(t, slot.Overlaps(start.Add(-time.Hour), start.Add(time.Minute)))
	assert.False(t, slot.Overlaps(start.Add(30*time.Minute), start.Add(time.Hour)))
	assert.False(t, slot.Overlaps(start.Add(-time.Hour), start))
}

func TestBookingRequest_States(t *testing.T) {
	req := &BookingRequest{Status: RequestStatusPending}
	assert.True(t, req.IsPending())
	assert.False(t, req.IsTerminal())

	req.Status = RequestStatusRejected
	assert.False(t, req.IsPending())
	assert.True(t, req.IsTerminal())

	assert.False(t, RequestStatus("cancelled").IsValid())
	assert.False(t, Role("guest").IsValid())
}
