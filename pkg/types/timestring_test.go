package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid morning", input: "09:00"},
		{name: "valid with spaces", input: " 23:30 "},
		{name: "single digit hour", input: "9:00", wantErr: true},
		{name: "hour overflow", input: "24:00", wantErr: true},
		{name: "minute overflow", input: "10:60", wantErr: true},
		{name: "garbage", input: "ten", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("09:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:00"), got)

	got, err = TimeString("10:00").AddMinutes(-30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), got)

	_, err = TimeString("23:30").AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:30"))
	assert.False(t, TimeString("09:30").IsBefore("09:30"))
	assert.True(t, TimeString("18:00").IsAfter("17:59"))
	assert.Equal(t, 570, TimeString("09:30").Minutes())
	assert.Equal(t, -1, TimeString("bad").Minutes())
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2025, 6, 11, 7, 5, 0, 0, time.UTC))
	assert.Equal(t, TimeString("07:05"), ts)
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2025-06-11")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2025, time.June, 11), d)
	assert.Equal(t, "2025-06-10", d.AddDays(-1).String())
	assert.Equal(t, "2025-07-01", NewDate(2025, time.June, 31).String())
	assert.Equal(t, time.Wednesday, d.Weekday())
	assert.True(t, d.AddDays(-1).Before(d))
	assert.Equal(t, 30, d.DaysUntil(d.AddDays(30)))

	_, err = ParseDate("11/06/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
