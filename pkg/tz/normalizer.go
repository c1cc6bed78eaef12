// Package tz converts between the academy's civil calendar and absolute instants.
//
// All conversions go through one fixed *time.Location loaded from the embedded
// tz database, so the results do not depend on the zone of the host process.
package tz

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// DefaultZone is the reference zone of the academy.
const DefaultZone = "Australia/Sydney"

// Normalizer converts local dates and wall-clock times to UTC and back.
type Normalizer struct {
	loc *time.Location
}

// New loads the named IANA zone.
func New(zone string) (*Normalizer, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("tz: load location %q: %w", zone, err)
	}
	return &Normalizer{loc: loc}, nil
}

// MustNew is New that panics on an unknown zone.
func MustNew(zone string) *Normalizer {
	n, err := New(zone)
	if err != nil {
		panic(err)
	}
	return n
}

// Location returns the reference zone.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// LocalDateToUTCRange returns the UTC instants of 00:00:00.000 and 23:59:59.999
// of the given civil date. On DST transition days the interval spans 23 or 25 hours.
func (n *Normalizer) LocalDateToUTCRange(d types.Date) (time.Time, time.Time) {
	start := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, n.loc)
	next := time.Date(d.Year, d.Month, d.Day+1, 0, 0, 0, 0, n.loc)
	return start.UTC(), next.Add(-time.Millisecond).UTC()
}

// LocalRangeToUTC returns [start of from, end of to] in UTC.
func (n *Normalizer) LocalRangeToUTC(from, to types.Date) (time.Time, time.Time) {
	start, _ := n.LocalDateToUTCRange(from)
	_, end := n.LocalDateToUTCRange(to)
	return start, end
}

// LocalToUTC returns the UTC instant of the wall-clock time ts on date d.
func (n *Normalizer) LocalToUTC(d types.Date, ts types.TimeString) (time.Time, error) {
	if err := ts.Validate(); err != nil {
		return time.Time{}, err
	}
	return d.In(n.loc, ts.Hour(), ts.Minute()).UTC(), nil
}

// UTCToLocalDate returns the civil date of the instant in the reference zone.
func (n *Normalizer) UTCToLocalDate(t time.Time) types.Date {
	return types.DateOf(t.In(n.loc))
}

// UTCToLocalTime returns the "HH:MM" wall-clock time of the instant in the reference zone.
func (n *Normalizer) UTCToLocalTime(t time.Time) types.TimeString {
	return types.NewTimeString(t.In(n.loc))
}
