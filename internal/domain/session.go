package domain

import (
	"strings"
	"time"
)

// UnknownName is shown when neither a full name nor an e-mail is known.
const UnknownName = "Unknown"

// SessionKey identifies a session: bookings with equal location and interval.
type SessionKey struct {
	LocationID int64
	StartUnix  int64
	EndUnix    int64
}

// NewSessionKey builds a comparable key (time.Time values are not safe map keys).
func NewSessionKey(locationID int64, start, end time.Time) SessionKey {
	return SessionKey{LocationID: locationID, StartUnix: start.Unix(), EndUnix: end.Unix()}
}

// Session is the derived view of all bookings sharing one SessionKey.
//
// Coach policy: the coach shown is the first non-null coach id in booking id order
// (first coach wins). Re-assignment is written to every booking of the session at once
// (last writer wins), so all bookings normally agree.
type Session struct {
	Key          SessionKey
	LocationID   int64
	StartTime    time.Time
	EndTime      time.Time
	ServiceName  string
	BookingIDs   []int64
	UserIDs      []int64
	Participants []string
	CoachID      *int64
	CoachName    string
	Revenue      float64
}

// Size returns the number of bookings in the session.
func (s *Session) Size() int {
	return len(s.BookingIDs)
}

// Profile is the display data of a user.
type Profile struct {
	UserID    int64
	FirstName string
	LastName  string
	Email     string
}

// DisplayName returns "First Last", falling back to the e-mail, then to UnknownName.
func (p Profile) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
	if name != "" {
		return name
	}
	if email := strings.TrimSpace(p.Email); email != "" {
		return email
	}
	return UnknownName
}

// DisplayNameOf resolves a user id against a profile set.
func DisplayNameOf(profiles map[int64]Profile, userID int64) string {
	p, ok := profiles[userID]
	if !ok {
		return UnknownName
	}
	return p.DisplayName()
}
