package domain

import "time"

// Booking is one student's place in a session.
// Bookings sharing (LocationID, StartTime, EndTime) form one Session.
type Booking struct {
	ID          int64
	LocationID  int64
	UserID      int64
	CoachID     *int64
	StartTime   time.Time // UTC
	EndTime     time.Time // UTC
	ServiceName string
	CreditCost  float64
	AcademyID   int64
	CreatedAt   time.Time
}

// SessionKey returns the grouping key of the booking's session.
func (b *Booking) SessionKey() SessionKey {
	return NewSessionKey(b.LocationID, b.StartTime, b.EndTime)
}

// IsOwnedBy returns true if the booking belongs to the user.
func (b *Booking) IsOwnedBy(userID int64) bool {
	return b.UserID == userID
}

// IsCoachedBy returns true if the coach is assigned to the booking.
func (b *Booking) IsCoachedBy(coachID int64) bool {
	return b.CoachID != nil && *b.CoachID == coachID
}

// HasRefundableCost returns true if cancelling the booking must credit the wallet.
func (b *Booking) HasRefundableCost() bool {
	return b.CreditCost > 0
}

// DurationMinutes returns the booked duration.
func (b *Booking) DurationMinutes() int {
	return int(b.EndTime.Sub(b.StartTime).Minutes())
}

// BookingsFilter filters booking listings. Nil fields are not applied.
type BookingsFilter struct {
	LocationID *int64
	UserID     *int64
	CoachID    *int64
	From       *time.Time // StartTime >= From
	To         *time.Time // StartTime <= To
}
