package domain

import "time"

// RequestType is the kind of a booking request.
type RequestType string

const (
	RequestTypeCancel    RequestType = "cancel"
	RequestTypeRaincheck RequestType = "raincheck"
)

// RequestTypes lists every request type a booking can have pending at once.
var RequestTypes = []RequestType{RequestTypeCancel, RequestTypeRaincheck}

// IsValid returns true for known request types.
func (t RequestType) IsValid() bool {
	return t == RequestTypeCancel || t == RequestTypeRaincheck
}

// RequestStatus is the state of a booking request.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// IsValid returns true for known statuses.
func (s RequestStatus) IsValid() bool {
	return s == RequestStatusPending || s == RequestStatusApproved || s == RequestStatusRejected
}

// BookingRequest asks an admin to cancel or rain-check a booking.
//
//	pending --approve--> approved (terminal)
//	pending --reject---> rejected (terminal)
type BookingRequest struct {
	ID          int64
	BookingID   int64
	RequesterID int64
	Type        RequestType
	Reason      string
	Status      RequestStatus
	ReviewerID  *int64
	ReviewedAt  *time.Time
	AdminNotes  *string
	CreatedAt   time.Time
}

// IsPending returns true while the request awaits review.
func (r *BookingRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}

// IsTerminal returns true once the request was approved or rejected.
func (r *BookingRequest) IsTerminal() bool {
	return r.Status == RequestStatusApproved || r.Status == RequestStatusRejected
}

// Review describes a status transition of a pending request.
type Review struct {
	RequestID  int64
	Status     RequestStatus
	ReviewerID int64
	ReviewedAt time.Time
	Notes      *string
}

// CancellationHistoryRecord is a snapshot of a booking taken when a cancellation is approved.
type CancellationHistoryRecord struct {
	ID          int64
	BookingID   int64
	RequestID   *int64
	UserID      int64
	CoachID     *int64
	LocationID  int64
	StartTime   time.Time
	EndTime     time.Time
	ServiceName string
	CreditCost  float64
	Reason      string
	CancelledBy int64
	CreatedAt   time.Time
}

// NewCancellationHistoryRecord snapshots the booking.
func NewCancellationHistoryRecord(b *Booking, requestID *int64, reason string, cancelledBy int64) *CancellationHistoryRecord {
	return &CancellationHistoryRecord{
		BookingID:   b.ID,
		RequestID:   requestID,
		UserID:      b.UserID,
		CoachID:     b.CoachID,
		LocationID:  b.LocationID,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		ServiceName: b.ServiceName,
		CreditCost:  b.CreditCost,
		Reason:      reason,
		CancelledBy: cancelledBy,
	}
}
