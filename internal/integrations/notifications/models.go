package notifications

import "time"

// Kind тип события отмены
type Kind string

const (
	KindSelfCancel Kind = "self_cancel"
	KindApproved   Kind = "request_approved"
	KindRaincheck  Kind = "batch_raincheck"
)

// CancellationNotice уведомление об отмене бронирования
type CancellationNotice struct {
	Kind          Kind      `json:"kind"`
	BookingID     int64     `json:"booking_id"`
	RequestID     *int64    `json:"request_id,omitempty"`
	UserID        int64     `json:"user_id"`
	CoachID       *int64    `json:"coach_id,omitempty"`
	LocationID    int64     `json:"location_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	ServiceName   string    `json:"service_name"`
	Reason        string    `json:"reason,omitempty"`
	RefundAmount  float64   `json:"refund_amount"`
	RefundPending bool      `json:"refund_pending"`
	OccurredAt    time.Time `json:"occurred_at"`
}
