package handlers

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
)

// BookingDTO бронирование в ответах API. Время в UTC (RFC3339).
type BookingDTO struct {
	ID          int64   `json:"id"`
	LocationID  int64   `json:"locationId"`
	UserID      int64   `json:"userId"`
	CoachID     *int64  `json:"coachId,omitempty"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	ServiceName string  `json:"serviceName"`
	CreditCost  float64 `json:"creditCost"`
	AcademyID   int64   `json:"academyId"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

// NewBookingDTO конвертирует доменную модель; nil даёт nil
func NewBookingDTO(b *domain.Booking) *BookingDTO {
	if b == nil {
		return nil
	}
	return &BookingDTO{
		ID:          b.ID,
		LocationID:  b.LocationID,
		UserID:      b.UserID,
		CoachID:     b.CoachID,
		StartTime:   FormatTime(b.StartTime),
		EndTime:     FormatTime(b.EndTime),
		ServiceName: b.ServiceName,
		CreditCost:  b.CreditCost,
		AcademyID:   b.AcademyID,
		CreatedAt:   FormatTime(b.CreatedAt),
	}
}

// RequestDTO заявка на отмену или перенос
type RequestDTO struct {
	ID          int64   `json:"id"`
	BookingID   int64   `json:"bookingId"`
	RequesterID int64   `json:"requesterId"`
	Type        string  `json:"type"`
	Reason      string  `json:"reason"`
	Status      string  `json:"status"`
	ReviewerID  *int64  `json:"reviewerId,omitempty"`
	ReviewedAt  *string `json:"reviewedAt,omitempty"`
	AdminNotes  *string `json:"adminNotes,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

// NewRequestDTO конвертирует доменную модель; nil даёт nil
func NewRequestDTO(r *domain.BookingRequest) *RequestDTO {
	if r == nil {
		return nil
	}
	dto := &RequestDTO{
		ID:          r.ID,
		BookingID:   r.BookingID,
		RequesterID: r.RequesterID,
		Type:        string(r.Type),
		Reason:      r.Reason,
		Status:      string(r.Status),
		ReviewerID:  r.ReviewerID,
		AdminNotes:  r.AdminNotes,
		CreatedAt:   FormatTime(r.CreatedAt),
	}
	if r.ReviewedAt != nil {
		reviewed := FormatTime(*r.ReviewedAt)
		dto.ReviewedAt = &reviewed
	}
	return dto
}

// RefundDTO итог возврата кредитов
type RefundDTO struct {
	Amount         float64 `json:"amount"`
	IdempotencyKey string  `json:"idempotencyKey,omitempty"`
	Attempted      bool    `json:"attempted"`
	Pending        bool    `json:"pending"` // возврат не прошёл, нужен повтор оператором
	Error          string  `json:"error,omitempty"`
}

// NewRefundDTO конвертирует итог возврата
func NewRefundDTO(r models.RefundResult) RefundDTO {
	dto := RefundDTO{
		Amount:         r.Amount,
		IdempotencyKey: r.IdempotencyKey,
		Attempted:      r.Attempted,
		Pending:        r.Failed(),
	}
	if r.Err != nil {
		dto.Error = r.Err.Error()
	}
	return dto
}

// FormatTime форматирует момент в UTC; нулевое время даёт пустую строку
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
