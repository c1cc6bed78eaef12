package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-CourtBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	UserID      *int64  `json:"userId,omitempty" validate:"omitempty,gt=0"`
	LocationID  int64   `json:"locationId" validate:"required,gt=0"`
	Date        string  `json:"date" validate:"required"`      // "2025-06-11"
	StartTime   string  `json:"startTime" validate:"required"` // "09:00"
	EndTime     string  `json:"endTime" validate:"required"`   // "10:00"
	ServiceName string  `json:"serviceName,omitempty" validate:"max=100"`
	CreditCost  float64 `json:"creditCost" validate:"gte=0"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64   `json:"id"`
	LocationID  int64   `json:"locationId"`
	UserID      int64   `json:"userId"`
	CoachID     *int64  `json:"coachId,omitempty"`
	Date        string  `json:"date"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	StartUTC    string  `json:"startUtc"`
	EndUTC      string  `json:"endUtc"`
	ServiceName string  `json:"serviceName"`
	CreditCost  float64 `json:"creditCost"`
	CreatedAt   string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(principal domain.Principal) (*createBooking.Request, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}

	// "24:00" допустим только как конец интервала
	endTime := types.TimeString(r.EndTime)
	if r.EndTime != createBooking.EndOfDay {
		endTime, err = types.NewTimeStringFromString(r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("endTime: %w", err)
		}
	}

	return &createBooking.Request{
		Principal:   principal,
		UserID:      r.UserID,
		LocationID:  r.LocationID,
		Date:        date,
		StartTime:   startTime,
		EndTime:     endTime,
		ServiceName: r.ServiceName,
		CreditCost:  r.CreditCost,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		LocationID:  resp.LocationID,
		UserID:      resp.UserID,
		CoachID:     resp.CoachID,
		Date:        resp.Date.String(),
		StartTime:   resp.StartTime.String(),
		EndTime:     resp.EndTime.String(),
		StartUTC:    resp.StartUTC.UTC().Format(time.RFC3339),
		EndUTC:      resp.EndUTC.UTC().Format(time.RFC3339),
		ServiceName: resp.ServiceName,
		CreditCost:  resp.CreditCost,
		CreatedAt:   resp.CreatedAt.UTC().Format(time.RFC3339),
	}
}
