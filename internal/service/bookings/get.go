package bookings

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
)

// GetBooking возвращает бронирование и дедлайн бесплатной отмены.
// Ученик видит только свои бронирования, тренер - свои сессии, администратор - все.
func (s *Service) GetBooking(ctx context.Context, req *models.GetBookingRequest) (*models.BookingView, error) {
	const op = "GetBooking"

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, op, req.BookingID)
	if err != nil {
		return nil, err
	}

	if !canView(req.Principal, booking) {
		s.logger.Warn("%s: user=%d(%s) cannot view booking id=%d", op, req.Principal.UserID, req.Principal.Role, booking.ID)
		return nil, ErrAccessDenied
	}

	deadline, err := s.FreeCancellationDeadline(booking)
	if err != nil {
		s.logger.Error("%s: failed to compute deadline for booking id=%d: %v", op, booking.ID, err)
		return nil, fmt.Errorf("%w: %s - deadline: %v", ErrInternal, op, err)
	}

	return &models.BookingView{
		Booking:                  booking,
		FreeCancellationDeadline: deadline,
		CanSelfCancel:            s.timeProvider.Now().Before(deadline),
	}, nil
}

func canView(p domain.Principal, b *domain.Booking) bool {
	switch p.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleCoach:
		return b.IsCoachedBy(p.UserID)
	case domain.RoleStudent:
		return b.IsOwnedBy(p.UserID)
	default:
		return false
	}
}
