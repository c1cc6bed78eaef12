package bookings

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
)

// AssignCoach назначает тренера сразу всем бронированиям сессии одним UPDATE.
// Политика "последняя запись побеждает": конкурирующие назначения не проверяются,
// но каждое применяется ко всей сессии атомарно.
// Администратор назначает любого тренера, тренер может назначить только себя.
func (s *Service) AssignCoach(ctx context.Context, req *models.AssignCoachRequest) (*models.AssignCoachResult, error) {
	s.logger.Info("AssignCoach: booking id=%d, coach=%v by user=%d", req.BookingID, req.CoachID, req.Principal.UserID)

	switch {
	case req.Principal.IsAdmin():
	case req.Principal.IsCoach():
		if req.CoachID == nil || *req.CoachID != req.Principal.UserID {
			s.logger.Warn("AssignCoach: coach=%d may only assign themselves", req.Principal.UserID)
			return nil, ErrAccessDenied
		}
	default:
		s.logger.Warn("AssignCoach: role=%s is not allowed", req.Principal.Role)
		return nil, ErrAccessDenied
	}

	if req.CoachID != nil && *req.CoachID <= 0 {
		return nil, fmt.Errorf("%w: coach id must be positive", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, "AssignCoach", req.BookingID)
	if err != nil {
		return nil, err
	}

	key := booking.SessionKey()
	affected, err := s.bookingRepo.UpdateCoachForSession(ctx, key, req.CoachID)
	if err != nil {
		s.logger.Error("AssignCoach: failed to update session of booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: AssignCoach - update session: %v", ErrInternal, err)
	}

	s.logger.Info("AssignCoach: %d bookings updated for session location=%d start=%d", affected, key.LocationID, key.StartUnix)
	return &models.AssignCoachResult{
		Session:  key,
		CoachID:  req.CoachID,
		Affected: affected,
	}, nil
}
