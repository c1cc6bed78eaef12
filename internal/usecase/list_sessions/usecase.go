package list_sessions

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// UseCase use case списка сессий
type UseCase struct {
	bookingRepo BookingRepository
	userClient  UserServiceClient
	timeZone    TimeZone
	maxDays     int
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	userClient UserServiceClient,
	timeZone TimeZone,
	maxDays int,
	logger Logger,
) *UseCase {
	if maxDays <= 0 {
		maxDays = domain.DefaultMaxHeatmapDays
	}
	return &UseCase{
		bookingRepo: bookingRepo,
		userClient:  userClient,
		timeZone:    timeZone,
		maxDays:     maxDays,
		logger:      logger,
	}
}

// Execute возвращает сессии за период.
// Администратор видит все, тренер - свои сессии, ученик - свои бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ListSessions: principal=%d(%s), range=%s..%s, location=%v",
		req.Principal.UserID, req.Principal.Role, req.From.String(), req.To.String(), req.LocationID)

	// 1. Валидация входных данных
	if err := uc.validateRequest(req); err != nil {
		uc.logger.Warn("ListSessions: validation failed: %v", err)
		return nil, err
	}

	// 2. Фильтр с учётом роли
	filter, err := uc.buildFilter(req)
	if err != nil {
		uc.logger.Warn("ListSessions: %v", err)
		return nil, err
	}

	// 3. Бронирования периода
	bookings, err := uc.bookingRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("ListSessions: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	// 4. Профили одним батч-запросом
	degraded := false
	profiles := map[int64]domain.Profile{}
	if len(bookings) > 0 {
		profiles, err = uc.userClient.GetProfilesWithGracefulDegradation(ctx, profileIDs(bookings))
		if err != nil {
			uc.logger.Warn("ListSessions: profiles unavailable, using placeholders: %v", err)
			degraded = true
		}
	}

	// 5. Группировка
	sessions := GroupIntoSessions(bookings, profiles)

	response := &Response{
		Sessions: make([]Session, 0, len(sessions)),
		Degraded: degraded,
	}
	for _, s := range sessions {
		response.Sessions = append(response.Sessions, uc.toSession(s))
		response.TotalRevenue += s.Revenue
	}

	uc.logger.Info("ListSessions: %d bookings grouped into %d sessions", len(bookings), len(sessions))
	return response, nil
}

func (uc *UseCase) validateRequest(req *Request) error {
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if req.To.Before(req.From) {
		return fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}
	if req.LocationID != nil && *req.LocationID <= 0 {
		return fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}
	if days := req.From.DaysUntil(req.To) + 1; days > uc.maxDays {
		return fmt.Errorf("%w: %d days requested, max %d", ErrRangeTooLarge, days, uc.maxDays)
	}
	return nil
}

func (uc *UseCase) buildFilter(req *Request) (domain.BookingsFilter, error) {
	from, to := uc.timeZone.LocalRangeToUTC(req.From, req.To)
	filter := domain.BookingsFilter{
		LocationID: req.LocationID,
		From:       &from,
		To:         &to,
	}

	userID := req.Principal.UserID
	switch req.Principal.Role {
	case domain.RoleAdmin:
	case domain.RoleCoach:
		filter.CoachID = &userID
	case domain.RoleStudent:
		filter.UserID = &userID
	default:
		return domain.BookingsFilter{}, fmt.Errorf("%w: unknown role %q", ErrAccessDenied, req.Principal.Role)
	}
	return filter, nil
}

func (uc *UseCase) toSession(s *domain.Session) Session {
	return Session{
		LocationID:   s.LocationID,
		Date:         uc.timeZone.UTCToLocalDate(s.StartTime),
		StartTime:    uc.timeZone.UTCToLocalTime(s.StartTime),
		EndTime:      uc.timeZone.UTCToLocalTime(s.EndTime),
		StartUTC:     s.StartTime,
		EndUTC:       s.EndTime,
		ServiceName:  s.ServiceName,
		BookingIDs:   s.BookingIDs,
		UserIDs:      s.UserIDs,
		Participants: s.Participants,
		CoachID:      s.CoachID,
		CoachName:    s.CoachName,
		Revenue:      s.Revenue,
	}
}
