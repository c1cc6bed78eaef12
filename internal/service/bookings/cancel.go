package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	requestRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/request"
	"github.com/m04kA/SMC-CourtBooking/internal/integrations/notifications"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
)

// RequestCancellation отмена бронирования студентом.
// До дедлайна бесплатной отмены бронирование удаляется сразу и кредиты возвращаются,
// заявка не создаётся. После дедлайна создаётся ожидающая заявка типа cancel.
func (s *Service) RequestCancellation(ctx context.Context, req *models.CancelRequest) (*models.CancelResult, error) {
	s.logger.Info("RequestCancellation: booking id=%d by user=%d", req.BookingID, req.Principal.UserID)

	// 1. Только студент может отменять свои бронирования
	if !req.Principal.IsStudent() {
		s.logger.Warn("RequestCancellation: role=%s is not allowed", req.Principal.Role)
		return nil, ErrAccessDenied
	}

	reason, err := normalizeReason(req.Reason)
	if err != nil {
		s.logger.Warn("RequestCancellation: validation failed: %v", err)
		return nil, err
	}

	ctx, cancel := s.detach(ctx)
	defer cancel()

	// 2. Получаем бронирование и проверяем владельца
	booking, err := s.getBooking(ctx, "RequestCancellation", req.BookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsOwnedBy(req.Principal.UserID) {
		s.logger.Warn("RequestCancellation: user=%d does not own booking id=%d", req.Principal.UserID, booking.ID)
		return nil, ErrAccessDenied
	}

	// 3. Сравниваем текущее время с дедлайном бесплатной отмены
	deadline, err := s.FreeCancellationDeadline(booking)
	if err != nil {
		s.logger.Error("RequestCancellation: failed to compute deadline for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: RequestCancellation - deadline: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	if now.Before(deadline) {
		return s.selfCancel(ctx, booking, reason)
	}

	s.logger.Info("RequestCancellation: deadline %s passed for booking id=%d, creating request",
		deadline.UTC().Format(time.RFC3339), booking.ID)

	// 4. После дедлайна нужна заявка с причиной
	if reason == "" {
		s.logger.Warn("RequestCancellation: reason is empty for booking id=%d", booking.ID)
		return nil, ErrReasonRequired
	}

	created, err := s.createRequest(ctx, "RequestCancellation", booking, req.Principal.UserID, domain.RequestTypeCancel, reason)
	if err != nil {
		return nil, err
	}

	return &models.CancelResult{
		Action:  models.ActionRequestCreated,
		Booking: booking,
		Request: created,
		Outcome: domain.OutcomeCompleted,
	}, nil
}

// selfCancel удаляет бронирование в бесплатном окне и возвращает кредиты
func (s *Service) selfCancel(ctx context.Context, booking *domain.Booking, reason string) (*models.CancelResult, error) {
	// Ожидающую заявку разрешает только администратор
	pending, err := s.findPending(ctx, "RequestCancellation", booking.ID)
	if err != nil {
		return nil, err
	}
	if len(pending) > 0 {
		s.logger.Warn("RequestCancellation: booking id=%d has pending %s request id=%d",
			booking.ID, pending[0].Type, pending[0].ID)
		return nil, ErrPendingRequestExists
	}

	released, err := s.release(ctx, "RequestCancellation", booking.ID)
	if err != nil {
		return nil, err
	}

	refund := s.refund(ctx, "RequestCancellation", released, selfCancelRefundKey(released.ID))
	s.notify(ctx, "RequestCancellation", notifications.KindSelfCancel, released, nil, reason, refund)

	result := &models.CancelResult{
		Action:  models.ActionCancelled,
		Booking: released,
		Refund:  refund,
		Outcome: outcome(refund),
	}

	s.logger.Info("RequestCancellation: booking id=%d cancelled in free window, outcome=%s", released.ID, result.Outcome)
	return result, nil
}

// RequestRaincheck заявка студента на перенос из-за погоды. Всегда проходит через рассмотрение.
func (s *Service) RequestRaincheck(ctx context.Context, req *models.RaincheckRequest) (*domain.BookingRequest, error) {
	s.logger.Info("RequestRaincheck: booking id=%d by user=%d", req.BookingID, req.Principal.UserID)

	if !req.Principal.IsStudent() {
		s.logger.Warn("RequestRaincheck: role=%s is not allowed", req.Principal.Role)
		return nil, ErrAccessDenied
	}

	reason, err := normalizeReason(req.Reason)
	if err != nil {
		s.logger.Warn("RequestRaincheck: validation failed: %v", err)
		return nil, err
	}
	if reason == "" {
		s.logger.Warn("RequestRaincheck: reason is empty for booking id=%d", req.BookingID)
		return nil, ErrReasonRequired
	}

	ctx, cancel := s.detach(ctx)
	defer cancel()

	booking, err := s.getBooking(ctx, "RequestRaincheck", req.BookingID)
	if err != nil {
		return nil, err
	}
	if !booking.IsOwnedBy(req.Principal.UserID) {
		s.logger.Warn("RequestRaincheck: user=%d does not own booking id=%d", req.Principal.UserID, booking.ID)
		return nil, ErrAccessDenied
	}

	return s.createRequest(ctx, "RequestRaincheck", booking, req.Principal.UserID, domain.RequestTypeRaincheck, reason)
}

// createRequest создаёт ожидающую заявку, если такой же ещё нет.
// Уникальный частичный индекс в БД страхует от гонки двух одновременных заявок.
func (s *Service) createRequest(ctx context.Context, op string, booking *domain.Booking, requesterID int64,
	reqType domain.RequestType, reason string) (*domain.BookingRequest, error) {
	existing, err := s.requestRepo.FindPending(ctx, booking.ID, reqType)
	switch {
	case err == nil:
		s.logger.Warn("%s: pending %s request id=%d already exists for booking id=%d", op, reqType, existing.ID, booking.ID)
		return nil, ErrDuplicatePendingRequest
	case !errors.Is(err, requestRepo.ErrRequestNotFound):
		s.logger.Error("%s: failed to check pending requests for booking id=%d: %v", op, booking.ID, err)
		return nil, fmt.Errorf("%w: %s - find pending: %v", ErrInternal, op, err)
	}

	created, err := s.requestRepo.Create(ctx, &domain.BookingRequest{
		BookingID:   booking.ID,
		RequesterID: requesterID,
		Type:        reqType,
		Reason:      reason,
		Status:      domain.RequestStatusPending,
	})
	if err != nil {
		if errors.Is(err, requestRepo.ErrDuplicatePending) {
			s.logger.Warn("%s: concurrent %s request for booking id=%d", op, reqType, booking.ID)
			return nil, ErrDuplicatePendingRequest
		}
		s.logger.Error("%s: failed to create request for booking id=%d: %v", op, booking.ID, err)
		return nil, fmt.Errorf("%w: %s - create request: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: created %s request id=%d for booking id=%d", op, reqType, created.ID, booking.ID)
	return created, nil
}
