package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	requestRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/request"
	"github.com/m04kA/SMC-CourtBooking/internal/integrations/notifications"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// ApproveRequest одобрение ожидающей заявки администратором.
// Шаги выполняются строго по порядку: статус, история, удаление бронирования, возврат, уведомление.
// Если удалить бронирование не удалось, заявка остаётся approved, а ошибка возвращается
// вызывающему для ручного разбора. Неудачный возврат не откатывает удаление: итог PartialSuccess.
func (s *Service) ApproveRequest(ctx context.Context, req *models.ReviewRequest) (*models.ApprovalResult, error) {
	s.logger.Info("ApproveRequest: request id=%d by user=%d", req.RequestID, req.Principal.UserID)

	// 1. Только администратор
	if !req.Principal.IsAdmin() {
		s.logger.Warn("ApproveRequest: role=%s is not allowed", req.Principal.Role)
		return nil, ErrAccessDenied
	}
	if err := validateNotes(req.Notes); err != nil {
		s.logger.Warn("ApproveRequest: validation failed: %v", err)
		return nil, err
	}

	ctx, cancel := s.detach(ctx)
	defer cancel()

	// 2. Заявка должна ожидать рассмотрения
	pending, err := s.getPendingRequest(ctx, "ApproveRequest", req.RequestID)
	if err != nil {
		return nil, err
	}

	// 3. Бронирование должно существовать
	booking, err := s.getBooking(ctx, "ApproveRequest", pending.BookingID)
	if err != nil {
		return nil, err
	}

	// 4. Фиксируем решение (однократный переход pending -> approved)
	approved, err := s.resolve(ctx, "ApproveRequest", pending, domain.RequestStatusApproved, req.Principal.UserID, req.Notes)
	if err != nil {
		return nil, err
	}

	// 5. История (best-effort)
	s.writeHistory(ctx, "ApproveRequest",
		domain.NewCancellationHistoryRecord(booking, &approved.ID, approved.Reason, req.Principal.UserID))

	// 6. Удаляем бронирование. При ошибке заявка остаётся approved
	released, err := s.release(ctx, "ApproveRequest", booking.ID)
	if err != nil {
		s.logger.Error("ApproveRequest: request id=%d is approved but booking id=%d is intact", approved.ID, booking.ID)
		return nil, err
	}

	// Остальные заявки на удалённое бронирование больше нечего разрешать
	if err := s.supersedePending(ctx, "ApproveRequest", booking.ID, req.Principal.UserID, supersededByApprovalNote); err != nil {
		s.logger.Warn("ApproveRequest: failed to supersede sibling requests of booking id=%d: %v", booking.ID, err)
	}

	// 7. Возврат кредитов только после успешного удаления
	refund := s.refund(ctx, "ApproveRequest", released, requestRefundKey(approved.ID))

	// 8. Уведомление (best-effort)
	s.notify(ctx, "ApproveRequest", notifications.KindApproved, released, &approved.ID, approved.Reason, refund)

	result := &models.ApprovalResult{
		Request: approved,
		Booking: released,
		Refund:  refund,
		Outcome: outcome(refund),
	}

	s.logger.Info("ApproveRequest: request id=%d approved, booking id=%d released, outcome=%s",
		approved.ID, released.ID, result.Outcome)
	return result, nil
}

// RejectRequest отклонение ожидающей заявки администратором. Бронирование не меняется.
func (s *Service) RejectRequest(ctx context.Context, req *models.ReviewRequest) (*domain.BookingRequest, error) {
	s.logger.Info("RejectRequest: request id=%d by user=%d", req.RequestID, req.Principal.UserID)

	if !req.Principal.IsAdmin() {
		s.logger.Warn("RejectRequest: role=%s is not allowed", req.Principal.Role)
		return nil, ErrAccessDenied
	}
	if err := validateNotes(req.Notes); err != nil {
		s.logger.Warn("RejectRequest: validation failed: %v", err)
		return nil, err
	}

	ctx, cancel := s.detach(ctx)
	defer cancel()

	pending, err := s.getPendingRequest(ctx, "RejectRequest", req.RequestID)
	if err != nil {
		return nil, err
	}

	rejected, err := s.resolve(ctx, "RejectRequest", pending, domain.RequestStatusRejected, req.Principal.UserID, req.Notes)
	if err != nil {
		return nil, err
	}

	s.logger.Info("RejectRequest: request id=%d rejected", rejected.ID)
	return rejected, nil
}

// ListRequests очередь заявок для администратора
func (s *Service) ListRequests(ctx context.Context, req *models.ListRequestsRequest) ([]*domain.BookingRequest, error) {
	s.logger.Info("ListRequests: by user=%d, status=%v", req.Principal.UserID, req.Status)

	if !req.Principal.IsAdmin() {
		s.logger.Warn("ListRequests: role=%s is not allowed", req.Principal.Role)
		return nil, ErrAccessDenied
	}
	if req.Status != nil && !req.Status.IsValid() {
		s.logger.Warn("ListRequests: invalid status=%s", *req.Status)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	limit := req.Limit
	if limit == 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	requests, err := s.requestRepo.List(ctx, req.Status, limit)
	if err != nil {
		s.logger.Error("ListRequests: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRequests - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListRequests: found %d requests", len(requests))
	return requests, nil
}

// getPendingRequest получает заявку и проверяет, что она ещё не рассмотрена
func (s *Service) getPendingRequest(ctx context.Context, op string, requestID int64) (*domain.BookingRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("%s: request id=%d not found", op, requestID)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("%s: repository error for request id=%d: %v", op, requestID, err)
		return nil, fmt.Errorf("%w: %s - get request: %v", ErrInternal, op, err)
	}

	if !req.IsPending() {
		s.logger.Warn("%s: request id=%d is already %s", op, requestID, req.Status)
		return nil, ErrRequestAlreadyResolved
	}

	return req, nil
}

// resolve переводит заявку в терминальный статус с записью рецензента и времени
func (s *Service) resolve(ctx context.Context, op string, req *domain.BookingRequest, status domain.RequestStatus,
	reviewerID int64, notes *string) (*domain.BookingRequest, error) {
	review := domain.Review{
		RequestID:  req.ID,
		Status:     status,
		ReviewerID: reviewerID,
		ReviewedAt: s.timeProvider.Now().UTC(),
		Notes:      notes,
	}

	if err := s.requestRepo.Resolve(ctx, review); err != nil {
		if errors.Is(err, requestRepo.ErrNotPending) {
			s.logger.Warn("%s: request id=%d was resolved concurrently", op, req.ID)
			return nil, ErrRequestAlreadyResolved
		}
		s.logger.Error("%s: failed to mark request id=%d as %s: %v", op, req.ID, status, err)
		return nil, fmt.Errorf("%w: %s - resolve request: %v", ErrInternal, op, err)
	}

	resolved := *req
	resolved.Status = review.Status
	resolved.ReviewerID = &review.ReviewerID
	resolved.ReviewedAt = &review.ReviewedAt
	resolved.AdminNotes = review.Notes
	return &resolved, nil
}

func validateNotes(notes *string) error {
	if notes != nil && len(*notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}
