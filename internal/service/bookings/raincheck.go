package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	requestRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/request"
	"github.com/m04kA/SMC-CourtBooking/internal/integrations/notifications"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-CourtBooking/pkg/ptr"
)

const (
	supersededNote           = "superseded by coach rain check"
	supersededByApprovalNote = "superseded by approved request"
)

// BatchRaincheck пакетный перенос из-за погоды, инициированный тренером.
// Каждое бронирование обрабатывается независимо: ожидающие заявки отклоняются
// как заменённая, затем бронирование удаляется и кредиты возвращаются.
// Результат содержит счётчики вида "N succeeded, M refunds failed" вместо общего успеха/ошибки.
func (s *Service) BatchRaincheck(ctx context.Context, req *models.BatchRaincheckRequest) (*models.BatchRaincheckResult, error) {
	s.logger.Info("BatchRaincheck: %d bookings by coach=%d", len(req.BookingIDs), req.Principal.UserID)

	// 1. Только тренер, только свои сессии
	if !req.Principal.IsCoach() {
		s.logger.Warn("BatchRaincheck: role=%s is not allowed", req.Principal.Role)
		return nil, ErrAccessDenied
	}

	ids := dedupeIDs(req.BookingIDs)
	if len(ids) == 0 || len(ids) > domain.MaxBatchSize {
		s.logger.Warn("BatchRaincheck: invalid batch size %d", len(ids))
		return nil, fmt.Errorf("%w: between 1 and %d bookings required", ErrInvalidInput, domain.MaxBatchSize)
	}

	reason, err := normalizeReason(req.Reason)
	if err != nil {
		s.logger.Warn("BatchRaincheck: validation failed: %v", err)
		return nil, err
	}
	if reason == "" {
		return nil, ErrReasonRequired
	}

	ctx, cancel := s.detach(ctx)
	defer cancel()

	// 2. Обрабатываем бронирования по одному
	result := &models.BatchRaincheckResult{Items: make([]models.BatchItem, 0, len(ids))}
	for _, bookingID := range ids {
		item := s.raincheckOne(ctx, req.Principal, bookingID, reason)
		result.Items = append(result.Items, item)

		switch item.Status {
		case models.BatchItemSucceeded:
			result.Succeeded++
		case models.BatchItemRefundFailed:
			result.Succeeded++
			result.RefundsFailed++
		default:
			result.Failed++
		}
	}

	result.Outcome = domain.OutcomeCompleted
	if result.RefundsFailed > 0 || result.Failed > 0 {
		result.Outcome = domain.OutcomePartialSuccess
	}

	s.logger.Info("BatchRaincheck: %d succeeded, %d refunds failed, %d failed",
		result.Succeeded, result.RefundsFailed, result.Failed)
	return result, nil
}

func (s *Service) raincheckOne(ctx context.Context, coach domain.Principal, bookingID int64, reason string) models.BatchItem {
	item := models.BatchItem{BookingID: bookingID, Status: models.BatchItemFailed}

	booking, err := s.getBooking(ctx, "BatchRaincheck", bookingID)
	if err != nil {
		item.Err = err
		return item
	}
	if !booking.IsCoachedBy(coach.UserID) {
		s.logger.Warn("BatchRaincheck: booking id=%d is not assigned to coach=%d", bookingID, coach.UserID)
		item.Err = ErrAccessDenied
		return item
	}

	// (a) ожидающие заявки студента заменяются пакетным переносом
	if err := s.supersedePending(ctx, "BatchRaincheck", booking.ID, coach.UserID, supersededNote); err != nil {
		item.Err = err
		return item
	}

	s.writeHistory(ctx, "BatchRaincheck", domain.NewCancellationHistoryRecord(booking, nil, reason, coach.UserID))

	// (b) те же шаги, что и при одобрении: удаление, затем возврат
	released, err := s.release(ctx, "BatchRaincheck", booking.ID)
	if err != nil {
		item.Err = err
		return item
	}

	refund := s.refund(ctx, "BatchRaincheck", released, raincheckRefundKey(released.ID))
	s.notify(ctx, "BatchRaincheck", notifications.KindRaincheck, released, nil, reason, refund)

	if refund.Failed() {
		item.Status = models.BatchItemRefundFailed
		item.Err = refund.Err
		return item
	}

	item.Status = models.BatchItemSucceeded
	return item
}

// findPending возвращает ожидающие заявки бронирования всех типов
func (s *Service) findPending(ctx context.Context, op string, bookingID int64) ([]*domain.BookingRequest, error) {
	var result []*domain.BookingRequest
	for _, reqType := range domain.RequestTypes {
		pending, err := s.requestRepo.FindPending(ctx, bookingID, reqType)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				continue
			}
			s.logger.Error("%s: failed to look up pending %s request for booking id=%d: %v", op, reqType, bookingID, err)
			return nil, fmt.Errorf("%w: %s - find pending: %v", ErrInternal, op, err)
		}
		result = append(result, pending)
	}
	return result, nil
}

// supersedePending отклоняет все ожидающие заявки бронирования
func (s *Service) supersedePending(ctx context.Context, op string, bookingID, reviewerID int64, note string) error {
	pending, err := s.findPending(ctx, op, bookingID)
	if err != nil {
		return err
	}

	for _, req := range pending {
		_, err := s.resolve(ctx, op, req, domain.RequestStatusRejected, reviewerID, ptr.Ptr(note))
		if err != nil && !errors.Is(err, ErrRequestAlreadyResolved) {
			return err
		}
		s.logger.Info("%s: request id=%d superseded", op, req.ID)
	}
	return nil
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
