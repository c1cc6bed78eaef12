package models

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Action результат действия студента по отмене
type Action string

const (
	// ActionCancelled бронирование удалено сразу (бесплатное окно отмены)
	ActionCancelled Action = "cancelled"
	// ActionRequestCreated создана заявка на рассмотрение администратором
	ActionRequestCreated Action = "request_created"
)

// Request модели

// CancelRequest запрос студента на отмену бронирования
type CancelRequest struct {
	Principal domain.Principal
	BookingID int64
	Reason    string
}

// RaincheckRequest запрос студента на перенос из-за погоды
type RaincheckRequest struct {
	Principal domain.Principal
	BookingID int64
	Reason    string
}

// ReviewRequest решение администратора по заявке
type ReviewRequest struct {
	Principal domain.Principal
	RequestID int64
	Notes     *string
}

// BatchRaincheckRequest пакетный перенос из-за погоды от тренера
type BatchRaincheckRequest struct {
	Principal  domain.Principal
	BookingIDs []int64
	Reason     string
}

// AssignCoachRequest назначение тренера на сессию
type AssignCoachRequest struct {
	Principal domain.Principal
	BookingID int64
	CoachID   *int64 // nil снимает тренера
}

// ListRequestsRequest очередь заявок для администратора
type ListRequestsRequest struct {
	Principal domain.Principal
	Status    *domain.RequestStatus
	Limit     uint64
}

// Response модели

// RefundResult итог возврата кредитов
type RefundResult struct {
	Amount         float64
	IdempotencyKey string
	Attempted      bool
	Err            error // не nil, если возврат не прошёл и остаётся за оператором
}

// Failed возвращает true, если возврат пытались сделать и он не прошёл
func (r RefundResult) Failed() bool {
	return r.Attempted && r.Err != nil
}

// CancelResult результат отмены студентом
type CancelResult struct {
	Action  Action
	Booking *domain.Booking
	Request *domain.BookingRequest // только для ActionRequestCreated
	Refund  RefundResult
	Outcome domain.Outcome
}

// ApprovalResult результат одобрения заявки
type ApprovalResult struct {
	Request *domain.BookingRequest
	Booking *domain.Booking
	Refund  RefundResult
	Outcome domain.Outcome
}

// BatchItemStatus итог обработки одного бронирования в пакетном переносе
type BatchItemStatus string

const (
	BatchItemSucceeded    BatchItemStatus = "succeeded"
	BatchItemRefundFailed BatchItemStatus = "refund_failed"
	BatchItemFailed       BatchItemStatus = "failed"
)

// BatchItem результат по одному бронированию
type BatchItem struct {
	BookingID int64
	Status    BatchItemStatus
	Err       error
}

// BatchRaincheckResult сводка пакетного переноса: "N succeeded, M refunds failed"
type BatchRaincheckResult struct {
	Items         []BatchItem
	Succeeded     int
	RefundsFailed int
	Failed        int
	Outcome       domain.Outcome
}

// AssignCoachResult результат назначения тренера
type AssignCoachResult struct {
	Session  domain.SessionKey
	CoachID  *int64
	Affected int64
}

// GetBookingRequest просмотр одного бронирования
type GetBookingRequest struct {
	Principal domain.Principal
	BookingID int64
}

// BookingView бронирование с политикой отмены
type BookingView struct {
	Booking                  *domain.Booking
	FreeCancellationDeadline time.Time
	CanSelfCancel            bool // сейчас раньше дедлайна
}
