package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-CourtBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgSlotNotAvailable   = "выбранный временной слот уже заполнен"
	msgAlreadyBooked      = "вы уже записаны на это занятие"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.RequirePrincipal(w, r)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody+": "+err.Error())
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(principal)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, location_id=%d", principal.UserID, req.LocationID)
			handlers.RespondErrorWithCode(w, http.StatusConflict, handlers.CodeCapacityExceeded, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrAlreadyBooked):
			h.logger.Warn("POST /bookings - Already booked: user_id=%d, location_id=%d", principal.UserID, req.LocationID)
			handlers.RespondConflict(w, msgAlreadyBooked)

		default:
			status, _ := handlers.StatusFor(err)
			if status >= http.StatusInternalServerError {
				h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, location_id=%d, error=%v",
					principal.UserID, req.LocationID, err)
			} else {
				h.logger.Warn("POST /bookings - Rejected: user_id=%d, error=%v", principal.UserID, err)
			}
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, location_id=%d",
		result.ID, result.UserID, result.LocationID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
