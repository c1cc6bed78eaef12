package batch_raincheck

import (
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
)

const msgInvalidRequestBody = "некорректное тело запроса"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/rainchecks/batch
// Частичный успех отдаётся со статусом 200 и счётчиками в теле
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.RequirePrincipal(w, r)
	if !ok {
		return
	}

	var req BatchRaincheckRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /rainchecks/batch - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.BatchRaincheck(r.Context(), req.ToServiceRequest(principal))
	if err != nil {
		h.logger.Warn("POST /rainchecks/batch - Failed: coach_id=%d, error=%v", principal.UserID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /rainchecks/batch - %d succeeded, %d refunds failed, %d failed",
		result.Succeeded, result.RefundsFailed, result.Failed)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResult(result))
}
