package create_availability

import (
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
)

const (
	msgInvalidLocationID  = "некорректный ID локации"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
)

type Handler struct {
	useCase CreateAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CreateAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/locations/{locationId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.RequirePrincipal(w, r)
	if !ok {
		return
	}

	locationID, err := handlers.PathID(r, "locationId")
	if err != nil {
		h.logger.Warn("POST /locations/{id}/availability - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	var req CreateAvailabilityRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /locations/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(principal, locationID)
	if err != nil {
		h.logger.Warn("POST /locations/{id}/availability - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.logger.Warn("POST /locations/{id}/availability - Failed: location_id=%d, error=%v", locationID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /locations/{id}/availability - Slots created: location_id=%d, created=%d, skipped=%d",
		locationID, result.Created, result.Skipped)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
