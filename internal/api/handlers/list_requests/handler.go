package list_requests

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
)

const msgInvalidLimit = "некорректный limit"

// RequestsResponse HTTP response model
type RequestsResponse struct {
	Requests []*handlers.RequestDTO `json:"requests"`
	Total    int                    `json:"total"`
}

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

// Handle GET /api/v1/requests
// Query params: status (pending|approved|rejected, опционально), limit (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.RequirePrincipal(w, r)
	if !ok {
		return
	}

	req := &models.ListRequestsRequest{Principal: principal}

	// Статус проверяет сервис
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.RequestStatus(raw)
		req.Status = &status
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /requests - Invalid limit: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		req.Limit = limit
	}

	requests, err := h.service.ListRequests(r.Context(), req)
	if err != nil {
		h.logger.Warn("GET /requests - Failed: user_id=%d, error=%v", principal.UserID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	resp := &RequestsResponse{
		Requests: make([]*handlers.RequestDTO, 0, len(requests)),
		Total:    len(requests),
	}
	for _, item := range requests {
		resp.Requests = append(resp.Requests, handlers.NewRequestDTO(item))
	}

	h.logger.Info("GET /requests - Requests retrieved: count=%d", len(requests))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
