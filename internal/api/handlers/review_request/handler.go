package review_request

import (
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
)

const (
	msgInvalidRequestID   = "некорректный ID заявки"
	msgInvalidRequestBody = "некорректное тело запроса"
)

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

// HandleApprove POST /api/v1/requests/{requestId}/approve
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.RequirePrincipal(w, r)
	if !ok {
		return
	}

	requestID, body, ok := h.parse(w, r, "approve")
	if !ok {
		return
	}

	result, err := h.service.ApproveRequest(r.Context(), body.ToServiceRequest(principal, requestID))
	if err != nil {
		h.logger.Warn("POST /requests/{id}/approve - Failed: request_id=%d, admin_id=%d, error=%v",
			requestID, principal.UserID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /requests/{id}/approve - Approved: request_id=%d, outcome=%s", requestID, result.Outcome)
	handlers.RespondJSON(w, http.StatusOK, FromApprovalResult(result))
}

// HandleReject POST /api/v1/requests/{requestId}/reject
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.RequirePrincipal(w, r)
	if !ok {
		return
	}

	requestID, body, ok := h.parse(w, r, "reject")
	if !ok {
		return
	}

	rejected, err := h.service.RejectRequest(r.Context(), body.ToServiceRequest(principal, requestID))
	if err != nil {
		h.logger.Warn("POST /requests/{id}/reject - Failed: request_id=%d, admin_id=%d, error=%v",
			requestID, principal.UserID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /requests/{id}/reject - Rejected: request_id=%d", requestID)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewRequestDTO(rejected))
}

func (h *Handler) parse(w http.ResponseWriter, r *http.Request, action string) (int64, *ReviewBody, bool) {
	requestID, err := handlers.PathID(r, "requestId")
	if err != nil {
		h.logger.Warn("POST /requests/{id}/%s - Invalid request ID: %v", action, err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return 0, nil, false
	}

	body := &ReviewBody{}
	if r.ContentLength != 0 {
		if err := handlers.DecodeAndValidate(r, body); err != nil {
			h.logger.Warn("POST /requests/{id}/%s - Invalid request body: %v", action, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return 0, nil, false
		}
	}

	return requestID, body, true
}
