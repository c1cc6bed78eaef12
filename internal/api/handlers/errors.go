package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// Коды ошибок в теле ответа
const (
	CodeValidation       = "validation_error"
	CodeIncompleteBlock  = "incomplete_minimum_block"
	CodeCapacityExceeded = "capacity_exceeded"
	CodeNotAuthorized    = "not_authorized"
	CodeDuplicatePending = "duplicate_pending_request"
	CodeNotFound         = "not_found"
	CodeDependency       = "dependency_error"
	CodeInternal         = "internal_error"
)

// StatusFor сопоставляет вид доменной ошибки HTTP статусу и коду
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrIncompleteMinimumBlock):
		return http.StatusUnprocessableEntity, CodeIncompleteBlock
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, CodeValidation
	case errors.Is(err, domain.ErrNotAuthorized):
		return http.StatusForbidden, CodeNotAuthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, domain.ErrCapacityExceeded):
		return http.StatusConflict, CodeCapacityExceeded
	case errors.Is(err, domain.ErrDuplicatePendingRequest):
		return http.StatusConflict, CodeDuplicatePending
	case errors.Is(err, domain.ErrDependency):
		return http.StatusBadGateway, CodeDependency
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// RespondDomainError пишет ошибку use case. Нарушения доменных правил отдаются
// с текстом ошибки, внутренние - общим сообщением.
func RespondDomainError(w http.ResponseWriter, err error) {
	status, code := StatusFor(err)
	if status >= http.StatusInternalServerError {
		RespondErrorWithCode(w, status, code, msgInternalError)
		return
	}
	RespondErrorWithCode(w, status, code, err.Error())
}
