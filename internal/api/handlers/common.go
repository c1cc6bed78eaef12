package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

const maxBodyBytes = 1 << 20

const (
	msgInternalError = "внутренняя ошибка сервера"
	msgForbidden     = "недостаточно прав"
	msgUnauthorized  = "требуется авторизация"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// RespondJSON пишет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ошибку с текстом сообщения
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondErrorWithCode пишет ошибку с машиночитаемым кодом
func RespondErrorWithCode(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = msgForbidden
	}
	RespondError(w, http.StatusForbidden, message)
}

func RespondUnauthorized(w http.ResponseWriter) {
	RespondError(w, http.StatusUnauthorized, msgUnauthorized)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// DecodeJSON декодирует тело запроса, запрещая неизвестные поля
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return nil
}

// DecodeAndValidate декодирует тело и проверяет теги validate
func DecodeAndValidate(r *http.Request, dst interface{}) error {
	if err := DecodeJSON(r, dst); err != nil {
		return err
	}
	return Validate(dst)
}

// Validate проверяет структуру по тегам validate и возвращает читаемое сообщение
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(parts, "; "))
}

// PathID читает положительный int64 из переменной пути
func PathID(r *http.Request, name string) (int64, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, fmt.Errorf("missing path variable %s", name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return id, nil
}

// QueryID читает необязательный положительный int64 из query-параметра
func QueryID(r *http.Request, name string) (*int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return &id, nil
}

// QueryDateRange читает обязательные параметры from и to в формате YYYY-MM-DD
func QueryDateRange(r *http.Request) (types.Date, types.Date, error) {
	q := r.URL.Query()
	from, err := types.ParseDate(q.Get("from"))
	if err != nil {
		return types.Date{}, types.Date{}, fmt.Errorf("from: %w", err)
	}
	to, err := types.ParseDate(q.Get("to"))
	if err != nil {
		return types.Date{}, types.Date{}, fmt.Errorf("to: %w", err)
	}
	return from, to, nil
}
