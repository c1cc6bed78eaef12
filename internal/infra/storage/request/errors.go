package request

import "errors"

var (
	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = errors.New("request.repository: request not found")

	// ErrDuplicatePending возвращается, когда на бронирование уже есть ожидающая заявка того же типа
	ErrDuplicatePending = errors.New("request.repository: pending request of this type already exists")

	// ErrNotPending возвращается, когда заявка уже рассмотрена
	ErrNotPending = errors.New("request.repository: request is not pending")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("request.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("request.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("request.repository: failed to scan row")
)
