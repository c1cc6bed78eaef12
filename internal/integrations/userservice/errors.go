package userservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// Указывает, что UserService недоступен и имена участников следует заменить заглушками
	ErrServiceDegraded = errors.New("userservice unavailable: graceful degradation applied")
)
