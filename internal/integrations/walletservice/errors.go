package walletservice

import "errors"

var (
	// ErrWalletNotFound возвращается, когда у пользователя нет кошелька
	ErrWalletNotFound = errors.New("walletservice client: wallet not found")

	// ErrInvalidAmount возвращается при неположительной сумме зачисления
	ErrInvalidAmount = errors.New("walletservice client: amount must be positive")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("walletservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("walletservice client: invalid response")

	// ErrUnavailable возвращается, когда сервис не ответил после всех повторов
	ErrUnavailable = errors.New("walletservice client: service unavailable")
)
