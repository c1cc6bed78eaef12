package notifications

import "context"

// Sender канал доставки уведомлений
type Sender interface {
	Name() string
	Send(ctx context.Context, notice *CancellationNotice) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
