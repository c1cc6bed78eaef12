package list_sessions

import (
	"context"

	listSessions "github.com/m04kA/SMC-CourtBooking/internal/usecase/list_sessions"
)

type ListSessionsUseCase interface {
	Execute(ctx context.Context, req *listSessions.Request) (*listSessions.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
