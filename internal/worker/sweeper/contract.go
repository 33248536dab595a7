package sweeper

import (
	"context"

	"github.com/m04kA/SMC-MusicBookingService/internal/usecase/expire_reservations"
)

// ExpireUseCase прогон истечения неоплаченных броней
type ExpireUseCase interface {
	Execute(ctx context.Context, req *expire_reservations.Request) (*expire_reservations.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
