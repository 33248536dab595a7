package run_sweep

import (
	"context"

	expireReservations "github.com/m04kA/SMC-MusicBookingService/internal/usecase/expire_reservations"
)

type ExpireReservationsUseCase interface {
	Execute(ctx context.Context, req *expireReservations.Request) (*expireReservations.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
