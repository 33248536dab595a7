package confirm_reservation

import (
	"context"

	"github.com/m04kA/SMC-MusicBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	Confirm(ctx context.Context, id int64) (*models.TransitionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
