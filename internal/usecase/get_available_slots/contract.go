package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MusicBookingService/pkg/types"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	// OccupiedSlots слоты даты, занятые бронями в статусах pending_payment и confirmed
	OccupiedSlots(ctx context.Context, date time.Time) ([]types.TimeString, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
