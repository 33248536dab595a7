package expire_reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	ExpireStale(ctx context.Context, cutoff time.Time, now time.Time) ([]*domain.Reservation, error)
}

// EventPublisher публикует события жизненного цикла брони
type EventPublisher interface {
	Publish(ctx context.Context, event domain.ReservationEvent)
}

// SweepRecorder метрики прогонов
type SweepRecorder interface {
	ObserveSweep(expired int, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
