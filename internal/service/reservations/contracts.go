package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	TransitionStatus(ctx context.Context, id int64, from []domain.ReservationStatus, to domain.ReservationStatus, at time.Time) (*domain.Reservation, error)
}

// EventPublisher публикует события жизненного цикла брони
type EventPublisher interface {
	Publish(ctx context.Context, event domain.ReservationEvent)
}

// TimeProvider источник текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
