package reminder

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
)

// ReservationReader чтение броней
type ReservationReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// Notifier доставляет напоминание пользователю
type Notifier interface {
	SendReminder(ctx context.Context, res *domain.Reservation, startsAt time.Time) error
}

// Recorder метрики исходов напоминаний
type Recorder interface {
	IncReminder(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
