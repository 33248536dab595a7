package requesters

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
)

// RequesterRepository интерфейс репозитория пользователей
type RequesterRepository interface {
	Register(ctx context.Context, req *domain.Requester) (*domain.Requester, bool, error)
	GetByID(ctx context.Context, userID int64) (*domain.Requester, error)
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
