package prices

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
)

// PriceRepository интерфейс репозитория цен
type PriceRepository interface {
	Get(ctx context.Context, tier domain.Tier, category domain.Category) (*domain.PriceEntry, error)
	List(ctx context.Context) ([]*domain.PriceEntry, error)
	Upsert(ctx context.Context, entry *domain.PriceEntry) error
	InsertMissing(ctx context.Context, entries []domain.PriceEntry, now time.Time) (int64, error)
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
