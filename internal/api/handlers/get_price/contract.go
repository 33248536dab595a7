package get_price

import (
	"context"

	"github.com/m04kA/SMC-MusicBookingService/internal/service/prices/models"
)

type PriceService interface {
	GetPrice(ctx context.Context, tier, category string) (*models.PriceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
