package list_prices

import (
	"context"

	"github.com/m04kA/SMC-MusicBookingService/internal/service/prices/models"
)

type PriceService interface {
	ListPrices(ctx context.Context) (*models.PriceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
