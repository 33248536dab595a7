package get_requester

import (
	"context"

	"github.com/m04kA/SMC-MusicBookingService/internal/service/requesters/models"
)

type RequesterService interface {
	GetByID(ctx context.Context, userID int64) (*models.RequesterResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
