package register_requester

import (
	"context"

	"github.com/m04kA/SMC-MusicBookingService/internal/service/requesters/models"
)

type RequesterService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.RequesterResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
