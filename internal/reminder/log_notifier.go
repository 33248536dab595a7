package reminder

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
)

// LogNotifier пишет напоминание в лог; используется, когда брокер выключен
type LogNotifier struct {
	logger Logger
}

func NewLogNotifier(logger Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendReminder(_ context.Context, res *domain.Reservation, startsAt time.Time) error {
	n.logger.Info("Reminder: requester=%d has a %s %s lesson at %s (reservation id=%d)",
		res.RequesterID, res.Tier, res.Category, startsAt.Format("2006-01-02 15:04"), res.ID)
	return nil
}
