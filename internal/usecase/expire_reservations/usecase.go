package expire_reservations

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
	"github.com/m04kA/SMC-MusicBookingService/internal/events"
)

// UseCase переводит неоплаченные брони старше таймаута в expired
type UseCase struct {
	reservationRepo ReservationRepository
	publisher       EventPublisher
	recorder        SweepRecorder
	timeout         time.Duration
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// recorder может быть nil
func NewUseCase(
	reservationRepo ReservationRepository,
	publisher EventPublisher,
	recorder SweepRecorder,
	timeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		publisher:       publisher,
		recorder:        recorder,
		timeout:         timeout,
		logger:          logger,
	}
}

// Execute выполняет один прогон
// Переход выполняется одним условным UPDATE, поэтому подтверждение, пришедшее
// одновременно с прогоном, либо успевает, либо получает конфликт статуса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}
	cutoff := now.Add(-uc.timeout)

	expired, err := uc.reservationRepo.ExpireStale(ctx, cutoff, now)
	if err != nil {
		uc.observe(0, err)
		uc.logger.Error("ExpireReservations: repository error: %v", err)
		return nil, fmt.Errorf("%w: ExpireStale - repository error: %v", ErrInternal, err)
	}
	uc.observe(len(expired), nil)

	ids := make([]int64, 0, len(expired))
	for _, res := range expired {
		ids = append(ids, res.ID)
		uc.publisher.Publish(ctx, events.NewReservationEvent(domain.EventReservationExpired, res, now))
	}

	if len(expired) > 0 {
		uc.logger.Info("ExpireReservations: expired %d reservations created before %s: %v",
			len(expired), cutoff.UTC().Format(time.RFC3339), ids)
	}

	return &Response{
		Now:            now,
		Cutoff:         cutoff,
		ExpiredCount:   len(expired),
		ReservationIDs: ids,
	}, nil
}

func (uc *UseCase) observe(expired int, err error) {
	if uc.recorder != nil {
		uc.recorder.ObserveSweep(expired, err)
	}
}
