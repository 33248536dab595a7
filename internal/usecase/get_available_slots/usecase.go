package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-MusicBookingService/internal/domain"
)

// UseCase use case для получения свободных слотов на дату
type UseCase struct {
	reservationRepo ReservationRepository
	schedule        domain.Schedule
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, schedule domain.Schedule, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		schedule:        schedule,
		logger:          logger,
	}
}

// Execute возвращает слоты сетки, не занятые активными бронями
// Результат не кэшируется: каждый вызов читает хранилище
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.Date.IsZero() {
		uc.logger.Warn("GetAvailableSlots: empty date")
		return nil, ErrInvalidDate
	}
	date := domain.DateOnly(req.Date)

	// 2. Получаем занятые слоты
	occupied, err := uc.reservationRepo.OccupiedSlots(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get occupied slots for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get occupied slots: %v", ErrInternal, err)
	}

	// 3. Вычитаем занятые из сетки
	free := freeSlots(uc.schedule, occupied)

	uc.logger.Info("GetAvailableSlots: date=%s, free=%d, occupied=%d",
		date.Format(domain.DateFormat), len(free), len(occupied))

	return &Response{
		Date:          date,
		SlotMinutes:   uc.schedule.SlotMinutes,
		Slots:         free,
		OccupiedCount: len(occupied),
	}, nil
}
